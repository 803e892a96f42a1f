// Package main provides the LINE adapter server entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/linehub/line-adapter-go/internal/adapter"
	"github.com/linehub/line-adapter-go/internal/buildinfo"
	"github.com/linehub/line-adapter-go/internal/bus"
	"github.com/linehub/line-adapter-go/internal/config"
	"github.com/linehub/line-adapter-go/internal/event"
	"github.com/linehub/line-adapter-go/internal/logger"
	"github.com/linehub/line-adapter-go/internal/message"
	"github.com/linehub/line-adapter-go/internal/metrics"
	"github.com/linehub/line-adapter-go/internal/ratelimit"
	"github.com/linehub/line-adapter-go/internal/reply"
	"github.com/linehub/line-adapter-go/internal/sentry"
	"github.com/linehub/line-adapter-go/internal/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log = log.WithField("service", "line-adapter-go")
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Default logger so package-level slog calls pick up context values too.
	slog.SetDefault(log.Logger)

	log.WithField("version", buildinfo.Version).
		WithField("commit", buildinfo.Commit).
		Info("Starting LINE adapter server")

	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Version,
	}); err != nil {
		log.WithError(err).Error("Failed to initialize Sentry")
		os.Exit(1)
	}
	if sentry.IsEnabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry error tracking enabled")
	}
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	replyClient := reply.NewClient(reply.ClientConfig{
		BaseURL:      cfg.ReplyEndpoint,
		ChannelToken: cfg.LineChannelToken,
		Limiter:      ratelimit.New(cfg.GlobalRateRPS, cfg.GlobalRateRPS),
		Metrics:      m,
		Logger:       log,
	})

	eventBus := bus.New()

	lineAdapter := adapter.New(adapter.Config{
		Bus:                 eventBus,
		Client:              replyClient,
		Logger:              log,
		Metrics:             m,
		MinReplyTokenLength: cfg.MinReplyTokenLength,
	})

	// Built-in behavior until a host framework subscribes its own handlers:
	// echo text messages back to the sender.
	registerEchoResponder(eventBus, lineAdapter, log)

	webhookHandler := webhook.NewHandler(webhook.HandlerConfig{
		ChannelSecret:       cfg.LineChannelSecret,
		Adapter:             lineAdapter,
		Metrics:             m,
		Logger:              log,
		MaxEventsPerWebhook: cfg.MaxEventsPerWebhook,
	})

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	if sentry.IsEnabled() {
		router.Use(sentryMiddleware())
	}

	setupRoutes(router, webhookHandler, registry)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: config.WebhookHTTPRead,
		ReadTimeout:       config.WebhookHTTPRead,
		WriteTimeout:      config.WebhookHTTPWrite,
		IdleTimeout:       config.WebhookHTTPIdle,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("HTTP server shutdown error")
		}

		log.Info("Waiting for webhook events to complete...")
		if err := webhookHandler.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("Webhook handler shutdown timeout")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Server exited with error")
		sentry.CaptureException(err)
	}

	if sentry.IsEnabled() {
		sentry.Flush(2 * time.Second)
	}

	log.Info("Server stopped")
}

// registerEchoResponder subscribes a text handler that replies with the
// inbound text verbatim.
func registerEchoResponder(b *bus.Bus, a *adapter.Adapter, log *logger.Logger) {
	_, err := b.Subscribe(event.KindText, func(sourceID, replyToken string, payload event.Payload) {
		text, ok := payload.(event.TextPayload)
		if !ok {
			return
		}

		msg, err := message.NewTextMessage(text.Text)
		if err != nil {
			log.WithError(err).Warn("Echo message rejected")
			return
		}

		if err := a.Respond(context.Background(), replyToken, msg); err != nil {
			log.WithError(err).WithField("source_id", sourceID).Error("Echo reply failed")
		}
	})
	if err != nil {
		log.WithError(err).Error("Failed to register echo responder")
	}
}
