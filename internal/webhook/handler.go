// Package webhook provides the LINE webhook HTTP endpoint: signature
// verification, envelope decoding, and asynchronous per-event dispatch
// into the adapter.
package webhook

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/linehub/line-adapter-go/internal/adapter"
	"github.com/linehub/line-adapter-go/internal/ctxutil"
	"github.com/linehub/line-adapter-go/internal/errors"
	"github.com/linehub/line-adapter-go/internal/event"
	"github.com/linehub/line-adapter-go/internal/logger"
	"github.com/linehub/line-adapter-go/internal/metrics"
	"github.com/linehub/line-adapter-go/internal/signature"
)

// Handler handles LINE webhook requests.
type Handler struct {
	channelSecret string
	adapter       *adapter.Adapter
	metrics       *metrics.Metrics
	logger        *logger.Logger
	wg            sync.WaitGroup // WaitGroup for async event processing

	maxEventsPerWebhook int
}

// HandlerConfig holds configuration for creating a new Handler.
type HandlerConfig struct {
	ChannelSecret string
	Adapter       *adapter.Adapter
	Metrics       *metrics.Metrics
	Logger        *logger.Logger

	// MaxEventsPerWebhook caps how many events of one delivery are
	// processed; the surplus is dropped with a warning.
	MaxEventsPerWebhook int
}

// NewHandler creates a new webhook handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		channelSecret:       cfg.ChannelSecret,
		adapter:             cfg.Adapter,
		metrics:             cfg.Metrics,
		logger:              cfg.Logger,
		maxEventsPerWebhook: cfg.MaxEventsPerWebhook,
	}
}

// Handle is the Gin handler for the webhook endpoint. Verification and
// decoding happen synchronously so the platform sees 403/400 for bad
// deliveries; accepted events are processed after the 200 is written.
func (h *Handler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logger.WithError(err).Error("Failed to read webhook body")
		c.Status(http.StatusInternalServerError)
		return
	}

	if !signature.Verify(body, c.GetHeader(signature.Header), h.channelSecret) {
		h.logger.WithError(errors.ErrInvalidSignature).Warn("Webhook rejected")
		h.metrics.SignatureFailuresTotal.Inc()
		c.Status(http.StatusForbidden)
		return
	}

	events, err := event.Decode(body)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to decode webhook body")
		h.metrics.DecodeFailuresTotal.Inc()
		c.Status(http.StatusBadRequest)
		return
	}

	// 200 before processing (LINE requirement)
	c.Status(http.StatusOK)

	start := time.Now()
	h.metrics.RecordWebhook("batch", "received", 0)

	if len(events) > h.maxEventsPerWebhook {
		h.logger.WithField("event_count", len(events)).
			WithField("limit", h.maxEventsPerWebhook).
			Warn("Too many events in webhook batch; dropping surplus")
		events = events[:h.maxEventsPerWebhook]
	}

	// Detach from the request context before the response completes.
	ctx := ctxutil.PreserveTracing(c.Request.Context())

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				h.logger.WithField("panic", r).Error("Panic in async event processing")
			}
		}()

		for _, ev := range events {
			h.processEvent(ctx, ev, start)
		}
	}()
}

// processEvent pushes a single decoded event through the adapter.
func (h *Handler) processEvent(ctx context.Context, ev event.Event, webhookStart time.Time) {
	eventStart := time.Now()

	if ev.SourceID != "" {
		ctx = ctxutil.WithSourceID(ctx, ev.SourceID)
	}

	log := h.logger.WithField("event_kind", string(ev.Kind))
	if ev.SourceID != "" {
		log = log.WithField("source_id", ev.SourceID)
	}

	h.adapter.HandleEvent(ctx, ev)

	eventDurationMs := time.Since(eventStart).Milliseconds()
	h.metrics.RecordWebhook(string(ev.Kind), "success", float64(eventDurationMs)/1000.0)

	log.WithField("event_duration_ms", eventDurationMs).
		WithField("batch_duration_ms", time.Since(webhookStart).Milliseconds()).
		Info("Event processed")
}

// Shutdown waits for all async event processing to complete.
// It returns an error if the context is canceled before completion.
func (h *Handler) Shutdown(ctx context.Context) error {
	c := make(chan struct{})
	go func() {
		defer close(c)
		h.wg.Wait()
	}()

	select {
	case <-c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
