// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Core (Required)
	EnvLineChannelAccessToken = "LINEHUB_LINE_CHANNEL_ACCESS_TOKEN"
	EnvLineChannelSecret      = "LINEHUB_LINE_CHANNEL_SECRET"

	// Server
	EnvPort            = "LINEHUB_PORT"
	EnvLogLevel        = "LINEHUB_LOG_LEVEL"
	EnvShutdownTimeout = "LINEHUB_SHUTDOWN_TIMEOUT"

	// Reply delivery
	EnvReplyEndpoint = "LINEHUB_REPLY_ENDPOINT"
	EnvGlobalRateRPS = "LINEHUB_GLOBAL_RATE_RPS"

	// Webhook
	EnvMaxEventsPerWebhook = "LINEHUB_MAX_EVENTS_PER_WEBHOOK"
	EnvMinReplyTokenLength = "LINEHUB_MIN_REPLY_TOKEN_LENGTH"

	// Sentry Feature
	EnvSentryToken       = "LINEHUB_SENTRY_TOKEN"
	EnvSentryHost        = "LINEHUB_SENTRY_HOST"
	EnvSentryEnvironment = "LINEHUB_SENTRY_ENVIRONMENT"

	// Better Stack Feature
	EnvBetterStackToken    = "LINEHUB_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "LINEHUB_BETTERSTACK_ENDPOINT"
)
