package config

import "time"

// HTTP server timeouts for the webhook endpoint.
//
// LINE expects the 200 within a few seconds, so reads are short; the write
// timeout leaves room for slow metric scrapes over the same server.
const (
	// WebhookHTTPRead is the HTTP server read timeout for webhook requests.
	WebhookHTTPRead = 10 * time.Second

	// WebhookHTTPWrite is the HTTP server write timeout.
	WebhookHTTPWrite = 65 * time.Second

	// WebhookHTTPIdle is the HTTP server idle timeout for keep-alive connections.
	WebhookHTTPIdle = 120 * time.Second
)
