// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	sourceIDKey  contextKey = "ctxutil.sourceID"
	requestIDKey contextKey = "ctxutil.requestID"
)

// WithSourceID adds a sender source ID to the context.
// The source ID comes from LINE webhook events and identifies the sender
// for the lifetime of one event's processing pass.
func WithSourceID(ctx context.Context, sourceID string) context.Context {
	return context.WithValue(ctx, sourceIDKey, sourceID)
}

// GetSourceID retrieves the source ID from the context.
// Returns the source ID if found, empty string otherwise.
func GetSourceID(ctx context.Context) string {
	if v := ctx.Value(sourceIDKey); v != nil {
		if sourceID, ok := v.(string); ok && sourceID != "" {
			return sourceID
		}
	}
	return ""
}

// WithRequestID adds a request ID to the context for tracing.
// Request ID is generated per webhook request for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID and true if found, empty string and false otherwise.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}

// PreserveTracing creates a detached context that preserves tracing values.
// The new context is independent of the parent's cancellation and deadlines.
//
// This function creates a fresh context.Background() and copies only tracing
// values, avoiding memory leaks from retaining parent context references.
//
// Use for async operations that must outlive the parent context, such as
// webhook event processing that continues after the HTTP 200 is written.
func PreserveTracing(ctx context.Context) context.Context {
	newCtx := context.Background()

	if sourceID := GetSourceID(ctx); sourceID != "" {
		newCtx = WithSourceID(newCtx, sourceID)
	}
	if requestID, ok := GetRequestID(ctx); ok && requestID != "" {
		newCtx = WithRequestID(newCtx, requestID)
	}

	return newCtx
}
