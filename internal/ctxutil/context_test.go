package ctxutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetSourceID(ctx))

	ctx = WithSourceID(ctx, "U206d25c2ea6bd87c17655609a1c37cb8")
	assert.Equal(t, "U206d25c2ea6bd87c17655609a1c37cb8", GetSourceID(ctx))
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, ok := GetRequestID(ctx)
	assert.False(t, ok)

	ctx = WithRequestID(ctx, "req-123")
	requestID, ok := GetRequestID(ctx)
	require.True(t, ok)
	assert.Equal(t, "req-123", requestID)
}

func TestPreserveTracingDetachesCancellation(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	parent = WithSourceID(parent, "U1")
	parent = WithRequestID(parent, "req-1")

	detached := PreserveTracing(parent)
	cancel()

	assert.NoError(t, detached.Err())
	assert.Equal(t, "U1", GetSourceID(detached))
	requestID, ok := GetRequestID(detached)
	require.True(t, ok)
	assert.Equal(t, "req-1", requestID)

	_, hasDeadline := detached.Deadline()
	assert.False(t, hasDeadline)
}
