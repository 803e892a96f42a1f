package sentry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDisabledWithoutToken(t *testing.T) {
	t.Parallel()

	err := Initialize(Config{})
	assert.NoError(t, err)
}

func TestInitializeRequiresHost(t *testing.T) {
	t.Parallel()

	err := Initialize(Config{Token: "tok", Host: ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host")
}

func TestFlushWithoutClient(t *testing.T) {
	t.Parallel()

	// Flush on an uninitialized hub returns promptly.
	assert.True(t, Flush(100*time.Millisecond))
}
