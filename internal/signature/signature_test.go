package signature

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	body := []byte(`{"events":[]}`)
	secret := "channel-secret"

	header := Sign(body, secret)
	assert.True(t, Verify(body, header, secret))
}

func TestVerifyRejectsTamperedBody(t *testing.T) {
	t.Parallel()

	body := []byte(`{"events":[{"type":"message"}]}`)
	secret := "channel-secret"
	header := Sign(body, secret)

	// Flip one byte at every position; each must invalidate the signature.
	for i := range body {
		tampered := make([]byte, len(body))
		copy(tampered, body)
		tampered[i] ^= 0x01
		assert.False(t, Verify(tampered, header, secret), "byte %d", i)
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	t.Parallel()

	body := []byte(`{"events":[]}`)
	secret := "channel-secret"
	raw, err := base64.StdEncoding.DecodeString(Sign(body, secret))
	require.NoError(t, err)

	for i := range raw {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[i] ^= 0x01
		header := base64.StdEncoding.EncodeToString(tampered)
		assert.False(t, Verify(body, header, secret), "byte %d", i)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	body := []byte(`{"events":[]}`)
	header := Sign(body, "secret-a")
	assert.False(t, Verify(body, header, "secret-b"))
}

func TestVerifyMalformedInput(t *testing.T) {
	t.Parallel()

	body := []byte(`{"events":[]}`)
	secret := "channel-secret"

	assert.False(t, Verify(nil, Sign(body, secret), secret))
	assert.False(t, Verify(body, "", secret))
	assert.False(t, Verify(body, "not base64!!", secret))
	assert.False(t, Verify(body, Sign(body, secret), ""))
}
