package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("unexpected end of JSON input")
	err := NewDecodeError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "decode webhook envelope")
}

func TestValidationErrorNamesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("packageId", "must not be empty")
	assert.Contains(t, err.Error(), "packageId")
	assert.Contains(t, err.Error(), "must not be empty")
}

func TestBuilderStateError(t *testing.T) {
	t.Parallel()

	err := NewBuilderStateError("built", "build", "build already called")
	assert.Contains(t, err.Error(), "build")
	assert.Contains(t, err.Error(), "built")
}

func TestBatchSizeError(t *testing.T) {
	t.Parallel()

	err := NewBatchSizeError(6)
	assert.Equal(t, 6, err.Count)
	assert.Contains(t, err.Error(), "6")

	var batchErr *BatchSizeError
	require.ErrorAs(t, error(err), &batchErr)
}

func TestDeliveryError(t *testing.T) {
	t.Parallel()

	t.Run("http failure", func(t *testing.T) {
		t.Parallel()
		err := NewDeliveryError(400, `{"message":"Invalid reply token"}`)
		assert.Contains(t, err.Error(), "status=400")
		assert.NoError(t, err.Unwrap())
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()
		cause := stderrors.New("connection refused")
		err := WrapDeliveryError(cause)
		assert.ErrorIs(t, err, cause)
	})
}
