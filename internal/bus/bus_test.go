package bus

import (
	"sync"
	"testing"

	"github.com/linehub/line-adapter-go/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitDeliversToSubscriber(t *testing.T) {
	t.Parallel()

	b := New()

	var gotSource, gotToken string
	var gotPayload event.Payload
	_, err := b.Subscribe(event.KindText, func(sourceID, replyToken string, payload event.Payload) {
		gotSource = sourceID
		gotToken = replyToken
		gotPayload = payload
	})
	require.NoError(t, err)

	payload := event.TextPayload{ID: "325708", Text: "Hello, world"}
	b.Emit(event.KindText, "U1", "tok", payload)

	assert.Equal(t, "U1", gotSource)
	assert.Equal(t, "tok", gotToken)
	assert.Equal(t, payload, gotPayload)
}

func TestEmitOnlyMatchingChannel(t *testing.T) {
	t.Parallel()

	b := New()
	textCalls, stickerCalls := 0, 0
	_, err := b.Subscribe(event.KindText, func(string, string, event.Payload) { textCalls++ })
	require.NoError(t, err)
	_, err = b.Subscribe(event.KindSticker, func(string, string, event.Payload) { stickerCalls++ })
	require.NoError(t, err)

	b.Emit(event.KindSticker, "U1", "tok", event.StickerPayload{PackageID: "1", StickerID: "1"})

	assert.Zero(t, textCalls)
	assert.Equal(t, 1, stickerCalls)
}

func TestSubscribersNotifiedInRegistrationOrder(t *testing.T) {
	t.Parallel()

	b := New()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		_, err := b.Subscribe(event.KindText, func(string, string, event.Payload) {
			order = append(order, i)
		})
		require.NoError(t, err)
	}

	b.Emit(event.KindText, "U1", "tok", event.TextPayload{Text: "hi"})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestSubscribeRejectsUnknownChannel(t *testing.T) {
	t.Parallel()

	b := New()
	_, err := b.Subscribe(event.KindUnknown, func(string, string, event.Payload) {})
	assert.Error(t, err)

	_, err = b.Subscribe(event.Kind("follow"), func(string, string, event.Payload) {})
	assert.Error(t, err)

	_, err = b.Subscribe(event.KindText, nil)
	assert.Error(t, err)
}

func TestEmitUnknownKindIsNoOp(t *testing.T) {
	t.Parallel()

	b := New()
	calls := 0
	_, err := b.Subscribe(event.KindText, func(string, string, event.Payload) { calls++ })
	require.NoError(t, err)

	b.Emit(event.KindUnknown, "U1", "tok", event.UnknownPayload{Type: "file"})
	assert.Zero(t, calls)
}

func TestUnsubscribe(t *testing.T) {
	t.Parallel()

	b := New()
	calls := 0
	unsubscribe, err := b.Subscribe(event.KindText, func(string, string, event.Payload) { calls++ })
	require.NoError(t, err)
	require.Equal(t, 1, b.SubscriberCount(event.KindText))

	b.Emit(event.KindText, "U1", "tok", event.TextPayload{Text: "hi"})
	unsubscribe()
	b.Emit(event.KindText, "U1", "tok", event.TextPayload{Text: "hi"})

	assert.Equal(t, 1, calls)
	assert.Zero(t, b.SubscriberCount(event.KindText))

	// Unsubscribing twice is harmless.
	unsubscribe()
}

func TestHandlerMayUnsubscribeDuringEmit(t *testing.T) {
	t.Parallel()

	b := New()
	var unsubscribe func()
	calls := 0
	unsubscribe, err := b.Subscribe(event.KindText, func(string, string, event.Payload) {
		calls++
		unsubscribe()
	})
	require.NoError(t, err)

	b.Emit(event.KindText, "U1", "tok", event.TextPayload{Text: "hi"})
	b.Emit(event.KindText, "U1", "tok", event.TextPayload{Text: "hi"})

	assert.Equal(t, 1, calls)
}

func TestNoReplayForLateSubscribers(t *testing.T) {
	t.Parallel()

	b := New()
	b.Emit(event.KindText, "U1", "tok", event.TextPayload{Text: "early"})

	calls := 0
	_, err := b.Subscribe(event.KindText, func(string, string, event.Payload) { calls++ })
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestConcurrentSubscribeAndEmit(t *testing.T) {
	t.Parallel()

	b := New()
	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 50; n++ {
				unsub, err := b.Subscribe(event.KindLocation, func(string, string, event.Payload) {})
				require.NoError(t, err)
				b.Emit(event.KindLocation, "U1", "tok", event.LocationPayload{Title: "t", Address: "a"})
				unsub()
			}
		}()
	}
	wg.Wait()
	assert.Zero(t, b.SubscriberCount(event.KindLocation))
}
