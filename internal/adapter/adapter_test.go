package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linehub/line-adapter-go/internal/event"
	"github.com/linehub/line-adapter-go/internal/message"
	"github.com/linehub/line-adapter-go/internal/reply"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *reply.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return reply.NewClient(reply.ClientConfig{
		BaseURL:      srv.URL,
		ChannelToken: "test-token",
	})
}

func TestHandleEventEmitsOnNamedChannel(t *testing.T) {
	a := New(Config{})

	var gotSource, gotToken string
	var gotPayload event.Payload
	_, err := a.Bus().Subscribe(event.KindText, func(sourceID, replyToken string, payload event.Payload) {
		gotSource = sourceID
		gotToken = replyToken
		gotPayload = payload
	})
	require.NoError(t, err)

	a.HandleEvent(context.Background(), event.Event{
		Kind:       event.KindText,
		SourceID:   "U1234",
		ReplyToken: "reply-token-000001",
		Message:    event.TextPayload{Text: "hello"},
	})

	assert.Equal(t, "U1234", gotSource)
	assert.Equal(t, "reply-token-000001", gotToken)
	require.IsType(t, event.TextPayload{}, gotPayload)
	assert.Equal(t, "hello", gotPayload.(event.TextPayload).Text)
}

func TestHandleEventFeedsReceiver(t *testing.T) {
	var got *Message
	a := New(Config{
		Receiver: ReceiverFunc(func(_ context.Context, msg *Message) {
			got = msg
		}),
	})

	raw := json.RawMessage(`{"type":"follow"}`)
	a.HandleEvent(context.Background(), event.Event{
		Kind:       event.KindUnknown,
		SourceID:   "U9",
		ReplyToken: "reply-token-000002",
		Message:    event.UnknownPayload{Type: "follow", Raw: raw},
		Raw:        raw,
	})

	require.NotNil(t, got)
	assert.Equal(t, "U9", got.SourceID)
	assert.Equal(t, event.KindUnknown, got.Kind)
	assert.JSONEq(t, `{"type":"follow"}`, string(got.Raw))
}

func TestHandleEventUnknownKindSkipsBus(t *testing.T) {
	a := New(Config{})

	fired := 0
	for _, kind := range event.Kinds() {
		_, err := a.Bus().Subscribe(kind, func(_, _ string, _ event.Payload) {
			fired++
		})
		require.NoError(t, err)
	}

	a.HandleEvent(context.Background(), event.Event{
		Kind:    event.KindUnknown,
		Message: event.UnknownPayload{Type: "join"},
	})

	assert.Zero(t, fired)
}

func TestHandleEventReachesReceiverEvenWithSubscribers(t *testing.T) {
	busHits, receiverHits := 0, 0
	a := New(Config{
		Receiver: ReceiverFunc(func(_ context.Context, _ *Message) {
			receiverHits++
		}),
	})
	_, err := a.Bus().Subscribe(event.KindSticker, func(_, _ string, _ event.Payload) {
		busHits++
	})
	require.NoError(t, err)

	a.HandleEvent(context.Background(), event.Event{
		Kind:    event.KindSticker,
		Message: event.StickerPayload{PackageID: "1", StickerID: "2"},
	})

	assert.Equal(t, 1, busHits)
	assert.Equal(t, 1, receiverHits)
}

func TestRespondDeliversReply(t *testing.T) {
	var gotPath string
	var gotBody []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})

	a := New(Config{Client: client, MinReplyTokenLength: 10})

	msg, err := message.NewTextMessage("pong")
	require.NoError(t, err)

	require.NoError(t, a.Respond(context.Background(), "reply-token-000003", msg))
	assert.Equal(t, "/v2/bot/message/reply", gotPath)
	assert.JSONEq(t, `{"replyToken":"reply-token-000003","messages":[{"type":"text","text":"pong"}]}`, string(gotBody))
}

func TestRespondSkipsImplausibleToken(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	a := New(Config{Client: client, MinReplyTokenLength: 10})

	msg, err := message.NewTextMessage("pong")
	require.NoError(t, err)

	require.NoError(t, a.Respond(context.Background(), "short", msg))
	assert.False(t, called)
}

func TestRespondPropagatesClientErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	a := New(Config{Client: client, MinReplyTokenLength: 10})

	msg, err := message.NewTextMessage("pong")
	require.NoError(t, err)

	assert.Error(t, a.Respond(context.Background(), "reply-token-000004", msg))
}
