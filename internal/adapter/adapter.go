// Package adapter is the boundary between the LINE side and the host bot
// framework. It fans each decoded event out on the bus, feeds the host's
// generic receive path, and exposes the respond call that turns bot output
// into a reply delivery.
package adapter

import (
	"context"
	"encoding/json"

	"github.com/linehub/line-adapter-go/internal/bus"
	"github.com/linehub/line-adapter-go/internal/event"
	"github.com/linehub/line-adapter-go/internal/logger"
	"github.com/linehub/line-adapter-go/internal/message"
	"github.com/linehub/line-adapter-go/internal/metrics"
	"github.com/linehub/line-adapter-go/internal/reply"
)

// Message is the inbound abstraction handed to the host framework: at
// least the reply token and the raw message, plus the normalized payload.
// It is a value scoped to one event's processing pass.
type Message struct {
	SourceID   string
	ReplyToken string
	Kind       event.Kind
	Payload    event.Payload
	Raw        json.RawMessage
}

// Receiver is the host framework's generic inbound path. Every decoded
// event reaches it, including unknown kinds the bus never carries.
type Receiver interface {
	Receive(ctx context.Context, msg *Message)
}

// ReceiverFunc adapts a function to the Receiver interface.
type ReceiverFunc func(ctx context.Context, msg *Message)

// Receive implements Receiver.
func (f ReceiverFunc) Receive(ctx context.Context, msg *Message) {
	f(ctx, msg)
}

// Adapter wires the bus, the host receiver, and the reply client together.
type Adapter struct {
	bus      *bus.Bus
	receiver Receiver
	client   *reply.Client
	logger   *logger.Logger
	metrics  *metrics.Metrics

	minReplyTokenLength int
}

// Config holds configuration for creating a new Adapter.
type Config struct {
	Bus      *bus.Bus
	Receiver Receiver
	Client   *reply.Client
	Logger   *logger.Logger
	Metrics  *metrics.Metrics

	// MinReplyTokenLength is the shortest token worth a delivery attempt;
	// shorter tokens are skipped with a debug log.
	MinReplyTokenLength int
}

// New creates an adapter. A nil Receiver is allowed; events then flow to
// bus subscribers only.
func New(cfg Config) *Adapter {
	b := cfg.Bus
	if b == nil {
		b = bus.New()
	}
	return &Adapter{
		bus:                 b,
		receiver:            cfg.Receiver,
		client:              cfg.Client,
		logger:              cfg.Logger,
		metrics:             cfg.Metrics,
		minReplyTokenLength: cfg.MinReplyTokenLength,
	}
}

// Bus returns the bus bot scripts subscribe on.
func (a *Adapter) Bus() *bus.Bus {
	return a.bus
}

// HandleEvent pushes one decoded event through the boundary: first the
// named channel (known kinds only), then the generic receive path.
// Subscriber callbacks run synchronously within this call.
func (a *Adapter) HandleEvent(ctx context.Context, ev event.Event) {
	if ev.Kind.Known() {
		a.bus.Emit(ev.Kind, ev.SourceID, ev.ReplyToken, ev.Message)
		if a.metrics != nil {
			a.metrics.RecordBusEmit(string(ev.Kind))
		}
	}

	if a.receiver != nil {
		a.receiver.Receive(ctx, &Message{
			SourceID:   ev.SourceID,
			ReplyToken: ev.ReplyToken,
			Kind:       ev.Kind,
			Payload:    ev.Message,
			Raw:        ev.Raw,
		})
	}
}

// Respond is the host framework's reply call: it sends msgs keyed by the
// inbound event's reply token. Tokens too short to be plausible are
// skipped without error; the token was consumed upstream or never real.
func (a *Adapter) Respond(ctx context.Context, replyToken string, msgs ...message.Message) error {
	if len(replyToken) < a.minReplyTokenLength {
		if a.logger != nil {
			a.logger.WithField("token_length", len(replyToken)).Debug("Implausible reply token, skipping reply")
		}
		return nil
	}
	return a.client.Reply(ctx, replyToken, msgs)
}
