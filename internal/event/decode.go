package event

import (
	"encoding/json"

	"github.com/linehub/line-adapter-go/internal/errors"
)

// Wire shapes of the webhook envelope. Only the fields the adapter
// normalizes are named; everything else rides along in Raw.
type envelope struct {
	Destination string          `json:"destination"`
	Events      []envelopeEvent `json:"events"`
}

type envelopeEvent struct {
	Type       string          `json:"type"`
	ReplyToken string          `json:"replyToken"`
	Timestamp  int64           `json:"timestamp"`
	Source     envelopeSource  `json:"source"`
	Message    json.RawMessage `json:"message"`
}

type envelopeSource struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
	RoomID  string `json:"roomId"`
}

// sourceID identifies the sender: the user when known, otherwise the
// group or room the message arrived from.
func (s envelopeSource) sourceID() string {
	switch {
	case s.UserID != "":
		return s.UserID
	case s.GroupID != "":
		return s.GroupID
	default:
		return s.RoomID
	}
}

// Decode parses a webhook envelope body into events, preserving the
// original array order. Decoding well-formed JSON is total: every element
// yields exactly one Event, and a message of an unrecognized type is
// tagged KindUnknown with its payload kept verbatim. Malformed JSON
// returns a *errors.DecodeError and zero events.
func Decode(body []byte) ([]Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.NewDecodeError(err)
	}

	events := make([]Event, 0, len(env.Events))
	for _, we := range env.Events {
		ev := Event{
			SourceID:   we.Source.sourceID(),
			ReplyToken: we.ReplyToken,
			Timestamp:  we.Timestamp,
			Raw:        we.Message,
		}

		if we.Type != "message" {
			// Non-message events (follow, postback, ...) pass through the
			// generic receive path only.
			ev.Kind = KindUnknown
			ev.Message = UnknownPayload{Type: we.Type, Raw: we.Message}
			events = append(events, ev)
			continue
		}

		kind, payload := decodeMessage(we.Message)
		ev.Kind = kind
		ev.Message = payload
		events = append(events, ev)
	}

	return events, nil
}

// decodeMessage classifies one message object. The envelope already parsed
// as JSON, so per-message unmarshalling cannot fail; a type outside the
// known six falls through to UnknownPayload.
func decodeMessage(raw json.RawMessage) (Kind, Payload) {
	var disc struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal(raw, &disc)

	switch Kind(disc.Type) {
	case KindText:
		var p TextPayload
		_ = json.Unmarshal(raw, &p)
		return KindText, p
	case KindSticker:
		var p StickerPayload
		_ = json.Unmarshal(raw, &p)
		return KindSticker, p
	case KindImage:
		var p ImagePayload
		_ = json.Unmarshal(raw, &p)
		return KindImage, p
	case KindVideo:
		var p VideoPayload
		_ = json.Unmarshal(raw, &p)
		return KindVideo, p
	case KindAudio:
		var p AudioPayload
		_ = json.Unmarshal(raw, &p)
		return KindAudio, p
	case KindLocation:
		var p LocationPayload
		_ = json.Unmarshal(raw, &p)
		return KindLocation, p
	default:
		return KindUnknown, UnknownPayload{Type: disc.Type, Raw: raw}
	}
}
