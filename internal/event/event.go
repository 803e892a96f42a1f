// Package event decodes LINE webhook envelopes into typed inbound events.
//
// The envelope is heterogeneous per message type, so payloads are modeled
// as a tagged union dispatched on the message "type" discriminator. Known
// kinds decode to typed payloads; anything else is preserved verbatim as
// an unknown payload rather than dropped.
package event

import (
	"encoding/json"
)

// Kind identifies an inbound message kind.
type Kind string

// Known message kinds plus the unknown catch-all.
const (
	KindText     Kind = "text"
	KindSticker  Kind = "sticker"
	KindImage    Kind = "image"
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindLocation Kind = "location"
	KindUnknown  Kind = "unknown"
)

// Kinds returns the six known kinds, the valid bus channel names.
func Kinds() []Kind {
	return []Kind{KindText, KindSticker, KindImage, KindVideo, KindAudio, KindLocation}
}

// Known reports whether k is one of the six known kinds.
func (k Kind) Known() bool {
	switch k {
	case KindText, KindSticker, KindImage, KindVideo, KindAudio, KindLocation:
		return true
	default:
		return false
	}
}

// Payload is the tagged union of inbound message payloads.
type Payload interface {
	PayloadKind() Kind
}

// TextPayload carries a text message.
type TextPayload struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PayloadKind implements Payload.
func (TextPayload) PayloadKind() Kind { return KindText }

// StickerPayload carries a sticker message.
type StickerPayload struct {
	ID        string `json:"id"`
	PackageID string `json:"packageId"`
	StickerID string `json:"stickerId"`
}

// PayloadKind implements Payload.
func (StickerPayload) PayloadKind() Kind { return KindSticker }

// ImagePayload carries an image message. Content URLs are present only
// when the sender attached an external content provider.
type ImagePayload struct {
	ID                 string `json:"id"`
	OriginalContentURL string `json:"originalContentUrl,omitempty"`
	PreviewImageURL    string `json:"previewImageUrl,omitempty"`
}

// PayloadKind implements Payload.
func (ImagePayload) PayloadKind() Kind { return KindImage }

// VideoPayload carries a video message.
type VideoPayload struct {
	ID                 string `json:"id"`
	OriginalContentURL string `json:"originalContentUrl,omitempty"`
	PreviewImageURL    string `json:"previewImageUrl,omitempty"`
}

// PayloadKind implements Payload.
func (VideoPayload) PayloadKind() Kind { return KindVideo }

// AudioPayload carries an audio message. Duration is in milliseconds.
type AudioPayload struct {
	ID                 string `json:"id"`
	OriginalContentURL string `json:"originalContentUrl,omitempty"`
	Duration           int64  `json:"duration,omitempty"`
}

// PayloadKind implements Payload.
func (AudioPayload) PayloadKind() Kind { return KindAudio }

// LocationPayload carries a location message.
type LocationPayload struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PayloadKind implements Payload.
func (LocationPayload) PayloadKind() Kind { return KindLocation }

// UnknownPayload preserves a message of an unrecognized type verbatim.
type UnknownPayload struct {
	Type string
	Raw  json.RawMessage
}

// PayloadKind implements Payload.
func (UnknownPayload) PayloadKind() Kind { return KindUnknown }

// Event is one normalized inbound event: who sent it, the single-use reply
// token it carries, and the decoded message payload. Events are values
// scoped to one webhook processing pass; nothing retains them.
type Event struct {
	Kind       Kind
	SourceID   string
	ReplyToken string
	Timestamp  int64
	Message    Payload
	Raw        json.RawMessage // original message object, verbatim
}
