// Package message models the outbound LINE message variants and their
// canonical wire representations, plus the buttons-template builder.
//
// Each variant is immutable once constructed and owns only primitive
// fields. Constructors validate required fields up front; marshalling
// emits exactly the canonical field set for the variant, nothing more.
package message

import (
	"encoding/json"

	"github.com/linehub/line-adapter-go/internal/config"
	"github.com/linehub/line-adapter-go/internal/errors"
)

// Message is one sendable message. The model knows nothing of reply
// tokens or batching; it produces standalone wire objects.
type Message interface {
	json.Marshaler

	// Type returns the wire type discriminator, e.g. "text", "sticker".
	Type() string
}

// TextMessage is a plain text message.
type TextMessage struct {
	text string
}

// NewTextMessage creates a text message.
func NewTextMessage(text string) (*TextMessage, error) {
	if text == "" {
		return nil, errors.NewValidationError("text", "must not be empty")
	}
	if len([]rune(text)) > config.MaxTextMessageLength {
		return nil, errors.NewValidationError("text", "exceeds maximum length")
	}
	return &TextMessage{text: text}, nil
}

// Type implements Message.
func (m *TextMessage) Type() string { return "text" }

// Text returns the message content.
func (m *TextMessage) Text() string { return m.text }

// MarshalJSON emits {type, text}.
func (m *TextMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{Type: m.Type(), Text: m.text})
}

// StickerMessage references a sticker by package and sticker ID.
type StickerMessage struct {
	packageID string
	stickerID string
}

// NewStickerMessage creates a sticker message.
func NewStickerMessage(packageID, stickerID string) (*StickerMessage, error) {
	if packageID == "" {
		return nil, errors.NewValidationError("packageId", "must not be empty")
	}
	if stickerID == "" {
		return nil, errors.NewValidationError("stickerId", "must not be empty")
	}
	return &StickerMessage{packageID: packageID, stickerID: stickerID}, nil
}

// Type implements Message.
func (m *StickerMessage) Type() string { return "sticker" }

// MarshalJSON emits {type, packageId, stickerId}.
func (m *StickerMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string `json:"type"`
		PackageID string `json:"packageId"`
		StickerID string `json:"stickerId"`
	}{Type: m.Type(), PackageID: m.packageID, StickerID: m.stickerID})
}

// LocationMessage is a titled map pin.
type LocationMessage struct {
	title     string
	address   string
	latitude  float64
	longitude float64
}

// NewLocationMessage creates a location message.
func NewLocationMessage(title, address string, latitude, longitude float64) (*LocationMessage, error) {
	if title == "" {
		return nil, errors.NewValidationError("title", "must not be empty")
	}
	if address == "" {
		return nil, errors.NewValidationError("address", "must not be empty")
	}
	return &LocationMessage{
		title:     title,
		address:   address,
		latitude:  latitude,
		longitude: longitude,
	}, nil
}

// Type implements Message.
func (m *LocationMessage) Type() string { return "location" }

// MarshalJSON emits {type, title, address, latitude, longitude}.
func (m *LocationMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string  `json:"type"`
		Title     string  `json:"title"`
		Address   string  `json:"address"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}{Type: m.Type(), Title: m.title, Address: m.address, Latitude: m.latitude, Longitude: m.longitude})
}

// ImageMessage carries a full-size content URL and a preview URL.
// LINE requires both to be HTTPS.
type ImageMessage struct {
	originalContentURL string
	previewImageURL    string
}

// NewImageMessage creates an image message.
func NewImageMessage(originalContentURL, previewImageURL string) (*ImageMessage, error) {
	if originalContentURL == "" {
		return nil, errors.NewValidationError("originalContentUrl", "must not be empty")
	}
	if previewImageURL == "" {
		return nil, errors.NewValidationError("previewImageUrl", "must not be empty")
	}
	return &ImageMessage{originalContentURL: originalContentURL, previewImageURL: previewImageURL}, nil
}

// Type implements Message.
func (m *ImageMessage) Type() string { return "image" }

// MarshalJSON emits {type, originalContentUrl, previewImageUrl}.
func (m *ImageMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type               string `json:"type"`
		OriginalContentURL string `json:"originalContentUrl"`
		PreviewImageURL    string `json:"previewImageUrl"`
	}{Type: m.Type(), OriginalContentURL: m.originalContentURL, PreviewImageURL: m.previewImageURL})
}

// VideoMessage carries a video content URL and a preview image URL.
type VideoMessage struct {
	originalContentURL string
	previewImageURL    string
}

// NewVideoMessage creates a video message.
func NewVideoMessage(originalContentURL, previewImageURL string) (*VideoMessage, error) {
	if originalContentURL == "" {
		return nil, errors.NewValidationError("originalContentUrl", "must not be empty")
	}
	if previewImageURL == "" {
		return nil, errors.NewValidationError("previewImageUrl", "must not be empty")
	}
	return &VideoMessage{originalContentURL: originalContentURL, previewImageURL: previewImageURL}, nil
}

// Type implements Message.
func (m *VideoMessage) Type() string { return "video" }

// MarshalJSON emits {type, originalContentUrl, previewImageUrl}.
func (m *VideoMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type               string `json:"type"`
		OriginalContentURL string `json:"originalContentUrl"`
		PreviewImageURL    string `json:"previewImageUrl"`
	}{Type: m.Type(), OriginalContentURL: m.originalContentURL, PreviewImageURL: m.previewImageURL})
}

// AudioMessage carries an audio content URL and its duration in milliseconds.
type AudioMessage struct {
	originalContentURL string
	duration           int64
}

// NewAudioMessage creates an audio message.
func NewAudioMessage(originalContentURL string, duration int64) (*AudioMessage, error) {
	if originalContentURL == "" {
		return nil, errors.NewValidationError("originalContentUrl", "must not be empty")
	}
	if duration <= 0 {
		return nil, errors.NewValidationError("duration", "must be positive")
	}
	return &AudioMessage{originalContentURL: originalContentURL, duration: duration}, nil
}

// Type implements Message.
func (m *AudioMessage) Type() string { return "audio" }

// MarshalJSON emits {type, originalContentUrl, duration}.
func (m *AudioMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type               string `json:"type"`
		OriginalContentURL string `json:"originalContentUrl"`
		Duration           int64  `json:"duration"`
	}{Type: m.Type(), OriginalContentURL: m.originalContentURL, Duration: m.duration})
}
