package message

import (
	"encoding/json"
	"fmt"

	"github.com/linehub/line-adapter-go/internal/config"
	"github.com/linehub/line-adapter-go/internal/errors"
)

// TemplateMessage is a buttons-style template: a titled card with up to
// four selectable actions, rendered in order. Built only via TemplateBuilder.
type TemplateMessage struct {
	altText string
	body    Buttons
	actions []Action
}

// Type implements Message.
func (m *TemplateMessage) Type() string { return "template" }

// AltText returns the notification fallback text.
func (m *TemplateMessage) AltText() string { return m.altText }

// Actions returns a copy of the ordered action list.
func (m *TemplateMessage) Actions() []Action {
	out := make([]Action, len(m.actions))
	copy(out, m.actions)
	return out
}

// MarshalJSON emits {type, altText, template:{type:"buttons", ...}}.
// Optional template fields are omitted when empty.
func (m *TemplateMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string      `json:"type"`
		AltText  string      `json:"altText"`
		Template buttonsWire `json:"template"`
	}{
		Type:    m.Type(),
		AltText: m.altText,
		Template: buttonsWire{
			Type:              "buttons",
			ThumbnailImageURL: m.body.ThumbnailImageURL,
			Title:             m.body.Title,
			Text:              m.body.Text,
			Actions:           m.actions,
		},
	})
}

type buttonsWire struct {
	Type              string   `json:"type"`
	ThumbnailImageURL string   `json:"thumbnailImageUrl,omitempty"`
	Title             string   `json:"title,omitempty"`
	Text              string   `json:"text"`
	Actions           []Action `json:"actions"`
}

// Buttons holds the fixed fields of a buttons template body.
// Text is required; Title and ThumbnailImageURL are optional.
type Buttons struct {
	ThumbnailImageURL string
	Title             string
	Text              string
}

// builderState tracks the staged construction protocol.
type builderState int

const (
	stateAltText builderState = iota // alt text recorded, awaiting body
	stateBody                        // body recorded, accepting actions
	stateBuilt                       // build succeeded, builder exhausted
)

func (s builderState) String() string {
	switch s {
	case stateAltText:
		return "alt-text"
	case stateBody:
		return "body"
	case stateBuilt:
		return "built"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TemplateBuilder assembles a TemplateMessage through a fixed stage order:
// NewTemplate -> Buttons -> Action (1..4 times) -> Build.
//
// Errors are sticky: the first failure rides the chain and is returned by
// Build, so call sites keep the fluent shape. A builder is single-use and
// must not be shared across goroutines or reused for a second message.
type TemplateBuilder struct {
	state   builderState
	altText string
	body    Buttons
	actions []Action
	err     error
}

// NewTemplate starts a builder with the notification alt text.
func NewTemplate(altText string) *TemplateBuilder {
	b := &TemplateBuilder{state: stateAltText, altText: altText}
	if altText == "" {
		b.err = errors.NewValidationError("altText", "must not be empty")
	} else if len([]rune(altText)) > config.MaxAltTextLength {
		b.err = errors.NewValidationError("altText", "exceeds maximum length")
	}
	return b
}

// Buttons records the template's fixed fields. It must be called exactly
// once, before any Action.
func (b *TemplateBuilder) Buttons(body Buttons) *TemplateBuilder {
	if b.err != nil {
		return b
	}
	if b.state != stateAltText {
		b.err = errors.NewBuilderStateError(b.state.String(), "buttons", "body already set")
		return b
	}
	if body.Text == "" {
		b.err = errors.NewValidationError("text", "must not be empty")
		return b
	}

	b.body = body
	b.state = stateBody
	return b
}

// Action appends one action in order. It fails if called before Buttons,
// if the fields do not match the declared kind, or if a fifth action
// would exceed the platform limit.
func (b *TemplateBuilder) Action(kind ActionKind, fields ActionFields) *TemplateBuilder {
	if b.err != nil {
		return b
	}
	if b.state != stateBody {
		b.err = errors.NewBuilderStateError(b.state.String(), "action", "buttons body required before actions")
		return b
	}
	if len(b.actions) >= config.MaxTemplateActions {
		b.err = errors.NewBuilderStateError(b.state.String(), "action",
			fmt.Sprintf("at most %d actions allowed", config.MaxTemplateActions))
		return b
	}

	action, err := NewAction(kind, fields)
	if err != nil {
		b.err = err
		return b
	}

	b.actions = append(b.actions, action)
	return b
}

// Build finalizes the message. It fails when no body was set, when no
// action was added, or when Build already succeeded once; a consumed
// builder fails fast rather than re-returning a stale message.
func (b *TemplateBuilder) Build() (*TemplateMessage, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.state == stateBuilt {
		return nil, errors.NewBuilderStateError(b.state.String(), "build", "build already called")
	}
	if b.state != stateBody {
		return nil, errors.NewBuilderStateError(b.state.String(), "build", "buttons body required before build")
	}
	if len(b.actions) == 0 {
		return nil, errors.NewBuilderStateError(b.state.String(), "build", "at least one action required")
	}

	msg := &TemplateMessage{
		altText: b.altText,
		body:    b.body,
		actions: b.actions,
	}
	b.state = stateBuilt
	b.actions = nil
	return msg, nil
}
