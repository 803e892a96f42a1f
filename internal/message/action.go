package message

import (
	"encoding/json"

	"github.com/linehub/line-adapter-go/internal/config"
	"github.com/linehub/line-adapter-go/internal/errors"
)

// ActionKind identifies a template action variant.
type ActionKind string

// Supported action kinds.
const (
	ActionPostback ActionKind = "postback"
	ActionURI      ActionKind = "uri"
	ActionMessage  ActionKind = "message"
)

// ActionFields holds the candidate fields for an action. Which fields are
// required, and which must be absent, depends on the declared kind.
type ActionFields struct {
	Label string
	Data  string // postback only
	URI   string // uri only
	Text  string // message only
}

// Action is one selectable entry in a template. Constructed only through
// NewAction, which enforces the field set for the declared kind.
type Action struct {
	kind  ActionKind
	label string
	data  string
	uri   string
	text  string
}

// NewAction validates fields against kind and returns the action.
// The label is always required. A field belonging to a different kind is
// rejected rather than silently dropped.
func NewAction(kind ActionKind, fields ActionFields) (Action, error) {
	if fields.Label == "" {
		return Action{}, errors.NewValidationError("label", "must not be empty")
	}

	switch kind {
	case ActionPostback:
		if fields.Data == "" {
			return Action{}, errors.NewValidationError("data", "required for postback action")
		}
		if len(fields.Data) > config.MaxPostbackData {
			return Action{}, errors.NewValidationError("data", "exceeds maximum length")
		}
		if fields.URI != "" || fields.Text != "" {
			return Action{}, errors.NewValidationError("fields", "postback action accepts label and data only")
		}
	case ActionURI:
		if fields.URI == "" {
			return Action{}, errors.NewValidationError("uri", "required for uri action")
		}
		if fields.Data != "" || fields.Text != "" {
			return Action{}, errors.NewValidationError("fields", "uri action accepts label and uri only")
		}
	case ActionMessage:
		if fields.Text == "" {
			return Action{}, errors.NewValidationError("text", "required for message action")
		}
		if fields.Data != "" || fields.URI != "" {
			return Action{}, errors.NewValidationError("fields", "message action accepts label and text only")
		}
	default:
		return Action{}, errors.NewValidationError("type", "unsupported action type: "+string(kind))
	}

	return Action{
		kind:  kind,
		label: fields.Label,
		data:  fields.Data,
		uri:   fields.URI,
		text:  fields.Text,
	}, nil
}

// Kind returns the action variant.
func (a Action) Kind() ActionKind { return a.kind }

// MarshalJSON emits exactly the field set for the action's kind.
func (a Action) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case ActionPostback:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Label string `json:"label"`
			Data  string `json:"data"`
		}{Type: string(a.kind), Label: a.label, Data: a.data})
	case ActionURI:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Label string `json:"label"`
			URI   string `json:"uri"`
		}{Type: string(a.kind), Label: a.label, URI: a.uri})
	case ActionMessage:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Label string `json:"label"`
			Text  string `json:"text"`
		}{Type: string(a.kind), Label: a.label, Text: a.text})
	default:
		return nil, errors.NewValidationError("type", "unsupported action type: "+string(a.kind))
	}
}
