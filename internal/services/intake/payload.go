package intake

import (
	"bytes"
	"encoding/json"
	"strings"
)

type Setting struct {
	Label    string          `json:"label"`
	Type     string          `json:"type,omitempty"`
	Required bool            `json:"required,omitempty"`
	Default  json.RawMessage `json:"default,omitempty"`
}

// Value renders the default as a trimmed string. Null and absent give "".
func (s Setting) Value() string {
	raw := bytes.TrimSpace(s.Default)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.TrimSpace(str)
	}
	return string(raw)
}

type Payload struct {
	ChannelID string    `json:"channel_id,omitempty"`
	ReturnURL string    `json:"return_url,omitempty"`
	Message   string    `json:"message,omitempty"`
	Settings  []Setting `json:"settings"`
}

// Setting finds a setting by exact label first, then case-insensitively.
func (p Payload) Setting(label string) (string, bool) {
	for _, s := range p.Settings {
		if s.Label == label {
			return s.Value(), true
		}
	}
	for _, s := range p.Settings {
		if strings.EqualFold(strings.TrimSpace(s.Label), label) {
			return s.Value(), true
		}
	}
	return "", false
}

func Decode(raw []byte) (Payload, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Payload{}, ErrMissingBody
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Payload{}, ErrInvalidJSON
	}
	if doc == nil {
		return Payload{}, ErrMissingBody
	}
	if err := validateShape(doc); err != nil {
		return Payload{}, err
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, ErrInvalidJSON
	}
	return p, nil
}
