package intake

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const payloadSchema = `{
  "type": "object",
  "required": ["settings"],
  "properties": {
    "channel_id": {"type": "string"},
    "return_url": {"type": "string"},
    "message":    {"type": "string"},
    "settings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["label"],
        "properties": {
          "label":    {"type": "string"},
          "type":     {"type": "string"},
          "required": {"type": "boolean"},
          "default":  {"type": ["string", "number", "boolean", "null"]}
        }
      }
    }
  }
}`

var schema = mustSchema(payloadSchema)

func mustSchema(s string) *gojsonschema.Schema {
	sc, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(fmt.Sprintf("intake schema: %v", err))
	}
	return sc
}

// validateShape checks doc (already known to be valid JSON) against the payload schema.
func validateShape(doc any) error {
	if m, ok := doc.(map[string]any); ok {
		if v, ok := m["settings"]; !ok || v == nil {
			return ErrMissingSettings
		}
	}

	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, len(res.Errors()))
	for i, e := range res.Errors() {
		msgs[i] = e.String()
	}
	return fmt.Errorf("%w: %s", ErrInvalidPayload, strings.Join(msgs, "; "))
}
