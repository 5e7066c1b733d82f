package llm

import (
	"encoding/json"
	"strings"
)

// Type names follow the Gemini schema vocabulary; JSONSchema lowercases them.
type Type string

const (
	TypeObject Type = "OBJECT"
	TypeArray  Type = "ARRAY"
	TypeString Type = "STRING"
)

// Schema describes the JSON shape requested from a model. Providers with
// native structured output receive it as is; the others get it rendered as
// JSON Schema inside the prompt.
type Schema struct {
	Type        Type
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
	Enum        []string
}

func (s *Schema) JSONSchema() map[string]interface{} {
	out := map[string]interface{}{
		"type": strings.ToLower(string(s.Type)),
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if len(s.Properties) > 0 {
		props := make(map[string]interface{}, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = p.JSONSchema()
		}
		out["properties"] = props
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}

func (s *Schema) String() string {
	b, err := json.MarshalIndent(s.JSONSchema(), "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

// schemaInstruction is appended to prompts for providers that cannot take
// the schema as a request parameter.
func schemaInstruction(s *Schema) string {
	if s == nil {
		return ""
	}
	return "\n\nRespond with a single JSON object, without markdown fences, that conforms to this JSON schema:\n" + s.String()
}
