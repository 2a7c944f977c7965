// Package toolschema converts between the flat tool representation used by
// the visual editor and the nested function-calling format sent on the wire.
//
// The visual form only models flat primitive-typed parameters. Anything
// richer (nested objects, enums) survives in the raw toolsDefinition text but
// is dropped when edited visually.
package toolschema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sashabaranov/go-openai/jsonschema"
)

type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
}

type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type wireTool struct {
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunction struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Parameters  jsonschema.Definition `json:"parameters"`
}

// Parse reads a tool definition text into its visual form. It fails soft:
// any parse error, or a top-level value that is not an array, yields an empty
// list so a half-typed raw edit never breaks the editor. Elements may be
// either OpenAI-style {"type":"function","function":{...}} envelopes or bare
// function objects pasted from a fragment.
func Parse(text string) []Tool {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		return nil
	}

	tools := make([]Tool, 0, len(elements))
	for _, element := range elements {
		tools = append(tools, parseTool(element))
	}
	return tools
}

func parseTool(element json.RawMessage) Tool {
	var envelope struct {
		Function json.RawMessage `json:"function"`
	}
	fn := element
	if err := json.Unmarshal(element, &envelope); err == nil && isNonNull(envelope.Function) {
		fn = envelope.Function
	}

	var def wireFunction
	if err := json.Unmarshal(fn, &def); err != nil {
		return Tool{Parameters: []Parameter{}}
	}

	return Tool{
		Name:        def.Name,
		Description: def.Description,
		Parameters:  flattenParameters(def.Parameters),
	}
}

// flattenParameters orders parameters by the required list first (Serialize
// writes required in visual order, so editor round trips keep their order)
// and any remaining property names sorted.
func flattenParameters(def jsonschema.Definition) []Parameter {
	names := make([]string, 0, len(def.Properties))
	seen := make(map[string]bool, len(def.Properties))
	for _, name := range def.Required {
		if _, ok := def.Properties[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	rest := make([]string, 0, len(def.Properties))
	for name := range def.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	params := make([]Parameter, 0, len(names))
	for _, name := range names {
		prop := def.Properties[name]
		typ := string(prop.Type)
		if typ == "" {
			typ = "string"
		}
		params = append(params, Parameter{
			Name:        name,
			Type:        typ,
			Description: prop.Description,
		})
	}
	return params
}

// Serialize is the inverse of Parse. Every parameter lands in the required
// list, in its visual order; the editor has no notion of optional parameters.
// Output is pretty-printed because it doubles as the raw editor content.
func Serialize(tools []Tool) (string, error) {
	wire := make([]wireTool, 0, len(tools))
	for _, t := range tools {
		properties := make(map[string]jsonschema.Definition, len(t.Parameters))
		required := make([]string, 0, len(t.Parameters))
		for _, p := range t.Parameters {
			properties[p.Name] = jsonschema.Definition{
				Type:        jsonschema.DataType(p.Type),
				Description: p.Description,
			}
			required = append(required, p.Name)
		}

		wire = append(wire, wireTool{
			Type: "function",
			Function: wireFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters: jsonschema.Definition{
					Type:       jsonschema.Object,
					Properties: properties,
					Required:   required,
				},
			},
		})
	}

	out, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling tools: %w", err)
	}
	return string(out), nil
}

func isNonNull(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
