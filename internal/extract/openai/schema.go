package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// responseSchema constrains the LLM output to a single flat JSON object
// with scalar-or-null values. Nested objects and arrays cannot be folded
// into a FieldMap, so they are rejected up front.
const responseSchema = `{
	"type": "object",
	"additionalProperties": {
		"type": ["string", "number", "boolean", "null"]
	}
}`

var compiledSchema = mustCompile(responseSchema)

func mustCompile(schema string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("response.json", strings.NewReader(schema)); err != nil {
		panic(err)
	}
	return c.MustCompile("response.json")
}

// validateResponse checks the raw LLM output against responseSchema.
func validateResponse(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
