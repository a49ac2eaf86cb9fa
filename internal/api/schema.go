package api

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// createMeetingSchema validates meeting documents loaded from a file before
// they are sent anywhere.
const createMeetingSchema = `{
  "type": "object",
  "required": ["candidate", "position"],
  "properties": {
    "candidate":       {"type": "string", "minLength": 1},
    "position":        {"type": "string", "minLength": 1},
    "job_description": {"type": "string"},
    "time":            {"type": "integer", "minimum": 0},
    "status":          {"type": "string"},
    "remark":          {"type": "string"}
  },
  "additionalProperties": false
}`

// ValidateMeetingDocument checks a JSON meeting document against the
// create-meeting schema. Invalid documents yield a ValidationError and never
// reach the network layer.
func ValidateMeetingDocument(doc []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(createMeetingSchema)
	documentLoader := gojsonschema.NewBytesLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		var details []string
		for _, resultErr := range result.Errors() {
			details = append(details, resultErr.String())
		}
		return &ValidationError{Msg: "invalid meeting document", Details: details}
	}

	return nil
}
