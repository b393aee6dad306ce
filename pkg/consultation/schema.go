package consultation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const requestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "text": {"type": "string"},
    "patient_details": {
      "type": "object",
      "properties": {
        "name": {"type": "string", "maxLength": 200},
        "age": {"type": "string", "maxLength": 20},
        "gender": {"type": "string", "maxLength": 20},
        "blood_group": {"type": "string", "maxLength": 5},
        "language": {"type": "string", "maxLength": 10}
      }
    }
  },
  "required": ["text"]
}`

// SchemaError lists every violation of the request schema.
type SchemaError struct {
	Details []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("request does not match schema: %d violation(s)", len(e.Details))
}

type requestValidator struct {
	schema *gojsonschema.Schema
}

func newRequestValidator() (*requestValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(requestSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile request schema: %w", err)
	}
	return &requestValidator{schema: schema}, nil
}

// Validate checks a raw JSON body. Malformed JSON is reported as an error, not
// a SchemaError.
func (v *requestValidator) Validate(body []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}
	details := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		details = append(details, re.String())
	}
	return &SchemaError{Details: details}
}
