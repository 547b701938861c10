package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Validator validates traffic log records against the event schema.
type Validator struct {
	schema *jsonschema.Schema
}

// Result is the outcome of validating one record.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidator compiles the event record schema.
func NewValidator() (*Validator, error) {
	var schemaValue any
	if err := json.Unmarshal([]byte(eventSchema), &schemaValue); err != nil {
		return nil, fmt.Errorf("parsing event schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("event.json", schemaValue); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile("event.json")
	if err != nil {
		return nil, fmt.Errorf("compiling event schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// Validate checks one raw record against the event schema.
func (v *Validator) Validate(data []byte) *Result {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return &Result{
			Valid:  false,
			Errors: []string{fmt.Sprintf("invalid JSON: %s", err.Error())},
		}
	}
	return v.ValidateValue(value)
}

// ValidateValue checks an already-parsed record against the schema.
func (v *Validator) ValidateValue(value any) *Result {
	err := v.schema.Validate(value)
	if err == nil {
		return &Result{Valid: true}
	}
	return &Result{Valid: false, Errors: extractValidationErrors(err)}
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// extractValidationErrors extracts human-readable messages from a
// validation error.
func extractValidationErrors(err error) []string {
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		errorsByPath := make(map[string][]string)
		collectErrors(validationErr, errorsByPath)

		var result []string
		for path, msgs := range errorsByPath {
			seen := make(map[string]bool)
			for _, msg := range msgs {
				if seen[msg] {
					continue
				}
				seen[msg] = true
				if path != "" {
					result = append(result, fmt.Sprintf("%s: %s", path, msg))
				} else {
					result = append(result, msg)
				}
			}
		}
		return result
	}
	return []string{err.Error()}
}

// collectErrors recursively collects leaf errors by instance path.
func collectErrors(err *jsonschema.ValidationError, errorsByPath map[string][]string) {
	instancePath := ""
	if len(err.InstanceLocation) > 0 {
		instancePath = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		errMsg := err.ErrorKind.LocalizedString(printer)
		// Schema reference messages carry no useful detail.
		if !strings.HasPrefix(errMsg, "$ref ") && !strings.HasPrefix(errMsg, "doesn't validate with") {
			errorsByPath[instancePath] = append(errorsByPath[instancePath], errMsg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, errorsByPath)
	}
}
