// Package validation checks enriched exercise records against the external
// JSON schema contract. Validation is a pure function of (record, schema) so
// the schema document can be versioned and tested independently.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("validation: schema invalid")
	ErrSchemaValidation = errors.New("validation: schema validation failed")
)

// Issue captures a single validation failure with its instance location.
type Issue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// RecordValidationError surfaces validation issues with path-qualified context.
type RecordValidationError struct {
	Issues []Issue
	Cause  error
}

func (e *RecordValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *RecordValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var recordErr *RecordValidationError
	if errors.As(err, &recordErr) && recordErr != nil {
		return recordErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectIssues(validationErr)
	}
	return []Issue{{Message: err.Error()}}
}

// Validator holds a compiled schema contract.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles the supplied schema document.
func New(schema map[string]any) (*Validator, error) {
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Validator{schema: compiled}, nil
}

// Load reads and compiles the schema contract from a file path.
func Load(path string) (*Validator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("validation: read schema %s: %w", path, err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrSchemaInvalid, path, err)
	}
	return New(schema)
}

// Validate checks a record against the compiled schema. The record is
// round-tripped through JSON so validation sees the exact persisted shape.
// It has no side effects; a failing record is simply reported.
func (v *Validator) Validate(record any) error {
	payload, err := toJSONValue(record)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if err := v.schema.Validate(payload); err != nil {
		return &RecordValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

func toJSONValue(record any) (any, error) {
	encoded, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	if err == nil {
		return nil
	}
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
