// Package validation checks JSON configuration files against the JSON
// schemas embedded in the binary.
package validation

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema names
const (
	SchemaPrizePool = "prize_pool.schema.json"
)

const schemaDir = "schemas/"

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrSchemaViolation is returned when a document does not match its schema
var ErrSchemaViolation = errors.New("schema validation failed")

// SchemaValidator compiles embedded schemas on first use and caches them
type SchemaValidator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a new schema validator
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

var defaultValidator = NewSchemaValidator()

// Validate checks data against a schema using the shared validator
func Validate(schemaName string, data []byte) error {
	return defaultValidator.Validate(schemaName, data)
}

// Validate checks data against the named embedded schema.
// Violations wrap ErrSchemaViolation and list every failing location.
func (v *SchemaValidator) Validate(schemaName string, data []byte) error {
	schema, err := v.schema(schemaName)
	if err != nil {
		return err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse JSON data: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("validation error: %w", err)
		}
		var lines []string
		collectErrors(ve, &lines)
		return fmt.Errorf("%w:\n%s", ErrSchemaViolation, strings.Join(lines, "\n"))
	}
	return nil
}

func (v *SchemaValidator) schema(name string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.schemas[name]; ok {
		return s, nil
	}

	raw, err := schemaFS.ReadFile(schemaDir + name)
	if err != nil {
		return nil, fmt.Errorf("unknown schema %s: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}
	if err := v.compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema %s: %w", name, err)
	}
	s, err := v.compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	v.schemas[name] = s
	return s, nil
}

// collectErrors flattens the leaf causes of a validation error
func collectErrors(err *jsonschema.ValidationError, lines *[]string) {
	if len(err.Causes) == 0 {
		*lines = append(*lines, formatError(err))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, lines)
	}
}

func formatError(err *jsonschema.ValidationError) string {
	location := "(root)"
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}
	if err.ErrorKind == nil {
		return fmt.Sprintf("  - at %s: validation failed", location)
	}
	if kw := err.ErrorKind.KeywordPath(); len(kw) > 0 {
		return fmt.Sprintf("  - at %s: %s validation failed", location, strings.Join(kw, "."))
	}
	return fmt.Sprintf("  - at %s: validation failed", location)
}
