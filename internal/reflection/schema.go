package reflection

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/moodi-labs/moodi-backend/internal/validation"
)

// The response schema checks the structural contract with the provider:
// required keys, types, and no extra keys. Field length and tag-count
// limits are business validation and live in domain.ReflectionResult.

//go:embed response_schema.json
var responseSchemaJSON []byte

const responseSchemaName = "reflection_response.json"

var (
	schemaOnce      sync.Once
	schemaValidator validation.SchemaValidator
	schemaErr       error
)

// validateReflectionOutput checks raw provider JSON against the embedded
// response schema.
func validateReflectionOutput(content []byte) error {
	schemaOnce.Do(func() {
		schemaValidator, schemaErr = validation.NewSchemaValidator(responseSchemaName, responseSchemaJSON)
	})
	if schemaErr != nil {
		return fmt.Errorf("response schema unavailable: %w", schemaErr)
	}

	return schemaValidator.ValidateBytes(content)
}
