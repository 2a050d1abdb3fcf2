// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

var (
	schemaOnce     sync.Once
	resolvedSchema *jsonschema.Resolved
	schemaErr      error
)

// bankSchema derives the JSON Schema from bankDocument and tightens it with
// the two-option and {0,1} invariants that Go types cannot express.
func bankSchema() (*jsonschema.Resolved, error) {
	schemaOnce.Do(func() {
		schema, err := jsonschema.For[bankDocument](nil)
		if err != nil {
			schemaErr = fmt.Errorf("generating bank schema: %w", err)
			return
		}
		if questions := schema.Properties["questions"]; questions != nil && questions.Items != nil {
			entry := questions.Items
			if opts := entry.Properties["options"]; opts != nil {
				n := 2
				opts.MinItems = &n
				opts.MaxItems = &n
			}
			if idx := entry.Properties["correct_index"]; idx != nil {
				lo, hi := 0.0, 1.0
				idx.Minimum = &lo
				idx.Maximum = &hi
			}
		}
		resolvedSchema, schemaErr = schema.Resolve(nil)
	})
	return resolvedSchema, schemaErr
}

// validateSchema checks a decoded document against the bank schema. The
// value is round-tripped through JSON so YAML scalars take JSON types.
func validateSchema(doc any) error {
	resolved, err := bankSchema()
	if err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding for validation: %w", err)
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("decoding for validation: %w", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
