// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package manifest

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/samber/oops"
)

// SchemaID is the schema $id manifests can reference.
const SchemaID = "https://tilekit.dev/schemas/manifest.schema.json"

var (
	schemaOnce  sync.Once
	schemaCache *jschema.Schema
	schemaErr   error
)

// GenerateSchema generates a JSON Schema from the Manifest struct.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&Manifest{})

	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "TileKit Plugin Manifest"
	schema.Description = "Schema for manifest.json descriptor files"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.In("manifest").Wrapf(err, "marshaling schema")
	}
	return data, nil
}

// ValidateSchema validates raw manifest JSON against the generated schema.
// Structural errors surface here with JSON-pointer locations; Parse adds
// the semantic checks the schema cannot express.
func ValidateSchema(data []byte) error {
	errb := oops.In("manifest")
	if len(data) == 0 {
		return errb.Errorf("manifest data is empty")
	}

	doc, err := jschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return errb.Wrapf(err, "invalid JSON")
	}

	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	if err := sch.Validate(doc); err != nil {
		return errb.Wrapf(err, "schema validation failed")
	}
	return nil
}

func compiledSchema() (*jschema.Schema, error) {
	schemaOnce.Do(func() {
		schemaCache, schemaErr = compileSchema()
	})
	return schemaCache, schemaErr
}

func compileSchema() (*jschema.Schema, error) {
	errb := oops.In("manifest")

	schemaBytes, err := GenerateSchema()
	if err != nil {
		return nil, err
	}

	schemaDoc, err := jschema.UnmarshalJSON(strings.NewReader(string(schemaBytes)))
	if err != nil {
		return nil, errb.Wrapf(err, "parsing generated schema")
	}

	c := jschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaDoc); err != nil {
		return nil, errb.Wrapf(err, "adding schema resource")
	}

	sch, err := c.Compile("schema.json")
	if err != nil {
		return nil, errb.Wrapf(err, "compiling schema")
	}
	return sch, nil
}

// FormatSchemaError formats a schema validation error for display.
func FormatSchemaError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if idx := strings.Index(msg, "schema validation failed: "); idx >= 0 {
		msg = msg[idx+len("schema validation failed: "):]
	}
	return msg
}
