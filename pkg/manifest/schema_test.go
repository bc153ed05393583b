// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package manifest_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilekit/tilekit/pkg/manifest"
)

func TestGenerateSchema(t *testing.T) {
	data, err := manifest.GenerateSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, manifest.SchemaID, schema["$id"])
	assert.Equal(t, "TileKit Plugin Manifest", schema["title"])
	assert.Contains(t, schema, "properties")
}

func TestValidateSchema_Valid(t *testing.T) {
	require.NoError(t, manifest.ValidateSchema([]byte(validManifest())))
}

func TestValidateSchema_Invalid(t *testing.T) {
	// UUID must be a string.
	bad := `{
		"UUID": 12,
		"Name": "Counter",
		"Version": "1.0.0",
		"CodePath": "counter",
		"SDKVersion": 2,
		"Software": {"MinimumVersion": "6.5"},
		"Actions": []
	}`
	err := manifest.ValidateSchema([]byte(bad))
	require.Error(t, err)
	assert.NotEmpty(t, manifest.FormatSchemaError(err))
}

func TestValidateSchema_Empty(t *testing.T) {
	require.Error(t, manifest.ValidateSchema(nil))
	require.Error(t, manifest.ValidateSchema([]byte("{not json")))
}

func TestFormatSchemaError_Nil(t *testing.T) {
	assert.Empty(t, manifest.FormatSchemaError(nil))
}
