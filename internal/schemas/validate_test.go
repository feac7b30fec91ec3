package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	}
}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateJSON_Valid(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", personSchema)
	jsonPath := writeTempFile(t, "doc.json", `{"name": "Dana", "age": 34}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_MissingRequiredField(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", personSchema)
	jsonPath := writeTempFile(t, "doc.json", `{"age": 34}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateJSON_WrongType(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", personSchema)
	jsonPath := writeTempFile(t, "doc.json", `{"name": "Dana", "age": "old"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	jsonPath := writeTempFile(t, "doc.json", `{"name": "Dana"}`)

	err := ValidateJSON(filepath.Join(t.TempDir(), "missing.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentDocument(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", personSchema)

	err := ValidateJSON(schemaPath, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedDocument(t *testing.T) {
	schemaPath := writeTempFile(t, "schema.json", personSchema)
	jsonPath := writeTempFile(t, "doc.json", `{ not json }`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateJSONString_Valid(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "Dana"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(personSchema, `{"age": 30}`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "weights.skillsMatch", Message: "must be a number"},
			{Field: "neutral_score", Message: "must be at most 100"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "weights.skillsMatch")
	assert.Contains(t, msg, "neutral_score")
}

func TestSchemaLoadError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &SchemaLoadError{Path: "x.json", Message: "load failed", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "x.json")
}

func TestResolveSchemaPath_FindsShippedSchemas(t *testing.T) {
	// Tests run from this package directory; the shipped schemas sit two
	// levels up.
	for _, rel := range []string{FitPolicySchema, ScoreInputSchema} {
		t.Run(rel, func(t *testing.T) {
			path := ResolveSchemaPath(rel)
			require.NotEmpty(t, path, "schema should resolve from the package directory")
			_, err := os.Stat(path)
			assert.NoError(t, err)
		})
	}
}

func TestResolveSchemaPath_NotFound(t *testing.T) {
	assert.Empty(t, ResolveSchemaPath("schemas/no_such.schema.json"))
}

func TestValidateDocument_FitPolicy(t *testing.T) {
	schemaPath := ResolveSchemaPath(FitPolicySchema)
	require.NotEmpty(t, schemaPath)

	tests := []struct {
		name      string
		document  string
		wantError bool
	}{
		{
			name:     "full weight table",
			document: `{"weights": {"skillsMatch": 0.30, "experienceLevel": 0.20, "locationMatch": 0.15, "cultureFit": 0.15, "salaryExpectation": 0.10, "availability": 0.10}}`,
		},
		{
			name:     "partial override",
			document: `{"neutral_score": 60, "under_experience_penalty": 20}`,
		},
		{
			name:     "empty object",
			document: `{}`,
		},
		{
			name:      "weight above one",
			document:  `{"weights": {"skillsMatch": 1.5}}`,
			wantError: true,
		},
		{
			name:      "score out of range",
			document:  `{"neutral_score": 300}`,
			wantError: true,
		},
		{
			name:      "unknown field rejected",
			document:  `{"skils_weight": 0.5}`,
			wantError: true,
		},
		{
			name:      "unknown factor rejected",
			document:  `{"weights": {"charisma": 0.5}}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(schemaPath, []byte(tt.document))
			if tt.wantError {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.Errors)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDocument_ScoreInput(t *testing.T) {
	schemaPath := ResolveSchemaPath(ScoreInputSchema)
	require.NotEmpty(t, schemaPath)

	tests := []struct {
		name      string
		document  string
		wantError bool
	}{
		{
			name: "minimal valid input",
			document: `{
				"job": {"required_skills": ["go"]},
				"candidate": {"skills": ["go"]}
			}`,
		},
		{
			name: "full input",
			document: `{
				"job": {
					"required_skills": ["go", "postgresql"],
					"preferred_skills": ["kubernetes"],
					"experience_min_years": 3,
					"experience_max_years": 8,
					"location": "Berlin",
					"location_type": "hybrid",
					"salary_min": 70000,
					"salary_max": 95000
				},
				"candidate": {
					"skills": ["go", "postgresql", "kubernetes"],
					"years_experience": 5,
					"location": "Berlin",
					"preferred_location_type": "hybrid",
					"expected_salary_min": 80000,
					"expected_salary_max": 90000,
					"availability_status": "actively_looking"
				}
			}`,
		},
		{
			name:      "missing candidate",
			document:  `{"job": {"required_skills": ["go"]}}`,
			wantError: true,
		},
		{
			name:      "missing required skills",
			document:  `{"job": {}, "candidate": {"skills": ["go"]}}`,
			wantError: true,
		},
		{
			name: "bad location type",
			document: `{
				"job": {"required_skills": ["go"], "location_type": "moon"},
				"candidate": {"skills": ["go"]}
			}`,
			wantError: true,
		},
		{
			name: "bad availability status",
			document: `{
				"job": {"required_skills": ["go"]},
				"candidate": {"skills": ["go"], "availability_status": "retired"}
			}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(schemaPath, []byte(tt.document))
			if tt.wantError {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.NotEmpty(t, validationErr.Errors)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
