package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"family_law_portal_go/models"

	"github.com/xeipuuv/gojsonschema"
)

// MaxFieldLength bounds every free-text answer accepted over the JSON API
const MaxFieldLength = 10000

var (
	intakeSchemaOnce sync.Once
	intakeSchema     *gojsonschema.Schema
	intakeSchemaErr  error
)

// IntakeSchemaDocument builds the JSON schema of an intake payload from the
// field registry. Lawyer-only fields are rejected as unknown properties.
func IntakeSchemaDocument() map[string]interface{} {
	root := objectSchema()
	for _, f := range models.Fields() {
		if f.LawyerOnly {
			continue
		}
		node := root
		parts := strings.Split(string(f.Key), ".")
		for _, part := range parts[:len(parts)-1] {
			props := node["properties"].(map[string]interface{})
			child, ok := props[part].(map[string]interface{})
			if !ok {
				child = objectSchema()
				props[part] = child
			}
			node = child
		}
		node["properties"].(map[string]interface{})[parts[len(parts)-1]] = map[string]interface{}{
			"type":      "string",
			"maxLength": MaxFieldLength,
		}
	}
	root["required"] = []string{"clientInfo"}
	root["properties"].(map[string]interface{})["clientInfo"].(map[string]interface{})["required"] = []string{"name", "email"}
	return root
}

func objectSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           map[string]interface{}{},
	}
}

func loadIntakeSchema() (*gojsonschema.Schema, error) {
	intakeSchemaOnce.Do(func() {
		intakeSchema, intakeSchemaErr = gojsonschema.NewSchema(gojsonschema.NewGoLoader(IntakeSchemaDocument()))
	})
	return intakeSchema, intakeSchemaErr
}

// ParseIntakeJSON validates a JSON intake payload and decodes it over the
// intake defaults. Structural problems come back as ValidationErrors.
func ParseIntakeJSON(body []byte) (*models.ClientRecord, error) {
	schema, err := loadIntakeSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to load intake schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, ValidationErrors{"": "Request body must be a JSON object"}
	}
	if !result.Valid() {
		verrs := ValidationErrors{}
		for _, e := range result.Errors() {
			field := e.Field()
			if field == gojsonschema.STRING_ROOT_SCHEMA_PROPERTY {
				field = ""
			}
			if child, ok := e.Details()["property"].(string); ok && e.Type() == "required" {
				field = strings.TrimPrefix(field+"."+child, ".")
			}
			key := models.FieldKey(field)
			if _, exists := verrs[key]; !exists {
				verrs[key] = describeSchemaError(key, e)
			}
		}
		return nil, verrs
	}

	rec := models.NewClientRecord()
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, ValidationErrors{"": "Request body must be a JSON object"}
	}
	return &rec, nil
}

func describeSchemaError(key models.FieldKey, e gojsonschema.ResultError) string {
	label := string(key)
	if spec, ok := models.LookupField(key); ok {
		label = spec.Label
	}
	switch e.Type() {
	case "required":
		return label + " is required"
	case "additional_property_not_allowed":
		return "Unknown field " + fmt.Sprint(e.Details()["property"])
	case "string_lte":
		return fmt.Sprintf("%s must be at most %d characters", label, MaxFieldLength)
	default:
		return e.Description()
	}
}
