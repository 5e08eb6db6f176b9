package services

import (
	"strings"
	"testing"

	"family_law_portal_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeSchemaDocument(t *testing.T) {
	doc := IntakeSchemaDocument()
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, false, doc["additionalProperties"])

	props := doc["properties"].(map[string]interface{})
	assert.Contains(t, props, "clientInfo")
	assert.Contains(t, props, "adverseParty")
	assert.NotContains(t, props, "notes")

	adverse := props["adverseParty"].(map[string]interface{})["properties"].(map[string]interface{})
	assert.Contains(t, adverse, "lawyer")
}

func TestParseIntakeJSON(t *testing.T) {
	body := `{
		"clientInfo": {"name": "Jane Doe", "email": "jane@example.com"},
		"adverseParty": {"name": "John Doe", "lawyer": {"firm": "Smith LLP"}},
		"children": {"details": "Two children"}
	}`

	rec, err := ParseIntakeJSON([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", rec.ClientInfo.Name)
	assert.Equal(t, "Smith LLP", rec.AdverseParty.Lawyer.Firm)
	assert.Equal(t, "Two children", rec.Children.Details)
	assert.Equal(t, "No", rec.ClientInfo.USCitizen)
	assert.Equal(t, "Client will order", rec.Relationship.HasMarriageCertificate)
}

func TestParseIntakeJSON_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantKey  models.FieldKey
		contains string
	}{
		{"missing clientInfo", `{}`, "clientInfo", "required"},
		{"missing name", `{"clientInfo": {"email": "a@b.c"}}`, models.FieldClientName, "Name is required"},
		{"unknown field", `{"clientInfo": {"name": "A", "email": "a@b.c"}, "ssn": "1"}`, "", "Unknown field ssn"},
		{"lawyer notes rejected", `{"clientInfo": {"name": "A", "email": "a@b.c"}, "notes": "x"}`, "", "Unknown field notes"},
		{"wrong type", `{"clientInfo": {"name": 5, "email": "a@b.c"}}`, models.FieldClientName, ""},
		{"too long", `{"clientInfo": {"name": "` + strings.Repeat("a", MaxFieldLength+1) + `", "email": "a@b.c"}}`, models.FieldClientName, "at most"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIntakeJSON([]byte(tt.body))
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Contains(t, verrs, tt.wantKey)
			assert.Contains(t, verrs[tt.wantKey], tt.contains)
		})
	}
}

func TestParseIntakeJSON_NotJSON(t *testing.T) {
	_, err := ParseIntakeJSON([]byte("name=jane"))
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Request body must be a JSON object", verrs[""])
}
