package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerInfo_RendersEveryRoute(t *testing.T) {
	var doc struct {
		BasePath    string                                `json:"basePath"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]struct {
			Required   []string                   `json:"required"`
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	assert.Equal(t, "/api/v1", doc.BasePath)
	routes := map[string][]string{
		"/duplicates/detect":                       {"post"},
		"/duplicates/candidates":                   {"get"},
		"/duplicates/candidates/{checkID}":         {"get"},
		"/duplicates/candidates/{checkID}/confirm": {"post"},
		"/duplicates/stats":                        {"get"},
		"/transactions":                            {"get", "post"},
		"/transactions/{transactionID}":            {"get"},
		"/transactions/{transactionID}/restore":    {"post"},
		"/reports/category-totals":                 {"get"},
	}
	assert.Len(t, doc.Paths, len(routes))
	for path, methods := range routes {
		for _, m := range methods {
			assert.Contains(t, doc.Paths[path], m, path)
		}
	}

	for name, def := range doc.Definitions {
		for prop := range def.Properties {
			assert.NotContains(t, prop, "_", "%s.%s", name, prop)
		}
	}
	assert.Contains(t, doc.Definitions["dto.DetectRequest"].Properties, "dateToleranceDays")
	assert.Empty(t, doc.Definitions["dto.DetectRequest"].Required)
	assert.Equal(t, []string{"decision"}, doc.Definitions["dto.ConfirmRequest"].Required)
}
