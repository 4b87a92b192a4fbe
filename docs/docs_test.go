package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type document struct {
	Paths map[string]map[string]struct {
		Responses map[string]json.RawMessage `json:"responses"`
	} `json:"paths"`
	Definitions map[string]json.RawMessage `json:"definitions"`
}

func TestSwaggerDocument(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	routes := map[string][]string{
		"/api/locations":           {"get", "post"},
		"/api/locations/snapshots": {"post"},
		"/health":                  {"get"},
		"/healthz":                 {"get"},
	}
	for path, methods := range routes {
		for _, m := range methods {
			_, ok := doc.Paths[path][m]
			assert.True(t, ok, "%s %s documented", m, path)
		}
	}

	codes := func(path, method string) []string {
		out := make([]string, 0)
		for code := range doc.Paths[path][method].Responses {
			out = append(out, code)
		}
		return out
	}
	assert.ElementsMatch(t, []string{"201", "400", "409", "500"}, codes("/api/locations", "post"))
	assert.ElementsMatch(t, []string{"201", "400", "500", "503"}, codes("/api/locations/snapshots", "post"))

	for _, def := range []string{"model.DonationPoint", "handler.errorPayload", "service.SnapshotResult", "validation.Issue"} {
		assert.Contains(t, doc.Definitions, def)
	}
}
