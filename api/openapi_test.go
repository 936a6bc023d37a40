package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/romashorodok/salon-platform/pkg/controller/roomquery"
	"github.com/romashorodok/salon-platform/pkg/controller/salon"
	"github.com/romashorodok/salon-platform/pkg/controller/token"
	"github.com/romashorodok/salon-platform/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	for path, methods := range map[string][]string{
		"/api/token":                                    {http.MethodPost},
		"/api/room/{roomName}/participants":             {http.MethodGet},
		"/api/rooms/participant-counts":                 {http.MethodPost},
		"/api/salons":                                   {http.MethodGet, http.MethodPost},
		"/api/salons/notify":                            {http.MethodGet},
		"/api/salons/{id}":                              {http.MethodGet, http.MethodPatch, http.MethodDelete},
		"/api/salons/{id}/participants":                 {http.MethodGet, http.MethodPost},
		"/api/salons/{id}/participants/{participantId}": {http.MethodDelete},
		"/api/groups":                                   {http.MethodGet},
		"/api/users":                                    {http.MethodGet},
		"/api/me":                                       {http.MethodGet, http.MethodPut},
		"/healthz":                                      {http.MethodGet},
	} {
		item := doc.Paths.Find(path)
		require.NotNil(t, item, path)
		for _, method := range methods {
			assert.NotNil(t, item.GetOperation(method), "%s %s", method, path)
		}
	}

	schema := doc.Components.Schemas["TokenRequest"]
	require.NotNil(t, schema)
	assert.ElementsMatch(t, []string{"roomName", "participantName"}, schema.Value.Required)
}

func TestOpenAPIController(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	router := service.NewRouter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, NewOpenAPIController(NewOpenAPIControllerParams{Doc: doc}).Resolve(router))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		OpenAPI string         `json:"openapi"`
		Paths   map[string]any `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "3.0.3", body.OpenAPI)
	assert.Contains(t, body.Paths, "/api/token")
}

func TestGeneratedControllers(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	generated := map[string]func() (*openapi3.T, error){
		"token":     token.GetSwagger,
		"roomquery": roomquery.GetSwagger,
		"salon":     salon.GetSwagger,
	}

	seen := map[string]string{}
	for tag, getSwagger := range generated {
		spec, err := getSwagger()
		require.NoError(t, err, tag)

		for path, item := range spec.Paths {
			source := doc.Paths.Find(path)
			require.NotNil(t, source, "%s: %s", tag, path)
			for method, op := range item.Operations() {
				want := source.GetOperation(method)
				require.NotNil(t, want, "%s: %s %s", tag, method, path)
				assert.Equal(t, want.OperationID, op.OperationID)
				assert.Contains(t, op.Tags, tag)

				key := method + " " + path
				assert.NotContains(t, seen, key, "%s registered by %s and %s", key, seen[key], tag)
				seen[key] = tag
			}
		}
	}

	for path, item := range doc.Paths {
		for method, op := range item.Operations() {
			if slices.Contains(op.Tags, "meta") {
				continue
			}
			assert.Contains(t, seen, method+" "+path, "operation %s has no generated handler", op.OperationID)
		}
	}
}
