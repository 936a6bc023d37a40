package protocol

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	echo "github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routeController struct {
	path string
	err  error
}

func (c *routeController) Resolve(router *echo.Echo) error {
	if c.err != nil {
		return c.err
	}
	router.GET(c.path, func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	return nil
}

func TestResolveAll(t *testing.T) {
	router := echo.New()
	require.NoError(t, ResolveAll(router, &routeController{path: "/a"}, &routeController{path: "/b"}))

	for _, path := range []string{"/a", "/b"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNoContent, rec.Code, path)
	}

	boom := errors.New("boom")
	err := ResolveAll(echo.New(), &routeController{path: "/a"}, &routeController{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestDecodeJSON(t *testing.T) {
	var req TokenRequest
	require.NoError(t, DecodeJSON(strings.NewReader(`{"roomName":"r","participantName":"p"}`), &req))
	assert.Equal(t, TokenRequest{RoomName: "r", ParticipantName: "p"}, req)

	var empty TokenRequest
	require.NoError(t, DecodeJSON(strings.NewReader(""), &empty))
	assert.Zero(t, empty)
	require.NoError(t, DecodeJSON(nil, &empty))

	assert.Error(t, DecodeJSON(strings.NewReader(`{`), &empty))
}
