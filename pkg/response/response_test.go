package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"campdir/pkg/apperr"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestFromErrorStatusMapping(t *testing.T) {
	cases := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.Validation, http.StatusBadRequest},
		{apperr.NotFound, http.StatusNotFound},
		{apperr.Authentication, http.StatusUnauthorized},
		{apperr.Authorization, http.StatusForbidden},
		{apperr.Conflict, http.StatusConflict},
		{apperr.External, http.StatusBadGateway},
		{apperr.Unexpected, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, w := testContext()
		FromError(c, apperr.New(tc.kind, "boom"))
		require.Equal(t, tc.want, w.Code)

		var env Envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		require.False(t, env.Success)
		require.Equal(t, "boom", env.Error)
	}
}

// Plain errors never leak internals to the client.
func TestFromErrorHidesPlainErrorDetail(t *testing.T) {
	c, w := testContext()
	FromError(c, errors.New("pq: connection refused on 10.0.0.3"))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Equal(t, "server error", env.Error)
	require.NotContains(t, w.Body.String(), "10.0.0.3")
}

func TestListEnvelopeShape(t *testing.T) {
	c, w := testContext()
	List(c, []string{"a", "b"}, 2, map[string]any{"next": map[string]any{"page": 2, "limit": 25}})
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, true, got["success"])
	require.Equal(t, float64(2), got["count"])
	require.Contains(t, got, "pagination")
}

func TestTokenEnvelope(t *testing.T) {
	c, w := testContext()
	Token(c, http.StatusOK, "abc123")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "abc123", got["token"])
	require.NotContains(t, got, "data")
}
