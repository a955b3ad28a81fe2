package tempmail

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Routes(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)

	t.Run("generate health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/generate", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		assert.Equal(t, version, rr.Header().Get("X-TempMailr-Version"))
	})

	t.Run("preflight", func(t *testing.T) {
		for _, path := range []string{"/generate", "/messages", "/message"} {
			rr := httptest.NewRecorder()
			s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, path, nil))

			assert.Equal(t, http.StatusNoContent, rr.Code, path)
		}
	})

	t.Run("messages without token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/messages", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("ping", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "PONG", rr.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		rr := httptest.NewRecorder()
		s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestServer_CORS(t *testing.T) {
	s, err := New(Config{AllowedOrigins: []string{"https://www.temp-mailr.com"}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	req.Header.Set("Origin", "https://www.temp-mailr.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	assert.Equal(t, "https://www.temp-mailr.com", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/generate", nil)
	req.Header.Set("Origin", "https://evil.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rr = httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
