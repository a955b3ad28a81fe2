package tempmail

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestJSONContentType(t *testing.T) {
	rr := httptest.NewRecorder()
	JSONContentType(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestCacheControl(t *testing.T) {
	rr := httptest.NewRecorder()
	CacheControl(3600)(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "max-age=3600", rr.Header().Get("Cache-Control"))

	rr = httptest.NewRecorder()
	CacheControl(0)(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}

func TestSetVersionHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	SetVersionHeader(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, version, rr.Header().Get("X-TempMailr-Version"))
}

func TestRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	RequestID(okHandler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rr = httptest.NewRecorder()
	RequestID(okHandler).ServeHTTP(rr, req)
	assert.Equal(t, "upstream-id", rr.Header().Get("X-Request-ID"))
}

func TestRestoreRealIP(t *testing.T) {
	var remoteAddr string
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		remoteAddr = r.RemoteAddr
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.9")
	RestoreRealIP(capture).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "203.0.113.9", remoteAddr)
}
