package config

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingToDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	defer log.SetOutput(os.Stderr)

	Logging("tracker_test", dir, "debug")
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	_, err := os.Stat(filepath.Join(dir, "tracker_test.log"))
	require.NoError(t, err)
}

func TestLoggingBadLevel(t *testing.T) {
	Logging("tracker_test", "", "loud")
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestCreateUniqueInstance(t *testing.T) {
	id := CreateUniqueInstance("tracker")
	assert.Len(t, id, 36)
	assert.Equal(t, id, GetInstanceId())
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	h := CORS([]string{"https://app.example"}).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCustomLoggerMiddlewarePassesThrough(t *testing.T) {
	h := CustomLoggerMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
