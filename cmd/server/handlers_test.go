package main

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/himanishpuri/ringabell/pkg/logger"
	"github.com/himanishpuri/ringabell/pkg/ringabell"
	"github.com/himanishpuri/ringabell/pkg/ringabell/audio"
	"github.com/himanishpuri/ringabell/pkg/ringabell/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestServer(t *testing.T, origins ...string) http.Handler {
	t.Helper()
	log := logger.New(logger.Config{Level: logger.WARN, Output: &bytes.Buffer{}})
	svc, err := ringabell.NewService(ringabell.WithLogger(log))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s := NewServer(svc, &ServerConfig{
		Port:           8080,
		SampleRate:     ringabell.DefaultSampleRate,
		IndexBackend:   index.BackendMemory,
		AllowedOrigins: origins,
		MaxUploadBytes: 1 << 20,
	}, log)
	return s.setupRoutes()
}

func tone(t *testing.T, freq float64) []byte {
	t.Helper()
	wav, err := audio.EncodeWAV(audio.Sine(freq, 2, ringabell.DefaultSampleRate, 0.1), ringabell.DefaultSampleRate)
	require.NoError(t, err)
	return wav
}

func do(h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/octet-stream")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAndSearch(t *testing.T) {
	h := newTestServer(t)
	clip := tone(t, 440)

	rec := do(h, http.MethodPost, "/api/register?name=A", clip)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := rec.Body.String()
	assert.Equal(t, "A", gjson.Get(body, "name").String())
	assert.Equal(t, int64(0), gjson.Get(body, "seq").Int())
	assert.Positive(t, gjson.Get(body, "fingerprints").Int())

	rec = do(h, http.MethodPost, "/api/search", clip)
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Equal(t, "A", gjson.Get(body, "songName").String())
	assert.GreaterOrEqual(t, gjson.Get(body, "score").Int(), int64(ringabell.DefaultMinScore))
}

func TestSearchNotFound(t *testing.T) {
	h := newTestServer(t)

	rec := do(h, http.MethodPost, "/api/search", tone(t, 440))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"songName":"Not found","score":0}`, rec.Body.String())
}

func TestRegisterMultipart(t *testing.T) {
	h := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "From Form"))
	part, err := mw.CreateFormFile("audio", "clip.wav")
	require.NoError(t, err)
	_, err = part.Write(tone(t, 440))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "From Form", gjson.Get(rec.Body.String(), "name").String())
}

func TestRegisterErrors(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		body   []byte
		want   int
	}{
		{"missing name", http.MethodPost, "/api/register", tone(t, 440), http.StatusBadRequest},
		{"odd length", http.MethodPost, "/api/register?name=x", []byte{1, 2, 3}, http.StatusBadRequest},
		{"bad header", http.MethodPost, "/api/register?name=x", append([]byte("RIFF\x00\x00\x00\x00WAVE"), 0, 0), http.StatusBadRequest},
		{"too large", http.MethodPost, "/api/register?name=x", make([]byte, 2<<20), http.StatusRequestEntityTooLarge},
		{"wrong method", http.MethodGet, "/api/register?name=x", nil, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Equal(t, int64(tt.want), gjson.Get(rec.Body.String(), "code").Int())
		})
	}

	rec := do(h, http.MethodGet, "/api/entries", nil)
	assert.Equal(t, int64(0), gjson.Get(rec.Body.String(), "count").Int())
}

func TestEntriesAndHealth(t *testing.T) {
	h := newTestServer(t)
	do(h, http.MethodPost, "/api/register?name=first", tone(t, 440))
	do(h, http.MethodPost, "/api/register?name=second", tone(t, 880))

	rec := do(h, http.MethodGet, "/api/entries", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, int64(2), gjson.Get(body, "count").Int())
	assert.Equal(t, []string{"first", "second"}, stringsOf(gjson.Get(body, "entries.#.name")))

	rec = do(h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", gjson.Get(rec.Body.String(), "status").String())
	assert.Equal(t, int64(2), gjson.Get(rec.Body.String(), "entries").Int())
}

func TestCORS(t *testing.T) {
	h := newTestServer(t, "https://app.example")

	req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://other.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", getClientIP(req))

	req.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "10.0.0.3, 10.0.0.4")
	assert.Equal(t, "10.0.0.3", getClientIP(req))
}

func stringsOf(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}
