package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelveil/pixelveil/internal/config"
	"github.com/pixelveil/pixelveil/internal/history"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.DataDir = ""
	return cfg
}

func newTestHandler(t *testing.T, cfg *config.Config, withHistory bool) (http.Handler, *history.Log) {
	t.Helper()

	var hist *history.Log
	if withHistory {
		var err error
		hist, err = history.Open(filepath.Join(t.TempDir(), "history"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = hist.Close() })
	}

	return NewServer(cfg, hist).Router(), hist
}

// coverPNG builds a small color cover image as PNG bytes.
func coverPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 40, G: 80, B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// multipartUpload builds a multipart request body with a file part and
// optional extra form fields.
func multipartUpload(t *testing.T, file []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "upload.png")
	require.NoError(t, err)
	_, err = fw.Write(file)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func postMultipart(handler http.Handler, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestInjectDetectRoundTrip(t *testing.T) {
	handler, _ := newTestHandler(t, testConfig(), false)

	body, ct := multipartUpload(t, coverPNG(t, 64, 64), map[string]string{"message": "meet at dawn"})
	rec := postMultipart(handler, "/api/v1/inject", body, ct)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "hidden_image.png")
	assert.Empty(t, rec.Header().Get("X-Stego-Truncated"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// Feed the stego PNG back through /detect.
	body, ct = multipartUpload(t, rec.Body.Bytes(), nil)
	rec = postMultipart(handler, "/api/v1/detect", body, ct)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeEnvelope(t, rec)
	require.True(t, resp.Success)

	var detect DetectResponse
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &detect))

	assert.True(t, detect.Found)
	assert.Equal(t, "meet at dawn", detect.ExtractedMessage)
	assert.Equal(t, 64, detect.Source.Width)
	require.NotNil(t, detect.Analysis)
	assert.Len(t, detect.Analysis.Channels, 3)
}

func TestInject_Truncated(t *testing.T) {
	handler, _ := newTestHandler(t, testConfig(), false)

	// 4x4 RGB cover: 48 bit slots, far too small for the message.
	body, ct := multipartUpload(t, coverPNG(t, 4, 4), map[string]string{
		"message": "this will never fit in a four by four cover",
	})
	rec := postMultipart(handler, "/api/v1/inject", body, ct)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "true", rec.Header().Get("X-Stego-Truncated"))
}

func TestInject_MessageOutOfRange(t *testing.T) {
	handler, _ := newTestHandler(t, testConfig(), false)

	body, ct := multipartUpload(t, coverPNG(t, 64, 64), map[string]string{"message": "прывітанне"})
	rec := postMultipart(handler, "/api/v1/inject", body, ct)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "single-byte range")
}

func TestInject_UndecodableUpload(t *testing.T) {
	handler, _ := newTestHandler(t, testConfig(), false)

	body, ct := multipartUpload(t, []byte("definitely not an image"), map[string]string{"message": "x"})
	rec := postMultipart(handler, "/api/v1/inject", body, ct)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeEnvelope(t, rec).Success)
}

func TestInject_MissingFile(t *testing.T) {
	handler, _ := newTestHandler(t, testConfig(), false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("message", "x"))
	require.NoError(t, mw.Close())

	rec := postMultipart(handler, "/api/v1/inject", &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDetect_CleanImage(t *testing.T) {
	handler, _ := newTestHandler(t, testConfig(), false)

	body, ct := multipartUpload(t, coverPNG(t, 32, 32), nil)
	rec := postMultipart(handler, "/api/v1/detect", body, ct)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeEnvelope(t, rec)
	require.True(t, resp.Success)

	var detect DetectResponse
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &detect))

	assert.False(t, detect.Found)
	assert.Equal(t, "No message found", detect.ExtractedMessage)
}

func TestAPIKeyAuth(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = "topsecret"
	handler, _ := newTestHandler(t, cfg, false)

	body, ct := multipartUpload(t, coverPNG(t, 16, 16), nil)

	tests := []struct {
		name     string
		key      string
		wantCode int
	}{
		{"missing key", "", http.StatusUnauthorized},
		{"wrong key", "nope", http.StatusUnauthorized},
		{"correct key", "topsecret", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bytes.NewBuffer(body.Bytes())
			req := httptest.NewRequest(http.MethodPost, "/api/v1/detect", b)
			req.Header.Set("Content-Type", ct)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHistoryEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t, testConfig(), true)

	body, ct := multipartUpload(t, coverPNG(t, 32, 32), map[string]string{"message": "logged"})
	rec := postMultipart(handler, "/api/v1/inject", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=5", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.True(t, resp.Success)

	var hr HistoryResponse
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &hr))

	require.Len(t, hr.Entries, 1)
	assert.Equal(t, "embed", hr.Entries[0].Op)
	assert.Equal(t, 6, hr.Entries[0].MessageChars)
	assert.False(t, hr.Entries[0].Truncated)
}

func TestHistory_Disabled(t *testing.T) {
	handler, _ := newTestHandler(t, testConfig(), false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHistory_BadLimit(t *testing.T) {
	handler, _ := newTestHandler(t, testConfig(), true)

	for _, limit := range []string{"0", "-3", "many"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/history?limit="+limit, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)
	}
}

func TestHealth(t *testing.T) {
	handler, _ := newTestHandler(t, testConfig(), false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestMetricsEndpoint(t *testing.T) {
	handler, _ := newTestHandler(t, testConfig(), false)

	// Drive one operation so the counters exist.
	body, ct := multipartUpload(t, coverPNG(t, 16, 16), nil)
	rec := postMultipart(handler, "/api/v1/detect", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pixelveil_steg_operations_total")
}
