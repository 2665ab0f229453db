package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/pixelveil/pixelveil/internal/analysis"
	"github.com/pixelveil/pixelveil/internal/history"
	"github.com/pixelveil/pixelveil/internal/raster"
	"github.com/pixelveil/pixelveil/internal/steg"
)

// DetectResponse is the payload of a successful /detect call.
type DetectResponse struct {
	// ExtractedMessage is the recovered text, or "No message found"
	// when no terminator was located.
	ExtractedMessage string `json:"extracted_message"`

	// Found reports whether a complete message terminator was located.
	Found bool `json:"found"`

	// Source describes the uploaded image.
	Source raster.SourceInfo `json:"source"`

	// Analysis is the local steganalysis report for the image.
	Analysis *analysis.InspectResult `json:"analysis"`
}

// HistoryResponse is the payload of a successful /history call.
type HistoryResponse struct {
	Entries []history.Entry `json:"entries"`
}

// readUpload pulls the uploaded image out of the multipart form,
// honoring the configured size limit.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		sendError(w, fmt.Sprintf("invalid multipart form: %v", err), http.StatusBadRequest)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		sendError(w, "missing file field", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		sendError(w, "failed to read upload", http.StatusBadRequest)
		return nil, false
	}
	return data, true
}

// handleInject embeds the message form field into the uploaded image
// and returns the stego image as a PNG attachment.
func (s *Server) handleInject(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	message := r.FormValue("message")

	decoded, err := raster.Decode(data)
	if err != nil {
		s.metrics.RecordOperation("embed", statusError)
		sendError(w, fmt.Sprintf("cannot decode image: %v", err), http.StatusBadRequest)
		return
	}

	res, err := steg.Embed(decoded.Grid, message)
	if err != nil {
		s.metrics.RecordOperation("embed", statusError)
		if errors.Is(err, steg.ErrCharOutOfRange) {
			sendError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		sendError(w, "embed failed", http.StatusInternalServerError)
		return
	}

	out, err := raster.EncodePNG(res.Grid)
	if err != nil {
		s.metrics.RecordOperation("embed", statusError)
		sendError(w, "failed to encode stego image", http.StatusInternalServerError)
		return
	}

	s.metrics.RecordOperation("embed", statusSuccess)
	if res.Truncated {
		s.metrics.RecordTruncation()
	}
	s.record(history.Entry{
		Op:           "embed",
		Width:        decoded.Info.Width,
		Height:       decoded.Info.Height,
		Mode:         decoded.Info.Mode,
		MessageChars: len([]rune(message)),
		Truncated:    res.Truncated,
	})

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename=hidden_image.png`)
	if res.Truncated {
		w.Header().Set("X-Stego-Truncated", "true")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// handleDetect extracts a hidden message from the uploaded image and
// runs local steganalysis on it.
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	decoded, err := raster.Decode(data)
	if err != nil {
		s.metrics.RecordOperation("extract", statusError)
		sendError(w, fmt.Sprintf("cannot decode image: %v", err), http.StatusBadRequest)
		return
	}

	ext := steg.Extract(decoded.Grid)

	insp, err := analysis.Inspect(decoded.Image)
	if err != nil {
		s.metrics.RecordOperation("extract", statusError)
		sendError(w, "analysis failed", http.StatusInternalServerError)
		return
	}

	s.metrics.RecordOperation("extract", statusSuccess)
	s.record(history.Entry{
		Op:           "extract",
		Width:        decoded.Info.Width,
		Height:       decoded.Info.Height,
		Mode:         decoded.Info.Mode,
		MessageChars: len([]rune(ext.Message)),
		Found:        ext.Found,
	})

	msg := ext.Message
	if !ext.Found {
		msg = "No message found"
	}
	sendSuccess(w, DetectResponse{
		ExtractedMessage: msg,
		Found:            ext.Found,
		Source:           decoded.Info,
		Analysis:         insp,
	})
}

// handleHistory returns recent operations, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		sendError(w, "history is disabled", http.StatusServiceUnavailable)
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			sendError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}
	if limit > 100 {
		limit = 100
	}

	entries, err := s.history.Recent(limit)
	if err != nil {
		sendError(w, "failed to read history", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	sendSuccess(w, HistoryResponse{Entries: entries})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	sendSuccess(w, map[string]string{"status": "ok"})
}

// record appends to the history log when one is configured. Failures
// are logged and do not fail the request.
func (s *Server) record(e history.Entry) {
	if s.history == nil {
		return
	}
	if _, err := s.history.Append(e); err != nil {
		log.Printf("failed to record history entry: %v", err)
	}
}
