package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/himanishpuri/ringabell/pkg/ringabell"
)

const (
	registerTimeout = 2 * time.Minute
	searchTimeout   = time.Minute
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service ringabell.Service
	config  *ServerConfig
	log     ringabell.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	SampleRate     int
	IndexBackend   string
	AllowedOrigins []string
	MaxUploadBytes int64
}

// NewServer creates a new server instance
func NewServer(service ringabell.Service, config *ServerConfig, log ringabell.Logger) *Server {
	return &Server{
		service: service,
		config:  config,
		log:     log,
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, ringabell.ErrMalformedInput):
		return http.StatusBadRequest
	case errors.Is(err, ringabell.ErrPreconditionViolation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// readAudio returns the clip bytes of r: the "audio" part of a multipart
// form, or the whole body otherwise.
func (s *Server) readAudio(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return io.ReadAll(r.Body)
	}

	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("failed to parse form data: %w", err)
	}
	file, _, err := r.FormFile("audio")
	if err != nil {
		return nil, fmt.Errorf("audio file is required: %w", err)
	}
	defer file.Close()
	return io.ReadAll(file)
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"service": "ringabell API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":   "GET /health",
			"entries":  "GET /api/entries",
			"register": "POST /api/register?name={name}",
			"search":   "POST /api/search",
		},
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	entries, err := s.service.Entries()
	if err != nil {
		s.log.Errorf("Failed to count entries: %v", err)
		s.respondError(w, http.StatusServiceUnavailable, "index unavailable")
		return
	}

	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Entries: len(entries),
		Index:   s.config.IndexBackend,
	})
}

// handleEntries handles GET /api/entries
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	entries, err := s.service.Entries()
	if err != nil {
		s.log.Errorf("Failed to list entries: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve entries")
		return
	}

	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = newEntryDTO(e)
	}
	s.respondJSON(w, http.StatusOK, ListEntriesResponse{
		Entries: dtos,
		Count:   len(dtos),
	})
}

// handleRegister handles POST /api/register?name=
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), registerTimeout)
	defer cancel()

	raw, err := s.readAudio(w, r)
	if err != nil {
		s.log.Warnf("Failed to read upload: %v", err)
		s.respondError(w, statusOr(err, http.StatusBadRequest), err.Error())
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		name = strings.TrimSpace(r.FormValue("name"))
	}
	if name == "" {
		s.respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	entry, err := s.service.Register(ctx, name, raw)
	if err != nil {
		s.respondError(w, statusFor(err), fmt.Sprintf("Failed to register: %v", err))
		return
	}

	s.respondJSON(w, http.StatusCreated, RegisterResponse{
		Message:      "Registered successfully",
		ID:           entry.ID,
		Seq:          entry.Seq,
		Name:         entry.Label,
		Fingerprints: entry.Fingerprints,
	})
}

// handleSearch handles POST /api/search. The body is the search result
// object {"songName": ..., "score": ...}.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), searchTimeout)
	defer cancel()

	raw, err := s.readAudio(w, r)
	if err != nil {
		s.log.Warnf("Failed to read upload: %v", err)
		s.respondError(w, statusOr(err, http.StatusBadRequest), err.Error())
		return
	}

	body, err := s.service.SearchJSON(ctx, raw)
	if err != nil {
		s.respondError(w, statusFor(err), fmt.Sprintf("Failed to search: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, body+"\n")
}

// statusOr is statusFor, with fallback replacing the generic 500.
func statusOr(err error, fallback int) int {
	if code := statusFor(err); code != http.StatusInternalServerError {
		return code
	}
	return fallback
}
