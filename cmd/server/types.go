package main

import (
	"time"

	"github.com/himanishpuri/ringabell/pkg/models"
)

// RegisterResponse is the response for POST /api/register
type RegisterResponse struct {
	Message      string `json:"message"`
	ID           string `json:"id"`
	Seq          int    `json:"seq"`
	Name         string `json:"name"`
	Fingerprints int    `json:"fingerprints"`
}

// EntryDTO represents a registered recording in API responses
type EntryDTO struct {
	ID           string    `json:"id"`
	Seq          int       `json:"seq"`
	Name         string    `json:"name"`
	Fingerprints int       `json:"fingerprints"`
	RegisteredAt time.Time `json:"registered_at"`
}

func newEntryDTO(e models.Entry) EntryDTO {
	return EntryDTO{
		ID:           e.ID,
		Seq:          e.Seq,
		Name:         e.Label,
		Fingerprints: e.Fingerprints,
		RegisteredAt: e.RegisteredAt,
	}
}

// ListEntriesResponse is the response for GET /api/entries
type ListEntriesResponse struct {
	Entries []EntryDTO `json:"entries"`
	Count   int        `json:"count"`
}

// HealthResponse is the response for GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Time    string `json:"time"`
	Entries int    `json:"entries"`
	Index   string `json:"index"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
