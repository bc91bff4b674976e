package utils

import "github.com/google/uuid"

// NewEntryID returns a random (version 4) UUID string.
func NewEntryID() string {
	return uuid.NewString()
}

// IsEntryID reports whether s parses as a UUID.
func IsEntryID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
