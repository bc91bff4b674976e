// Package index stores registered fingerprint sets and scores queries
// against them.
package index

import (
	"fmt"
	"strings"

	"github.com/himanishpuri/ringabell/pkg/models"
)

// Index is an append-only collection of labelled fingerprint sets. All
// implementations are safe for concurrent use; a Register either appends a
// whole entry or nothing.
type Index interface {
	// Register appends a new entry. Labels need not be unique.
	Register(label string, fingerprints []uint64) (models.Entry, error)
	// Search scores every entry against query and returns the best one
	// scoring at least minScore, or models.NotFound.
	Search(query []uint64, minScore int) (models.MatchResult, error)
	// Scores returns each entry's score in registration order.
	Scores(query []uint64) ([]int, error)
	Entries() ([]models.Entry, error)
	Len() int
	Close() error
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// New builds an index for a configured backend name.
func New(backend string) (Index, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		s, err := NewSQLite()
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown index backend %q", backend)
	}
}

// pickBest selects the highest score, keeping the lowest registration index
// on ties. A score of zero never matches, whatever minScore is.
func pickBest(labels []string, scores []int, minScore int) models.MatchResult {
	best, bestScore := -1, 0
	for i, s := range scores {
		if s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 || bestScore < minScore {
		return models.NotFound()
	}
	return models.MatchResult{SongName: labels[best], Score: bestScore}
}

// multiplicity counts how often each hash occurs in query.
func multiplicity(query []uint64) map[uint64]int {
	counts := make(map[uint64]int, len(query))
	for _, h := range query {
		counts[h]++
	}
	return counts
}
