package index

import (
	"sync"
	"time"

	"github.com/himanishpuri/ringabell/pkg/models"
	"github.com/himanishpuri/ringabell/pkg/utils"
)

type memoryEntry struct {
	meta models.Entry
	set  map[uint64]struct{}
}

// Memory keeps every entry as a hash set behind a read/write lock.
type Memory struct {
	mu      sync.RWMutex
	entries []memoryEntry
}

// NewMemory returns an empty in-process index.
func NewMemory() *Memory {
	return &Memory{}
}

// Register assigns the next sequence number and stores the distinct hashes.
func (m *Memory) Register(label string, fingerprints []uint64) (models.Entry, error) {
	set := make(map[uint64]struct{}, len(fingerprints))
	for _, h := range fingerprints {
		set[h] = struct{}{}
	}

	meta := models.Entry{
		ID:           utils.NewEntryID(),
		Label:        label,
		Fingerprints: len(fingerprints),
		RegisteredAt: time.Now().UTC(),
	}

	m.mu.Lock()
	meta.Seq = len(m.entries)
	m.entries = append(m.entries, memoryEntry{meta: meta, set: set})
	m.mu.Unlock()

	return meta, nil
}

func (m *Memory) Scores(query []uint64) ([]int, error) {
	scores, _ := m.score(query)
	return scores, nil
}

func (m *Memory) Search(query []uint64, minScore int) (models.MatchResult, error) {
	scores, labels := m.score(query)
	return pickBest(labels, scores, minScore), nil
}

// score walks the query once per entry; every query hash present in the
// entry's set counts, repeats included.
func (m *Memory) score(query []uint64) ([]int, []string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	scores := make([]int, len(m.entries))
	labels := make([]string, len(m.entries))
	for i, e := range m.entries {
		labels[i] = e.meta.Label
		for _, h := range query {
			if _, ok := e.set[h]; ok {
				scores[i]++
			}
		}
	}
	return scores, labels
}

func (m *Memory) Entries() ([]models.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.meta
	}
	return out, nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) Close() error { return nil }
