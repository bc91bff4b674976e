//go:build !js && !wasm
// +build !js,!wasm

package index

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/himanishpuri/ringabell/pkg/models"
	"github.com/himanishpuri/ringabell/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// in-memory only; the database disappears with its connection
	memoryDSN = ":memory:"

	insertBatch = 500
	queryChunk  = 500
)

var errClosed = errors.New("sqlite index is closed")

type entryRow struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	Seq          int    `gorm:"uniqueIndex:idx_seq"`
	Label        string `gorm:"index:idx_label"`
	Fingerprints int
	CreatedAt    time.Time
}

func (entryRow) TableName() string { return "entries" }

// hashRow stores one distinct hash of an entry. SQLite integers are signed,
// so the uint64 hash is kept bit-for-bit as int64.
type hashRow struct {
	ID       uint  `gorm:"primaryKey;autoIncrement"`
	EntrySeq int   `gorm:"index:idx_entry"`
	Hash     int64 `gorm:"index:idx_hash"`
}

func (hashRow) TableName() string { return "hashes" }

// SQLite is an Index held in an in-memory SQLite database through gorm.
type SQLite struct {
	mu  sync.RWMutex
	DB  *gorm.DB
	db  *sql.DB
	len int
}

// NewSQLite opens an empty in-memory database and migrates its tables.
func NewSQLite() (*SQLite, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(memoryDSN), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	// every new connection would see an empty database
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.AutoMigrate(&entryRow{}, &hashRow{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &SQLite{DB: db, db: sqlDB}, nil
}

// Register inserts the entry and its distinct hashes in one transaction.
func (s *SQLite) Register(label string, fingerprints []uint64) (models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DB == nil {
		return models.Entry{}, errClosed
	}

	row := entryRow{
		Seq:          s.len,
		ID:           utils.NewEntryID(),
		Label:        label,
		Fingerprints: len(fingerprints),
		CreatedAt:    time.Now().UTC(),
	}

	seen := make(map[uint64]struct{}, len(fingerprints))
	hashes := make([]hashRow, 0, len(fingerprints))
	for _, h := range fingerprints {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		hashes = append(hashes, hashRow{EntrySeq: row.Seq, Hash: int64(h)})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("creating entry: %w", err)
		}
		if len(hashes) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(hashes, insertBatch).Error; err != nil {
			return fmt.Errorf("batch insert hashes: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Entry{}, err
	}

	s.len++
	return row.entry(), nil
}

func (s *SQLite) Scores(query []uint64) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scores, _, err := s.score(query)
	return scores, err
}

func (s *SQLite) Search(query []uint64, minScore int) (models.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scores, labels, err := s.score(query)
	if err != nil {
		return models.MatchResult{}, err
	}
	return pickBest(labels, scores, minScore), nil
}

// score looks up the distinct query hashes in chunks and credits each hit
// with the number of times the hash occurs in the query.
func (s *SQLite) score(query []uint64) ([]int, []string, error) {
	if s.DB == nil {
		return nil, nil, errClosed
	}

	var rows []entryRow
	if err := s.DB.Order("seq").Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("listing entries: %w", err)
	}
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Label
	}
	scores := make([]int, len(rows))

	counts := multiplicity(query)
	distinct := make([]int64, 0, len(counts))
	for h := range counts {
		distinct = append(distinct, int64(h))
	}

	for start := 0; start < len(distinct); start += queryChunk {
		end := min(start+queryChunk, len(distinct))

		var hits []hashRow
		if err := s.DB.Select("entry_seq", "hash").Where("hash IN ?", distinct[start:end]).Find(&hits).Error; err != nil {
			return nil, nil, fmt.Errorf("batch querying hashes: %w", err)
		}
		for _, hit := range hits {
			if hit.EntrySeq < 0 || hit.EntrySeq >= len(scores) {
				continue
			}
			scores[hit.EntrySeq] += counts[uint64(hit.Hash)]
		}
	}
	return scores, labels, nil
}

func (s *SQLite) Entries() ([]models.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.DB == nil {
		return nil, errClosed
	}
	var rows []entryRow
	if err := s.DB.Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	out := make([]models.Entry, len(rows))
	for i, r := range rows {
		out[i] = r.entry()
	}
	return out, nil
}

func (s *SQLite) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.len
}

// Close drops the database. Later calls fail.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.DB, s.db = nil, nil
	return err
}

func (r entryRow) entry() models.Entry {
	return models.Entry{
		ID:           r.ID,
		Seq:          r.Seq,
		Label:        r.Label,
		Fingerprints: r.Fingerprints,
		RegisteredAt: r.CreatedAt,
	}
}
