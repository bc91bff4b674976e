package models

import "time"

// NotFoundLabel is the song name reported when no entry clears the threshold.
const NotFoundLabel = "Not found"

// Entry describes one registered recording. The fingerprints themselves stay
// inside the index.
type Entry struct {
	ID           string    `json:"id"`           // UUID assigned at registration
	Seq          int       `json:"seq"`          // registration order, starting at 0
	Label        string    `json:"label"`        // caller supplied name, not unique
	Fingerprints int       `json:"fingerprints"` // hashes generated, duplicates included
	RegisteredAt time.Time `json:"registeredAt"`
}

// MatchResult is the outcome of a search. The JSON form is the wire format
// returned to hosts.
type MatchResult struct {
	SongName string `json:"songName"`
	Score    int    `json:"score"`
}

// NotFound is the result of a search that matched nothing.
func NotFound() MatchResult {
	return MatchResult{SongName: NotFoundLabel, Score: 0}
}

// Found reports whether r names a registered entry.
func (r MatchResult) Found() bool {
	return r.Score > 0 && r.SongName != NotFoundLabel
}
