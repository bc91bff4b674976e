//go:build js || wasm
// +build js wasm

package index

import "errors"

// SQLite is unavailable in browser builds; the pure-Go driver needs a
// real filesystem and threads.
type SQLite struct{ Memory }

func NewSQLite() (*SQLite, error) {
	return nil, errors.New("sqlite index is not supported on js/wasm")
}
