package ringabell

import (
	"context"

	"github.com/himanishpuri/ringabell/pkg/models"
)

// Service registers recordings and matches query clips against them. Raw
// input is either a RIFF/WAVE file or headerless 16-bit little-endian PCM.
type Service interface {
	Register(ctx context.Context, name string, raw []byte) (models.Entry, error)
	Search(ctx context.Context, raw []byte) (models.MatchResult, error)
	// SearchJSON is Search serialized as {"songName": ..., "score": ...}.
	SearchJSON(ctx context.Context, raw []byte) (string, error)
	Fingerprint(ctx context.Context, raw []byte) (*Analysis, error)
	Entries() ([]models.Entry, error)
	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
