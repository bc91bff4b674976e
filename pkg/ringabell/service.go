package ringabell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/himanishpuri/ringabell/pkg/logger"
	"github.com/himanishpuri/ringabell/pkg/models"
	"github.com/himanishpuri/ringabell/pkg/ringabell/audio"
	"github.com/himanishpuri/ringabell/pkg/ringabell/fingerprint"
	"github.com/himanishpuri/ringabell/pkg/ringabell/index"
	"github.com/mdobak/go-xerrors"
)

// Analysis is the full pipeline output for one clip.
type Analysis struct {
	SampleRate int
	Duration   float64 // seconds
	Samples    int
	Frames     int
	Peaks      []fingerprint.Peak
	Hashes     []uint64
}

// service is the default implementation of the Service interface.
type service struct {
	index  index.Index
	log    Logger
	config *Config
}

// NewService creates a Service with an empty index unless WithIndex is given.
func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", cfg.SampleRate)
	}
	if cfg.MinScore < 0 {
		return nil, fmt.Errorf("min score must not be negative, got %d", cfg.MinScore)
	}
	if err := cfg.Pipeline.Validate(); err != nil {
		return nil, classify("new service", err)
	}

	// Set default logger if none provided
	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}
	if cfg.Index == nil {
		cfg.Index = index.NewMemory()
	}

	return &service{
		index:  cfg.Index,
		log:    cfg.Logger,
		config: cfg,
	}, nil
}

// analyze decodes raw and runs it through the fingerprint pipeline.
func (s *service) analyze(ctx context.Context, raw []byte) (*Analysis, error) {
	// 1. Decode container or raw PCM
	clip, err := audio.Decode(raw, s.config.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("audio decoding failed: %w", err)
	}
	s.log.Debugf("Decoded %d samples at %d Hz (%.2fs)", len(clip.Samples), clip.SampleRate, clip.Duration)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 2. Spectrogram, peaks and hashes
	res, err := fingerprint.Compute(clip.Samples, clip.SampleRate, clip.Duration, s.config.Pipeline, s.config.Transformer)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Extracted %d peaks from %d frames, %d fingerprints", len(res.Peaks), res.Frames, len(res.Hashes))

	return &Analysis{
		SampleRate: clip.SampleRate,
		Duration:   clip.Duration,
		Samples:    len(clip.Samples),
		Frames:     res.Frames,
		Peaks:      res.Peaks,
		Hashes:     res.Hashes,
	}, nil
}

// Register fingerprints raw and appends it to the index under name. Nothing
// is appended unless the whole pipeline succeeds.
func (s *service) Register(ctx context.Context, name string, raw []byte) (models.Entry, error) {
	s.log.Infof("Registering %q (%d bytes)", name, len(raw))

	a, err := s.analyze(ctx, raw)
	if err != nil {
		return models.Entry{}, s.fail("register", err)
	}
	if err := ctx.Err(); err != nil {
		return models.Entry{}, s.fail("register", err)
	}

	entry, err := s.index.Register(name, a.Hashes)
	if err != nil {
		return models.Entry{}, s.fail("register", fmt.Errorf("index append failed: %w", err))
	}

	s.log.Infof("Registered %q as entry %d (%s)", name, entry.Seq, entry.ID)
	return entry, nil
}

// Search matches raw against every registered entry. A clip that matches
// nothing yields models.NotFound and a nil error.
func (s *service) Search(ctx context.Context, raw []byte) (models.MatchResult, error) {
	s.log.Infof("Searching %d bytes against %d entries", len(raw), s.index.Len())

	a, err := s.analyze(ctx, raw)
	if err != nil {
		return models.MatchResult{}, s.fail("search", err)
	}
	if err := ctx.Err(); err != nil {
		return models.MatchResult{}, s.fail("search", err)
	}

	result, err := s.index.Search(a.Hashes, s.config.MinScore)
	if err != nil {
		return models.MatchResult{}, s.fail("search", fmt.Errorf("index lookup failed: %w", err))
	}

	if result.Found() {
		s.log.Infof("Matched %q with score %d", result.SongName, result.Score)
	} else {
		s.log.Infof("No entry reached min score %d", s.config.MinScore)
	}
	return result, nil
}

func (s *service) SearchJSON(ctx context.Context, raw []byte) (string, error) {
	result, err := s.Search(ctx, raw)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(result)
	if err != nil {
		return "", s.fail("search", fmt.Errorf("encoding result: %w", err))
	}
	return string(b), nil
}

// Fingerprint runs the pipeline without touching the index.
func (s *service) Fingerprint(ctx context.Context, raw []byte) (*Analysis, error) {
	a, err := s.analyze(ctx, raw)
	if err != nil {
		return nil, s.fail("fingerprint", err)
	}
	return a, nil
}

func (s *service) Entries() ([]models.Entry, error) {
	entries, err := s.index.Entries()
	if err != nil {
		return nil, s.fail("entries", err)
	}
	return entries, nil
}

func (s *service) Close() error {
	return s.index.Close()
}

// fail classifies err, logs it and returns it. Cancellation is passed through
// unclassified.
func (s *service) fail(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.log.Warnf("%s cancelled: %v", op, err)
		return err
	}

	err = classify(op, err)
	s.log.Warnf("%s failed: %v", op, err)
	s.log.Debugf("%s", xerrors.Sprint(xerrors.New(err)))
	return err
}
