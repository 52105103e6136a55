package volume

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Provider supplies decoded slices by identifier. Retrieval and format
// decoding (and any retrying) live behind this interface; the loader
// only sequences and validates.
type Provider interface {
	Slice(ctx context.Context, id string) (Slice, error)
}

// Loader pulls an ordered slice stack from a Provider and validates
// that the stack is geometrically consistent.
type Loader struct {
	provider Provider
	log      *zap.Logger
}

// NewLoader creates a loader backed by the given provider.
func NewLoader(provider Provider, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{provider: provider, log: log}
}

// Load fetches the identified slices in order. It fails with
// ErrEmptyInput for an empty id list and with
// InconsistentGeometryError when any slice's in-plane dimensions differ
// from the first slice's. No other validation happens here.
func (l *Loader) Load(ctx context.Context, ids []string) ([]Slice, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyInput
	}

	slices := make([]Slice, 0, len(ids))
	for i, id := range ids {
		s, err := l.provider.Slice(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetching slice %q: %w", id, err)
		}
		if i > 0 && (s.Width != slices[0].Width || s.Height != slices[0].Height) {
			return nil, &InconsistentGeometryError{
				Index:      i,
				Width:      s.Width,
				Height:     s.Height,
				WantWidth:  slices[0].Width,
				WantHeight: slices[0].Height,
			}
		}
		slices = append(slices, s)
	}

	l.log.Debug("slice stack loaded",
		zap.Int("count", len(slices)),
		zap.Int("width", slices[0].Width),
		zap.Int("height", slices[0].Height),
	)
	return slices, nil
}
