package volume

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// stubProvider serves canned slices and records fetch order.
type stubProvider struct {
	slices  map[string]Slice
	fetched []string
	failOn  string
}

func (p *stubProvider) Slice(ctx context.Context, id string) (Slice, error) {
	p.fetched = append(p.fetched, id)
	if id == p.failOn {
		return Slice{}, fmt.Errorf("backend unavailable")
	}
	s, ok := p.slices[id]
	if !ok {
		return Slice{}, fmt.Errorf("unknown slice %q", id)
	}
	return s, nil
}

func TestLoaderEmptyInput(t *testing.T) {
	l := NewLoader(&stubProvider{}, nil)

	_, err := l.Load(context.Background(), nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestLoaderPreservesOrder(t *testing.T) {
	p := &stubProvider{slices: map[string]Slice{
		"a": uniformSlice(2, 2, 1),
		"b": uniformSlice(2, 2, 2),
		"c": uniformSlice(2, 2, 3),
	}}
	l := NewLoader(p, nil)

	slices, err := l.Load(context.Background(), []string{"c", "a", "b"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []uint16{3, 1, 2}
	for i, s := range slices {
		if s.Pixels[0] != want[i] {
			t.Errorf("slice %d: got value %d, want %d", i, s.Pixels[0], want[i])
		}
	}
}

func TestLoaderInconsistentGeometry(t *testing.T) {
	p := &stubProvider{slices: map[string]Slice{
		"a": uniformSlice(4, 4, 0),
		"b": uniformSlice(4, 8, 0),
	}}
	l := NewLoader(p, nil)

	_, err := l.Load(context.Background(), []string{"a", "b"})

	var geo *InconsistentGeometryError
	if !errors.As(err, &geo) {
		t.Fatalf("expected InconsistentGeometryError, got %v", err)
	}
	if geo.Index != 1 || geo.Height != 8 || geo.WantHeight != 4 {
		t.Errorf("geometry detail: got %+v", geo)
	}
}

func TestLoaderFetchFailure(t *testing.T) {
	p := &stubProvider{
		slices: map[string]Slice{"a": uniformSlice(2, 2, 0)},
		failOn: "b",
	}
	l := NewLoader(p, nil)

	_, err := l.Load(context.Background(), []string{"a", "b"})
	if err == nil {
		t.Fatal("expected fetch error")
	}
	// Fetch stops at the failing slice
	if len(p.fetched) != 2 {
		t.Errorf("fetched %d slices, want 2", len(p.fetched))
	}
}
