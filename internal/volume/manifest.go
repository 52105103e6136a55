package volume

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes a study on disk: a stack of raw little-endian
// uint16 slice files plus the geometry the image service would normally
// deliver alongside decoded pixels.
type Manifest struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	RowSpacing    float64 `yaml:"row_spacing"`
	ColumnSpacing float64 `yaml:"column_spacing"`

	Slices []ManifestSlice `yaml:"slices"`
}

// ManifestSlice is one slice entry. Position is optional; when absent
// the assembler falls back to unit z-spacing.
type ManifestSlice struct {
	File     string   `yaml:"file"`
	Position *float64 `yaml:"position"`
}

// LoadManifest reads and validates a study manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("manifest %s: invalid slice dimensions %dx%d", path, m.Width, m.Height)
	}
	return &m, nil
}

// SliceIDs returns the slice identifiers (file names) in stack order.
func (m *Manifest) SliceIDs() []string {
	ids := make([]string, len(m.Slices))
	for i, s := range m.Slices {
		ids[i] = s.File
	}
	return ids
}

// FileProvider serves manifest slices from disk. It stands in for the
// external image service when running the viewer against local data.
type FileProvider struct {
	dir     string
	geom    *Manifest
	entries map[string]ManifestSlice
}

// NewFileProvider creates a provider rooted at the manifest's
// directory.
func NewFileProvider(manifestPath string, m *Manifest) *FileProvider {
	entries := make(map[string]ManifestSlice, len(m.Slices))
	for _, s := range m.Slices {
		entries[s.File] = s
	}
	return &FileProvider{
		dir:     filepath.Dir(manifestPath),
		geom:    m,
		entries: entries,
	}
}

// Slice reads and decodes one raw uint16 slice file.
func (p *FileProvider) Slice(ctx context.Context, id string) (Slice, error) {
	if err := ctx.Err(); err != nil {
		return Slice{}, err
	}

	entry, ok := p.entries[id]
	if !ok {
		return Slice{}, fmt.Errorf("slice %q not in manifest", id)
	}

	data, err := os.ReadFile(filepath.Join(p.dir, entry.File))
	if err != nil {
		return Slice{}, fmt.Errorf("reading slice %q: %w", id, err)
	}
	if len(data)%2 != 0 {
		return Slice{}, fmt.Errorf("slice %q: odd byte count %d", id, len(data))
	}

	pixels := make([]uint16, len(data)/2)
	for i := range pixels {
		pixels[i] = binary.LittleEndian.Uint16(data[i*2:])
	}

	s := Slice{
		Pixels:        pixels,
		Width:         p.geom.Width,
		Height:        p.geom.Height,
		RowSpacing:    p.geom.RowSpacing,
		ColumnSpacing: p.geom.ColumnSpacing,
	}
	if entry.Position != nil {
		s.Position = *entry.Position
		s.HasPosition = true
	}
	return s, nil
}
