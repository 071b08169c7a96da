// Package manifest records the outputs written by a generate run so that a
// later run can tell its own stale files apart from hand-edited ones.
package manifest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// FormatVersion is bumped whenever the encoded layout changes.
const FormatVersion = 1

// ErrFormat is returned for manifests written by an incompatible version.
var ErrFormat = errors.New("unsupported manifest format")

// Manifest maps module-relative output paths to the sha256 of their content.
type Manifest struct {
	Format int               `msgpack:"format"`
	Tool   string            `msgpack:"tool"`
	Files  map[string]string `msgpack:"files"`
}

// New returns an empty manifest stamped with the tool version.
func New(tool string) *Manifest {
	return &Manifest{Format: FormatVersion, Tool: tool, Files: map[string]string{}}
}

// Hash returns the hex sha256 of b.
func Hash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Record stores the hash of content under rel.
func (m *Manifest) Record(rel string, content []byte) {
	if m.Files == nil {
		m.Files = map[string]string{}
	}
	m.Files[rel] = Hash(content)
}

// Has reports whether rel is recorded.
func (m *Manifest) Has(rel string) bool {
	_, ok := m.Files[rel]
	return ok
}

// Untouched reports whether content still matches what was recorded for rel.
func (m *Manifest) Untouched(rel string, content []byte) bool {
	h, ok := m.Files[rel]
	return ok && h == Hash(content)
}

// Paths returns the recorded paths in sorted order.
func (m *Manifest) Paths() []string {
	out := make([]string, 0, len(m.Files))
	for p := range m.Files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Stale returns, sorted, the paths recorded in m but absent from next.
func (m *Manifest) Stale(next *Manifest) []string {
	var out []string
	for _, p := range m.Paths() {
		if !next.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

// Marshal encodes m with sorted map keys, so equal manifests encode to equal bytes.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a manifest produced by Marshal.
func Unmarshal(b []byte) (*Manifest, error) {
	var m Manifest
	if err := msgpack.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if m.Format != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrFormat, m.Format)
	}
	if m.Files == nil {
		m.Files = map[string]string{}
	}
	return &m, nil
}

// Load reads the manifest at path. A missing file yields an empty manifest.
func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(""), nil
	}
	if err != nil {
		return nil, err
	}
	return Unmarshal(b)
}
