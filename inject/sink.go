package inject

import (
	"path/filepath"
	"sort"
	"sync"
)

// OutputKey returns the output key of the unit generated for typeName.
func OutputKey(typeName string) string { return typeName + ".g" }

// Output is one registered output unit.
type Output struct {
	Key  string
	Path string
	Text string
	// Unit is nil for the marker package output.
	Unit *GeneratedUnit
}

// Sink collects outputs. Registration is append-only and safe for concurrent use.
// Keys are not de-duplicated; see Collisions.
type Sink struct {
	mu      sync.Mutex
	outputs []Output
}

// NewSink returns an empty sink.
func NewSink() *Sink { return &Sink{} }

// AddMarkers registers the marker package source under MarkersKey in dir.
func (s *Sink) AddMarkers(dir, text string) {
	s.add(Output{Key: MarkersKey, Path: outputPath(dir, MarkersKey), Text: text})
}

// AddUnit registers a generated unit next to its package sources.
func (s *Sink) AddUnit(u GeneratedUnit) {
	s.add(Output{Key: u.Key(), Path: outputPath(u.Package.Dir, u.Key()), Text: u.Text, Unit: &u})
}

func (s *Sink) add(o Output) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs = append(s.outputs, o)
}

// Outputs returns the registered outputs in registration order.
func (s *Sink) Outputs() []Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Output(nil), s.outputs...)
}

// Collisions returns, sorted, the keys registered more than once.
func (s *Sink) Collisions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := map[string]int{}
	for _, o := range s.outputs {
		count[o.Key]++
	}
	var out []string
	for k, n := range count {
		if n > 1 {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func outputPath(dir, key string) string {
	return filepath.Join(dir, key+".go")
}
