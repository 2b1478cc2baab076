// Package mt940 turns MT940 statement text into transaction batches.
package mt940

import (
	"sort"
	"strings"

	"github.com/cleared-dev/mt940convert/internal/model"
)

// DefaultParser is the parser name used when none is configured.
const DefaultParser = "fixed"

// Parser converts raw statement text into a batch. Parsers never fail:
// malformed input degrades to low-fidelity field values.
type Parser interface {
	Parse(raw string) model.Batch
	Name() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate name.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Name())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser name: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser registered under name, or nil.
func (r *Registry) Get(name string) Parser {
	return r.parsers[strings.ToLower(name)]
}

// Names returns the registered parser names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&FixedParser{})
	r.Register(&SwiftParser{})
	return r
}
