package testutil

import "github.com/plzcli/plz/internal/args"

// Resolver is a map-backed argument resolver for tests that need an
// invocation scope without parsing a real command line.
type Resolver struct {
	Values map[string]string
	Lists  map[string][]string
}

var _ args.Resolver = (*Resolver)(nil)

// Get returns the single value for key, if present.
func (r *Resolver) Get(key string) (string, bool) {
	v, ok := r.Values[key]
	return v, ok
}

// GetMany returns the value list for key, falling back to the single value.
func (r *Resolver) GetMany(key string) ([]string, bool) {
	if vs, ok := r.Lists[key]; ok {
		return vs, true
	}
	if v, ok := r.Values[key]; ok {
		return []string{v}, true
	}
	return nil, false
}
