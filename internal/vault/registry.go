package vault

import "github.com/atomicstack/vault-tui/internal/logging/events"

// Registry is the flat list of known note paths, relative to the vault root.
type Registry struct {
	paths []string
	index map[string]struct{}
}

// NewRegistry builds a registry from paths, dropping duplicates.
func NewRegistry(paths []string) *Registry {
	r := &Registry{index: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		r.Add(p)
	}
	return r
}

// Scan rebuilds a registry by walking the store.
func Scan(store *Store) (*Registry, error) {
	paths, err := store.List()
	if err != nil {
		return nil, err
	}
	events.Vault.Scan(store.Root(), len(paths))
	return NewRegistry(paths), nil
}

// Paths returns a copy of the registered paths in registration order.
func (r *Registry) Paths() []string {
	return append([]string(nil), r.paths...)
}

// Len returns the number of registered paths.
func (r *Registry) Len() int {
	return len(r.paths)
}

// Contains reports whether p is registered.
func (r *Registry) Contains(p string) bool {
	_, ok := r.index[Clean(p)]
	return ok
}

// Add appends p unless it is already present.
func (r *Registry) Add(p string) bool {
	p = Clean(p)
	if _, ok := r.index[p]; ok {
		return false
	}
	r.index[p] = struct{}{}
	r.paths = append(r.paths, p)
	return true
}

// Remove drops p from the registry.
func (r *Registry) Remove(p string) bool {
	p = Clean(p)
	if _, ok := r.index[p]; !ok {
		return false
	}
	delete(r.index, p)
	for i, existing := range r.paths {
		if existing == p {
			r.paths = append(r.paths[:i], r.paths[i+1:]...)
			break
		}
	}
	return true
}

// Under returns the registered paths inside dir.
func (r *Registry) Under(dir string) []string {
	prefix := Clean(dir) + "/"
	var out []string
	for _, p := range r.paths {
		if len(p) > len(prefix) && p[:len(prefix)] == prefix {
			out = append(out, p)
		}
	}
	return out
}
