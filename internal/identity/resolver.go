package identity

import "github.com/google/uuid"

// Resolver assigns a stable synthetic identifier to each natural-key name it
// sees. Identifiers are stable for the lifetime of the Resolver only; a new
// Resolver assigns new ids to the same names. Not safe for concurrent use.
type Resolver struct {
	ids   map[string]string
	newID func() string
}

// NewResolver returns an empty Resolver that mints UUIDv4 strings.
func NewResolver() *Resolver {
	return &Resolver{
		ids:   make(map[string]string),
		newID: uuid.NewString,
	}
}

// Resolve returns the identifier for name, minting one on first sight.
func (r *Resolver) Resolve(name string) string {
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := r.newID()
	r.ids[name] = id
	return id
}

// Len returns the number of distinct names resolved so far.
func (r *Resolver) Len() int {
	return len(r.ids)
}
