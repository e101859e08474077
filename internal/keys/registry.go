package keys

import (
	"errors"
	"fmt"
	"unicode"
)

var (
	ErrInvalidDefinition = errors.New("invalid key definition")
	ErrDuplicateID       = errors.New("duplicate key id")
	ErrDuplicateTrigger  = errors.New("duplicate key trigger")
)

// Registry is the fixed, ordered table of keys. It is built once and never
// mutated, so it is safe to share.
type Registry struct {
	defs      []Definition
	byID      map[string]int
	byTrigger map[rune]int
}

// NewRegistry validates defs and indexes them by id and trigger.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:      make([]Definition, 0, len(defs)),
		byID:      make(map[string]int, len(defs)),
		byTrigger: make(map[rune]int, len(defs)),
	}
	for i, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidDefinition, i)
		}
		if d.Trigger == 0 {
			return nil, fmt.Errorf("%w: key %s has no trigger", ErrInvalidDefinition, d.ID)
		}
		// control characters (tab, escape, ctrl+c) drive the front-ends
		if !unicode.IsPrint(d.Trigger) {
			return nil, fmt.Errorf("%w: key %s trigger %q is not printable", ErrInvalidDefinition, d.ID, d.Trigger)
		}
		if d.Variant != White && d.Variant != Black {
			return nil, fmt.Errorf("%w: key %s has %s", ErrInvalidDefinition, d.ID, d.Variant)
		}
		if _, ok := r.byID[d.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
		}
		if j, ok := r.byTrigger[d.Trigger]; ok {
			return nil, fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateTrigger, d.Trigger, r.defs[j].ID, d.ID)
		}
		r.byID[d.ID] = len(r.defs)
		r.byTrigger[d.Trigger] = len(r.defs)
		r.defs = append(r.defs, d)
	}
	return r, nil
}

// MustRegistry is NewRegistry for static tables.
func MustRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// LookupByTrigger resolves a keyboard character. A miss is the common case:
// most keystrokes are not piano triggers.
func (r *Registry) LookupByTrigger(c rune) (Definition, bool) {
	i, ok := r.byTrigger[c]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

func (r *Registry) Lookup(id string) (Definition, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Index returns the position of id in render order, or -1.
func (r *Registry) Index(id string) int {
	i, ok := r.byID[id]
	if !ok {
		return -1
	}
	return i
}

// All returns the keys in render order. The slice is a copy.
func (r *Registry) All() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

func (r *Registry) Len() int { return len(r.defs) }
