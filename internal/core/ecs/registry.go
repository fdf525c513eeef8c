package ecs

import (
	"fmt"
	"sort"
)

// Factory produces a fresh, unconfigured component.
type Factory func() Component

// Registry maps component type ids to factories. It is populated at startup
// and treated as read-only while entities are being reconciled.
type Registry struct {
	factories map[TypeID]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[TypeID]Factory, 16),
	}
}

// Register adds a factory for typeID.
func (r *Registry) Register(typeID TypeID, f Factory) error {
	if f == nil {
		return fmt.Errorf("register %q: nil factory", typeID)
	}
	if _, ok := r.factories[typeID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateComponentType, typeID)
	}
	r.factories[typeID] = f
	return nil
}

// MustRegister is Register for startup code; it panics on error.
func (r *Registry) MustRegister(typeID TypeID, f Factory) {
	if err := r.Register(typeID, f); err != nil {
		panic(err)
	}
}

// Resolve returns the factory for typeID or ErrUnknownComponentType.
func (r *Registry) Resolve(typeID TypeID) (Factory, error) {
	f, ok := r.factories[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponentType, typeID)
	}
	return f, nil
}

func (r *Registry) Has(typeID TypeID) bool {
	_, ok := r.factories[typeID]
	return ok
}

func (r *Registry) Len() int { return len(r.factories) }

// Types returns the registered type ids, sorted.
func (r *Registry) Types() []TypeID {
	out := make([]TypeID, 0, len(r.factories))
	for t := range r.factories {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
