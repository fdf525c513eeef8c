package ecs

import "fmt"

// World is the top-level ECS container. It owns the entity pool and every
// entity created through it, in creation order.
type World struct {
	pool     *EntityPool
	entities map[EntityID]*Entity
	order    []EntityID
}

func NewWorld() *World {
	return &World{
		pool:     NewEntityPool(),
		entities: make(map[EntityID]*Entity, 64),
		order:    make([]EntityID, 0, 64),
	}
}

func (w *World) Pool() *EntityPool { return w.pool }

func (w *World) CreateEntity(name string) *Entity {
	e := &Entity{id: w.pool.Create(), name: name, world: w}
	w.entities[e.id] = e
	w.order = append(w.order, e.id)
	return e
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

func (w *World) Entity(id EntityID) (*Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Entities returns live entities in creation order.
func (w *World) Entities() []*Entity {
	out := make([]*Entity, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.entities[id])
	}
	return out
}

func (w *World) Len() int { return len(w.order) }

// Destroy disposes every component of the entity and releases its id.
func (w *World) Destroy(id EntityID) error {
	e, ok := w.entities[id]
	if !ok {
		return fmt.Errorf("destroy %d: %w", id, ErrEntityNotFound)
	}
	e.disposeAll()
	e.world = nil
	delete(w.entities, id)
	for i, oid := range w.order {
		if oid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.pool.Destroy(id)
	return nil
}

// Service returns the first component of type T found across entities in
// creation order, or ErrServiceNotFound.
func Service[T any](w *World) (T, error) {
	if s, ok := LookupService[T](w); ok {
		return s, nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %T", ErrServiceNotFound, zero)
}

// LookupService is Service for callers that treat absence as a normal outcome.
func LookupService[T any](w *World) (T, bool) {
	var zero T
	if w == nil {
		return zero, false
	}
	for _, id := range w.order {
		if s, ok := First[T](w.entities[id]); ok {
			return s, true
		}
	}
	return zero, false
}
