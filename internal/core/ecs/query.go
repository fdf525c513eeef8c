package ecs

// First returns the first component on e that is a T.
func First[T any](e *Entity) (T, bool) {
	for i := range e.slots {
		if c, ok := e.slots[i].component.(T); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns every component on e that is a T, in owned order.
func Filter[T any](e *Entity) []T {
	var out []T
	for i := range e.slots {
		if c, ok := e.slots[i].component.(T); ok {
			out = append(out, c)
		}
	}
	return out
}

// Each calls fn for every component of type T in the world, entity by entity
// in creation order and component by component in owned order.
func Each[T any](w *World, fn func(*Entity, T)) {
	for _, id := range w.order {
		e := w.entities[id]
		for i := range e.slots {
			if c, ok := e.slots[i].component.(T); ok {
				fn(e, c)
			}
		}
	}
}
