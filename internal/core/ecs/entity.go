package ecs

import "github.com/l1jgo/blueprint/internal/property"

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy to invalidate stale refs.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// EntityPool manages entity allocation with generational indices and a free list.
// Generations start at 1 so no live entity ever has the zero ID.
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 64),
		freeList:    make([]uint32, 0, 16),
	}
}

func (p *EntityPool) Create() EntityID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 1)
	}
	return NewEntityID(idx, p.generations[idx])
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

func (p *EntityPool) Destroy(id EntityID) {
	idx := id.Index()
	if idx >= p.nextIndex {
		return
	}
	if p.generations[idx] != id.Generation() {
		return // already destroyed (stale reference)
	}
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}

// Entity owns an ordered list of components. Components are appended on
// creation and never re-sorted; removal keeps the relative order of the rest.
// Not safe for concurrent use: callers serialise mutations per entity.
type Entity struct {
	id    EntityID
	name  string
	world *World
	slots []slot
}

func (e *Entity) ID() EntityID        { return e.id }
func (e *Entity) Name() string        { return e.name }
func (e *Entity) SetName(name string) { e.name = name }

// World returns the world that owns e, or nil for a detached entity.
func (e *Entity) World() *World { return e.world }

func (e *Entity) Len() int { return len(e.slots) }

// IDs returns component ids in owned order.
func (e *Entity) IDs() []ComponentID {
	ids := make([]ComponentID, len(e.slots))
	for i := range e.slots {
		ids[i] = e.slots[i].id
	}
	return ids
}

// Components returns the components in owned order.
func (e *Entity) Components() []Component {
	out := make([]Component, len(e.slots))
	for i := range e.slots {
		out[i] = e.slots[i].component
	}
	return out
}

func (e *Entity) Component(id ComponentID) (Component, bool) {
	if i := e.index(id); i >= 0 {
		return e.slots[i].component, true
	}
	return nil, false
}

// TypeOf returns the registry type a component was created from.
func (e *Entity) TypeOf(id ComponentID) (TypeID, bool) {
	if i := e.index(id); i >= 0 {
		return e.slots[i].typeID, true
	}
	return "", false
}

func (e *Entity) Has(id ComponentID) bool { return e.index(id) >= 0 }

// Attach appends c under id. An existing component with the same id is
// detached and disposed first.
func (e *Entity) Attach(id ComponentID, typeID TypeID, c Component) {
	e.Detach(id)
	e.slots = append(e.slots, slot{id: id, typeID: typeID, component: c})
	if a, ok := c.(Attacher); ok {
		a.Attach(e)
	}
}

// Detach removes and disposes the component with id. Reports whether one existed.
func (e *Entity) Detach(id ComponentID) bool {
	i := e.index(id)
	if i < 0 {
		return false
	}
	c := e.slots[i].component
	e.slots = append(e.slots[:i], e.slots[i+1:]...)
	if d, ok := c.(Disposer); ok {
		d.Dispose()
	}
	return true
}

// LastApplied returns the property models id was last configured with.
// ok is false when the component does not exist or was never configured.
func (e *Entity) LastApplied(id ComponentID) (base, primary *property.Definitions, ok bool) {
	i := e.index(id)
	if i < 0 || !e.slots[i].applied {
		return nil, nil, false
	}
	s := &e.slots[i]
	return s.base, s.primary, true
}

// MarkApplied records the models id is being configured with.
func (e *Entity) MarkApplied(id ComponentID, base, primary *property.Definitions) {
	if i := e.index(id); i >= 0 {
		s := &e.slots[i]
		s.base, s.primary, s.applied = base, primary, true
	}
}

func (e *Entity) index(id ComponentID) int {
	for i := range e.slots {
		if e.slots[i].id == id {
			return i
		}
	}
	return -1
}

func (e *Entity) disposeAll() {
	for i := range e.slots {
		if d, ok := e.slots[i].component.(Disposer); ok {
			d.Dispose()
		}
	}
	e.slots = nil
}
