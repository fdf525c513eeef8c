package ecs

import "github.com/l1jgo/blueprint/internal/property"

// ComponentID is the identity a runtime component inherits from the entry
// that created it. Unique within one entity.
type ComponentID string

// TypeID selects a factory in the Registry.
type TypeID string

// Component is the contract every runtime component satisfies. Configure is
// called on creation and whenever the effective configuration changes; it must
// rebind to props, discarding any earlier configuration, and be safe to call
// repeatedly with the same props.
type Component interface {
	Configure(id ComponentID, props property.Properties)
}

// Attacher is implemented by components that need their owning entity.
// Attach is called once, right after the component is appended.
type Attacher interface {
	Attach(e *Entity)
}

// Disposer is implemented by components holding resources to release when
// they are removed from their entity.
type Disposer interface {
	Dispose()
}

// Activatable components expose a predicate evaluated against current
// entity/world state by presentation systems.
type Activatable interface {
	IsActive() bool
}

// slot is one owned component plus the last-applied property models used for
// change detection. base and primary are compared by pointer only.
type slot struct {
	id        ComponentID
	typeID    TypeID
	component Component
	base      *property.Definitions
	primary   *property.Definitions
	applied   bool
}

// Base can be embedded by components that want to remember their id and
// owning entity without writing the boilerplate.
type Base struct {
	id     ComponentID
	entity *Entity
}

func (b *Base) Attach(e *Entity) { b.entity = e }

// Bind records id; call it from Configure.
func (b *Base) Bind(id ComponentID) { b.id = id }

func (b *Base) ID() ComponentID { return b.id }
func (b *Base) Entity() *Entity { return b.entity }

// World returns the owning entity's world, or nil when detached.
func (b *Base) World() *World {
	if b.entity == nil {
		return nil
	}
	return b.entity.world
}
