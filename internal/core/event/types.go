package event

import "github.com/l1jgo/blueprint/internal/core/ecs"

// Reconciliation lifecycle events.

type ComponentCreated struct {
	EntityID    ecs.EntityID
	ComponentID ecs.ComponentID
	TypeID      ecs.TypeID
}

type ComponentRemoved struct {
	EntityID    ecs.EntityID
	ComponentID ecs.ComponentID
}

type ComponentConfigured struct {
	EntityID    ecs.EntityID
	ComponentID ecs.ComponentID
}

// EntityReconciled is emitted once per successful pass.
type EntityReconciled struct {
	EntityID   ecs.EntityID
	Name       string
	Created    int
	Removed    int
	Configured int
}
