// Package component holds the behaviour components content can instantiate.
// Each one reads its configuration lazily through property.Eval, so computed
// properties reflect current world state at the time they are read.
package component

import (
	"github.com/l1jgo/blueprint/internal/core/ecs"
	"github.com/l1jgo/blueprint/internal/property"
)

const (
	TypeDescribable ecs.TypeID = "describable"
	TypeInteractive ecs.TypeID = "interactive"
	TypeInventory   ecs.TypeID = "inventory"
	TypeCollectable ecs.TypeID = "collectable"
)

// Actor is a component that offers an action to the player.
type Actor interface {
	ecs.Activatable
	Action() string
	Perform() (string, error)
}

// Concealer is implemented by components that can hide their entity from
// descriptions.
type Concealer interface {
	Conceals() bool
}

// Register adds every component in this package to r.
func Register(r *ecs.Registry) error {
	factories := []struct {
		typeID ecs.TypeID
		f      ecs.Factory
	}{
		{TypeDescribable, func() ecs.Component { return &Describable{} }},
		{TypeInteractive, func() ecs.Component { return &Interactive{} }},
		{TypeInventory, func() ecs.Component { return &Inventory{} }},
		{TypeCollectable, func() ecs.Component { return &Collectable{} }},
	}
	for _, f := range factories {
		if err := r.Register(f.typeID, f.f); err != nil {
			return err
		}
	}
	return nil
}

// active reads an "active" property; absent means active.
func active(raw any) bool {
	if raw == nil {
		return true
	}
	v, err := property.Eval[bool](raw)
	return err == nil && v
}
