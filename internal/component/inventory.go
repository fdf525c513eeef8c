package component

import (
	"slices"

	"github.com/l1jgo/blueprint/internal/core/ecs"
	"github.com/l1jgo/blueprint/internal/property"
)

// Inventory is a world service holding collected entities. Content places it
// on a single entity; Collectable finds it with ecs.LookupService.
//
// Properties: capacity (int, 0 = unlimited).
type Inventory struct {
	ecs.Base
	capacity int
	items    []ecs.EntityID
}

// Configure keeps collected items; only the capacity is rebound.
func (inv *Inventory) Configure(id ecs.ComponentID, props property.Properties) {
	inv.Bind(id)
	inv.capacity = property.EvalOr(props["capacity"], 0)
}

// Add stores id. It reports false when id is already held or the inventory
// is full.
func (inv *Inventory) Add(id ecs.EntityID) bool {
	if inv.Contains(id) || inv.Full() {
		return false
	}
	inv.items = append(inv.items, id)
	return true
}

func (inv *Inventory) Contains(id ecs.EntityID) bool {
	return slices.Contains(inv.items, id)
}

func (inv *Inventory) Full() bool {
	return inv.capacity > 0 && len(inv.items) >= inv.capacity
}

// Items returns collected entity ids in pick-up order.
func (inv *Inventory) Items() []ecs.EntityID {
	return slices.Clone(inv.items)
}
