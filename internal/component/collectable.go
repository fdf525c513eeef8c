package component

import (
	"errors"
	"fmt"

	"github.com/l1jgo/blueprint/internal/core/ecs"
	"github.com/l1jgo/blueprint/internal/property"
)

var ErrNotCollectable = errors.New("cannot be collected")

// Collectable lets the player move its entity into the world's Inventory.
// It is active only while an Inventory exists and does not hold the entity.
// It takes no properties.
type Collectable struct {
	ecs.Base
}

func (c *Collectable) Configure(id ecs.ComponentID, _ property.Properties) {
	c.Bind(id)
}

func (c *Collectable) inventory() (*Inventory, bool) {
	return ecs.LookupService[*Inventory](c.World())
}

// Collected reports whether the entity is in the inventory.
func (c *Collectable) Collected() bool {
	inv, ok := c.inventory()
	return ok && c.Entity() != nil && inv.Contains(c.Entity().ID())
}

func (c *Collectable) Conceals() bool { return c.Collected() }

func (c *Collectable) IsActive() bool {
	inv, ok := c.inventory()
	return ok && !c.Collected() && !inv.Full()
}

func (c *Collectable) Action() string {
	return fmt.Sprintf("Pick up %s", c.name())
}

func (c *Collectable) Perform() (string, error) {
	inv, err := ecs.Service[*Inventory](c.World())
	if err != nil {
		return "", err
	}
	if c.Entity() == nil || !inv.Add(c.Entity().ID()) {
		return "", fmt.Errorf("%s: %w", c.name(), ErrNotCollectable)
	}
	return fmt.Sprintf("Picked up %s.", c.name()), nil
}

func (c *Collectable) name() string {
	if c.Entity() == nil {
		return ""
	}
	return c.Entity().Name()
}
