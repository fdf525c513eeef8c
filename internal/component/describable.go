package component

import (
	"github.com/l1jgo/blueprint/internal/core/ecs"
	"github.com/l1jgo/blueprint/internal/property"
)

// Describable contributes a line of text to its entity's description.
//
// Properties: description (string), active (bool, default true).
type Describable struct {
	ecs.Base
	props property.Properties
}

func (d *Describable) Configure(id ecs.ComponentID, props property.Properties) {
	d.Bind(id)
	d.props = props
}

func (d *Describable) IsActive() bool { return active(d.props["active"]) }

func (d *Describable) Describe() string {
	return property.EvalOr(d.props["description"], "")
}
