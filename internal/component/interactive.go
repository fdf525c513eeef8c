package component

import (
	"fmt"

	"github.com/l1jgo/blueprint/internal/core/ecs"
	"github.com/l1jgo/blueprint/internal/property"
)

// Interactive offers an action whose effect is read when performed. A
// computed effect is evaluated once per Perform, which is how content
// expresses side effects; its result, when a string, is the outcome text.
//
// Properties: action (string), effect (any), active (bool, default true).
type Interactive struct {
	ecs.Base
	props property.Properties
}

func (i *Interactive) Configure(id ecs.ComponentID, props property.Properties) {
	i.Bind(id)
	i.props = props
}

func (i *Interactive) IsActive() bool { return active(i.props["active"]) }

func (i *Interactive) Action() string {
	return property.EvalOr(i.props["action"], "")
}

func (i *Interactive) Perform() (string, error) {
	raw, ok := i.props["effect"]
	if !ok || raw == nil {
		return "", nil
	}
	if g, ok := raw.(property.Getter); ok {
		v, err := g()
		if err != nil {
			return "", fmt.Errorf("perform %q: %w", i.ID(), err)
		}
		raw = v
	}
	s, _ := raw.(string)
	return s, nil
}
