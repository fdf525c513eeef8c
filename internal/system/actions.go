package system

import (
	"errors"
	"fmt"

	"github.com/l1jgo/blueprint/internal/component"
	"github.com/l1jgo/blueprint/internal/core/ecs"
)

var ErrNoSuchAction = errors.New("no such action")

// Action is one currently available player action.
type Action struct {
	Entity    *ecs.Entity
	Component ecs.ComponentID
	Label     string
	actor     component.Actor
}

// Perform runs the action's effect and returns its outcome text.
func (a Action) Perform() (string, error) {
	return a.actor.Perform()
}

// Actions lists the actions of every active Actor in the world. The list is
// a snapshot; performing one action can change which others are available.
func Actions(w *ecs.World) []Action {
	var out []Action
	for _, e := range w.Entities() {
		for _, id := range e.IDs() {
			c, _ := e.Component(id)
			actor, ok := c.(component.Actor)
			if !ok || !actor.IsActive() {
				continue
			}
			out = append(out, Action{Entity: e, Component: id, Label: actor.Action(), actor: actor})
		}
	}
	return out
}

// Perform finds the first available action with the given label and runs it.
func Perform(w *ecs.World, label string) (string, error) {
	for _, a := range Actions(w) {
		if a.Label == label {
			return a.Perform()
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNoSuchAction, label)
}
