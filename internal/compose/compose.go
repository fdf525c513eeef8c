// Package compose normalises an initializer against its definition so that
// reconciliation never needs the definition to decide membership.
package compose

import (
	"errors"
	"fmt"

	"github.com/l1jgo/blueprint/internal/blueprint"
	"github.com/l1jgo/blueprint/internal/core/ecs"
	"github.com/l1jgo/blueprint/internal/property"
)

// ErrMissingReferencedDefinition means an initializer names a definition that
// does not exist. Fatal for expansion.
var ErrMissingReferencedDefinition = errors.New("referenced definition not found")

// DefinitionLookup resolves definitions by id. *blueprint.Catalog implements it.
type DefinitionLookup interface {
	Definition(id blueprint.DefinitionID) (*blueprint.Definition, bool)
}

// Expand returns a copy of init whose entries cover every id in the union of
// the definition's entries and init's own. Template order comes first, then
// instance-only ids in their own order; duplicates keep the first occurrence.
// Existing instance entries are kept as authored, even when their property
// model is empty. Template ids with no instance entry get a synthesised entry
// with the template's type and a fresh empty model.
//
// Expand(def, Expand(def, i)) equals Expand(def, i). It has to be re-run
// whenever def changes or an instance entry is removed.
func Expand(def *blueprint.Definition, init blueprint.Initializer) blueprint.Initializer {
	var template blueprint.Entries
	if def != nil {
		template = def.Entries
	}

	own := make(map[ecs.ComponentID]blueprint.ComponentEntry, len(init.Entries))
	for _, e := range init.Entries {
		if _, seen := own[e.ID]; !seen {
			own[e.ID] = e
		}
	}

	union := make([]ecs.ComponentID, 0, len(template)+len(init.Entries))
	inUnion := make(map[ecs.ComponentID]struct{}, cap(union))
	add := func(id ecs.ComponentID) {
		if _, ok := inUnion[id]; !ok {
			inUnion[id] = struct{}{}
			union = append(union, id)
		}
	}
	for _, e := range template {
		add(e.ID)
	}
	for _, e := range init.Entries {
		add(e.ID)
	}

	entries := make(blueprint.Entries, 0, len(union))
	for _, id := range union {
		if e, ok := own[id]; ok {
			entries = append(entries, e)
			continue
		}
		base, _ := template.Find(id)
		entries = append(entries, blueprint.ComponentEntry{
			ID:         id,
			TypeID:     base.TypeID,
			Properties: property.Empty(),
		})
	}

	out := init
	out.Entries = entries
	return out
}

// ExpandFrom resolves init's definition through lookup and expands against it.
// It also returns the definition used (nil for definition-less initializers).
func ExpandFrom(lookup DefinitionLookup, init blueprint.Initializer) (blueprint.Initializer, *blueprint.Definition, error) {
	if !init.HasDefinition() {
		return Expand(nil, init), nil, nil
	}
	def, ok := lookup.Definition(init.DefinitionID)
	if !ok {
		return blueprint.Initializer{}, nil, fmt.Errorf("initializer %q: %w: %q",
			init.ID, ErrMissingReferencedDefinition, init.DefinitionID)
	}
	return Expand(def, init), def, nil
}

// Create expands a new initializer, stores it in the catalog and renumbers
// sibling order around it. The catalog is untouched on error.
func Create(catalog *blueprint.Catalog, init blueprint.Initializer) (blueprint.Initializer, error) {
	expanded, _, err := ExpandFrom(catalog, init)
	if err != nil {
		return blueprint.Initializer{}, err
	}
	catalog.Place(expanded)
	stored, _ := catalog.Initializer(expanded.ID)
	return stored, nil
}
