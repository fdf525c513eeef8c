package blueprint

import (
	"github.com/google/uuid"
	"github.com/l1jgo/blueprint/internal/core/ecs"
	"github.com/l1jgo/blueprint/internal/property"
)

type DefinitionID string

type InitializerID string

// Definition is a reusable template: a named, ordered list of default
// component entries.
type Definition struct {
	ID      DefinitionID
	Name    string
	Entries Entries
}

// Initializer is a concrete entity placement. It optionally derives from a
// Definition and carries instance-level entries that add to or override the
// template's. Order positions it among its siblings.
type Initializer struct {
	ID           InitializerID
	Name         string
	DefinitionID DefinitionID // empty: no template
	Order        int
	Entries      Entries
}

func NewDefinition(name string) *Definition {
	return &Definition{ID: DefinitionID(uuid.NewString()), Name: name}
}

func NewInitializer(name string, definitionID DefinitionID) Initializer {
	return Initializer{ID: InitializerID(uuid.NewString()), Name: name, DefinitionID: definitionID}
}

func (d *Definition) Validate() error { return d.Entries.Validate() }

func (i Initializer) Validate() error { return i.Entries.Validate() }

// HasDefinition reports whether i derives from a template.
func (i Initializer) HasDefinition() bool { return i.DefinitionID != "" }

// Definition edits are copy-on-write: the receiver is left untouched and only
// the edited entry receives a new property model.

func (d *Definition) Entry(id ecs.ComponentID) (ComponentEntry, bool) {
	return d.Entries.Find(id)
}

func (d *Definition) WithEntry(entry ComponentEntry) *Definition {
	out := *d
	out.Entries = d.Entries.with(entry)
	return &out
}

func (d *Definition) WithoutEntry(id ecs.ComponentID) *Definition {
	out := *d
	out.Entries = d.Entries.without(id)
	return &out
}

func (d *Definition) SetProperty(entryID ecs.ComponentID, name string, raw any) (*Definition, error) {
	entries, err := d.Entries.update(entryID, func(p *property.Definitions) *property.Definitions {
		return p.With(name, raw)
	})
	if err != nil {
		return nil, err
	}
	out := *d
	out.Entries = entries
	return &out, nil
}

func (d *Definition) ResetProperty(entryID ecs.ComponentID, names ...string) (*Definition, error) {
	entries, err := d.Entries.update(entryID, func(p *property.Definitions) *property.Definitions {
		return p.Without(names...)
	})
	if err != nil {
		return nil, err
	}
	out := *d
	out.Entries = entries
	return &out, nil
}

// Initializer edits return a modified copy.

func (i Initializer) Entry(id ecs.ComponentID) (ComponentEntry, bool) {
	return i.Entries.Find(id)
}

func (i Initializer) WithEntry(entry ComponentEntry) Initializer {
	i.Entries = i.Entries.with(entry)
	return i
}

// WithoutEntry drops an instance entry. Run compose.Expand afterwards so a
// template-origin entry comes back with inherited defaults.
func (i Initializer) WithoutEntry(id ecs.ComponentID) Initializer {
	i.Entries = i.Entries.without(id)
	return i
}

// SetProperty overrides one property of an instance entry.
func (i Initializer) SetProperty(entryID ecs.ComponentID, name string, raw any) (Initializer, error) {
	entries, err := i.Entries.update(entryID, func(p *property.Definitions) *property.Definitions {
		return p.With(name, raw)
	})
	if err != nil {
		return Initializer{}, err
	}
	i.Entries = entries
	return i, nil
}

// ResetProperty drops overrides so the template value shows through again.
func (i Initializer) ResetProperty(entryID ecs.ComponentID, names ...string) (Initializer, error) {
	entries, err := i.Entries.update(entryID, func(p *property.Definitions) *property.Definitions {
		return p.Without(names...)
	})
	if err != nil {
		return Initializer{}, err
	}
	i.Entries = entries
	return i, nil
}
