package blueprint

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/l1jgo/blueprint/internal/core/ecs"
	"github.com/l1jgo/blueprint/internal/property"
)

var (
	ErrDuplicateEntryID = errors.New("duplicate component entry id")
	ErrEmptyTypeID      = errors.New("component entry has no type")
	ErrEntryNotFound    = errors.New("component entry not found")
)

// ComponentEntry pairs a stable identity with a component type and the
// property model it should be configured with.
type ComponentEntry struct {
	ID         ecs.ComponentID
	TypeID     ecs.TypeID
	Properties *property.Definitions
}

// NewEntry creates an entry with a fresh random id.
func NewEntry(typeID ecs.TypeID, props *property.Definitions) ComponentEntry {
	if props == nil {
		props = property.Empty()
	}
	return ComponentEntry{
		ID:         ecs.ComponentID(uuid.NewString()),
		TypeID:     typeID,
		Properties: props,
	}
}

// Entries is an ordered entry list. Ids are expected to be unique.
type Entries []ComponentEntry

// IDs returns entry ids in order.
func (es Entries) IDs() []ecs.ComponentID {
	ids := make([]ecs.ComponentID, len(es))
	for i := range es {
		ids[i] = es[i].ID
	}
	return ids
}

// Find returns the first entry with id.
func (es Entries) Find(id ecs.ComponentID) (ComponentEntry, bool) {
	for i := range es {
		if es[i].ID == id {
			return es[i], true
		}
	}
	return ComponentEntry{}, false
}

func (es Entries) index(id ecs.ComponentID) int {
	for i := range es {
		if es[i].ID == id {
			return i
		}
	}
	return -1
}

// Validate checks that ids are unique and every entry names a type.
func (es Entries) Validate() error {
	seen := make(map[ecs.ComponentID]struct{}, len(es))
	for _, e := range es {
		if e.TypeID == "" {
			return fmt.Errorf("entry %q: %w", e.ID, ErrEmptyTypeID)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateEntryID, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// with returns a copy with entry replacing the one of the same id, or appended.
func (es Entries) with(entry ComponentEntry) Entries {
	out := make(Entries, len(es), len(es)+1)
	copy(out, es)
	if i := out.index(entry.ID); i >= 0 {
		out[i] = entry
		return out
	}
	return append(out, entry)
}

func (es Entries) without(id ecs.ComponentID) Entries {
	out := make(Entries, 0, len(es))
	for _, e := range es {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// update replaces the properties of one entry through fn.
func (es Entries) update(id ecs.ComponentID, fn func(*property.Definitions) *property.Definitions) (Entries, error) {
	i := es.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, id)
	}
	out := make(Entries, len(es))
	copy(out, es)
	out[i].Properties = fn(out[i].Properties)
	return out, nil
}
