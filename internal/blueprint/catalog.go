package blueprint

import "sort"

// Catalog holds the authored content: definitions and initializers by id.
// It is plain data with no locking; the authoring layer owns it.
type Catalog struct {
	definitions  map[DefinitionID]*Definition
	initializers map[InitializerID]Initializer
}

func NewCatalog() *Catalog {
	return &Catalog{
		definitions:  make(map[DefinitionID]*Definition),
		initializers: make(map[InitializerID]Initializer),
	}
}

// PutDefinition adds or replaces a definition.
func (c *Catalog) PutDefinition(d *Definition) {
	c.definitions[d.ID] = d
}

// Definition implements compose.DefinitionLookup.
func (c *Catalog) Definition(id DefinitionID) (*Definition, bool) {
	d, ok := c.definitions[id]
	return d, ok
}

// RemoveDefinition deletes a definition even if initializers still reference
// it; expanding those initializers fails afterwards.
func (c *Catalog) RemoveDefinition(id DefinitionID) {
	delete(c.definitions, id)
}

// Definitions returns all definitions sorted by id.
func (c *Catalog) Definitions() []*Definition {
	out := make([]*Definition, 0, len(c.definitions))
	for _, d := range c.definitions {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PutInitializer adds or replaces an initializer without touching sibling order.
func (c *Catalog) PutInitializer(i Initializer) {
	c.initializers[i.ID] = i
}

func (c *Catalog) Initializer(id InitializerID) (Initializer, bool) {
	i, ok := c.initializers[id]
	return i, ok
}

func (c *Catalog) RemoveInitializer(id InitializerID) {
	delete(c.initializers, id)
}

// Initializers returns every initializer sorted by Order, ties broken by id.
func (c *Catalog) Initializers() []Initializer {
	out := make([]Initializer, 0, len(c.initializers))
	for _, i := range c.initializers {
		out = append(out, i)
	}
	sortInitializers(out)
	return out
}

// Referencing returns the ids of initializers that derive from defID.
func (c *Catalog) Referencing(defID DefinitionID) []InitializerID {
	var out []InitializerID
	for _, i := range c.Initializers() {
		if i.DefinitionID == defID {
			out = append(out, i.ID)
		}
	}
	return out
}

// Place stores i and renumbers all initializers so that i sits at index
// i.Order among them.
func (c *Catalog) Place(i Initializer) {
	for _, r := range Reorder(c.Initializers(), i) {
		c.initializers[r.ID] = r
	}
}

// CompareInitializers orders initializers by Order.
func CompareInitializers(a, b Initializer) int {
	switch {
	case a.Order < b.Order:
		return -1
	case a.Order > b.Order:
		return 1
	default:
		return 0
	}
}

func sortInitializers(list []Initializer) {
	sort.SliceStable(list, func(i, j int) bool {
		if c := CompareInitializers(list[i], list[j]); c != 0 {
			return c < 0
		}
		return list[i].ID < list[j].ID
	})
}

// Reorder inserts moved among list (replacing any entry with the same id) at
// index moved.Order, clamped to the list bounds, and renumbers Order to 0..n-1.
func Reorder(list []Initializer, moved Initializer) []Initializer {
	siblings := make([]Initializer, 0, len(list)+1)
	for _, i := range list {
		if i.ID != moved.ID {
			siblings = append(siblings, i)
		}
	}
	sortInitializers(siblings)

	pos := moved.Order
	if pos < 0 {
		pos = 0
	}
	if pos > len(siblings) {
		pos = len(siblings)
	}
	out := make([]Initializer, 0, len(siblings)+1)
	out = append(out, siblings[:pos]...)
	out = append(out, moved)
	out = append(out, siblings[pos:]...)
	for n := range out {
		out[n].Order = n
	}
	return out
}
