package property

import "sort"

// Definitions maps property names to value definitions.
//
// A Definitions value is an immutable snapshot. Change detection in the
// reconciler compares *Definitions pointers, so every edit must go through
// With/Without (or a constructor) and yield a new pointer. Mutating the map
// behind an existing pointer would never trigger reconfiguration.
//
// A nil *Definitions behaves as an empty model for every read method.
type Definitions struct {
	values map[string]Value
}

// Empty returns a new, empty model. Each call returns a distinct pointer.
func Empty() *Definitions {
	return &Definitions{values: map[string]Value{}}
}

// NewDefinitions builds a model from raw authored values, applying New to each.
func NewDefinitions(raw map[string]any) *Definitions {
	d := &Definitions{values: make(map[string]Value, len(raw))}
	for name, v := range raw {
		d.values[name] = New(v)
	}
	return d
}

// FromValues builds a model from already-constructed values.
func FromValues(values map[string]Value) *Definitions {
	d := &Definitions{values: make(map[string]Value, len(values))}
	for name, v := range values {
		d.values[name] = v
	}
	return d
}

func (d *Definitions) Get(name string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	v, ok := d.values[name]
	return v, ok
}

func (d *Definitions) Has(name string) bool {
	_, ok := d.Get(name)
	return ok
}

func (d *Definitions) Len() int {
	if d == nil {
		return 0
	}
	return len(d.values)
}

// Names returns the property names in sorted order.
func (d *Definitions) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.values))
	for name := range d.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// With returns a copy of d with name set to New(raw).
func (d *Definitions) With(name string, raw any) *Definitions {
	out := d.clone(1)
	out.values[name] = New(raw)
	return out
}

// Without returns a copy of d with the given names removed.
func (d *Definitions) Without(names ...string) *Definitions {
	out := d.clone(0)
	for _, name := range names {
		delete(out.values, name)
	}
	return out
}

func (d *Definitions) clone(extra int) *Definitions {
	out := &Definitions{values: make(map[string]Value, d.Len()+extra)}
	if d != nil {
		for name, v := range d.values {
			out.values[name] = v
		}
	}
	return out
}

// Merge overlays primary on base. Keys only in base are kept; keys in both take
// the primary value. Values are replaced wholesale, never merged deeply.
func Merge(base, primary *Definitions) *Definitions {
	out := base.clone(primary.Len())
	if primary != nil {
		for name, v := range primary.values {
			out.values[name] = v
		}
	}
	return out
}
