package reconcile

import (
	"fmt"

	"github.com/l1jgo/blueprint/internal/blueprint"
	"github.com/l1jgo/blueprint/internal/core/ecs"
	"github.com/l1jgo/blueprint/internal/core/event"
	"github.com/l1jgo/blueprint/internal/property"
	"go.uber.org/zap"
)

// Reconciler brings runtime entities in line with effective entry lists.
// Passes are synchronous; callers must not reconcile the same entity from
// more than one goroutine at a time.
type Reconciler struct {
	registry *ecs.Registry
	bus      *event.Bus
	log      *zap.Logger
}

type Option func(*Reconciler)

// WithBus makes the reconciler emit lifecycle events to b.
func WithBus(b *event.Bus) Option {
	return func(r *Reconciler) { r.bus = b }
}

func WithLogger(log *zap.Logger) Option {
	return func(r *Reconciler) { r.log = log }
}

func New(registry *ecs.Registry, opts ...Option) *Reconciler {
	r := &Reconciler{registry: registry, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report lists what a pass did, by component id.
type Report struct {
	Entity     ecs.EntityID
	Created    []ecs.ComponentID
	Removed    []ecs.ComponentID
	Configured []ecs.ComponentID
	Unchanged  []ecs.ComponentID
}

// Changed reports whether the pass touched the entity's components at all.
func (r Report) Changed() bool {
	return len(r.Created)+len(r.Removed)+len(r.Configured) > 0
}

// Apply reconciles entity against an expanded initializer and its definition
// (nil for definition-less initializers).
func (r *Reconciler) Apply(entity *ecs.Entity, def *blueprint.Definition, init blueprint.Initializer) (Report, error) {
	var defEntries blueprint.Entries
	if def != nil {
		defEntries = def.Entries
	}
	return r.Reconcile(entity, init.Name, defEntries, init.Entries)
}

// Reconcile mutates entity so that its components match effective.
//
// Membership is the union of definition and effective ids, definition ids
// first; components outside it are removed before anything is created or
// configured. Effective entries are then applied in their own order. A
// component is (re)configured only when the base or primary property model
// pointer differs from the pair it was last configured with.
//
// An entry whose type has no factory aborts the pass with
// ecs.ErrUnknownComponentType. Work already done in the pass is kept.
func (r *Reconciler) Reconcile(entity *ecs.Entity, name string, definition, effective blueprint.Entries) (Report, error) {
	rep := Report{Entity: entity.ID()}
	entity.SetName(name)

	live := make(map[ecs.ComponentID]struct{}, len(definition)+len(effective))
	for _, e := range definition {
		live[e.ID] = struct{}{}
	}
	for _, e := range effective {
		live[e.ID] = struct{}{}
	}

	for _, id := range entity.IDs() {
		if _, ok := live[id]; ok {
			continue
		}
		entity.Detach(id)
		rep.Removed = append(rep.Removed, id)
		event.Emit(r.bus, event.ComponentRemoved{EntityID: entity.ID(), ComponentID: id})
	}

	for _, primary := range effective {
		if !entity.Has(primary.ID) {
			factory, err := r.registry.Resolve(primary.TypeID)
			if err != nil {
				r.log.Error("reconcile aborted",
					zap.String("entity", name),
					zap.String("component", string(primary.ID)),
					zap.Error(err))
				return rep, fmt.Errorf("entity %q component %q: %w", name, primary.ID, err)
			}
			entity.Attach(primary.ID, primary.TypeID, factory())
			rep.Created = append(rep.Created, primary.ID)
			event.Emit(r.bus, event.ComponentCreated{EntityID: entity.ID(), ComponentID: primary.ID, TypeID: primary.TypeID})
		}

		var base *property.Definitions
		if b, ok := definition.Find(primary.ID); ok {
			base = b.Properties
		}

		lastBase, lastPrimary, applied := entity.LastApplied(primary.ID)
		if applied && lastBase == base && lastPrimary == primary.Properties {
			rep.Unchanged = append(rep.Unchanged, primary.ID)
			continue
		}

		entity.MarkApplied(primary.ID, base, primary.Properties)
		c, _ := entity.Component(primary.ID)
		c.Configure(primary.ID, property.Resolve(property.Merge(base, primary.Properties)))
		rep.Configured = append(rep.Configured, primary.ID)
		event.Emit(r.bus, event.ComponentConfigured{EntityID: entity.ID(), ComponentID: primary.ID})
	}

	event.Emit(r.bus, event.EntityReconciled{
		EntityID:   entity.ID(),
		Name:       name,
		Created:    len(rep.Created),
		Removed:    len(rep.Removed),
		Configured: len(rep.Configured),
	})
	if ce := r.log.Check(zap.DebugLevel, "entity reconciled"); ce != nil {
		ce.Write(
			zap.String("entity", name),
			zap.Int("created", len(rep.Created)),
			zap.Int("removed", len(rep.Removed)),
			zap.Int("configured", len(rep.Configured)),
			zap.Int("unchanged", len(rep.Unchanged)),
		)
	}
	return rep, nil
}
