package reconcile

import (
	"fmt"

	"github.com/l1jgo/blueprint/internal/blueprint"
	"github.com/l1jgo/blueprint/internal/compose"
	"github.com/l1jgo/blueprint/internal/core/ecs"
	"go.uber.org/zap"
)

// Scene keeps one world entity per initializer and resyncs them from a
// catalog whenever content changes.
type Scene struct {
	world    *ecs.World
	rec      *Reconciler
	bindings map[blueprint.InitializerID]ecs.EntityID
}

func NewScene(world *ecs.World, rec *Reconciler) *Scene {
	return &Scene{
		world:    world,
		rec:      rec,
		bindings: make(map[blueprint.InitializerID]ecs.EntityID),
	}
}

func (s *Scene) World() *ecs.World { return s.world }

// Entity returns the entity bound to an initializer.
func (s *Scene) Entity(id blueprint.InitializerID) (*ecs.Entity, bool) {
	eid, ok := s.bindings[id]
	if !ok {
		return nil, false
	}
	return s.world.Entity(eid)
}

// SyncReport aggregates a Sync run.
type SyncReport struct {
	Spawned   []blueprint.InitializerID
	Despawned []blueprint.InitializerID
	Entities  map[blueprint.InitializerID]Report
}

// Sync reconciles every initializer in catalog order. Entities are created for
// new initializers and destroyed for initializers no longer in the catalog.
// Expanded initializers are written back to the catalog.
// The first structural error (missing definition, unknown component type)
// stops the sync; entities already reconciled keep their new state.
func (s *Scene) Sync(catalog *blueprint.Catalog) (SyncReport, error) {
	rep := SyncReport{Entities: make(map[blueprint.InitializerID]Report)}

	inits := catalog.Initializers()
	present := make(map[blueprint.InitializerID]struct{}, len(inits))
	for _, init := range inits {
		present[init.ID] = struct{}{}
	}
	for id, eid := range s.bindings {
		if _, ok := present[id]; ok {
			continue
		}
		if err := s.world.Destroy(eid); err != nil {
			s.rec.log.Warn("despawn failed", zap.String("initializer", string(id)), zap.Error(err))
		}
		delete(s.bindings, id)
		rep.Despawned = append(rep.Despawned, id)
	}

	for _, init := range inits {
		expanded, def, err := compose.ExpandFrom(catalog, init)
		if err != nil {
			return rep, err
		}
		// Keep the normalised form so the next sync sees the same
		// synthesised property models and skips reconfiguration.
		catalog.PutInitializer(expanded)

		entity, ok := s.Entity(init.ID)
		if !ok {
			entity = s.world.CreateEntity(init.Name)
			s.bindings[init.ID] = entity.ID()
			rep.Spawned = append(rep.Spawned, init.ID)
		}
		r, err := s.rec.Apply(entity, def, expanded)
		rep.Entities[init.ID] = r
		if err != nil {
			return rep, fmt.Errorf("initializer %q: %w", init.ID, err)
		}
	}
	return rep, nil
}
