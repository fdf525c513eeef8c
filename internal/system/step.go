package system

import (
	"github.com/l1jgo/blueprint/internal/blueprint"
	"github.com/l1jgo/blueprint/internal/core/event"
	coresys "github.com/l1jgo/blueprint/internal/core/system"
	"github.com/l1jgo/blueprint/internal/reconcile"
	"go.uber.org/zap"
)

// SyncSystem reconciles the catalog into the scene's world.
// Phase 0 (Reconcile).
type SyncSystem struct {
	scene   *reconcile.Scene
	catalog *blueprint.Catalog
	log     *zap.Logger
	last    reconcile.SyncReport
}

func NewSyncSystem(scene *reconcile.Scene, catalog *blueprint.Catalog, log *zap.Logger) *SyncSystem {
	return &SyncSystem{scene: scene, catalog: catalog, log: log}
}

func (s *SyncSystem) Phase() coresys.Phase { return coresys.PhaseReconcile }

func (s *SyncSystem) Update() error {
	rep, err := s.scene.Sync(s.catalog)
	s.last = rep
	if err != nil {
		return err
	}
	changed := 0
	for _, r := range rep.Entities {
		if r.Changed() {
			changed++
		}
	}
	s.log.Debug("scene synced",
		zap.Int("spawned", len(rep.Spawned)),
		zap.Int("despawned", len(rep.Despawned)),
		zap.Int("changed", changed),
	)
	return nil
}

// Last returns the report of the most recent sync.
func (s *SyncSystem) Last() reconcile.SyncReport { return s.last }

// DispatchSystem delivers events queued during reconciliation.
// Phase 1 (Dispatch).
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *DispatchSystem) Update() error {
	s.bus.Flush()
	return nil
}

// View is what the player sees after a step.
type View struct {
	Description string
	Actions     []Action
}

// PresentSystem snapshots descriptions and actions.
// Phase 2 (Present).
type PresentSystem struct {
	scene *reconcile.Scene
	view  View
}

func NewPresentSystem(scene *reconcile.Scene) *PresentSystem {
	return &PresentSystem{scene: scene}
}

func (s *PresentSystem) Phase() coresys.Phase { return coresys.PhasePresent }

func (s *PresentSystem) Update() error {
	w := s.scene.World()
	s.view = View{Description: DescribeEntities(w), Actions: Actions(w)}
	return nil
}

func (s *PresentSystem) View() View { return s.view }
