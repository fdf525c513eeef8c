package system

import (
	"testing"

	"github.com/l1jgo/blueprint/internal/blueprint"
	"github.com/l1jgo/blueprint/internal/component"
	"github.com/l1jgo/blueprint/internal/core/ecs"
	"github.com/l1jgo/blueprint/internal/core/event"
	coresys "github.com/l1jgo/blueprint/internal/core/system"
	"github.com/l1jgo/blueprint/internal/property"
	"github.com/l1jgo/blueprint/internal/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func entry(id string, typeID ecs.TypeID, props map[string]any) blueprint.ComponentEntry {
	return blueprint.ComponentEntry{ID: ecs.ComponentID(id), TypeID: typeID, Properties: property.NewDefinitions(props)}
}

type fixture struct {
	catalog *blueprint.Catalog
	scene   *reconcile.Scene
	runner  *coresys.Runner
	present *PresentSystem
	created int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := ecs.NewRegistry()
	require.NoError(t, component.Register(reg))
	bus := event.NewBus()
	log := zaptest.NewLogger(t)

	f := &fixture{catalog: blueprint.NewCatalog()}
	f.scene = reconcile.NewScene(ecs.NewWorld(), reconcile.New(reg, reconcile.WithBus(bus), reconcile.WithLogger(log)))
	f.present = NewPresentSystem(f.scene)
	event.Subscribe(bus, func(event.ComponentCreated) { f.created++ })

	f.runner = coresys.NewRunner()
	f.runner.Register(f.present)
	f.runner.Register(NewDispatchSystem(bus))
	f.runner.Register(NewSyncSystem(f.scene, f.catalog, log))
	return f
}

func (f *fixture) labels() []string {
	var out []string
	for _, a := range f.present.View().Actions {
		out = append(out, a.Label)
	}
	return out
}

func TestCollectablePickUp(t *testing.T) {
	f := newFixture(t)
	f.catalog.PutDefinition(&blueprint.Definition{ID: "coin", Name: "Coin", Entries: blueprint.Entries{
		entry("look", component.TypeDescribable, map[string]any{"description": "A shiny coin."}),
		entry("pick", component.TypeCollectable, nil),
	}})
	f.catalog.PutInitializer(blueprint.Initializer{ID: "player", Name: "Player", Entries: blueprint.Entries{
		entry("bag", component.TypeInventory, nil),
	}})
	f.catalog.PutInitializer(blueprint.Initializer{ID: "coin-1", Name: "coin", DefinitionID: "coin", Order: 1})

	require.NoError(t, f.runner.Step())
	assert.Equal(t, 3, f.created, "events delivered within the step")
	assert.Equal(t, "A shiny coin.", f.present.View().Description)
	assert.Equal(t, []string{"Pick up coin"}, f.labels())

	out, err := f.present.View().Actions[0].Perform()
	require.NoError(t, err)
	assert.Equal(t, "Picked up coin.", out)

	require.NoError(t, f.runner.Step())
	assert.Empty(t, f.present.View().Description, "collected entities are not described")
	assert.Empty(t, f.labels(), "pick up is no longer offered")

	_, err = Perform(f.scene.World(), "Pick up coin")
	assert.ErrorIs(t, err, ErrNoSuchAction)
}

func TestActionsAndDescriptionsFollowState(t *testing.T) {
	f := newFixture(t)
	scene := "cliff"
	state := "fragile"
	inScene := func(names ...string) func() any {
		return func() any {
			for _, n := range names {
				if n == scene {
					return true
				}
			}
			return false
		}
	}

	f.catalog.PutInitializer(blueprint.Initializer{ID: "bridge", Name: "Bridge", Entries: blueprint.Entries{
		entry("cross", component.TypeInteractive, map[string]any{
			"action": "Cross the bridge",
			"active": inScene("cliff"),
			"effect": func() any { scene = "bridge"; return nil },
		}),
		entry("proceed", component.TypeInteractive, map[string]any{
			"action": "Proceed",
			"active": inScene("bridge"),
			"effect": func() any {
				state, scene = "broken", "pit"
				return "The bridge collapses under your weight. You fall down a pit."
			},
		}),
		entry("look", component.TypeDescribable, map[string]any{
			"active": inScene("bridge", "cliff"),
			"description": func() any {
				if scene == "bridge" {
					return "You are standing on the bridge. It seems very unstable."
				}
				return "You stand in front of a bridge. It looks " + state + "."
			},
		}),
	}})

	require.NoError(t, f.runner.Step())
	assert.Equal(t, "You stand in front of a bridge. It looks fragile.", f.present.View().Description)
	assert.Equal(t, []string{"Cross the bridge"}, f.labels())

	out, err := Perform(f.scene.World(), "Cross the bridge")
	require.NoError(t, err)
	assert.Empty(t, out)

	// computed properties re-evaluate without reconfiguration
	require.NoError(t, f.runner.StepPhase(coresys.PhasePresent))
	assert.Equal(t, "You are standing on the bridge. It seems very unstable.", f.present.View().Description)
	assert.Equal(t, []string{"Proceed"}, f.labels())

	out, err = Perform(f.scene.World(), "Proceed")
	require.NoError(t, err)
	assert.Contains(t, out, "fall down a pit")

	require.NoError(t, f.runner.Step())
	assert.Empty(t, f.present.View().Description)
	assert.Empty(t, f.labels())
}

func TestDescribeEntity_SkipsInactive(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity("sign")
	on, off := &component.Describable{}, &component.Describable{}
	e.Attach("a", component.TypeDescribable, on)
	e.Attach("b", component.TypeDescribable, off)
	on.Configure("a", property.Resolve(property.NewDefinitions(map[string]any{"description": "Visible."})))
	off.Configure("b", property.Resolve(property.NewDefinitions(map[string]any{"description": "Hidden.", "active": false})))

	assert.Equal(t, []string{"Visible."}, DescribeEntity(e))
	assert.Equal(t, "Visible.", DescribeEntities(w))
}

func TestSyncSystem_ReportsErrors(t *testing.T) {
	f := newFixture(t)
	f.catalog.PutInitializer(blueprint.Initializer{ID: "bad", Entries: blueprint.Entries{entry("x", "missing", nil)}})

	err := f.runner.Step()
	assert.ErrorIs(t, err, ecs.ErrUnknownComponentType)
	assert.Empty(t, f.present.View().Description, "present phase does not run after a failed sync")
}
