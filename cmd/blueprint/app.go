package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/l1jgo/blueprint/internal/blueprint"
	"github.com/l1jgo/blueprint/internal/component"
	"github.com/l1jgo/blueprint/internal/config"
	"github.com/l1jgo/blueprint/internal/core/ecs"
	"github.com/l1jgo/blueprint/internal/core/event"
	coresys "github.com/l1jgo/blueprint/internal/core/system"
	"github.com/l1jgo/blueprint/internal/data"
	"github.com/l1jgo/blueprint/internal/reconcile"
	"github.com/l1jgo/blueprint/internal/scripting"
	"github.com/l1jgo/blueprint/internal/system"
	"go.uber.org/zap"
)

// app is everything a command needs once content is loaded.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	engine   *scripting.Engine
	registry *ecs.Registry
	catalog  *blueprint.Catalog
	bus      *event.Bus
	scene    *reconcile.Scene
	runner   *coresys.Runner
	sync     *system.SyncSystem
	present  *system.PresentSystem
}

func newApp(ctx context.Context) (*app, error) {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	rt := &app{cfg: cfg, log: log}

	// 3. Scripting engine for declarative properties
	rt.engine, err = scripting.NewEngine(cfg.Scripting.ScriptsDir, log)
	if err != nil {
		return nil, fmt.Errorf("scripting: %w", err)
	}
	names := make([]string, 0, len(cfg.Scripting.Globals))
	for name := range cfg.Scripting.Globals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := rt.engine.SetGlobal(name, cfg.Scripting.Globals[name]); err != nil {
			rt.Close()
			return nil, fmt.Errorf("scripting: %w", err)
		}
	}

	// 4. Component registry and world
	rt.registry = ecs.NewRegistry()
	if err := component.Register(rt.registry); err != nil {
		rt.Close()
		return nil, fmt.Errorf("register components: %w", err)
	}
	rt.bus = event.NewBus()
	rec := reconcile.New(rt.registry, reconcile.WithBus(rt.bus), reconcile.WithLogger(log))
	rt.scene = reconcile.NewScene(ecs.NewWorld(), rec)
	rt.registerFuncs()
	event.Subscribe(rt.bus, func(ev event.EntityReconciled) {
		log.Debug("entity reconciled",
			zap.String("name", ev.Name),
			zap.Int("created", ev.Created),
			zap.Int("removed", ev.Removed),
			zap.Int("configured", ev.Configured),
		)
	})

	// 5. Content
	paths, err := data.ContentFiles(cfg.Content.Paths)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.catalog, err = data.LoadContent(ctx, rt.engine, paths...)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("load content: %w", err)
	}
	log.Info("content loaded",
		zap.Int("files", len(paths)),
		zap.Int("definitions", len(rt.catalog.Definitions())),
		zap.Int("initializers", len(rt.catalog.Initializers())),
	)

	// 6. Step systems
	rt.sync = system.NewSyncSystem(rt.scene, rt.catalog, log)
	rt.present = system.NewPresentSystem(rt.scene)
	rt.runner = coresys.NewRunner()
	rt.runner.Register(rt.sync)
	rt.runner.Register(system.NewDispatchSystem(rt.bus))
	rt.runner.Register(rt.present)
	return rt, nil
}

// registerFuncs exposes world queries to expressions.
func (rt *app) registerFuncs() {
	rt.engine.Register("has_item", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("want 1 argument, have %d", len(args))
		}
		name, _ := args[0].(string)
		inv, ok := ecs.LookupService[*component.Inventory](rt.scene.World())
		if !ok {
			return false, nil
		}
		for _, id := range inv.Items() {
			if e, ok := rt.scene.World().Entity(id); ok && e.Name() == name {
				return true, nil
			}
		}
		return false, nil
	})
	rt.engine.Register("entity_count", func(...any) (any, error) {
		return rt.scene.World().Len(), nil
	})
}

func (rt *app) Close() {
	if rt.engine != nil {
		rt.engine.Close()
	}
	_ = rt.log.Sync()
}
