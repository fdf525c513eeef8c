package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/l1jgo/blueprint/internal/compose"
	"github.com/l1jgo/blueprint/internal/core/ecs"
	"github.com/l1jgo/blueprint/internal/reconcile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errCheckFailed = errors.New("content check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate content by expanding and reconciling every initializer",
	Long: `Expand each initializer against its definition and reconcile it into a
throwaway world. Reports missing definitions and unknown component types for
every initializer instead of stopping at the first.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	rt, err := newApp(context.Background())
	if err != nil {
		return err
	}
	defer rt.Close()

	printBanner("blueprint check")
	printSection("Content")
	printStat("Definitions", len(rt.catalog.Definitions()))
	printStat("Initializers", len(rt.catalog.Initializers()))
	printStat("Component types", rt.registry.Len())
	fmt.Println()

	printSection("Initializers")
	rec := reconcile.New(rt.registry, reconcile.WithLogger(rt.log))
	failed := 0
	for _, in := range rt.catalog.Initializers() {
		expanded, def, err := compose.ExpandFrom(rt.catalog, in)
		if err == nil {
			e := ecs.NewWorld().CreateEntity("")
			_, err = rec.Apply(e, def, expanded)
		}
		if err != nil {
			failed++
			rt.log.Debug("initializer failed", zap.String("id", string(in.ID)), zap.Error(err))
			printFail(fmt.Sprintf("%s: %v", in.ID, err))
			continue
		}
		printOK(fmt.Sprintf("%s (%d components)", in.ID, len(expanded.Entries)))
	}
	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d initializers", errCheckFailed, failed, len(rt.catalog.Initializers()))
	}
	printReady("content OK")
	return nil
}
