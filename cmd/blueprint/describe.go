package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/l1jgo/blueprint/internal/system"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var performLabels []string

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Reconcile content and print what the player sees",
	Long: `Reconcile every initializer into a world, then print entity descriptions
and available actions. Actions named with --perform run in order, each
followed by a new reconcile step.

Examples:
  blueprint describe
  blueprint describe --perform "Pick up coin" --perform "Climb ladder"`,
	RunE: runDescribe,
}

func init() {
	describeCmd.Flags().StringArrayVar(&performLabels, "perform", nil, "action label to perform (repeatable)")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, _ []string) error {
	rt, err := newApp(context.Background())
	if err != nil {
		return err
	}
	defer rt.Close()

	printBanner("blueprint")
	if err := rt.runner.Step(); err != nil {
		return err
	}
	last := rt.sync.Last()
	printSection("Scene")
	printStat("Entities", rt.scene.World().Len())
	printStat("Spawned", len(last.Spawned))
	fmt.Println()
	printView(rt.present.View())

	for _, label := range performLabels {
		out, err := system.Perform(rt.scene.World(), label)
		if err != nil {
			return err
		}
		rt.log.Debug("performed", zap.String("action", label))
		printReady(label)
		if out != "" {
			fmt.Printf("    %s\n", out)
		}
		fmt.Println()
		if err := rt.runner.Step(); err != nil {
			return err
		}
		printView(rt.present.View())
	}
	return nil
}

func printView(v system.View) {
	printSection("Description")
	if v.Description == "" {
		fmt.Println("  (nothing to see)")
	} else {
		fmt.Println(indent(v.Description))
	}
	fmt.Println()
	printSection("Actions")
	if len(v.Actions) == 0 {
		fmt.Println("  (none)")
	}
	for _, a := range v.Actions {
		fmt.Printf("  - %s \033[90m(%s)\033[0m\n", a.Label, a.Entity.Name())
	}
	fmt.Println()
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
