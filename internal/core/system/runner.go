package system

import (
	"fmt"
	"sort"
)

// Runner executes systems in phase order each step. Systems in the same
// phase run in registration order.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 4),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Step runs every system once. The first error stops the step; later phases
// do not run, so nothing is presented from a half-reconciled world.
func (r *Runner) Step() error {
	r.ensureSorted()
	for _, s := range r.systems {
		if err := s.Update(); err != nil {
			return fmt.Errorf("%s: %w", s.Phase(), err)
		}
	}
	return nil
}

// StepPhase runs only the systems of one phase.
func (r *Runner) StepPhase(phase Phase) error {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() != phase {
			continue
		}
		if err := s.Update(); err != nil {
			return fmt.Errorf("%s: %w", phase, err)
		}
	}
	return nil
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
