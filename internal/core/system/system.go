package system

// Phase defines execution ordering within a single step.
type Phase int

const (
	PhaseReconcile Phase = iota // 0: sync the catalog into the world
	PhaseDispatch               // 1: deliver events queued by reconciliation
	PhasePresent                // 2: read-only views of the world
)

func (p Phase) String() string {
	switch p {
	case PhaseReconcile:
		return "reconcile"
	case PhaseDispatch:
		return "dispatch"
	case PhasePresent:
		return "present"
	}
	return "unknown"
}

// System is the interface every step system implements.
type System interface {
	Phase() Phase
	Update() error
}
