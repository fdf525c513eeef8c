package system

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stub struct {
	name  string
	phase Phase
	log   *[]string
	err   error
}

func (s stub) Phase() Phase { return s.phase }

func (s stub) Update() error {
	*s.log = append(*s.log, s.name)
	return s.err
}

func TestRunner_PhaseOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(stub{name: "present", phase: PhasePresent, log: &log})
	r.Register(stub{name: "sync", phase: PhaseReconcile, log: &log})
	r.Register(stub{name: "flush", phase: PhaseDispatch, log: &log})
	r.Register(stub{name: "sync2", phase: PhaseReconcile, log: &log})

	require.NoError(t, r.Step())
	assert.Equal(t, []string{"sync", "sync2", "flush", "present"}, log)

	log = nil
	require.NoError(t, r.StepPhase(PhaseDispatch))
	assert.Equal(t, []string{"flush"}, log)
}

func TestRunner_StopsOnError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	r := NewRunner()
	r.Register(stub{name: "sync", phase: PhaseReconcile, log: &log, err: boom})
	r.Register(stub{name: "present", phase: PhasePresent, log: &log})

	err := r.Step()
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "reconcile")
	assert.Equal(t, []string{"sync"}, log)
}
