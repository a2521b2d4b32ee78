package ksignal

import (
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/benbjohnson/clock"

	"github.com/birdayz/tau/kgraph"
	"github.com/birdayz/tau/kschedule"
)

type harness struct {
	net   *kgraph.Network
	sched *kschedule.Scheduler
	ns    *kschedule.NetworkScheduler
	clock *clock.Mock
}

func newHarness() *harness {
	mock := clock.NewMock()
	net := kgraph.New()
	sched := kschedule.New(kschedule.WithClock(mock))
	return &harness{
		net:   net,
		sched: sched,
		ns:    kschedule.NewNetworkScheduler(sched, net),
		clock: mock,
	}
}

func (h *harness) drain(t *testing.T) {
	t.Helper()
	assert.NoError(t, h.sched.RunPending(context.Background()))
}

// collect records every valid value sig takes.
func collect[T any](t *testing.T, net *kgraph.Network, sig Signal[T]) *[]T {
	t.Helper()
	var out []T
	_, err := ForEach(net, sig, func(v T) { out = append(out, v) })
	assert.NoError(t, err)
	return &out
}

// set updates m and runs a walk from it.
func set[T any](t *testing.T, net *kgraph.Network, m *Mutable[T], v T) {
	t.Helper()
	m.SetValue(v)
	assert.NoError(t, net.Activate(m))
}

var referenceValues = []float64{0.0, 3.2, 2.1, 2.9, 8.3, 5.7}
