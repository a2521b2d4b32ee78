package kschedule

import (
	"context"

	"github.com/birdayz/tau/kgraph"
	"github.com/birdayz/tau/ktrigger"
)

// Settable is an event whose value can be replaced before it is activated.
type Settable[T any] interface {
	kgraph.Event
	SetValue(v T)
}

// NetworkScheduler submits activations of one network to a Service.
type NetworkScheduler struct {
	svc Service
	net *kgraph.Network
}

// NewNetworkScheduler couples svc to net.
func NewNetworkScheduler(svc Service, net *kgraph.Network) *NetworkScheduler {
	return &NetworkScheduler{svc: svc, net: net}
}

// Network returns the network activations are run on.
func (ns *NetworkScheduler) Network() *kgraph.Network {
	return ns.net
}

// Service returns the underlying scheduling service.
func (ns *NetworkScheduler) Service() Service {
	return ns.svc
}

// ScheduleEvent activates evt whenever trigger fires. A nil trigger fires
// once, immediately.
func (ns *NetworkScheduler) ScheduleEvent(evt kgraph.Event, trigger ktrigger.Trigger) (JobID, error) {
	if trigger == nil {
		trigger = ktrigger.Immediate()
	}
	return ns.svc.AddJob(func(context.Context) error {
		return ns.net.Activate(evt)
	}, trigger)
}

// ScheduleUpdate sets v on sig and activates it in a single job, so the
// value change and the walk it causes are never interleaved with other
// jobs. A nil trigger fires once, immediately.
func ScheduleUpdate[T any](ns *NetworkScheduler, sig Settable[T], v T, trigger ktrigger.Trigger) (JobID, error) {
	if trigger == nil {
		trigger = ktrigger.Immediate()
	}
	return ns.svc.AddJob(func(context.Context) error {
		sig.SetValue(v)
		return ns.net.Activate(sig)
	}, trigger)
}
