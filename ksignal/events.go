package ksignal

import (
	"slices"

	"github.com/birdayz/tau/kgraph"
)

// LambdaEvent runs a function over its parameters on every activation.
type LambdaEvent struct {
	params []kgraph.Event
	fn     func(params []kgraph.Event) bool
}

// Lambda binds fn to params. The event activates when fn returns true. With
// no parameters the event is registered on its own and only runs when
// activated directly.
func Lambda(net *kgraph.Network, params []kgraph.Event, fn func(params []kgraph.Event) bool) (*LambdaEvent, error) {
	l := &LambdaEvent{params: slices.Clone(params), fn: fn}
	if err := connectAll(net, l, l.params); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *LambdaEvent) Activate() bool {
	return l.fn(l.params)
}

// DoEvent runs a side effect whenever its upstream event activates.
type DoEvent struct {
	fn func()
}

// Do calls fn every time evt activates. The event always activates.
func Do(net *kgraph.Network, evt kgraph.Event, fn func()) (*DoEvent, error) {
	d := &DoEvent{fn: fn}
	if err := net.Connect(evt, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DoEvent) Activate() bool {
	d.fn()
	return true
}

// ForEachEvent passes every valid value of a signal to a function.
type ForEachEvent[T any] struct {
	sig Signal[T]
	fn  func(T)
}

// ForEach calls fn with the value of sig each time sig activates while valid.
func ForEach[T any](net *kgraph.Network, sig Signal[T], fn func(T)) (*ForEachEvent[T], error) {
	e := &ForEachEvent[T]{sig: sig, fn: fn}
	if err := net.Connect(sig, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *ForEachEvent[T]) Activate() bool {
	v, ok := e.sig.Get()
	if !ok {
		return false
	}
	e.fn(v)
	return true
}

// Gate activates once a set of upstream events has activated. The set of
// events seen is sticky across walks until Reset.
type Gate struct {
	net    *kgraph.Network
	events []kgraph.Event
	seen   []bool
	all    bool
}

// AllActivated returns a gate that activates once every event has activated
// at least once.
func AllActivated(net *kgraph.Network, events ...kgraph.Event) (*Gate, error) {
	return newGate(net, events, true)
}

// AnyActivated returns a gate that activates once any event has activated.
func AnyActivated(net *kgraph.Network, events ...kgraph.Event) (*Gate, error) {
	return newGate(net, events, false)
}

func newGate(net *kgraph.Network, events []kgraph.Event, all bool) (*Gate, error) {
	g := &Gate{
		net:    net,
		events: slices.Clone(events),
		seen:   make([]bool, len(events)),
		all:    all,
	}
	if err := connectAll(net, g, g.events); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gate) Activate() bool {
	for i, e := range g.events {
		if g.net.HasActivated(e) {
			g.seen[i] = true
		}
	}
	if g.all {
		return !slices.Contains(g.seen, false)
	}
	return slices.Contains(g.seen, true)
}

// Reset forgets which events have activated.
func (g *Gate) Reset() {
	clear(g.seen)
}

func connectAll(net *kgraph.Network, child kgraph.Event, params []kgraph.Event) error {
	if len(params) == 0 {
		_, err := net.Add(child)
		return err
	}
	for i, p := range params {
		if err := net.Connect(p, child); err != nil {
			for _, q := range params[:i] {
				_ = net.Disconnect(q, child)
			}
			return err
		}
	}
	return nil
}
