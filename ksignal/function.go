package ksignal

import (
	"slices"

	"github.com/birdayz/tau/kgraph"
)

// Operator is a signal that derives its value from its parameters.
type Operator interface {
	kgraph.Event
	// Recompute reads the parameters and calls Update when the output changes.
	Recompute()
}

// Function is the base of derived signals. Embedders implement Recompute and
// call Bind with themselves, so the embedding struct is the node the network
// knows about.
type Function[T any] struct {
	Base[T]
	self   Operator
	params []kgraph.Event
}

// Bind connects every parameter to self. On failure the edges made so far
// are removed again. Without parameters self is registered on its own.
func (f *Function[T]) Bind(net *kgraph.Network, self Operator, params ...kgraph.Event) error {
	if self == nil {
		return ErrNilOperator
	}
	if f.self != nil {
		return ErrAlreadyBound
	}

	if err := connectAll(net, self, params); err != nil {
		return err
	}

	f.self = self
	f.params = slices.Clone(params)
	return nil
}

// Parameters returns the events this function was bound to.
func (f *Function[T]) Parameters() []kgraph.Event {
	return slices.Clone(f.params)
}

// Activate recomputes the value and reports whether it changed.
func (f *Function[T]) Activate() bool {
	f.modified = false
	f.self.Recompute()
	return f.modified
}

// Func is a Function whose recomputation is a closure.
type Func[T any] struct {
	Function[T]
	fn func(f *Function[T])
}

var _ Signal[int] = (*Func[int])(nil)

// NewFunc binds fn as a derived signal over params. fn reads the parameters
// and calls f.Update to publish a value.
func NewFunc[T any](net *kgraph.Network, fn func(f *Function[T]), params ...kgraph.Event) (*Func[T], error) {
	f := &Func[T]{fn: fn}
	if err := f.Bind(net, f, params...); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Func[T]) Recompute() {
	f.fn(&f.Function)
}

// Must panics if err is non-nil and returns v otherwise.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
