package ksignal

import (
	"github.com/birdayz/tau/kgraph"
)

// Mapping applies a function to every value of its input.
type Mapping[In, Out any] struct {
	Function[Out]
	values Signal[In]
	mapper func(In) Out
}

// Map returns a signal holding mapper applied to the latest value of values.
func Map[In, Out any](net *kgraph.Network, values Signal[In], mapper func(In) Out) (*Mapping[In, Out], error) {
	m := &Mapping[In, Out]{values: values, mapper: mapper}
	if err := m.Bind(net, m, values); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mapping[In, Out]) Recompute() {
	if v, ok := m.values.Get(); ok {
		m.Update(m.mapper(v))
	}
}

// Filtering passes on the values of its input that satisfy a predicate.
type Filtering[T any] struct {
	Function[T]
	values    Signal[T]
	predicate func(T) bool
}

// Filter returns a signal that only updates with values matching predicate.
// Rejected values do not activate it.
func Filter[T any](net *kgraph.Network, values Signal[T], predicate func(T) bool) (*Filtering[T], error) {
	f := &Filtering[T]{values: values, predicate: predicate}
	if err := f.Bind(net, f, values); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Filtering[T]) Recompute() {
	if v, ok := f.values.Get(); ok && f.predicate(v) {
		f.Update(v)
	}
}

// Accumulator folds the values of its input into a running result.
type Accumulator[T, A any] struct {
	Function[A]
	values Signal[T]
	acc    A
	fn     func(acc A, v T) A
}

// Scan returns the running sum of values. The result is invalid until the
// first input.
func Scan[T Number](net *kgraph.Network, values Signal[T]) (*Accumulator[T, T], error) {
	return ScanWith[T, T](net, values, 0, func(acc, v T) T { return acc + v })
}

// ScanWith folds values into seed with fn and publishes every intermediate
// result.
func ScanWith[T, A any](net *kgraph.Network, values Signal[T], seed A, fn func(acc A, v T) A) (*Accumulator[T, A], error) {
	a := &Accumulator[T, A]{values: values, acc: seed, fn: fn}
	if err := a.Bind(net, a, values); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Accumulator[T, A]) Recompute() {
	if v, ok := a.values.Get(); ok {
		a.acc = a.fn(a.acc, v)
		a.Update(a.acc)
	}
}
