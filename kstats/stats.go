// Package kstats computes descriptive statistics over numeric signals, one
// input at a time.
package kstats

import (
	"math"

	"github.com/birdayz/tau/kgraph"
	"github.com/birdayz/tau/ksignal"
)

// RunningSum is the sum of all inputs so far. It starts valid at 0.
type RunningSum[T ksignal.Number] struct {
	ksignal.Function[float64]
	values ksignal.Signal[T]
}

func NewRunningSum[T ksignal.Number](net *kgraph.Network, values ksignal.Signal[T]) (*RunningSum[T], error) {
	s := &RunningSum[T]{values: values}
	if err := s.Bind(net, s, values); err != nil {
		return nil, err
	}
	s.Update(0)
	return s, nil
}

func (s *RunningSum[T]) Recompute() {
	if v, ok := s.values.Get(); ok {
		s.Update(s.Value() + float64(v))
	}
}

// Min is the smallest input so far. It is invalid until the first input.
type Min[T ksignal.Number] struct {
	ksignal.Function[T]
	values ksignal.Signal[T]
}

func NewMin[T ksignal.Number](net *kgraph.Network, values ksignal.Signal[T]) (*Min[T], error) {
	m := &Min[T]{values: values}
	if err := m.Bind(net, m, values); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Min[T]) Recompute() {
	v, ok := m.values.Get()
	if !ok {
		return
	}
	if cur, valid := m.Get(); valid {
		v = min(cur, v)
	}
	m.Update(v)
}

// Max is the largest input so far. It is invalid until the first input.
type Max[T ksignal.Number] struct {
	ksignal.Function[T]
	values ksignal.Signal[T]
}

func NewMax[T ksignal.Number](net *kgraph.Network, values ksignal.Signal[T]) (*Max[T], error) {
	m := &Max[T]{values: values}
	if err := m.Bind(net, m, values); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Max[T]) Recompute() {
	v, ok := m.values.Get()
	if !ok {
		return
	}
	if cur, valid := m.Get(); valid {
		v = max(cur, v)
	}
	m.Update(v)
}

// Mean is the arithmetic mean of all inputs so far. It starts valid at 0.
type Mean[T ksignal.Number] struct {
	ksignal.Function[float64]
	values ksignal.Signal[T]
	n      int
}

func NewMean[T ksignal.Number](net *kgraph.Network, values ksignal.Signal[T]) (*Mean[T], error) {
	m := &Mean[T]{values: values}
	if err := m.Bind(net, m, values); err != nil {
		return nil, err
	}
	m.Update(0)
	return m, nil
}

func (m *Mean[T]) Recompute() {
	v, ok := m.values.Get()
	if !ok {
		return
	}
	m.n++
	mean := m.Value()
	m.Update(mean + (float64(v)-mean)/float64(m.n))
}

// Count returns the number of inputs seen.
func (m *Mean[T]) Count() int {
	return m.n
}

// Stddev is the sample standard deviation of all inputs so far, computed with
// Welford's algorithm. It is 0 until two inputs have been seen.
type Stddev[T ksignal.Number] struct {
	ksignal.Function[float64]
	values ksignal.Signal[T]
	n      int
	mean   float64
	m2     float64
}

func NewStddev[T ksignal.Number](net *kgraph.Network, values ksignal.Signal[T]) (*Stddev[T], error) {
	s := &Stddev[T]{values: values}
	if err := s.Bind(net, s, values); err != nil {
		return nil, err
	}
	s.Update(0)
	return s, nil
}

func (s *Stddev[T]) Recompute() {
	v, ok := s.values.Get()
	if !ok {
		return
	}
	x := float64(v)
	s.n++
	delta := x - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (x - s.mean)

	if s.n < 2 {
		s.Update(0)
		return
	}
	s.Update(math.Sqrt(s.m2 / float64(s.n-1)))
}

// Variance returns the sample variance of the inputs so far.
func (s *Stddev[T]) Variance() float64 {
	if s.n < 2 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

// ExponentialMovingAverage weights input n with 2/(n+1). It starts valid at 0.
type ExponentialMovingAverage[T ksignal.Number] struct {
	ksignal.Function[float64]
	values ksignal.Signal[T]
	n      int
}

func NewExponentialMovingAverage[T ksignal.Number](net *kgraph.Network, values ksignal.Signal[T]) (*ExponentialMovingAverage[T], error) {
	e := &ExponentialMovingAverage[T]{values: values}
	if err := e.Bind(net, e, values); err != nil {
		return nil, err
	}
	e.Update(0)
	return e, nil
}

func (e *ExponentialMovingAverage[T]) Recompute() {
	v, ok := e.values.Get()
	if !ok {
		return
	}
	e.n++
	prev := e.Value()
	e.Update(prev + (float64(v)-prev)*(2/float64(e.n+1)))
}

// WeightedMovingAverage combines each input with the previous one as
// x*w + prev*(w-1). It starts valid at 0.
type WeightedMovingAverage[T ksignal.Number] struct {
	ksignal.Function[float64]
	values ksignal.Signal[T]
	weight float64
	prev   float64
}

func NewWeightedMovingAverage[T ksignal.Number](net *kgraph.Network, values ksignal.Signal[T], weight float64) (*WeightedMovingAverage[T], error) {
	w := &WeightedMovingAverage[T]{values: values, weight: weight}
	if err := w.Bind(net, w, values); err != nil {
		return nil, err
	}
	w.Update(0)
	return w, nil
}

func (w *WeightedMovingAverage[T]) Recompute() {
	v, ok := w.values.Get()
	if !ok {
		return
	}
	x := float64(v)
	w.Update(x*w.weight + w.prev*(w.weight-1))
	w.prev = x
}
