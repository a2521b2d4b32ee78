package ksignal

import (
	"golang.org/x/exp/constraints"

	"github.com/birdayz/tau/kgraph"
)

// Number is the set of numeric types accepted by arithmetic operators.
type Number interface {
	constraints.Integer | constraints.Float
}

// Signal is an event with a current value.
type Signal[T any] interface {
	kgraph.Event
	// IsValid reports whether the signal has a value.
	IsValid() bool
	// Value returns the current value, or the zero value when invalid.
	Value() T
	// Get returns the current value and whether it is valid.
	Get() (T, bool)
}

// Base holds the value, validity and modified flag shared by all signals.
// It is meant to be embedded; the embedder supplies Activate.
type Base[T any] struct {
	value    T
	valid    bool
	modified bool
}

func (b *Base[T]) IsValid() bool {
	return b.valid
}

func (b *Base[T]) Value() T {
	return b.value
}

func (b *Base[T]) Get() (T, bool) {
	return b.value, b.valid
}

// Update replaces the value and marks the signal valid and modified.
func (b *Base[T]) Update(v T) {
	b.value = v
	b.valid = true
	b.modified = true
}

// Modified reports whether Update was called since the last ClearModified.
func (b *Base[T]) Modified() bool {
	return b.modified
}

func (b *Base[T]) ClearModified() {
	b.modified = false
}

// Mutable is a signal whose value is set from outside the network.
type Mutable[T any] struct {
	Base[T]
}

var _ Signal[int] = (*Mutable[int])(nil)

// NewMutable returns an invalid signal.
func NewMutable[T any]() *Mutable[T] {
	return &Mutable[T]{}
}

// NewMutableWith returns a signal that is valid with v but not modified, so
// activating it before the first SetValue does not propagate.
func NewMutableWith[T any](v T) *Mutable[T] {
	m := &Mutable[T]{}
	m.value = v
	m.valid = true
	return m
}

// SetValue replaces the value. The change propagates on the next activation.
func (m *Mutable[T]) SetValue(v T) {
	m.Update(v)
}

// Activate reports whether the value was set since the last activation.
func (m *Mutable[T]) Activate() bool {
	if !m.modified {
		return false
	}
	m.modified = false
	return true
}
