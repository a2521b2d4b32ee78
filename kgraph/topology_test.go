package kgraph

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDescendants(t *testing.T) {
	t.Run("topological order", func(t *testing.T) {
		a, b, c, d := newSpy(nil, "a", true), newSpy(nil, "b", true), newSpy(nil, "c", true), newSpy(nil, "d", true)
		net := New()
		net.MustConnect(a, d)
		net.MustConnect(a, b)
		net.MustConnect(b, c)
		net.MustConnect(d, c)

		events, err := net.Descendants(a)
		assert.NoError(t, err)
		assert.Equal(t, []Event{d, b, c}, events)
	})

	t.Run("leaf has no descendants", func(t *testing.T) {
		a, b := newSpy(nil, "a", true), newSpy(nil, "b", true)
		net := New()
		net.MustConnect(a, b)

		events, err := net.Descendants(b)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(events))
	})

	t.Run("unknown node", func(t *testing.T) {
		_, err := New().Descendants(newSpy(nil, "a", true))
		assert.True(t, errors.Is(err, ErrUnknownNode))
	})
}

func TestEnqueue(t *testing.T) {
	assert.Equal(t, []NodeID{1, 2, 3}, enqueue([]NodeID{1, 3}, 2))
	assert.Equal(t, []NodeID{0, 1, 3}, enqueue([]NodeID{1, 3}, 0))
	assert.Equal(t, []NodeID{1, 3, 7}, enqueue([]NodeID{1, 3}, 7))
	assert.Equal(t, []NodeID{4}, enqueue(nil, 4))
}

// BenchmarkActivateChain benchmarks a walk over a chain of 500 nodes
func BenchmarkActivateChain(b *testing.B) {
	net := New()
	root := newSpy(nil, "root", true)
	parent := root
	for i := 0; i < 499; i++ {
		child := newSpy(nil, fmt.Sprintf("n-%d", i), true)
		net.MustConnect(parent, child)
		parent = child
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		assert.NoError(b, net.Activate(root))
	}
}

// BenchmarkActivateFanOut benchmarks a walk over 10 branches of 10 nodes
func BenchmarkActivateFanOut(b *testing.B) {
	net := New()
	root := newSpy(nil, "root", true)
	for i := 0; i < 10; i++ {
		parent := root
		for j := 0; j < 10; j++ {
			child := newSpy(nil, fmt.Sprintf("n-%d-%d", i, j), true)
			net.MustConnect(parent, child)
			parent = child
		}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		assert.NoError(b, net.Activate(root))
	}
}
