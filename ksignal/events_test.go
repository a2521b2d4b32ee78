package ksignal

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/birdayz/tau/kgraph"
)

func TestLambda(t *testing.T) {
	net := kgraph.New()
	a, b := NewMutable[int](), NewMutable[int]()

	var got [][]kgraph.Event
	l, err := Lambda(net, []kgraph.Event{a, b}, func(params []kgraph.Event) bool {
		got = append(got, params)
		return a.Value() > 1
	})
	assert.NoError(t, err)

	set(t, net, a, 1)
	assert.False(t, net.HasActivated(l))
	set(t, net, b, 1)
	set(t, net, a, 2)
	assert.True(t, net.HasActivated(l))

	assert.Equal(t, 3, len(got))
	assert.Equal(t, []kgraph.Event{a, b}, got[0])

	t.Run("without parameters", func(t *testing.T) {
		net := kgraph.New()
		calls := 0
		l, err := Lambda(net, nil, func([]kgraph.Event) bool {
			calls++
			return true
		})
		assert.NoError(t, err)
		assert.NoError(t, net.Activate(l))
		assert.Equal(t, 1, calls)
	})
}

func TestDo(t *testing.T) {
	net := kgraph.New()
	a := NewMutable[int]()

	calls := 0
	d, err := Do(net, a, func() { calls++ })
	assert.NoError(t, err)

	set(t, net, a, 1)
	set(t, net, a, 2)
	assert.NoError(t, net.Activate(a))
	assert.Equal(t, 2, calls)
	assert.False(t, net.HasActivated(d))
}

func TestForEach(t *testing.T) {
	net := kgraph.New()
	a := NewMutable[string]()
	out := collect[string](t, net, a)

	set(t, net, a, "x")
	set(t, net, a, "y")
	assert.Equal(t, []string{"x", "y"}, *out)
}

func TestGates(t *testing.T) {
	build := func(all bool) (*kgraph.Network, *Mutable[int], *Mutable[int], *Gate, *int) {
		net := kgraph.New()
		a, b := NewMutable[int](), NewMutable[int]()

		var g *Gate
		var err error
		if all {
			g, err = AllActivated(net, a, b)
		} else {
			g, err = AnyActivated(net, a, b)
		}
		assert.NoError(t, err)

		fired := 0
		_, err = Do(net, g, func() { fired++ })
		assert.NoError(t, err)
		return net, a, b, g, &fired
	}

	t.Run("all activated", func(t *testing.T) {
		net, a, b, g, fired := build(true)

		set(t, net, a, 1)
		assert.Equal(t, 0, *fired)
		set(t, net, a, 2)
		assert.Equal(t, 0, *fired)
		set(t, net, b, 1)
		assert.Equal(t, 1, *fired)

		// sticky until reset
		set(t, net, a, 3)
		assert.Equal(t, 2, *fired)

		g.Reset()
		set(t, net, a, 4)
		assert.Equal(t, 2, *fired)
	})

	t.Run("any activated", func(t *testing.T) {
		net, a, b, _, fired := build(false)

		set(t, net, b, 1)
		assert.Equal(t, 1, *fired)
		set(t, net, a, 1)
		assert.Equal(t, 2, *fired)
	})
}
