package ksignal

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/birdayz/tau/kgraph"
)

func TestMutable(t *testing.T) {
	t.Run("invalid until set", func(t *testing.T) {
		m := NewMutable[int]()
		assert.False(t, m.IsValid())
		assert.False(t, m.Activate())

		v, ok := m.Get()
		assert.False(t, ok)
		assert.Equal(t, 0, v)

		m.SetValue(7)
		assert.True(t, m.IsValid())
		assert.Equal(t, 7, m.Value())
	})

	t.Run("activates once per set", func(t *testing.T) {
		m := NewMutable[string]()
		m.SetValue("a")
		assert.True(t, m.Modified())
		assert.True(t, m.Activate())
		assert.False(t, m.Modified())
		assert.False(t, m.Activate())
		assert.Equal(t, "a", m.Value())
	})

	t.Run("initial value does not propagate", func(t *testing.T) {
		m := NewMutableWith(1.5)
		assert.True(t, m.IsValid())
		assert.False(t, m.Activate())
	})
}

func TestFunction(t *testing.T) {
	t.Run("recomputes from parameters", func(t *testing.T) {
		net := kgraph.New()
		a, b := NewMutable[int](), NewMutable[int]()

		sum, err := NewFunc(net, func(f *Function[int]) {
			x, okA := a.Get()
			y, okB := b.Get()
			if okA && okB {
				f.Update(x + y)
			}
		}, a, b)
		assert.NoError(t, err)
		assert.Equal(t, []kgraph.Event{a, b}, sum.Parameters())
		out := collect[int](t, net, sum)

		set(t, net, a, 1)
		assert.False(t, sum.IsValid())
		assert.False(t, net.HasActivated(sum))

		set(t, net, b, 2)
		assert.Equal(t, 3, sum.Value())
		assert.True(t, net.HasActivated(sum))

		set(t, net, a, 10)
		assert.Equal(t, []int{3, 12}, *out)
	})

	t.Run("unchanged output does not activate", func(t *testing.T) {
		net := kgraph.New()
		a := NewMutable[int]()
		even, err := NewFunc(net, func(f *Function[bool]) {
			if v := a.Value(); v%2 == 0 {
				f.Update(true)
			}
		}, a)
		assert.NoError(t, err)

		set(t, net, a, 2)
		assert.True(t, net.HasActivated(even))
		set(t, net, a, 3)
		assert.False(t, net.HasActivated(even))
		assert.True(t, even.Value())
	})

	t.Run("bind twice", func(t *testing.T) {
		net := kgraph.New()
		a := NewMutable[int]()
		f, err := NewFunc(net, func(*Function[int]) {}, a)
		assert.NoError(t, err)

		err = f.Bind(net, f, a)
		assert.True(t, errors.Is(err, ErrAlreadyBound))
	})

	t.Run("nil operator", func(t *testing.T) {
		var f Function[int]
		err := f.Bind(kgraph.New(), nil)
		assert.True(t, errors.Is(err, ErrNilOperator))
	})

	t.Run("failed bind is rolled back", func(t *testing.T) {
		net := kgraph.New()
		a := NewMutable[int]()
		f := &Func[int]{fn: func(*Function[int]) {}}

		err := f.Bind(net, f, a, f)
		assert.True(t, errors.Is(err, kgraph.ErrSelfLoop))
		assert.Equal(t, 0, net.Edges())
		assert.Equal(t, 0, net.Len())
	})

	t.Run("no parameters", func(t *testing.T) {
		net := kgraph.New()
		calls := 0
		f, err := NewFunc(net, func(f *Function[int]) {
			calls++
			f.Update(calls)
		})
		assert.NoError(t, err)
		assert.NoError(t, net.Activate(f))
		assert.Equal(t, 1, f.Value())
	})
}

func TestMust(t *testing.T) {
	assert.Equal(t, 1, Must(1, nil))
	assert.Panics(t, func() {
		Must(0, errors.New("boom"))
	})
}
