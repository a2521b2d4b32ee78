package ksignal

import (
	"math"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestScan(t *testing.T) {
	t.Run("running sum", func(t *testing.T) {
		h := newHarness()
		src := Must(From(h.ns, referenceValues))
		sum := Must(Scan[float64](h.net, src))
		out := collect[float64](t, h.net, sum)

		assert.False(t, sum.IsValid())
		h.drain(t)

		assert.Equal(t, 6, len(*out))
		assert.Equal(t, 22.2, sum.Value())
	})

	t.Run("map reduce", func(t *testing.T) {
		h := newHarness()
		src := Must(From(h.ns, referenceValues))
		rounded := Must(Map(h.net, src, math.RoundToEven))
		sum := Must(Scan[float64](h.net, rounded))

		h.drain(t)
		assert.Equal(t, 22.0, sum.Value())
	})

	t.Run("custom accumulator", func(t *testing.T) {
		h := newHarness()
		src := Must(From(h.ns, []string{"a", "b", "c"}))
		joined := Must(ScanWith(h.net, src, "", func(acc, v string) string {
			return acc + v
		}))
		out := collect[string](t, h.net, joined)

		h.drain(t)
		assert.Equal(t, []string{"a", "ab", "abc"}, *out)
	})

	t.Run("integers", func(t *testing.T) {
		h := newHarness()
		src := Must(From(h.ns, []int{1, 2, 3, 4}))
		sum := Must(Scan[int](h.net, src))

		h.drain(t)
		assert.Equal(t, 10, sum.Value())
	})
}

func TestMap(t *testing.T) {
	h := newHarness()
	src := Must(From(h.ns, []int{1, 22, 333}))
	lengths := Must(Map(h.net, src, func(v int) string {
		return strings.Repeat("x", v%10)
	}))
	out := collect[string](t, h.net, lengths)

	h.drain(t)
	assert.Equal(t, []string{"x", "xx", "xxx"}, *out)
}

func TestFilter(t *testing.T) {
	h := newHarness()
	src := Must(From(h.ns, []float64{0, -3.2, 2.1, -2.9, 8.3, -5.7}))
	positive := Must(Filter(h.net, src, func(v float64) bool { return v >= 0 }))
	out := collect[float64](t, h.net, positive)

	h.drain(t)
	assert.Equal(t, []float64{0, 2.1, 8.3}, *out)
	assert.Equal(t, 8.3, positive.Value())
}

func TestValidityGating(t *testing.T) {
	h := newHarness()
	src := NewMutable[float64]()
	doubled := Must(Map(h.net, src, func(v float64) float64 { return v * 2 }))
	out := collect[float64](t, h.net, doubled)

	// activating an unset signal does not propagate
	assert.NoError(t, h.net.Activate(src))
	assert.False(t, doubled.IsValid())
	assert.Equal(t, 0, len(*out))

	set(t, h.net, src, 4)
	assert.Equal(t, []float64{8}, *out)
}
