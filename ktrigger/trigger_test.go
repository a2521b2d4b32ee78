package ktrigger

import (
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestImmediate(t *testing.T) {
	trig := Immediate()

	next, ok := trig.NextFireTime(time.Time{}, epoch)
	assert.True(t, ok)
	assert.Equal(t, epoch, next)

	_, ok = trig.NextFireTime(next, epoch.Add(time.Second))
	assert.False(t, ok)
}

func TestDelay(t *testing.T) {
	trig := Delay(3 * time.Second)

	next, ok := trig.NextFireTime(time.Time{}, epoch)
	assert.True(t, ok)
	assert.Equal(t, epoch.Add(3*time.Second), next)

	_, ok = trig.NextFireTime(next, next)
	assert.False(t, ok)
}

func TestAt(t *testing.T) {
	t.Run("future", func(t *testing.T) {
		at := epoch.Add(time.Minute)
		next, ok := At(at).NextFireTime(time.Time{}, epoch)
		assert.True(t, ok)
		assert.Equal(t, at, next)
	})

	t.Run("past fires now", func(t *testing.T) {
		next, ok := At(epoch.Add(-time.Minute)).NextFireTime(time.Time{}, epoch)
		assert.True(t, ok)
		assert.Equal(t, epoch, next)
	})
}

func TestInterval(t *testing.T) {
	t.Run("fires on a fixed period", func(t *testing.T) {
		trig := Interval(time.Second)

		next, ok := trig.NextFireTime(time.Time{}, epoch)
		assert.True(t, ok)
		assert.Equal(t, epoch.Add(time.Second), next)

		// late execution does not drift the schedule
		next, ok = trig.NextFireTime(next, next.Add(300*time.Millisecond))
		assert.True(t, ok)
		assert.Equal(t, epoch.Add(2*time.Second), next)
	})

	t.Run("limited", func(t *testing.T) {
		trig := Interval(time.Second).Times(2)

		prev := time.Time{}
		for i := 0; i < 2; i++ {
			next, ok := trig.NextFireTime(prev, epoch)
			assert.True(t, ok)
			prev = next
		}
		_, ok := trig.NextFireTime(prev, epoch)
		assert.False(t, ok)
	})

	t.Run("non-positive period panics", func(t *testing.T) {
		assert.Panics(t, func() { Interval(0) })
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "interval(1s)", Interval(time.Second).String())
	})
}
