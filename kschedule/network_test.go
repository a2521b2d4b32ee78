package kschedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/benbjohnson/clock"

	"github.com/birdayz/tau/kgraph"
	"github.com/birdayz/tau/ktrigger"
)

type cell struct {
	value int
	seen  []int
}

func (c *cell) SetValue(v int) { c.value = v }

func (c *cell) Activate() bool {
	c.seen = append(c.seen, c.value)
	return true
}

type sink struct {
	src   *cell
	calls int
}

func (s *sink) Activate() bool {
	s.calls++
	return true
}

func TestNetworkScheduler(t *testing.T) {
	t.Run("update sets then activates", func(t *testing.T) {
		mock := clock.NewMock()
		s := New(WithClock(mock))
		net := kgraph.New()
		src := &cell{}
		out := &sink{src: src}
		net.MustConnect(src, out)

		ns := NewNetworkScheduler(s, net)
		assert.Equal(t, net, ns.Network())
		assert.Equal(t, Service(s), ns.Service())

		for _, v := range []int{1, 2, 3} {
			_, err := ScheduleUpdate[int](ns, src, v, nil)
			assert.NoError(t, err)
		}
		_, err := ScheduleUpdate[int](ns, src, 4, ktrigger.Delay(time.Second))
		assert.NoError(t, err)

		assert.NoError(t, s.RunPending(context.Background()))
		assert.Equal(t, []int{1, 2, 3}, src.seen)
		assert.Equal(t, 3, out.calls)

		mock.Add(time.Second)
		assert.NoError(t, s.RunPending(context.Background()))
		assert.Equal(t, []int{1, 2, 3, 4}, src.seen)
	})

	t.Run("event on interval", func(t *testing.T) {
		mock := clock.NewMock()
		s := New(WithClock(mock))
		net := kgraph.New()
		out := &sink{}
		net.MustAdd(out)

		ns := NewNetworkScheduler(s, net)
		_, err := ns.ScheduleEvent(out, ktrigger.Interval(time.Minute).Times(2))
		assert.NoError(t, err)

		for range 3 {
			mock.Add(time.Minute)
			assert.NoError(t, s.RunPending(context.Background()))
		}
		assert.Equal(t, 2, out.calls)
	})

	t.Run("activation errors surface from the job", func(t *testing.T) {
		s := New(WithClock(clock.NewMock()))
		ns := NewNetworkScheduler(s, kgraph.New())

		_, err := ns.ScheduleEvent(&sink{}, nil)
		assert.NoError(t, err)
		err = s.RunPending(context.Background())
		assert.True(t, errors.Is(err, kgraph.ErrUnknownNode))
	})
}
