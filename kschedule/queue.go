package kschedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/birdayz/tau/ktrigger"
)

// JobID identifies a scheduled job.
type JobID = uuid.UUID

type entry struct {
	id      JobID
	job     Job
	trigger ktrigger.Trigger
	next    time.Time
	seq     uint64
	index   int
	removed bool
}

// jobQueue is a min-heap ordered by fire time, then submission sequence.
type jobQueue []*entry

func (q jobQueue) Len() int { return len(q) }

func (q jobQueue) Less(i, j int) bool {
	if q[i].next.Equal(q[j].next) {
		return q[i].seq < q[j].seq
	}
	return q[i].next.Before(q[j].next)
}

func (q jobQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *jobQueue) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *jobQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}
