package kgraph

import "time"

// spyEvent records its invocations into a shared trace.
type spyEvent struct {
	name   string
	result bool
	calls  int
	trace  *[]string
	onCall func()
}

func newSpy(trace *[]string, name string, result bool) *spyEvent {
	return &spyEvent{name: name, result: result, trace: trace}
}

func (s *spyEvent) Activate() bool {
	s.calls++
	if s.trace != nil {
		*s.trace = append(*s.trace, s.name)
	}
	if s.onCall != nil {
		s.onCall()
	}
	return s.result
}

func (s *spyEvent) String() string {
	return s.name
}

// funcEvent has a non-comparable dynamic type.
type funcEvent func() bool

func (f funcEvent) Activate() bool { return f() }

type countingObserver struct {
	walks     int
	activated int
	faults    int
}

func (o *countingObserver) ObserveWalk(_ time.Duration, activated int) {
	o.walks++
	o.activated += activated
}

func (o *countingObserver) ObserveFault() {
	o.faults++
}
