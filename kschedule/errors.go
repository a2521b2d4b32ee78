package kschedule

import "errors"

// Sentinel errors for common failure cases.
var (
	ErrClosed         = errors.New("scheduler closed")
	ErrNilJob         = errors.New("job and trigger must not be nil")
	ErrNeverFires     = errors.New("trigger never fires")
	ErrAlreadyRunning = errors.New("scheduler already running")
	ErrJobPanicked    = errors.New("job panicked")
)
