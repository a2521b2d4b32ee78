// Package kschedule turns time- and I/O-driven stimuli into activation walks.
//
// A Scheduler is an in-process scheduling service: jobs are added from any
// goroutine together with a ktrigger.Trigger, and executed one at a time by
// the single goroutine running Run (or RunPending). Because every job runs on
// that goroutine, a Network driven only through scheduled jobs never sees two
// walks at once.
//
// A NetworkScheduler couples a Service to one kgraph.Network:
//
//	sched := kschedule.New()
//	ns := kschedule.NewNetworkScheduler(sched, net)
//
//	// set the signal, then activate it, as one job
//	_, _ = kschedule.ScheduleUpdate(ns, price, 101.5, ktrigger.Immediate())
//
//	// activate an event every second
//	_, _ = ns.ScheduleEvent(flush, ktrigger.Interval(time.Second))
//
//	err := sched.Run(ctx)
//
// The bridge holds no queue of its own; ordering is delegated to the Service.
package kschedule
