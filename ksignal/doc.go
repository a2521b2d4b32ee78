// Package ksignal provides value-carrying events and the operators built on
// them.
//
// A Signal is a kgraph.Event that also holds a value, which is invalid until
// the first update. A Mutable signal is set from outside the network, usually
// by a scheduled job, and reports activation exactly when it was set since its
// last activation. A Function is a signal recomputed from its parameters
// whenever one of them activates; it reports activation exactly when the
// recomputation produced a new value.
//
// Operators embed Function and bind themselves to a network on construction:
//
//	src := ksignal.Must(ksignal.From(ns, []float64{1, 2, 3}))
//	sum := ksignal.Must(ksignal.Scan[float64](net, src))
//	_, _ = ksignal.ForEach[float64](net, sum, func(v float64) {
//		fmt.Println(v)
//	})
//
// Signals are not safe for concurrent use. Values are read and written from
// the goroutine performing the walk.
package ksignal
