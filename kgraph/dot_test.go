package kgraph

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestMarshalDOT(t *testing.T) {
	a, b, c := newSpy(nil, "prices", true), newSpy(nil, "sum", true), newSpy(nil, "mean", false)
	net := New()
	net.MustConnect(a, b)
	net.MustConnect(a, c)
	net.MustActivate(a)

	out, err := net.MarshalDOT("pipeline")
	assert.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "digraph pipeline")
	assert.Contains(t, s, "n0 -> n1")
	assert.Contains(t, s, "n0 -> n2")
	assert.Contains(t, s, `"prices"`)
	assert.Contains(t, s, "fillcolor=green")
}
