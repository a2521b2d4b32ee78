package kgraph

//go:generate mockgen -destination=mock_event_test.go -package=kgraph . Event
