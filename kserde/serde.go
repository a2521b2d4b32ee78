// Package kserde converts external payloads to and from the values carried
// by signals.
package kserde

import (
	"errors"
	"fmt"
)

// ErrInvalidLength is returned when a fixed-width payload has the wrong size.
var ErrInvalidLength = errors.New("invalid payload length")

// ErrUnknownEncoding is returned by codec lookups for unregistered names.
var ErrUnknownEncoding = errors.New("unknown encoding")

type Serde[T any] struct {
	Serializer   Serializer[T]
	Deserializer Deserializer[T]
}

type Serializer[T any] func(T) ([]byte, error)

type Deserializer[T any] func([]byte) (T, error)

func checkLength(kind string, data []byte, want int) error {
	if len(data) != want {
		return fmt.Errorf("%w: %s requires exactly %d bytes, got %d", ErrInvalidLength, kind, want, len(data))
	}
	return nil
}
