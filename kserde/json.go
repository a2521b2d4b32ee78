package kserde

import (
	"encoding/json"
	"fmt"
)

func JSONSerializer[T any]() Serializer[T] {
	return func(t T) ([]byte, error) {
		return json.Marshal(t)
	}
}

// JSONDeserializer decodes a JSON document into T. Unknown fields are
// ignored.
func JSONDeserializer[T any]() Deserializer[T] {
	return func(b []byte) (T, error) {
		var deserialized T
		if err := json.Unmarshal(b, &deserialized); err != nil {
			return *new(T), fmt.Errorf("json: %w", err)
		}
		return deserialized, nil
	}
}

func JSON[T any]() Serde[T] {
	return Serde[T]{
		Serializer:   JSONSerializer[T](),
		Deserializer: JSONDeserializer[T](),
	}
}

// Map adapts a deserializer to another value type, e.g. to pick one field
// out of a decoded message.
func Map[T, U any](d Deserializer[T], fn func(T) (U, error)) Deserializer[U] {
	return func(b []byte) (U, error) {
		v, err := d(b)
		if err != nil {
			return *new(U), err
		}
		return fn(v)
	}
}
