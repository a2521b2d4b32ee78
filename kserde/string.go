package kserde

import (
	"errors"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned for text payloads that are not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid utf-8")

// StringDeserializer decodes UTF-8 text. A nil payload decodes to "".
var StringDeserializer = func(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	return string(data), nil
}

var StringSerializer = func(data string) ([]byte, error) {
	return []byte(data), nil
}

var String = Serde[string]{
	Serializer:   StringSerializer,
	Deserializer: StringDeserializer,
}
