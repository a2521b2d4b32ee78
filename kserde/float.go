package kserde

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Float64Deserializer decodes an 8 byte big-endian IEEE 754 value
var Float64Deserializer = func(data []byte) (float64, error) {
	if err := checkLength("float64", data, 8); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(data)), nil
}

var Float64Serializer = func(data float64) ([]byte, error) {
	res := make([]byte, 8)
	binary.BigEndian.PutUint64(res, math.Float64bits(data))
	return res, nil
}

var Float64 = Serde[float64]{
	Serializer:   Float64Serializer,
	Deserializer: Float64Deserializer,
}

// Float64TextDeserializer parses a decimal number, ignoring surrounding
// whitespace
var Float64TextDeserializer = Map(StringDeserializer, func(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("float64 text: %w", err)
	}
	return v, nil
})

var Float64TextSerializer = func(data float64) ([]byte, error) {
	return strconv.AppendFloat(nil, data, 'g', -1, 64), nil
}

// Float64Text is a SerDe for float64 values written as decimal text
var Float64Text = Serde[float64]{
	Serializer:   Float64TextSerializer,
	Deserializer: Float64TextDeserializer,
}

// Float64Encodings names the float64 payload formats accepted by Float64Codec.
var Float64Encodings = []string{"text", "binary", "json"}

// Float64Codec returns the float64 SerDe registered under name.
func Float64Codec(name string) (Serde[float64], error) {
	switch name {
	case "text":
		return Float64Text, nil
	case "binary":
		return Float64, nil
	case "json":
		return JSON[float64](), nil
	default:
		return Serde[float64]{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}
