package kserde

import (
	"encoding/binary"
	"unsafe"
)

// Integer is a fixed-width integer type with a big-endian wire form.
type Integer interface {
	~int16 | ~int32 | ~int64 | ~uint16 | ~uint32 | ~uint64
}

// IntegerSerde encodes T as big-endian bytes of its own width.
func IntegerSerde[T Integer]() Serde[T] {
	var zero T
	size := int(unsafe.Sizeof(zero))
	return Serde[T]{
		Serializer: func(v T) ([]byte, error) {
			buf := make([]byte, 0, size)
			switch size {
			case 2:
				buf = binary.BigEndian.AppendUint16(buf, uint16(v))
			case 4:
				buf = binary.BigEndian.AppendUint32(buf, uint32(v))
			default:
				buf = binary.BigEndian.AppendUint64(buf, uint64(v))
			}
			return buf, nil
		},
		Deserializer: func(data []byte) (T, error) {
			if err := checkLength("integer", data, size); err != nil {
				return 0, err
			}
			switch size {
			case 2:
				return T(binary.BigEndian.Uint16(data)), nil
			case 4:
				return T(binary.BigEndian.Uint32(data)), nil
			default:
				return T(binary.BigEndian.Uint64(data)), nil
			}
		},
	}
}

// Int64 is the SerDe for int64 values, e.g. Interval tick counts.
var Int64 = IntegerSerde[int64]()
