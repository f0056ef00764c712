package geometry

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

type Integer interface {
	~uint32 | ~uint64 | ~int64
}

// Seq is a forward-only cursor over a sequence of integers, either held
// unpacked in a slice or as protobuf packed varints. Seq is a value type:
// copying it copies the current position.
//
// The zero value is an empty sequence. It stands for an absent stream, e.g. a
// geometry without elevations or without geometric attributes.
type Seq[T Integer] struct {
	items  []T
	packed []byte
	n      int
	zigzag bool
}

// Slice returns a sequence over already decoded integers.
func Slice[T Integer](items []T) Seq[T] {
	return Seq[T]{items: items, n: len(items)}
}

// PackedUint32 returns a sequence over a packed repeated uint32 field.
func PackedUint32(data []byte) (Seq[uint32], error) {
	return packed[uint32](data, false)
}

// PackedUint64 returns a sequence over a packed repeated uint64 field.
func PackedUint64(data []byte) (Seq[uint64], error) {
	return packed[uint64](data, false)
}

// PackedSint64 returns a sequence over a packed repeated sint64 field.
// Values are zigzag decoded while iterating.
func PackedSint64(data []byte) (Seq[int64], error) {
	return packed[int64](data, true)
}

func packed[T Integer](data []byte, zigzag bool) (Seq[T], error) {
	n := 0
	for rest := data; len(rest) > 0; n++ {
		_, length := protowire.ConsumeVarint(rest)
		if length < 0 {
			return Seq[T]{}, fmt.Errorf("%w: %w", ErrFormat, protowire.ParseError(length))
		}
		rest = rest[length:]
	}
	return Seq[T]{packed: data, n: n, zigzag: zigzag}, nil
}

// Len returns the number of integers left in the sequence.
func (s Seq[T]) Len() int {
	return s.n
}

// Done reports whether the sequence is exhausted.
func (s Seq[T]) Done() bool {
	return s.n == 0
}

// Next pops the next integer. It returns false if the sequence is exhausted.
func (s *Seq[T]) Next() (T, bool) {
	if s.n == 0 {
		return 0, false
	}
	s.n--

	if len(s.items) > 0 {
		value := s.items[0]
		s.items = s.items[1:]
		return value, true
	}

	// varints were validated when the sequence was created
	value, length := protowire.ConsumeVarint(s.packed)
	s.packed = s.packed[length:]
	if s.zigzag {
		return T(protowire.DecodeZigZag(value)), true
	}
	return T(value), true
}

// All collects the remaining integers without advancing s.
func (s Seq[T]) All() []T {
	result := make([]T, 0, s.n)
	for {
		value, ok := s.Next()
		if !ok {
			return result
		}
		result = append(result, value)
	}
}
