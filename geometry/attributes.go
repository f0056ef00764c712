package geometry

import "google.golang.org/protobuf/encoding/protowire"

// numberListType is the complex value type of a geometric attribute.
const numberListType = 10

// attribute is the value cursor of one geometric attribute.
type attribute struct {
	values       Seq[uint64]
	keyIndex     uint32
	scalingIndex uint32
	count        uint64 // values left
	value        int64
}

// next advances to the value of the next vertex and reports whether the
// vertex has a value. Absent values leave the running value untouched.
func (a *attribute) next() bool {
	if a.count == 0 {
		return false
	}
	raw, _ := a.values.Next()
	a.count--
	if raw == 0 {
		return false
	}
	a.value += protowire.DecodeZigZag(raw - 1)
	return true
}

// attributes holds the geometric attributes of one geometry. The zero
// value has no attributes.
type attributes struct {
	items [MaxAttributesLimit]attribute
	size  int
}

// parse reads up to maxAttributes attribute headers from seq. Each header is
// (key index << 4 | number list type, value count, scaling index), followed
// by the attribute values.
func (c *attributes) parse(seq Seq[uint64], maxAttributes int) error {
	for !seq.Done() && c.size < maxAttributes {
		complexValue, _ := seq.Next()
		if complexValue&0xf != numberListType {
			return formatError("geometric attributes must be of type number list")
		}
		if seq.Done() {
			return errAttributesEnd
		}

		count, _ := seq.Next()
		if seq.Done() {
			return errAttributesEnd
		}

		scalingIndex, _ := seq.Next()
		if seq.Done() {
			return errAttributesEnd
		}

		c.items[c.size] = attribute{
			values:       seq,
			keyIndex:     uint32(complexValue >> 4),
			scalingIndex: uint32(scalingIndex),
			count:        count,
		}
		c.size++

		// The last value of the span may be the last integer of seq.
		for left := count; left > 0; left-- {
			seq.Next()
			if left > 1 && seq.Done() {
				return errAttributesEnd
			}
		}
	}
	return nil
}

var errAttributesEnd = formatError("geometric attributes end too soon")

// emit reports the value of every attribute for the next vertex. Values are
// consumed even if h is nil.
func (c *attributes) emit(h AttributeHandler) error {
	for i := range c.size {
		attr := &c.items[i]
		if attr.next() {
			if h != nil {
				if err := h.PointAttribute(attr.keyIndex, attr.scalingIndex, attr.value); err != nil {
					return err
				}
			}
		} else if h != nil {
			if err := h.PointNullAttribute(attr.keyIndex); err != nil {
				return err
			}
		}
	}
	return nil
}
