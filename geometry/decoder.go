package geometry

import "google.golang.org/protobuf/encoding/protowire"

// Geometry holds the demultiplexed integer streams of one feature geometry.
type Geometry struct {
	Type GeomType

	// Commands is the command stream: command integers followed by zigzag
	// encoded coordinate deltas.
	Commands Seq[uint32]

	// Elevations holds elevation deltas. A geometry with elevations is
	// decoded in three dimensions.
	Elevations Seq[int64]

	// Attributes holds the encoded geometric attributes, if any.
	Attributes Seq[uint64]
}

const (
	DefaultMaxAttributes = 8
	MaxAttributesLimit   = 16
)

type config struct {
	maxCount      uint32
	hasMaxCount   bool
	maxAttributes int
}

type Option func(*config)

// WithMaxCount limits the repeat count of MoveTo and LineTo commands.
// By default the limit is half the length of the command stream, which is
// the largest count a well formed stream can satisfy.
func WithMaxCount(maxCount uint32) Option {
	return func(c *config) {
		c.maxCount = min(maxCount, MaxCommandCount)
		c.hasMaxCount = true
	}
}

// WithMaxAttributes limits the number of geometric attributes decoded per
// geometry. Attributes beyond the limit are ignored.
func WithMaxAttributes(maxAttributes int) Option {
	return func(c *config) {
		c.maxAttributes = max(0, min(maxAttributes, MaxAttributesLimit))
	}
}

// Decoder walks the command stream of a single geometry. It keeps the
// current command count and the absolute cursor position.
//
// A Decoder must not be shared between goroutines.
type Decoder struct {
	commands   Seq[uint32]
	elevations Seq[int64]
	attributes Seq[uint64]

	cursor UnscaledPoint

	maxCount      uint32
	maxAttributes int

	// count is set by NextCommand and counted down by NextPoint.
	count uint32
}

// NewDecoder returns a decoder over the streams of g.
func NewDecoder(g Geometry, opts ...Option) *Decoder {
	d := newDecoder(g, newConfig(g, opts))
	return &d
}

func newConfig(g Geometry, opts []Option) config {
	c := config{maxAttributes: DefaultMaxAttributes}
	if len(opts) > 0 {
		c = applyOptions(c, opts)
	}
	if !c.hasMaxCount {
		c.maxCount = uint32(min(g.Commands.Len()/2, MaxCommandCount))
	}
	return c
}

func applyOptions(c config, opts []Option) config {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// newDecoder returns the decoder by value so that the Decode functions keep
// it on the stack.
func newDecoder(g Geometry, c config) Decoder {
	return Decoder{
		commands:      g.Commands,
		elevations:    g.Elevations,
		attributes:    g.Attributes,
		maxCount:      c.maxCount,
		maxAttributes: c.maxAttributes,
	}
}

// Count returns the number of points left in the current command.
func (d *Decoder) Count() uint32 {
	return d.count
}

// Done reports whether both the command and the elevation streams are
// fully consumed.
func (d *Decoder) Done() bool {
	return d.commands.Done() && d.elevations.Done()
}

// NextCommand reads the next command integer, which must carry the expected
// command id. It returns false if the command stream is exhausted.
func (d *Decoder) NextCommand(expected CommandID) (bool, error) {
	if d.count != 0 {
		panic("vtgeom: NextCommand called with points left")
	}

	value, ok := d.commands.Next()
	if !ok {
		return false, nil
	}

	if id := CommandIDOf(value); id != expected {
		return false, geometryError("expected command %d but got %d", expected, id)
	}

	if expected == CommandClosePath {
		if CommandCountOf(value) != 1 {
			return false, geometryError("ClosePath command count is not 1")
		}
		return true, nil
	}

	d.count = CommandCountOf(value)
	if d.count > d.maxCount {
		return false, geometryError("count too large")
	}
	return true, nil
}

// NextPoint applies the next coordinate delta (and elevation delta, if any)
// to the cursor and returns the new position.
func (d *Decoder) NextPoint() (UnscaledPoint, error) {
	if d.count == 0 {
		panic("vtgeom: NextPoint called with zero count")
	}

	if d.commands.Len() < 2 {
		return UnscaledPoint{}, geometryError("too few points in geometry")
	}

	dx, _ := d.commands.Next()
	dy, _ := d.commands.Next()
	d.cursor.X += decodeZigZag32(dx)
	d.cursor.Y += decodeZigZag32(dy)

	if dz, ok := d.elevations.Next(); ok {
		d.cursor.Z += dz
	}

	d.count--

	return d.cursor, nil
}

func decodeZigZag32(value uint32) int32 {
	return int32(protowire.DecodeZigZag(uint64(value)))
}
