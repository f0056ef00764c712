package geometry

// Handler receives the decoded geometry. Convert turns decoder positions into
// the caller's point type P (e.g. scaling or projecting them); the other
// methods are called in stream order. Only the methods of the decoded
// geometry type are called.
//
// An error returned by any method stops decoding and is returned unchanged
// to the caller of the decode function.
type Handler[P any] interface {
	Convert(p UnscaledPoint) P

	PointsBegin(count uint32) error
	PointsPoint(p P) error
	PointsEnd() error

	LineStringBegin(count uint32) error
	LineStringPoint(p P) error
	LineStringEnd() error

	RingBegin(count uint32) error
	RingPoint(p P) error
	RingEnd(ringType RingType) error
}

// AttributeHandler may be implemented by a Handler to receive geometric
// attributes. After each point callback it is called once per attribute, in
// the order the attributes are encoded.
type AttributeHandler interface {
	PointAttribute(keyIndex, scalingIndex uint32, value int64) error
	PointNullAttribute(keyIndex uint32) error
}

// ResultHandler is a Handler that builds a result out of the callbacks.
type ResultHandler[P, R any] interface {
	Handler[P]
	Result() (R, error)
}
