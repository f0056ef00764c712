package geometry

// det returns the cross product of a and b, twice the signed area of the
// triangle (0, a, b).
func det(a, b UnscaledPoint) int64 {
	return int64(a.X)*int64(b.Y) - int64(b.X)*int64(a.Y)
}

func classifyRing(sum int64) RingType {
	switch {
	case sum > 0:
		return RingOuter
	case sum < 0:
		return RingInner
	}
	return RingInvalid
}

func decodePoint[P any](d *Decoder, h Handler[P]) error {
	ok, err := d.NextCommand(CommandMoveTo)
	if err != nil {
		return err
	}
	if !ok {
		return geometryError("expected MoveTo command")
	}
	if d.Count() == 0 {
		return geometryError("MoveTo command count is zero")
	}

	var attrs attributes
	if err := attrs.parse(d.attributes, d.maxAttributes); err != nil {
		return err
	}
	attrHandler, _ := h.(AttributeHandler)

	if err := h.PointsBegin(d.Count()); err != nil {
		return err
	}
	for d.Count() > 0 {
		p, err := d.NextPoint()
		if err != nil {
			return err
		}
		if err := h.PointsPoint(h.Convert(p)); err != nil {
			return err
		}
		if err := attrs.emit(attrHandler); err != nil {
			return err
		}
	}

	// a point geometry is a single MoveTo command
	if !d.Done() {
		return geometryError("additional data after end of geometry")
	}

	return h.PointsEnd()
}

func decodeLineString[P any](d *Decoder, h Handler[P]) error {
	var attrs attributes
	if err := attrs.parse(d.attributes, d.maxAttributes); err != nil {
		return err
	}
	attrHandler, _ := h.(AttributeHandler)

	for {
		ok, err := d.NextCommand(CommandMoveTo)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if d.Count() != 1 {
			return geometryError("MoveTo command count is not 1")
		}

		first, err := d.NextPoint()
		if err != nil {
			return err
		}
		firstPoint := h.Convert(first)

		ok, err = d.NextCommand(CommandLineTo)
		if err != nil {
			return err
		}
		if !ok {
			return geometryError("expected LineTo command")
		}
		if d.Count() == 0 {
			return geometryError("LineTo command count is zero")
		}

		if err := h.LineStringBegin(d.Count() + 1); err != nil {
			return err
		}
		if err := h.LineStringPoint(firstPoint); err != nil {
			return err
		}
		if err := attrs.emit(attrHandler); err != nil {
			return err
		}

		for d.Count() > 0 {
			p, err := d.NextPoint()
			if err != nil {
				return err
			}
			if err := h.LineStringPoint(h.Convert(p)); err != nil {
				return err
			}
			if err := attrs.emit(attrHandler); err != nil {
				return err
			}
		}

		if err := h.LineStringEnd(); err != nil {
			return err
		}
	}
}

func decodePolygon[P any](d *Decoder, h Handler[P]) error {
	var attrs attributes
	if err := attrs.parse(d.attributes, d.maxAttributes); err != nil {
		return err
	}
	attrHandler, _ := h.(AttributeHandler)

	for {
		ok, err := d.NextCommand(CommandMoveTo)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if d.Count() != 1 {
			return geometryError("MoveTo command count is not 1")
		}

		start, err := d.NextPoint()
		if err != nil {
			return err
		}
		last := start
		var sum int64

		ok, err = d.NextCommand(CommandLineTo)
		if err != nil {
			return err
		}
		if !ok {
			return geometryError("expected LineTo command")
		}

		if err := h.RingBegin(d.Count() + 2); err != nil {
			return err
		}
		if err := h.RingPoint(h.Convert(start)); err != nil {
			return err
		}
		if err := attrs.emit(attrHandler); err != nil {
			return err
		}

		for d.Count() > 0 {
			p, err := d.NextPoint()
			if err != nil {
				return err
			}
			sum += det(last, p)
			last = p
			if err := h.RingPoint(h.Convert(p)); err != nil {
				return err
			}
			if err := attrs.emit(attrHandler); err != nil {
				return err
			}
		}

		ok, err = d.NextCommand(CommandClosePath)
		if err != nil {
			return err
		}
		if !ok {
			return geometryError("expected ClosePath command")
		}

		sum += det(last, start)

		// ClosePath repeats the start point, it has no attribute values.
		if err := h.RingPoint(h.Convert(start)); err != nil {
			return err
		}
		if err := h.RingEnd(classifyRing(sum)); err != nil {
			return err
		}
	}
}

// DecodePointGeometry decodes a point or multipoint geometry.
func DecodePointGeometry[P any](g Geometry, h Handler[P], opts ...Option) error {
	if g.Type != GeomPoint {
		return geometryError("expected point geometry but got %v", g.Type)
	}
	d := newDecoder(g, newConfig(g, opts))
	return decodePoint(&d, h)
}

// DecodeLineStringGeometry decodes a linestring or multilinestring geometry.
// Each linestring is reported between LineStringBegin and LineStringEnd.
func DecodeLineStringGeometry[P any](g Geometry, h Handler[P], opts ...Option) error {
	if g.Type != GeomLineString {
		return geometryError("expected linestring geometry but got %v", g.Type)
	}
	d := newDecoder(g, newConfig(g, opts))
	return decodeLineString(&d, h)
}

// DecodePolygonGeometry decodes a polygon or multipolygon geometry. Each ring
// is reported between RingBegin and RingEnd; the last point of a ring
// repeats the first one. RingEnd receives the ring type derived from the
// ring's signed area.
func DecodePolygonGeometry[P any](g Geometry, h Handler[P], opts ...Option) error {
	if g.Type != GeomPolygon {
		return geometryError("expected polygon geometry but got %v", g.Type)
	}
	d := newDecoder(g, newConfig(g, opts))
	return decodePolygon(&d, h)
}

// DecodeGeometry decodes a geometry of any known type.
func DecodeGeometry[P any](g Geometry, h Handler[P], opts ...Option) error {
	d := newDecoder(g, newConfig(g, opts))
	switch g.Type {
	case GeomPoint:
		return decodePoint(&d, h)
	case GeomLineString:
		return decodeLineString(&d, h)
	case GeomPolygon:
		return decodePolygon(&d, h)
	}
	return geometryError("unknown geometry type")
}

// DecodeResult decodes a geometry of any known type and returns the result
// built by h.
func DecodeResult[R, P any](g Geometry, h ResultHandler[P, R], opts ...Option) (R, error) {
	if err := DecodeGeometry[P](g, h, opts...); err != nil {
		var zero R
		return zero, err
	}
	return h.Result()
}
