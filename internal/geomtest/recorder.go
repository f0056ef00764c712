package geomtest

import (
	"errors"
	"fmt"

	"github.com/eak1mov/go-vtgeom/geometry"
)

var ErrHandler = errors.New("handler failure")

// Recorder is a handler that records every callback as a string, e.g.
// "ring_point(1,2,0)" or "attr(3,1,-5)".
type Recorder struct {
	Events []string

	// FailAt makes the callback with this event number return ErrHandler.
	FailAt int
}

func (r *Recorder) record(format string, args ...any) error {
	r.Events = append(r.Events, fmt.Sprintf(format, args...))
	if r.FailAt > 0 && len(r.Events) == r.FailAt {
		return ErrHandler
	}
	return nil
}

func (r *Recorder) Convert(p geometry.UnscaledPoint) geometry.UnscaledPoint {
	return p
}

func (r *Recorder) PointsBegin(count uint32) error {
	return r.record("points_begin(%d)", count)
}

func (r *Recorder) PointsPoint(p geometry.UnscaledPoint) error {
	return r.record("points_point(%d,%d,%d)", p.X, p.Y, p.Z)
}

func (r *Recorder) PointsEnd() error {
	return r.record("points_end()")
}

func (r *Recorder) LineStringBegin(count uint32) error {
	return r.record("linestring_begin(%d)", count)
}

func (r *Recorder) LineStringPoint(p geometry.UnscaledPoint) error {
	return r.record("linestring_point(%d,%d,%d)", p.X, p.Y, p.Z)
}

func (r *Recorder) LineStringEnd() error {
	return r.record("linestring_end()")
}

func (r *Recorder) RingBegin(count uint32) error {
	return r.record("ring_begin(%d)", count)
}

func (r *Recorder) RingPoint(p geometry.UnscaledPoint) error {
	return r.record("ring_point(%d,%d,%d)", p.X, p.Y, p.Z)
}

func (r *Recorder) RingEnd(ringType geometry.RingType) error {
	return r.record("ring_end(%v)", ringType)
}

func (r *Recorder) PointAttribute(keyIndex, scalingIndex uint32, value int64) error {
	return r.record("attr(%d,%d,%d)", keyIndex, scalingIndex, value)
}

func (r *Recorder) PointNullAttribute(keyIndex uint32) error {
	return r.record("null_attr(%d)", keyIndex)
}

func (r *Recorder) Result() ([]string, error) {
	return r.Events, nil
}

// PointCollector is a handler without attribute support that collects all
// points regardless of geometry type.
type PointCollector struct {
	Points []geometry.Point
}

func (c *PointCollector) Convert(p geometry.UnscaledPoint) geometry.Point {
	return p.Point()
}

func (c *PointCollector) PointsBegin(uint32) error { return nil }
func (c *PointCollector) PointsEnd() error         { return nil }
func (c *PointCollector) PointsPoint(p geometry.Point) error {
	c.Points = append(c.Points, p)
	return nil
}

func (c *PointCollector) LineStringBegin(uint32) error { return nil }
func (c *PointCollector) LineStringEnd() error         { return nil }
func (c *PointCollector) LineStringPoint(p geometry.Point) error {
	c.Points = append(c.Points, p)
	return nil
}

func (c *PointCollector) RingBegin(uint32) error          { return nil }
func (c *PointCollector) RingEnd(geometry.RingType) error { return nil }
func (c *PointCollector) RingPoint(p geometry.Point) error {
	c.Points = append(c.Points, p)
	return nil
}
