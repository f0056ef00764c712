package main

import (
	"fmt"
	"io"

	"github.com/eak1mov/go-vtgeom/geometry"
)

// printer writes one line per decoder callback.
type printer struct {
	w io.Writer
}

func (p *printer) print(format string, args ...any) error {
	_, err := fmt.Fprintf(p.w, format+"\n", args...)
	return err
}

func (p *printer) Convert(pt geometry.UnscaledPoint) geometry.UnscaledPoint {
	return pt
}

func (p *printer) PointsBegin(count uint32) error {
	return p.print("points begin count=%d", count)
}

func (p *printer) PointsPoint(pt geometry.UnscaledPoint) error {
	return p.print("  point %d %d %d", pt.X, pt.Y, pt.Z)
}

func (p *printer) PointsEnd() error {
	return p.print("points end")
}

func (p *printer) LineStringBegin(count uint32) error {
	return p.print("linestring begin count=%d", count)
}

func (p *printer) LineStringPoint(pt geometry.UnscaledPoint) error {
	return p.print("  point %d %d %d", pt.X, pt.Y, pt.Z)
}

func (p *printer) LineStringEnd() error {
	return p.print("linestring end")
}

func (p *printer) RingBegin(count uint32) error {
	return p.print("ring begin count=%d", count)
}

func (p *printer) RingPoint(pt geometry.UnscaledPoint) error {
	return p.print("  point %d %d %d", pt.X, pt.Y, pt.Z)
}

func (p *printer) RingEnd(ringType geometry.RingType) error {
	return p.print("ring end type=%v", ringType)
}

func (p *printer) PointAttribute(keyIndex, scalingIndex uint32, value int64) error {
	return p.print("    attr key=%d scaling=%d value=%d", keyIndex, scalingIndex, value)
}

func (p *printer) PointNullAttribute(keyIndex uint32) error {
	return p.print("    attr key=%d null", keyIndex)
}
