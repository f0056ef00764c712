package orbgeom_test

import (
	"testing"

	"github.com/eak1mov/go-vtgeom/geometry"
	"github.com/eak1mov/go-vtgeom/internal/geomtest"
	"github.com/eak1mov/go-vtgeom/orbgeom"
	"github.com/eak1mov/go-vtgeom/tile"
	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/require"
)

type P = geometry.Point

func square(x, y, size int32) []geometry.Point {
	return []geometry.Point{{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}}
}

func reversed(points []geometry.Point) []geometry.Point {
	result := make([]geometry.Point, 0, len(points))
	for i := len(points) - 1; i >= 0; i-- {
		result = append(result, points[i])
	}
	return result
}

func encodeRings(rings ...[]geometry.Point) []uint32 {
	encoder := new(geomtest.Encoder)
	for _, ring := range rings {
		encoder.MoveTo(ring[0]).LineTo(ring[1:]...).ClosePath()
	}
	return encoder.Commands()
}

func TestDecode(t *testing.T) {
	for _, tc := range []struct {
		Name     string
		Type     geometry.GeomType
		Commands []uint32
		Want     orb.Geometry
	}{
		{
			Name:     "Point",
			Type:     geometry.GeomPoint,
			Commands: []uint32{9, 4, 4},
			Want:     orb.Point{2, 2},
		},
		{
			Name:     "MultiPoint",
			Type:     geometry.GeomPoint,
			Commands: new(geomtest.Encoder).MoveTo(P{X: 1, Y: 2}, P{X: 3, Y: 4}).Commands(),
			Want:     orb.MultiPoint{{1, 2}, {3, 4}},
		},
		{
			Name:     "LineString",
			Type:     geometry.GeomLineString,
			Commands: new(geomtest.Encoder).MoveTo(P{X: 1, Y: 1}).LineTo(P{X: 4, Y: 5}).Commands(),
			Want:     orb.LineString{{1, 1}, {4, 5}},
		},
		{
			Name: "MultiLineString",
			Type: geometry.GeomLineString,
			Commands: new(geomtest.Encoder).
				MoveTo(P{X: 1, Y: 1}).LineTo(P{X: 4, Y: 5}).
				MoveTo(P{X: 0, Y: 0}).LineTo(P{X: 0, Y: 7}, P{X: 7, Y: 7}).
				Commands(),
			Want: orb.MultiLineString{{{1, 1}, {4, 5}}, {{0, 0}, {0, 7}, {7, 7}}},
		},
		{
			Name:     "PolygonWithHole",
			Type:     geometry.GeomPolygon,
			Commands: encodeRings(square(0, 0, 10), reversed(square(2, 2, 6))),
			Want: orb.Polygon{
				{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
				{{2, 8}, {8, 8}, {8, 2}, {2, 2}, {2, 8}},
			},
		},
		{
			Name:     "MultiPolygon",
			Type:     geometry.GeomPolygon,
			Commands: encodeRings(square(0, 0, 1), square(5, 5, 1)),
			Want: orb.MultiPolygon{
				{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
				{{{5, 5}, {6, 5}, {6, 6}, {5, 6}, {5, 5}}},
			},
		},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := orbgeom.Decode(geometry.Geometry{Type: tc.Type, Commands: geometry.Slice(tc.Commands)})
			require.NoError(t, err)
			if diff := cmp.Diff(tc.Want, got); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%v", diff)
			}
		})
	}
}

func TestDecodeInvalidRings(t *testing.T) {
	line := []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}
	handler := orbgeom.NewHandler()
	g := geometry.Geometry{Type: geometry.GeomPolygon, Commands: geometry.Slice(encodeRings(square(0, 0, 1), line))}

	got, err := geometry.DecodeResult[orb.Geometry, orb.Point](g, handler)
	require.NoError(t, err)
	require.Equal(t, 1, handler.InvalidRings)
	require.Equal(t, orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}, got)
}

func TestDecodeOrphanInnerRing(t *testing.T) {
	g := geometry.Geometry{Type: geometry.GeomPolygon, Commands: geometry.Slice(encodeRings(reversed(square(0, 0, 1))))}
	got, err := orbgeom.Decode(g)
	require.ErrorIs(t, err, orbgeom.ErrOrphanInnerRing)
	require.Nil(t, got)
}

func TestDecodeEmpty(t *testing.T) {
	got, err := orbgeom.Decode(geometry.Geometry{Type: geometry.GeomLineString})
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestAttributes(t *testing.T) {
	handler := orbgeom.NewHandler()
	g := geometry.Geometry{
		Type:     geometry.GeomLineString,
		Commands: geometry.Slice(new(geomtest.Encoder).MoveTo(P{X: 1, Y: 1}).LineTo(P{X: 2, Y: 2}, P{X: 3, Y: 3}).Commands()),
		Attributes: geometry.Slice(append(
			geomtest.Attribute(4, 2, geomtest.Value(100), nil, geomtest.Value(90)),
			geomtest.Attribute(5, 0, nil)...,
		)),
	}
	require.NoError(t, geometry.DecodeGeometry[orb.Point](g, handler))

	want := map[uint32]*orbgeom.AttributeValues{
		4: {ScalingIndex: 2, Values: []*int64{geomtest.Value(100), nil, geomtest.Value(90)}},
		5: {ScalingIndex: 0, Values: []*int64{nil, nil, nil}},
	}
	if diff := cmp.Diff(want, handler.Attributes); diff != "" {
		t.Errorf("Attributes mismatch (-want +got):\n%v", diff)
	}
}

func TestProjectedHandler(t *testing.T) {
	for _, tileID := range []tile.ID{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 1},
		{X: 8800, Y: 5373, Z: 14},
	} {
		handler := orbgeom.NewProjectedHandler(tileID, 4096)
		bound := maptile.New(tileID.X, tileID.Y, maptile.Zoom(tileID.Z)).Bound()

		topLeft := handler.Convert(geometry.UnscaledPoint{X: 0, Y: 0})
		require.InDelta(t, bound.Min.Lon(), topLeft.Lon(), 1e-9, "tile %v", tileID)
		require.InDelta(t, bound.Max.Lat(), topLeft.Lat(), 1e-9, "tile %v", tileID)

		bottomRight := handler.Convert(geometry.UnscaledPoint{X: 4096, Y: 4096})
		require.InDelta(t, bound.Max.Lon(), bottomRight.Lon(), 1e-9, "tile %v", tileID)
		require.InDelta(t, bound.Min.Lat(), bottomRight.Lat(), 1e-9, "tile %v", tileID)
	}

	center := orbgeom.NewProjectedHandler(tile.ID{}, 4096).Convert(geometry.UnscaledPoint{X: 2048, Y: 2048})
	require.InDelta(t, 0, center.Lon(), 1e-9)
	require.InDelta(t, 0, center.Lat(), 1e-9)
}
