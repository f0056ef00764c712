package geometry_test

import (
	"testing"

	"github.com/eak1mov/go-vtgeom/geometry"
	"github.com/eak1mov/go-vtgeom/internal/geomtest"
	"github.com/stretchr/testify/require"
)

func TestCommandInteger(t *testing.T) {
	value := geometry.CommandInteger(geometry.CommandLineTo, 42)
	require.Equal(t, uint32(42<<3|2), value)
	require.Equal(t, geometry.CommandLineTo, geometry.CommandIDOf(value))
	require.Equal(t, uint32(42), geometry.CommandCountOf(value))
	require.Equal(t, uint32(9), geometry.CommandInteger(geometry.CommandMoveTo, 1))
	require.Equal(t, uint32(15), geometry.CommandInteger(geometry.CommandClosePath, 1))
}

func TestDecoderSinglePoint(t *testing.T) {
	d := geometry.NewDecoder(geometry.Geometry{Commands: geometry.Slice([]uint32{9, 4, 4})})
	require.False(t, d.Done())

	ok, err := d.NextCommand(geometry.CommandMoveTo)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(1), d.Count())

	p, err := d.NextPoint()
	require.NoError(t, err)
	require.Equal(t, geometry.UnscaledPoint{X: 2, Y: 2}, p)
	require.Equal(t, uint32(0), d.Count())
	require.True(t, d.Done())

	ok, err = d.NextCommand(geometry.CommandMoveTo)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDecoderNegativeDeltas(t *testing.T) {
	commands := []uint32{
		geometry.CommandInteger(geometry.CommandMoveTo, 2),
		geomtest.ZigZag32(-3), geomtest.ZigZag32(5),
		geomtest.ZigZag32(-1), geomtest.ZigZag32(-10),
	}
	d := geometry.NewDecoder(geometry.Geometry{Commands: geometry.Slice(commands)})

	ok, err := d.NextCommand(geometry.CommandMoveTo)
	require.NoError(t, err)
	require.True(t, ok)

	p, err := d.NextPoint()
	require.NoError(t, err)
	require.Equal(t, geometry.UnscaledPoint{X: -3, Y: 5}, p)

	p, err = d.NextPoint()
	require.NoError(t, err)
	require.Equal(t, geometry.UnscaledPoint{X: -4, Y: -5}, p)
	require.True(t, d.Done())
}

func TestDecoderElevation(t *testing.T) {
	d := geometry.NewDecoder(geometry.Geometry{
		Commands:   geometry.Slice([]uint32{geometry.CommandInteger(geometry.CommandMoveTo, 2), 2, 2, 2, 2}),
		Elevations: geometry.Slice([]int64{100, -30, 7}),
	})

	ok, err := d.NextCommand(geometry.CommandMoveTo)
	require.NoError(t, err)
	require.True(t, ok)

	p, err := d.NextPoint()
	require.NoError(t, err)
	require.Equal(t, geometry.UnscaledPoint{X: 1, Y: 1, Z: 100}, p)

	p, err = d.NextPoint()
	require.NoError(t, err)
	require.Equal(t, geometry.UnscaledPoint{X: 2, Y: 2, Z: 70}, p)

	// one elevation left over
	require.False(t, d.Done())
}

func TestDecoderElevationExhausted(t *testing.T) {
	d := geometry.NewDecoder(geometry.Geometry{
		Commands:   geometry.Slice([]uint32{geometry.CommandInteger(geometry.CommandMoveTo, 3), 2, 0, 2, 0, 2, 0}),
		Elevations: geometry.Slice([]int64{5}),
	})

	ok, err := d.NextCommand(geometry.CommandMoveTo)
	require.NoError(t, err)
	require.True(t, ok)

	// the last elevation stays in effect once the stream runs out
	for i, want := range []geometry.UnscaledPoint{{X: 1, Z: 5}, {X: 2, Z: 5}, {X: 3, Z: 5}} {
		p, err := d.NextPoint()
		require.NoError(t, err)
		require.Equal(t, want, p, "point %d", i)
	}
	require.True(t, d.Done())
}

func TestDecoderErrors(t *testing.T) {
	for _, tc := range []struct {
		Name     string
		Commands []uint32
		Expected geometry.CommandID
		Opts     []geometry.Option
		Message  string
	}{
		{
			Name:     "WrongCommand",
			Commands: []uint32{geometry.CommandInteger(geometry.CommandLineTo, 1), 4, 4},
			Expected: geometry.CommandMoveTo,
			Message:  "expected command 1 but got 2",
		},
		{
			Name:     "ClosePathCount",
			Commands: []uint32{geometry.CommandInteger(geometry.CommandClosePath, 2)},
			Expected: geometry.CommandClosePath,
			Message:  "ClosePath command count is not 1",
		},
		{
			Name:     "ClosePathCountZero",
			Commands: []uint32{geometry.CommandInteger(geometry.CommandClosePath, 0)},
			Expected: geometry.CommandClosePath,
			Message:  "ClosePath command count is not 1",
		},
		{
			Name:     "CountTooLargeDefault",
			Commands: []uint32{geometry.CommandInteger(geometry.CommandMoveTo, 5), 0, 0},
			Expected: geometry.CommandMoveTo,
			Message:  "count too large",
		},
		{
			Name:     "CountTooLargeOption",
			Commands: []uint32{geometry.CommandInteger(geometry.CommandLineTo, 5), 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			Expected: geometry.CommandLineTo,
			Opts:     []geometry.Option{geometry.WithMaxCount(4)},
			Message:  "count too large",
		},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			d := geometry.NewDecoder(geometry.Geometry{Commands: geometry.Slice(tc.Commands)}, tc.Opts...)
			ok, err := d.NextCommand(tc.Expected)
			require.False(t, ok)
			require.ErrorIs(t, err, geometry.ErrGeometry)
			require.ErrorContains(t, err, tc.Message)
		})
	}
}

func TestDecoderMaxCountOption(t *testing.T) {
	commands := []uint32{geometry.CommandInteger(geometry.CommandMoveTo, 5), 0, 0}
	d := geometry.NewDecoder(geometry.Geometry{Commands: geometry.Slice(commands)}, geometry.WithMaxCount(5))

	ok, err := d.NextCommand(geometry.CommandMoveTo)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint32(5), d.Count())

	_, err = d.NextPoint()
	require.NoError(t, err)
	_, err = d.NextPoint()
	require.ErrorIs(t, err, geometry.ErrGeometry)
	require.ErrorContains(t, err, "too few points in geometry")
}

func TestDecoderTooFewPoints(t *testing.T) {
	commands := []uint32{geometry.CommandInteger(geometry.CommandMoveTo, 2), 2, 2, 2}
	d := geometry.NewDecoder(geometry.Geometry{Commands: geometry.Slice(commands)})

	ok, err := d.NextCommand(geometry.CommandMoveTo)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = d.NextPoint()
	require.NoError(t, err)

	_, err = d.NextPoint()
	require.ErrorIs(t, err, geometry.ErrGeometry)
	require.ErrorContains(t, err, "too few points in geometry")
}
