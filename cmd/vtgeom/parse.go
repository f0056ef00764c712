package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eak1mov/go-vtgeom/geometry"
)

func parseGeomType(s string) (geometry.GeomType, error) {
	switch strings.ToLower(s) {
	case "point", "1":
		return geometry.GeomPoint, nil
	case "linestring", "2":
		return geometry.GeomLineString, nil
	case "polygon", "3":
		return geometry.GeomPolygon, nil
	}
	return geometry.GeomUnknown, fmt.Errorf("invalid geometry type: %q", s)
}

// parseIntegers parses integers separated by commas or whitespace.
func parseIntegers[T uint32 | uint64 | int64](args ...string) ([]T, error) {
	var result []T
	for _, arg := range args {
		fields := strings.FieldsFunc(arg, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
		for _, field := range fields {
			var value T
			var err error
			switch any(value).(type) {
			case int64:
				var v int64
				v, err = strconv.ParseInt(field, 10, 64)
				value = T(v)
			case uint32:
				var v uint64
				v, err = strconv.ParseUint(field, 10, 32)
				value = T(v)
			default:
				var v uint64
				v, err = strconv.ParseUint(field, 10, 64)
				value = T(v)
			}
			if err != nil {
				return nil, fmt.Errorf("invalid integer %q: %w", field, err)
			}
			result = append(result, value)
		}
	}
	return result, nil
}
