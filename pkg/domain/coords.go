// Package domain defines the core value types of the gene artifact
// pipeline: layer records, normalized coordinates, and per-gene datasets.
package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Coord is a single normalized coordinate value. It marshals as a JSON
// integer when the value has no fractional part, otherwise as the shortest
// decimal float form. Integers encode shorter, which matters at artifact
// scale (millions of coordinates per gene).
type Coord float64

// Normalize converts a raw coordinate value into its compact representation.
// Applied independently per axis; an (x, y) pair may mix forms.
func Normalize(v float64) Coord { return Coord(v) }

// maxExactInt is the largest magnitude a float64 can hold with integer
// precision guaranteed (2^53).
const maxExactInt = 1 << 53

// Integral reports whether the value has no fractional part and is small
// enough to round-trip through int64 exactly.
func (c Coord) Integral() bool {
	f := float64(c)
	return f == math.Trunc(f) && math.Abs(f) < maxExactInt
}

// MarshalJSON encodes the coordinate as an integer when integral, else as a
// minimal decimal float.
func (c Coord) MarshalJSON() ([]byte, error) {
	f := float64(c)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("coordinate %v is not finite", f)
	}
	if c.Integral() {
		return strconv.AppendInt(nil, int64(f), 10), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

// UnmarshalJSON accepts any JSON number.
func (c *Coord) UnmarshalJSON(b []byte) error {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("parse coordinate: %w", err)
	}
	*c = Coord(f)
	return nil
}
