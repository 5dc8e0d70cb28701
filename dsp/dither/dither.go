// Package dither quantizes normalized float samples to signed PCM integers
// with optional dither noise and error-feedback noise shaping.
package dither

import (
	"fmt"
	"strings"
)

// DitherType selects the probability distribution used for dither noise.
type DitherType int

const (
	// DitherNone applies no dither (plain rounding).
	DitherNone DitherType = iota
	// DitherRectangular uses a uniform (rectangular) PDF.
	DitherRectangular
	// DitherTriangular uses a triangular PDF (TPDF), the most common choice.
	DitherTriangular

	ditherTypeCount
)

var ditherTypeNames = [ditherTypeCount]string{"none", "rpdf", "tpdf"}

// String returns the name of the dither type.
func (dt DitherType) String() string {
	if dt.Valid() {
		return ditherTypeNames[dt]
	}

	return fmt.Sprintf("DitherType(%d)", int(dt))
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}

// ParseDitherType parses "none", "rpdf" or "tpdf" (case-insensitive).
func ParseDitherType(s string) (DitherType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range ditherTypeNames {
		if n == name {
			return DitherType(i), nil
		}
	}

	return DitherNone, fmt.Errorf("dither: unknown dither type %q", s)
}
