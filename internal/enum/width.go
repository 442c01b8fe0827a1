package enum

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Width is the bit width of the unsigned wire integer.
type Width uint8

const (
	W8  Width = 8
	W16 Width = 16
	W32 Width = 32
	W64 Width = 64
)

// Widths lists every supported width in ascending order.
var Widths = []Width{W8, W16, W32, W64}

// ParseWidth accepts "8", "u8" or "uint8" (and the same for 16, 32, 64).
func ParseWidth(s string) (Width, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	v = strings.TrimPrefix(v, "uint")
	v = strings.TrimPrefix(v, "u")

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid width %q: want one of 8, 16, 32, 64", s)
	}

	w := Width(n)
	if n < 0 || n > math.MaxUint8 || !w.Valid() {
		return 0, fmt.Errorf("invalid width %q: want one of 8, 16, 32, 64", s)
	}

	return w, nil
}

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	switch w {
	case W8, W16, W32, W64:
		return true
	default:
		return false
	}
}

// Bits returns the width in bits.
func (w Width) Bits() int {
	return int(w)
}

// Max returns the largest value representable in w, 2^w - 1.
func (w Width) Max() uint64 {
	if w >= W64 {
		return math.MaxUint64
	}

	return 1<<uint(w) - 1
}

// Fits reports whether v is representable in w.
func (w Width) Fits(v uint64) bool {
	return v <= w.Max()
}

// Scalar returns the short scalar name used in capability notation, e.g. "u8".
func (w Width) Scalar() string {
	return "u" + strconv.Itoa(int(w))
}

// GoType returns the Go type name, e.g. "uint8".
func (w Width) GoType() string {
	return "uint" + strconv.Itoa(int(w))
}

// Narrower returns the supported widths strictly smaller than w.
func (w Width) Narrower() []Width {
	var out []Width
	for _, o := range Widths {
		if o < w {
			out = append(out, o)
		}
	}

	return out
}

func (w Width) String() string {
	if !w.Valid() {
		return "Width(" + strconv.Itoa(int(w)) + ")"
	}

	return w.Scalar()
}
