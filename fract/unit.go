package fract

// Fixed point type used to represent fractional sprite scales and
// font metrics. 26 bits represent the integer part of the value and
// the remaining 6 bits the fractional part: a Unit of 64 is 1.0, 96
// is 1.5, 80 is 1.25, and so on.
//
// The internal representation is compatible with [fixed.Int26_6].
//
// [fixed.Int26_6]: https://pkg.go.dev/golang.org/x/image/math/fixed#Int26_6
type Unit int32

// One is the identity scale.
const One Unit = 64

// Creates a Unit from a whole number.
func FromInt(value int) Unit {
	return Unit(value << 6)
}

// Creates a Unit from a float, rounding half away from zero.
func FromFloat64(value float64) Unit {
	if value >= 0 { return Unit(value*64 + 0.5) }
	return Unit(value*64 - 0.5)
}

// Whether the Unit is a whole number.
func (self Unit) IsWhole() bool {
	return self&0x3F == 0
}

// Multiplies two Units, rounding half up.
func (self Unit) Mul(multiplier Unit) Unit {
	mx64 := int64(self) * int64(multiplier)
	return Unit((mx64 + 32) >> 6)
}

// Multiplies an int by the Unit, rounding half up. This is the
// operation used to derive fractional sprite dimensions, so it must
// stay consistent between width/height and offset computations.
func (self Unit) MulInt(value int) int {
	mx64 := int64(self) * int64(value)
	return int((mx64 + 32) >> 6)
}

func (self Unit) ToFloat64() float64 {
	return float64(self) / 64.0
}

// Truncating conversion to int.
func (self Unit) ToIntFloor() int {
	return int(self) >> 6
}

func (self Unit) ToIntCeil() int {
	return (int(self) + 63) >> 6
}
