package zoom

import "math/bits"

// A Level identifies one resolution tier of a sprite. [Normal] is the
// canonical full-resolution tier; every further level halves both
// dimensions, so a frame at level N measures 1/2^N of the normal frame.
type Level uint8

const (
	Normal Level = iota // full resolution
	Out2x               // half resolution
	Out4x
	Out8x
	Out16x
	Out32x

	NumLevels = 6
)

const Min = Normal
const Max = Out32x

// Scale converts a dimension or offset expressed at the given level
// into normal-level units.
func Scale(value int, level Level) int {
	return value << level
}

// Unscale converts a dimension or offset expressed in normal-level
// units into the given level's units, rounding up. The rounding error
// introduced here is why per-tier padding may come out negative and
// must be clamped by the caller.
func Unscale(value int, level Level) int {
	return (value + (1 << level) - 1) >> level
}

// A Mask records which levels of a sprite are present, one bit per
// [Level]. The zero Mask means no level was decoded.
type Mask uint8

func (self Mask) Has(level Level) bool {
	return self&(1<<level) != 0
}

func (self Mask) With(level Level) Mask {
	return self | (1 << level)
}

// First returns the finest (lowest) level present in the mask.
// Only valid for non-zero masks.
func (self Mask) First() Level {
	return Level(bits.TrailingZeros8(uint8(self)))
}
