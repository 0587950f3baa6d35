package fontcache

import "gfxcache/cache"

// Size identifies one of the interface font sizes. Each size runs its
// own set of caches; a character claimed at one size says nothing
// about the others.
type Size uint8

const (
	SizeNormal Size = iota
	SizeSmall
	SizeLarge
	SizeMono

	NumSizes = 4
)

func (self Size) String() string {
	switch self {
	case SizeNormal: return "medium"
	case SizeSmall: return "small"
	case SizeLarge: return "large"
	case SizeMono: return "mono"
	default: return "invalid"
	}
}

// Index identifies a registered cache within a [Registry].
type Index uint8

const InvalidIndex = Index(0xFF)

// A GlyphID is a cache-private glyph key as returned by
// [FontCache.MapCharToGlyph]: sprite ids for the built-in bitmap
// font, face glyph indices for vector fonts. Zero means no glyph.
type GlyphID uint32

// Metrics of the built-in bitmap font, per size. Vector fonts report
// their own.
var defaultHeights = [NumSizes]int{10, 6, 18, 10}
var defaultAscenders = [NumSizes]int{8, 5, 15, 8}

// A FontCache maps characters to renderable glyph payloads for one
// font size. Implementations cache whatever rasterization or decode
// work their backing store requires.
type FontCache interface {
	// The font size this cache serves.
	Size() Size

	// A human readable identifier for logs and debug output.
	Name() string

	// Line height in pixels.
	Height() int

	// Pixels from the top of the line to the baseline.
	Ascender() int

	// Pixels from the baseline to the bottom of the line.
	Descender() int

	// Whether this is the built-in bitmap font.
	IsBuiltIn() bool

	// Resolves a character to this cache's glyph key, 0 when the
	// character is not covered (built-in caches substitute their
	// fallback glyph instead of returning 0).
	MapCharToGlyph(char rune) GlyphID

	// The payload for the given glyph key, nil only for key 0.
	Glyph(key GlyphID) *cache.Sprite

	// Horizontal advance of the given glyph in pixels.
	GlyphWidth(key GlyphID) int

	// Calls claim for every character this cache can serve. The
	// registry runs these in priority order to rebuild ownership.
	UpdateCharacterMap(claim func(char rune))

	// Drops all cached glyph payloads.
	ClearCache()
}
