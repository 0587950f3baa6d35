package loader

import "gfxcache/asset"
import "gfxcache/zoom"

// The types of sprite a cache entry can hold. The type is fixed when
// the sprite is registered; content overriding an entry's type later
// is an error condition the cache recovers from by substitution.
type Type uint8

const (
	TypeNormal   Type = iota // regular pixel sprite
	TypeMapGen               // raw uncompressed payload for the map generator
	TypeFont                 // glyph sprite for the built-in bitmap font
	TypeRecolour             // palette remap table, never evicted
	TypeInvalid
)

func (self Type) String() string {
	switch self {
	case TypeNormal: return "normal"
	case TypeMapGen: return "map generator"
	case TypeFont: return "character"
	case TypeRecolour: return "recolour"
	default: return "invalid"
	}
}

// ControlFlags carry per-sprite decode overrides discovered while
// indexing a container, mostly describing which zoom levels the
// content allows as a working baseline.
type ControlFlags uint8

const (
	AllowZoomMin1xPal ControlFlags = 1 << iota
	AllowZoomMin1x32bpp
	AllowZoomMin2xPal
	AllowZoomMin2x32bpp
)

// A SpriteLoader decodes raw sprite data from an asset container into
// a [Collection]. Implementations live outside this module (container
// format parsers); tests substitute mocks.
//
// LoadSprite must attempt a 32bpp decode when want32bpp is set and
// fall back is handled by the caller issuing a second call with
// want32bpp false. The returned mask reports which zoom levels were
// filled in; a zero mask means nothing usable was decoded. An error
// is only returned for I/O level failures — undecodable content is
// reported through the zero mask so the cache can substitute a
// fallback sprite instead of aborting.
type SpriteLoader interface {
	LoadSprite(collection *Collection, file *asset.File, pos int64, spriteType Type, want32bpp bool, flags ControlFlags) (zoom.Mask, error)
}

// SkipSpriteData advances the file past one sprite's pixel payload
// without decoding it. Chunked payloads (type bit 2 cleared) are
// stored as runs that must be walked; plain payloads are skipped in
// one step. Returns false when the run lengths disagree with the
// declared size, which indicates a corrupt container.
func SkipSpriteData(file *asset.File, spriteType byte, num uint16) (bool, error) {
	if spriteType&2 != 0 {
		file.SkipBytes(int64(num))
		return true, nil
	}
	remaining := int(num)
	for remaining > 0 {
		i, err := file.ReadByte()
		if err != nil { return false, err }
		if int8(i) >= 0 {
			size := int(i)
			if size == 0 { size = 0x80 }
			if size > remaining { return false, nil }
			remaining -= size
			file.SkipBytes(int64(size))
		} else {
			remaining -= int(-(int8(i) >> 3))
			_, err := file.ReadByte()
			if err != nil { return false, err }
		}
	}
	return true, nil
}
