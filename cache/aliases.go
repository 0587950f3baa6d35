package cache

import "gfxcache/loader"

// This file only contains aliases so that callers working against the
// cache don't need to import the loader package for the type enum.

// Same as [loader.Type].
type SpriteType = loader.Type

const (
	TypeNormal   = loader.TypeNormal
	TypeMapGen   = loader.TypeMapGen
	TypeFont     = loader.TypeFont
	TypeRecolour = loader.TypeRecolour
	TypeInvalid  = loader.TypeInvalid
)

// A SpriteID is an opaque non-negative key into the sprite cache
// table. Sprite 0 is a permanent sentinel that always exists and has
// no backing file.
type SpriteID uint32
