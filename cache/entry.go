package cache

import "gfxcache/asset"
import "gfxcache/fract"
import "gfxcache/loader"

// InvalidFilePos marks an entry whose container index pointed at a
// sprite section member that turned out not to exist. The entry still
// counts as registered; decoding it fails and falls back.
const InvalidFilePos = int64(^uint64(0) >> 1)

// An entry is one slot of the sprite cache table.
//
// The location fields (file, filePos, localID, typ, flags) are
// permanent once registered: they say where the sprite can always be
// reloaded from. The payload fields (data, fracData) are transient
// and evictable; they are either fully populated or nil, never stale.
type entry struct {
	file    *asset.File // shared, never owned; nil only for sprite 0
	filePos int64

	data      *Sprite    // decoded payload, cleared by eviction
	fracData  *Sprite    // payload at a fractional scale, cleared only explicitly
	fracScale fract.Unit // scale fracData was produced at

	localID uint32 // container-local sprite id
	lru     uint32 // larger = more recently used
	typ     SpriteType
	warned  bool // type mismatch already reported for this entry
	flags   loader.ControlFlags
}
