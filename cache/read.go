package cache

import "gfxcache/loader"
import "gfxcache/zoom"

// recolourLen is the payload size of a recolour table: one remap byte
// per palette index plus the leading marker byte.
const recolourLen = 257

// GetRaw returns the decoded payload of the given sprite, decoding it
// into the shared cache on first use and bumping its recency stamp.
// Missing and mistyped sprites are substituted by the configured
// placeholders, so the returned pointer is non-nil for every type
// except map generator slots with unreadable data.
//
// The returned sprite is owned by the cache and may be evicted on a
// later [Cache.Maintain]; don't hold it across maintenance calls.
func (self *Cache) GetRaw(id SpriteID, typ SpriteType) *Sprite {
	return self.getRaw(id, typ, nil, nil)
}

// GetRawWith decodes the given sprite through the caller's allocator
// and encoder, bypassing the shared cache entirely: nothing is stored,
// no recency stamp moves, and the caller owns the result. This is the
// entry point for export tooling that wants sprites in its own memory
// and format.
func (self *Cache) GetRawWith(id SpriteID, typ SpriteType, allocator Allocator, encoder Encoder) *Sprite {
	if allocator == nil { allocator = SimpleAllocator{} }
	if encoder == nil { encoder = self.enc }
	return self.getRaw(id, typ, allocator, encoder)
}

func (self *Cache) getRaw(id SpriteID, typ SpriteType, allocator Allocator, encoder Encoder) *Sprite {
	if typ >= TypeInvalid {
		self.fatalf("sprite #%d: requested with invalid type", id)
	}
	if typ == TypeMapGen && !self.isMapGen(id) {
		self.fatalf("sprite #%d: requested as map generator outside the reserved range", id)
	}

	if !self.Exists(id) {
		if id == self.cfg.MissingSprite || !self.Exists(self.cfg.MissingSprite) {
			self.fatalf("sprite #%d: tried to load non-existing sprite and the placeholder is missing too", id)
		}
		self.log.Error("tried to load non-existing sprite", "sprite", id)
		id = self.cfg.MissingSprite
	}

	e := &self.entries[id]
	if e.typ != typ {
		return self.handleInvalidRequest(id, typ, e, allocator, encoder)
	}

	if allocator == nil && encoder == nil {
		// regular cache access
		self.lruCounter++
		e.lru = self.lruCounter
		if e.data == nil {
			self.setEntryData(e, self.readSprite(e, id, typ, SimpleAllocator{}, self.enc))
		}
		return e.data
	}

	// cache bypass
	return self.readSprite(e, id, typ, allocator, encoder)
}

// handleInvalidRequest recovers from an entry whose stored type does
// not match the requested one: usually broken content files declaring
// a sprite with the wrong block type.
func (self *Cache) handleInvalidRequest(id SpriteID, requested SpriteType, e *entry, allocator Allocator, encoder Encoder) *Sprite {
	stored := e.typ

	if requested == TypeFont && stored == TypeNormal {
		// Pure white sprites can technically be used as glyphs, so
		// serve the sprite under its stored type. Retype in place only
		// while nothing was decoded yet.
		if e.data == nil { e.typ = TypeFont }
		return self.getRaw(id, e.typ, allocator, encoder)
	}

	var fallback SpriteID
	fallbackType := requested
	switch requested {
	case TypeNormal:
		if id == self.cfg.MissingSprite {
			self.fatalf("sprite #%d: the missing-sprite placeholder is not a normal sprite", id)
		}
		fallback = self.cfg.MissingSprite
	case TypeFont:
		// the placeholder is a normal sprite; requesting it as a font
		// would mistype it in turn
		fallback = self.cfg.MissingSprite
		fallbackType = TypeNormal
	case TypeRecolour:
		if id == self.cfg.IdentityRecolour {
			self.fatalf("sprite #%d: the identity recolour placeholder is not a recolour sprite", id)
		}
		fallback = self.cfg.IdentityRecolour
	default:
		self.fatalf("sprite #%d: map generator sprite stored as %s", id, stored)
	}

	if e.warned {
		self.log.Trace("tried to load sprite with wrong type", "sprite", id,
			"requested", requested, "stored", stored)
	} else {
		self.log.Warn("tried to load sprite with wrong type", "sprite", id,
			"requested", requested, "stored", stored)
		e.warned = true
	}
	return self.getRaw(fallback, fallbackType, allocator, encoder)
}

// loadFrames asks the loader to decode the entry's raw frames into the
// collection, preferring 32bpp when the encoder can render it. A zero
// mask means the sprite could not be decoded in any depth.
func (self *Cache) loadFrames(e *entry, typ SpriteType, encoder Encoder, collection *loader.Collection) zoom.Mask {
	if e.filePos == InvalidFilePos { return 0 }

	if encoder.Is32BppSupported() && typ != TypeMapGen {
		avail, err := self.ld.LoadSprite(collection, e.file, e.filePos, typ, true, e.flags)
		if err != nil {
			self.log.Warn("sprite decode failed", "file", e.file.Filename(), "local", e.localID, "error", err)
			return 0
		}
		if avail != 0 { return avail }
		*collection = loader.Collection{}
	}

	avail, err := self.ld.LoadSprite(collection, e.file, e.filePos, typ, false, e.flags)
	if err != nil {
		self.log.Warn("sprite decode failed", "file", e.file.Filename(), "local", e.localID, "error", err)
		return 0
	}
	return avail
}

// readSprite decodes and encodes the entry's payload without storing
// it. The caller decides whether the result goes into the shared cache
// or straight to an embedder.
func (self *Cache) readSprite(e *entry, id SpriteID, typ SpriteType, allocator Allocator, encoder Encoder) *Sprite {
	var collection loader.Collection
	avail := self.loadFrames(e, typ, encoder, &collection)

	if avail == 0 {
		if typ == TypeMapGen { return nil }
		if id == self.cfg.MissingSprite {
			self.fatalf("sprite #%d: unable to load the missing-sprite placeholder itself", id)
		}
		self.log.Warn("substituting placeholder for unreadable sprite", "sprite", id)
		return self.getRaw(self.cfg.MissingSprite, TypeNormal, allocator, encoder)
	}

	if typ == TypeMapGen {
		// Map generator payloads are the raw palette indices of the
		// normal level; they never run through the pipeline or the
		// renderer encoding.
		frame := collection.Frame(zoom.Normal)
		sprite := &Sprite{
			Width:  uint16(frame.Width),
			Height: uint16(frame.Height),
			XOffs:  int16(frame.XOffs),
			YOffs:  int16(frame.YOffs),
			Data:   allocator.Allocate(len(frame.Pixels)),
		}
		for i := range frame.Pixels {
			sprite.Data[i] = frame.Pixels[i].M
		}
		return sprite
	}

	err := completeSpriteSet(&collection, avail, encoder.SpriteAlignment(), self.cfg.MinZoom)
	if err != nil {
		if id == self.cfg.MissingSprite {
			self.fatalf("sprite #%d: unable to process the missing-sprite placeholder: %s", id, err)
		}
		self.log.Warn("substituting placeholder for oversized sprite", "sprite", id, "error", err)
		return self.getRaw(self.cfg.MissingSprite, TypeNormal, allocator, encoder)
	}

	if typ == TypeFont && self.cfg.FontZoom != zoom.Normal {
		// Glyphs render exclusively at the interface font zoom, so
		// rebase that level as the payload's normal level.
		*collection.Frame(zoom.Normal) = *collection.Frame(self.cfg.FontZoom)
	}

	return encoder.Encode(&collection, allocator)
}

// readRecolour eagerly loads a recolour table into the entry. These
// payloads are tiny, never evicted and never touch the pixel pipeline.
func (self *Cache) readRecolour(e *entry, dataLen uint32) error {
	e.file.SeekTo(e.filePos)

	n := int(dataLen)
	buf := make([]byte, max(recolourLen, n))
	if err := e.file.ReadBlock(buf[:n]); err != nil { return err }
	if e.file.NeedsPaletteRemap() && self.cfg.RecolourRemap != nil {
		self.cfg.RecolourRemap(buf)
	}

	self.setEntryData(e, &Sprite{Data: buf})
	return nil
}
