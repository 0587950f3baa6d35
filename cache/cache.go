package cache

import "fmt"

import "github.com/hashicorp/go-hclog"

import "gfxcache/asset"
import "gfxcache/fract"
import "gfxcache/loader"
import "gfxcache/zoom"

// Config collects the knobs the sprite cache consumes. It is owned by
// the caller; the cache never writes it back anywhere.
type Config struct {
	// Byte budget in MiB, scaled by the encoder's screen depth the
	// way the original renderer memory model expects (budget *
	// depth/8). Ignored when BudgetBytes is set.
	BudgetMB uint

	// Exact byte budget. Takes precedence over BudgetMB; mainly for
	// embedders and tests that need byte-level control.
	BudgetBytes uint64

	// Extra bytes freed beyond the deficit on each eviction pass, so
	// consecutive loads don't immediately re-trigger eviction.
	EvictionSlack uint64

	// The placeholder substituted for missing or mistyped normal and
	// font sprites. The engine cannot run if this one is broken.
	MissingSprite SpriteID

	// The identity remap substituted for mistyped recolour sprites.
	IdentityRecolour SpriteID

	// Sprite ids in (0, MapGenLimit) are map-generator slots whose
	// payloads bypass the pixel pipeline. 0 disables the range.
	MapGenLimit SpriteID

	// Coarsest zoom level to keep as the working baseline; finer
	// levels are rebased away at load time as a memory tradeoff.
	MinZoom zoom.Level

	// Zoom level font sprites are rebased to after the pipeline.
	FontZoom zoom.Level

	// Applied in place to recolour tables loaded from containers
	// flagged for palette remapping. The cache has no palette
	// knowledge of its own; embedders that mix palettes install the
	// translation here. Nil leaves flagged tables untouched.
	RecolourRemap func(table []byte)
}

// Cache is the sprite cache table. Construct it with [New] at startup
// and drop it (after [Cache.ClearAll]) at shutdown; it replaces what
// the original engine kept in process-wide globals so tests can run
// isolated instances.
type Cache struct {
	entries       []entry
	files         *asset.Registry
	ld            loader.SpriteLoader
	enc           Encoder
	cfg           Config
	log           hclog.Logger
	fatal         func(msg string)
	bytesUsed     uint64
	fracBytesUsed uint64
	lruCounter    uint32
}

// Creates a new sprite cache. The file registry may be shared with
// other components; the loader and encoder are the external decode
// and render collaborators. A nil logger is replaced by
// [hclog.NewNullLogger]().
func New(files *asset.Registry, ld loader.SpriteLoader, enc Encoder, cfg Config, logger hclog.Logger) *Cache {
	if logger == nil { logger = hclog.NewNullLogger() }
	self := &Cache{
		files: files,
		ld:    ld,
		enc:   enc,
		cfg:   cfg,
		log:   logger,
	}
	self.fatal = func(msg string) {
		self.log.Error(msg)
		panic(msg)
	}
	return self
}

// Replaces the handler invoked on unrecoverable conditions (broken or
// mistyped fallback assets). The default logs and panics, since the
// engine has no degraded mode below "its own bundled assets are
// intact". The handler must not return; if it does, the cache panics
// anyway.
func (self *Cache) SetFatalHandler(handler func(msg string)) {
	self.fatal = handler
}

func (self *Cache) fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	self.fatal(msg)
	panic(msg) // not reached with the default handler
}

// Returns the encoder the cache encodes through by default.
func (self *Cache) Encoder() Encoder { return self.enc }

// Grows the table so that the given id has a slot. Growth is
// amortized through append; fresh slots are zeroed, nonexistent
// entries.
func (self *Cache) Allocate(id SpriteID) {
	for int(id) >= len(self.entries) {
		self.entries = append(self.entries, entry{})
	}
}

// Whether the entry has a valid backing location. Sprite 0 is a
// permanent sentinel that exists without one. Never triggers a
// decode.
func (self *Cache) Exists(id SpriteID) bool {
	if int(id) >= len(self.entries) { return false }
	if id == 0 { return true }
	e := &self.entries[id]
	return !(e.filePos == 0 && e.file == nil)
}

// The sprite type of the given sprite, TypeInvalid if it doesn't
// exist.
func (self *Cache) Type(id SpriteID) SpriteType {
	if !self.Exists(id) { return TypeInvalid }
	return self.entries[id].typ
}

// The asset container the given sprite loads from, nil if the sprite
// doesn't exist.
func (self *Cache) OriginFile(id SpriteID) *asset.File {
	if !self.Exists(id) { return nil }
	return self.entries[id].file
}

// The container-local id of the given sprite, 0 if it doesn't exist.
func (self *Cache) LocalID(id SpriteID) uint32 {
	if !self.Exists(id) { return 0 }
	return self.entries[id].localID
}

// An upper bound estimate of the highest sprite id in use; actually
// the current table length.
func (self *Cache) MaxSpriteID() SpriteID {
	return SpriteID(len(self.entries))
}

// Counts the sprites in [begin, end) that originate from the named
// container file.
func (self *Cache) SpriteCountForFile(filename string, begin, end SpriteID) int {
	file := self.files.Lookup(filename)
	if file == nil { return 0 }

	count := 0
	for id := begin; id != end; id++ {
		if self.Exists(id) && self.entries[id].file == file {
			self.log.Trace("sprite in file", "sprite", id, "file", filename)
			count++
		}
	}
	return count
}

// Total decoded payload bytes currently held in the shared cache.
// Fractional-scale payloads are accounted separately and don't count
// against the eviction budget.
func (self *Cache) BytesUsed() uint64 { return self.bytesUsed }

func (self *Cache) isMapGen(id SpriteID) bool {
	return id != 0 && id < self.cfg.MapGenLimit
}

// Register records where the sprite with the given id can be decoded
// from. Recolour sprites load their payload eagerly right here, since
// they bypass the pixel pipeline and are never evicted; dataLen is
// only used for them. Registering a map-generator slot with any type
// other than normal is unrecoverable: content did override a reserved
// sprite.
func (self *Cache) Register(id SpriteID, file *asset.File, filePos int64, typ SpriteType, localID uint32, dataLen uint32, flags loader.ControlFlags) error {
	if self.isMapGen(id) {
		if typ != TypeNormal {
			self.fatalf("sprite #%d: content changes the type of a map generator sprite", id)
		}
		typ = TypeMapGen
	}

	self.Allocate(id)
	e := &self.entries[id]
	e.file = file
	e.filePos = filePos
	self.clearEntryData(e)
	self.setEntryFrac(e, nil, 0)
	e.lru = 0
	e.localID = localID
	e.typ = typ
	e.warned = false
	e.flags = flags

	if typ == TypeRecolour {
		return self.readRecolour(e, dataLen)
	}
	return nil
}

// Duplicate registers newID as visually identical to oldID: both
// share the same backing location, but the duplicate starts with
// empty payload buffers so it decodes on first use.
func (self *Cache) Duplicate(oldID, newID SpriteID) {
	self.Allocate(newID) // may grow the table, so do it before taking pointers
	src := &self.entries[oldID]
	dst := &self.entries[newID]

	dst.file = src.file
	dst.filePos = src.filePos
	self.clearEntryData(dst)
	self.setEntryFrac(dst, nil, 0)
	dst.localID = src.localID
	dst.typ = src.typ
	dst.warned = false
	dst.flags = src.flags
}

// ClearAll performs a full cold-start reset: the table is emptied,
// byte accounting zeroed and all shared file handles closed.
func (self *Cache) ClearAll() {
	self.entries = nil
	self.bytesUsed = 0
	self.fracBytesUsed = 0
	self.lruCounter = 0
	if self.files != nil { _ = self.files.Clear() }
}

// ClearEncoded drops every decoded payload except recolour tables.
// Location metadata survives, so everything reloads on demand.
func (self *Cache) ClearEncoded() {
	for i := range self.entries {
		e := &self.entries[i]
		if e.typ != TypeRecolour && e.data != nil { self.clearEntryData(e) }
	}
}

// ClearFont drops the decoded payloads of font sprites only. Used
// when font zoom or depth changes invalidate glyph encodes.
func (self *Cache) ClearFont() {
	for i := range self.entries {
		e := &self.entries[i]
		if e.typ == TypeFont && e.data != nil { self.clearEntryData(e) }
	}
}

// ClearFractional drops every fractional-scale payload. The regular
// decoded payloads are untouched.
func (self *Cache) ClearFractional() {
	for i := range self.entries {
		e := &self.entries[i]
		if e.fracData != nil { self.setEntryFrac(e, nil, 0) }
	}
}

// ---- payload accounting ----

func (self *Cache) setEntryData(e *entry, sprite *Sprite) {
	if e.data != nil { self.bytesUsed -= uint64(len(e.data.Data)) }
	e.data = sprite
	if sprite != nil { self.bytesUsed += uint64(len(sprite.Data)) }
}

func (self *Cache) clearEntryData(e *entry) {
	self.setEntryData(e, nil)
}

func (self *Cache) setEntryFrac(e *entry, sprite *Sprite, scale fract.Unit) {
	if e.fracData != nil { self.fracBytesUsed -= uint64(len(e.fracData.Data)) }
	e.fracData = sprite
	e.fracScale = scale
	if sprite != nil { self.fracBytesUsed += uint64(len(sprite.Data)) }
}
