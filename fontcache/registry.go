package fontcache

import "errors"

import "github.com/hashicorp/go-hclog"
import "github.com/zyedidia/generic/mapset"

import "gfxcache/cache"
import "gfxcache/font"

var ErrFontNotFound = errors.New("font not found in the library")

// A Registry owns the font caches of all sizes and decides, per size,
// which cache serves each character. It replaces what the original
// engine kept as process-wide font state; everything it needs comes in
// through the constructor.
type Registry struct {
	sprites   *cache.Cache
	library   *font.Library
	log       hclog.Logger
	caches    []FontCache
	priority  [NumSizes][]Index
	owners    [NumSizes]map[rune]Index
	defaults  [NumSizes]Index
	maxHeight int
}

// Creates a new font cache registry on top of the shared sprite cache
// and font library. A nil logger is replaced by
// [hclog.NewNullLogger]().
func NewRegistry(sprites *cache.Cache, library *font.Library, logger hclog.Logger) *Registry {
	if logger == nil { logger = hclog.NewNullLogger() }
	self := &Registry{
		sprites: sprites,
		library: library,
		log:     logger,
	}
	for size := Size(0); size < NumSizes; size++ {
		self.owners[size] = make(map[rune]Index)
		self.defaults[size] = InvalidIndex
	}
	return self
}

// The font library fallback fonts are resolved from.
func (self *Registry) Library() *font.Library { return self.library }

// Register adds a cache to the registry and appends it to its size's
// claim priority, so earlier registrations win contested characters.
// The first cache registered for a size becomes that size's default.
func (self *Registry) Register(fc FontCache) Index {
	index := Index(len(self.caches))
	self.caches = append(self.caches, fc)
	size := fc.Size()
	self.priority[size] = append(self.priority[size], index)
	if self.defaults[size] == InvalidIndex { self.defaults[size] = index }
	if fc.Height() > self.maxHeight { self.maxHeight = fc.Height() }
	self.log.Debug("registered font cache", "font", fc.Name(), "size", size, "index", index)
	return index
}

// AddSpriteFont registers the built-in bitmap font for the given size
// with its glyph map initialized from the given base sprite.
func (self *Registry) AddSpriteFont(size Size, base cache.SpriteID) (Index, *SpriteFont) {
	fc := NewSpriteFont(size, self.sprites)
	fc.InitGlyphMap(base)
	return self.Register(fc), fc
}

// AddVectorFont resolves the named font in the library, builds a glyph
// cache rasterizing it at the given pixel size and registers it.
func (self *Registry) AddVectorFont(size Size, name string, pixels int) (Index, error) {
	fnt := self.library.GetFont(name)
	if fnt == nil { return InvalidIndex, ErrFontNotFound }
	fc, err := NewVectorFont(size, name, fnt, pixels, self.log)
	if err != nil { return InvalidIndex, err }
	return self.Register(fc), nil
}

// Get returns the cache at the given index, nil when out of range.
func (self *Registry) Get(index Index) FontCache {
	if int(index) >= len(self.caches) { return nil }
	return self.caches[index]
}

// Default returns the default cache of the given size, nil when none
// is registered.
func (self *Registry) Default(size Size) FontCache {
	return self.Get(self.defaults[size])
}

// SetDefault changes the default cache of the given size. The index
// must belong to a cache of that size.
func (self *Registry) SetDefault(size Size, index Index) error {
	fc := self.Get(index)
	if fc == nil || fc.Size() != size {
		return errors.New("index does not name a cache of the given size")
	}
	self.defaults[size] = index
	return nil
}

// SetPriority replaces the claim order for the given size. Every
// index must belong to a cache of that size; caches left out of the
// order stop claiming characters on the next rebuild.
func (self *Registry) SetPriority(size Size, order []Index) error {
	for _, index := range order {
		fc := self.Get(index)
		if fc == nil || fc.Size() != size {
			return errors.New("priority order names a cache of another size")
		}
	}
	self.priority[size] = append([]Index(nil), order...)
	return nil
}

// Rebuild recomputes character ownership and the maximum line height.
// Call it after registering caches, changing priorities, or loading
// content that alters the built-in font sprites.
func (self *Registry) Rebuild() {
	self.maxHeight = 0
	for _, fc := range self.caches {
		if fc.Height() > self.maxHeight { self.maxHeight = fc.Height() }
	}
	for size := Size(0); size < NumSizes; size++ {
		owners := make(map[rune]Index)
		for _, index := range self.priority[size] {
			fc := self.caches[index]
			fc.UpdateCharacterMap(func(char rune) {
				if _, claimed := owners[char]; !claimed { owners[char] = index }
			})
		}
		self.owners[size] = owners
		self.log.Debug("rebuilt character map", "size", size,
			"caches", len(self.priority[size]), "characters", len(owners))
	}
}

// Owner returns the cache serving the given character at the given
// size: the claimant if the character is claimed, the size's default
// otherwise. Returns nil only when the size has no caches at all.
func (self *Registry) Owner(size Size, char rune) FontCache {
	if index, claimed := self.owners[size][char]; claimed {
		return self.caches[index]
	}
	return self.Default(size)
}

// Glyph resolves a character straight to its payload, nil when no
// cache of the size covers it and the default has no fallback glyph.
func (self *Registry) Glyph(size Size, char rune) *cache.Sprite {
	fc := self.Owner(size, char)
	if fc == nil { return nil }
	return fc.Glyph(fc.MapCharToGlyph(char))
}

// GlyphWidth resolves a character straight to its advance, 0 when
// uncovered.
func (self *Registry) GlyphWidth(size Size, char rune) int {
	fc := self.Owner(size, char)
	if fc == nil { return 0 }
	return fc.GlyphWidth(fc.MapCharToGlyph(char))
}

// CharacterHeight is the line height of the given size's default
// cache, falling back to the built-in metrics when none is registered.
func (self *Registry) CharacterHeight(size Size) int {
	fc := self.Default(size)
	if fc == nil { return defaultHeights[size] }
	return fc.Height()
}

// MaxHeight is the tallest line height across all registered caches.
func (self *Registry) MaxHeight() int { return self.maxHeight }

// MissingChars returns the set of characters in the given text that
// no cache of the given size has claimed. The default cache still
// substitutes its fallback glyph for these at draw time; this check
// is how the engine decides a fallback font is needed at all.
func (self *Registry) MissingChars(size Size, text string) mapset.Set[rune] {
	missing := mapset.New[rune]()
	for _, char := range text {
		if _, claimed := self.owners[size][char]; !claimed { missing.Put(char) }
	}
	return missing
}

// ClearCaches drops every rasterized glyph payload, including the
// built-in font sprites held by the shared sprite cache.
func (self *Registry) ClearCaches() {
	for _, fc := range self.caches {
		fc.ClearCache()
	}
	self.sprites.ClearFont()
}
