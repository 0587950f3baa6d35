package fontcache

import "gfxcache/cache"

// The character the built-in font substitutes for anything it has no
// glyph for.
const fallbackChar = '?'

// SpriteFont is the built-in bitmap font: glyphs are regular font
// sprites in the shared sprite cache, so this cache holds no pixel
// data of its own and "rasterization" is just a sprite request.
type SpriteFont struct {
	size    Size
	sprites *cache.Cache
	glyphs  map[rune]cache.SpriteID
}

// Creates the built-in font cache for the given size on top of the
// shared sprite cache. The glyph map starts empty; populate it with
// [SpriteFont.InitGlyphMap] once the base sprites are registered.
func NewSpriteFont(size Size, sprites *cache.Cache) *SpriteFont {
	return &SpriteFont{
		size:    size,
		sprites: sprites,
		glyphs:  make(map[rune]cache.SpriteID),
	}
}

func (self *SpriteFont) Size() Size      { return self.size }
func (self *SpriteFont) Name() string    { return "sprite" }
func (self *SpriteFont) IsBuiltIn() bool { return true }

func (self *SpriteFont) Height() int    { return defaultHeights[self.size] }
func (self *SpriteFont) Ascender() int  { return defaultAscenders[self.size] }
func (self *SpriteFont) Descender() int { return self.Height() - self.Ascender() }

// InitGlyphMap maps the classic printable range (chars 32 to 255)
// onto consecutive sprite ids starting at base, skipping ids without
// a registered sprite. Existing explicit mappings are discarded.
func (self *SpriteFont) InitGlyphMap(base cache.SpriteID) {
	self.glyphs = make(map[rune]cache.SpriteID)
	for char := rune(32); char <= 255; char++ {
		id := base + cache.SpriteID(char-32)
		if self.sprites.Exists(id) { self.glyphs[char] = id }
	}
}

// SetUnicodeGlyph maps a single character to an explicit glyph
// sprite, for content that provides glyphs outside the classic range.
func (self *SpriteFont) SetUnicodeGlyph(char rune, id cache.SpriteID) {
	self.glyphs[char] = id
}

func (self *SpriteFont) MapCharToGlyph(char rune) GlyphID {
	id, found := self.glyphs[char]
	if !found { id = self.glyphs[fallbackChar] }
	return GlyphID(id)
}

func (self *SpriteFont) Glyph(key GlyphID) *cache.Sprite {
	if key == 0 { return nil }
	return self.sprites.GetRaw(cache.SpriteID(key), cache.TypeFont)
}

func (self *SpriteFont) GlyphWidth(key GlyphID) int {
	sprite := self.Glyph(key)
	if sprite == nil { return 0 }
	return int(sprite.Width) + 1
}

func (self *SpriteFont) UpdateCharacterMap(claim func(char rune)) {
	for char := range self.glyphs {
		claim(char)
	}
}

// ClearCache is a no-op at this level; the glyph payloads live in the
// shared sprite cache and are cleared through it.
func (self *SpriteFont) ClearCache() {}
