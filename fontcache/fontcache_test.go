package fontcache

import "os"
import "path/filepath"
import "testing"

import "golang.org/x/image/font/gofont/goregular"

import "gfxcache/asset"
import "gfxcache/cache"
import "gfxcache/font"
import "gfxcache/loader"
import "gfxcache/zoom"

type glyphLoader struct{}

func (glyphLoader) LoadSprite(collection *loader.Collection, file *asset.File, pos int64, spriteType loader.Type, want32bpp bool, flags loader.ControlFlags) (zoom.Mask, error) {
	frame := collection.Frame(zoom.Normal)
	frame.Width, frame.Height = 5, 8
	frame.Colours = loader.ColourRGB | loader.ColourAlpha
	frame.Allocate(frame.Width * frame.Height)
	for i := range frame.Pixels { frame.Pixels[i].A = 255 }
	return zoom.Mask(0).With(zoom.Normal), nil
}

type glyphEncoder struct{}

func (glyphEncoder) Is32BppSupported() bool { return false }
func (glyphEncoder) ScreenDepth() int       { return 8 }
func (glyphEncoder) SpriteAlignment() int   { return 0 }

func (glyphEncoder) Encode(collection *loader.Collection, allocator cache.Allocator) *cache.Sprite {
	normal := collection.Frame(zoom.Normal)
	return &cache.Sprite{
		Width:  uint16(normal.Width),
		Height: uint16(normal.Height),
		Data:   allocator.Allocate(len(normal.Pixels)),
	}
}

func newGlyphSpriteCache(t *testing.T) *cache.Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glyphs.dat")
	if err := os.WriteFile(path, make([]byte, 64), 0o644); err != nil { t.Fatal(err) }

	files := asset.NewRegistry(nil)
	file, err := files.Open(path, false)
	if err != nil { t.Fatal(err) }
	t.Cleanup(func() { _ = files.Clear() })

	sprites := cache.New(files, glyphLoader{}, glyphEncoder{}, cache.Config{
		BudgetBytes:   1 << 30,
		MissingSprite: 1,
	}, nil)
	if err := sprites.Register(1, file, 8, cache.TypeNormal, 1, 0, 0); err != nil { t.Fatal(err) }

	// glyph sprites for the classic range, chars 32..126, base id 100
	for char := rune(32); char <= 126; char++ {
		id := cache.SpriteID(100 + char - 32)
		if err := sprites.Register(id, file, int64(char), cache.TypeFont, uint32(id), 0, 0); err != nil {
			t.Fatal(err)
		}
	}
	return sprites
}

func TestSpriteFontGlyphMap(t *testing.T) {
	sprites := newGlyphSpriteCache(t)
	fc := NewSpriteFont(SizeNormal, sprites)
	fc.InitGlyphMap(100)

	if got := fc.MapCharToGlyph('A'); got != GlyphID(100+'A'-32) {
		t.Fatalf("'A' mapped to %d", got)
	}
	if got := fc.MapCharToGlyph('中'); got != GlyphID(100+'?'-32) {
		t.Fatalf("uncovered char did not fall back to '?', got %d", got)
	}

	sprite := fc.Glyph(fc.MapCharToGlyph('A'))
	if sprite == nil { t.Fatal("got nil glyph sprite") }
	if fc.GlyphWidth(fc.MapCharToGlyph('A')) != int(sprite.Width)+1 {
		t.Fatal("advance does not include inter-glyph spacing")
	}

	if fc.Height() != 10 || fc.Ascender() != 8 || fc.Descender() != 2 {
		t.Fatalf("unexpected built-in metrics: %d/%d/%d", fc.Height(), fc.Ascender(), fc.Descender())
	}

	fc.SetUnicodeGlyph('中', 100)
	if fc.MapCharToGlyph('中') != 100 { t.Fatal("explicit glyph mapping ignored") }
}

func TestVectorFontRasterization(t *testing.T) {
	fnt, _, err := font.ParseFromBytes(goregular.TTF)
	if err != nil { t.Fatal(err) }
	fc, err := NewVectorFont(SizeNormal, "test", fnt, 16, nil)
	if err != nil { t.Fatal(err) }

	key := fc.MapCharToGlyph('A')
	if key == 0 { t.Fatal("'A' has no glyph in the test font") }
	if fc.MapCharToGlyph('\uE000') != 0 { t.Fatal("private use char reported as covered") }

	sprite := fc.Glyph(key)
	if sprite == nil { t.Fatal("got nil glyph") }
	if sprite.Width == 0 || sprite.Height == 0 { t.Fatalf("empty mask %dx%d", sprite.Width, sprite.Height) }
	if len(sprite.Data) != int(sprite.Width)*int(sprite.Height) {
		t.Fatalf("payload size %d does not match %dx%d", len(sprite.Data), sprite.Width, sprite.Height)
	}
	opaque := false
	for _, b := range sprite.Data {
		if b != 0 { opaque = true; break }
	}
	if !opaque { t.Fatal("rasterized mask is fully transparent") }
	if fc.GlyphWidth(key) <= 0 { t.Fatal("non-positive advance") }
	if fc.Height() <= 0 || fc.Ascender() <= 0 { t.Fatal("non-positive metrics") }

	fc.ClearCache()
	if fc.Glyph(key) == nil { t.Fatal("glyph not re-rasterized after clear") }
}

// stubFont gives claim tests exact control over coverage.
type stubFont struct {
	size    Size
	name    string
	covered []rune
	height  int
	cleared int
}

func (self *stubFont) Size() Size      { return self.size }
func (self *stubFont) Name() string    { return self.name }
func (self *stubFont) IsBuiltIn() bool { return false }
func (self *stubFont) Height() int     { return self.height }
func (self *stubFont) Ascender() int   { return self.height - 2 }
func (self *stubFont) Descender() int  { return 2 }
func (self *stubFont) ClearCache()     { self.cleared++ }

func (self *stubFont) MapCharToGlyph(char rune) GlyphID {
	for _, c := range self.covered {
		if c == char { return GlyphID(char) }
	}
	return 0
}

func (self *stubFont) Glyph(key GlyphID) *cache.Sprite {
	if key == 0 { return nil }
	return &cache.Sprite{Width: 1, Height: 1, Data: []byte{byte(self.height)}}
}

func (self *stubFont) GlyphWidth(key GlyphID) int { return 4 }

func (self *stubFont) UpdateCharacterMap(claim func(char rune)) {
	for _, char := range self.covered {
		claim(char)
	}
}

func TestRegistryClaimPriority(t *testing.T) {
	sprites := newGlyphSpriteCache(t)
	registry := NewRegistry(sprites, font.NewLibrary(), nil)

	primary := &stubFont{size: SizeNormal, name: "primary", covered: []rune{'a', 'b'}, height: 12}
	fallback := &stubFont{size: SizeNormal, name: "fallback", covered: []rune{'a', '中'}, height: 16}
	primaryIdx := registry.Register(primary)
	fallbackIdx := registry.Register(fallback)
	registry.Rebuild()

	if registry.Owner(SizeNormal, 'a') != FontCache(primary) {
		t.Fatal("contested character not claimed by the higher priority cache")
	}
	if registry.Owner(SizeNormal, '中') != FontCache(fallback) {
		t.Fatal("fallback-only character not claimed by the fallback")
	}
	if registry.Owner(SizeNormal, 'ж') != FontCache(primary) {
		t.Fatal("unclaimed character not served by the default cache")
	}
	if registry.MaxHeight() != 16 { t.Fatalf("max height %d", registry.MaxHeight()) }
	if registry.CharacterHeight(SizeNormal) != 12 {
		t.Fatalf("default height %d", registry.CharacterHeight(SizeNormal))
	}
	if registry.CharacterHeight(SizeSmall) != 6 {
		t.Fatalf("built-in small height %d", registry.CharacterHeight(SizeSmall))
	}

	missing := registry.MissingChars(SizeNormal, "ab中ж")
	if missing.Size() != 1 || !missing.Has('ж') {
		t.Fatalf("wrong missing set (%d entries)", missing.Size())
	}

	// inverted priority flips the contested claim
	if err := registry.SetPriority(SizeNormal, []Index{fallbackIdx, primaryIdx}); err != nil {
		t.Fatal(err)
	}
	registry.Rebuild()
	if registry.Owner(SizeNormal, 'a') != FontCache(fallback) {
		t.Fatal("priority change did not flip the claim")
	}

	if registry.Glyph(SizeNormal, '中') == nil { t.Fatal("claimed character yields no glyph") }
	if registry.GlyphWidth(SizeNormal, 'a') != 4 { t.Fatal("wrong advance through the registry") }

	registry.ClearCaches()
	if primary.cleared != 1 || fallback.cleared != 1 { t.Fatal("clear did not reach all caches") }
}

func TestRegistryDefaults(t *testing.T) {
	sprites := newGlyphSpriteCache(t)
	registry := NewRegistry(sprites, font.NewLibrary(), nil)
	if registry.Default(SizeNormal) != nil { t.Fatal("empty registry has a default") }
	if registry.Owner(SizeNormal, 'a') != nil { t.Fatal("empty registry has an owner") }

	small := &stubFont{size: SizeSmall, name: "small", covered: []rune{'a'}, height: 6}
	normal := &stubFont{size: SizeNormal, name: "normal", covered: []rune{'a'}, height: 12}
	smallIdx := registry.Register(small)
	normalIdx := registry.Register(normal)

	if registry.Default(SizeNormal) != FontCache(normal) { t.Fatal("wrong normal default") }
	if registry.Default(SizeSmall) != FontCache(small) { t.Fatal("wrong small default") }
	if err := registry.SetDefault(SizeNormal, smallIdx); err == nil {
		t.Fatal("cross-size default accepted")
	}
	if err := registry.SetDefault(SizeNormal, normalIdx); err != nil { t.Fatal(err) }
	if err := registry.SetPriority(SizeNormal, []Index{smallIdx}); err == nil {
		t.Fatal("cross-size priority accepted")
	}
}

func TestRegistryVectorFont(t *testing.T) {
	sprites := newGlyphSpriteCache(t)
	library := font.NewLibrary()
	name, err := library.ParseFromBytes(goregular.TTF)
	if err != nil { t.Fatal(err) }

	registry := NewRegistry(sprites, library, nil)
	if _, err := registry.AddVectorFont(SizeNormal, "no such font", 16); err != ErrFontNotFound {
		t.Fatalf("expected ErrFontNotFound, got %v", err)
	}
	index, err := registry.AddVectorFont(SizeNormal, name, 16)
	if err != nil { t.Fatal(err) }
	if registry.Get(index) == nil { t.Fatal("registered cache not retrievable") }

	registry.Rebuild()
	if registry.Glyph(SizeNormal, 'A') == nil { t.Fatal("no glyph for 'A'") }
	if registry.MissingChars(SizeNormal, "A中").Size() != 1 {
		t.Fatal("CJK coverage reported for a latin font")
	}
}
