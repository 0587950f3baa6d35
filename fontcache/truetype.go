package fontcache

import "image"
import "image/draw"

import "github.com/dgraph-io/ristretto/v2"
import "github.com/hashicorp/go-hclog"
import "golang.org/x/image/font"
import "golang.org/x/image/font/opentype"
import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

import "gfxcache/cache"

// Per-font budget for rasterized glyph payloads, in bytes.
const glyphMaskBudget = 1 << 20

// VectorFont is a glyph cache rasterizing from a vector font. Glyph
// payloads are 8-bit coverage masks, one byte per pixel, produced on
// first use and kept in a cost-bounded cache where the cost is the
// payload size.
//
// Mask payloads go through the text renderer, not the sprite blitter,
// which is why they bypass the sprite cache and its encoded format
// even though they reuse the [cache.Sprite] envelope.
type VectorFont struct {
	size        Size
	name        string
	fnt         *sfnt.Font
	face        font.Face
	buffer      sfnt.Buffer
	masks       *ristretto.Cache[uint64, *glyph]
	glyphToRune map[GlyphID]rune
	log         hclog.Logger
	height      int
	ascent      int
}

type glyph struct {
	sprite  *cache.Sprite
	advance int
}

// Creates a glyph cache that rasterizes the given font at the given
// pixel size. A nil logger is replaced by [hclog.NewNullLogger]().
func NewVectorFont(size Size, name string, fnt *sfnt.Font, pixels int, logger hclog.Logger) (*VectorFont, error) {
	if logger == nil { logger = hclog.NewNullLogger() }
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(pixels),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil { return nil, err }

	masks, err := ristretto.NewCache(&ristretto.Config[uint64, *glyph]{
		NumCounters: 1 << 12,
		MaxCost:     glyphMaskBudget,
		BufferItems: 64,
	})
	if err != nil { return nil, err }

	metrics := face.Metrics()
	self := &VectorFont{
		size:        size,
		name:        name,
		fnt:         fnt,
		face:        face,
		masks:       masks,
		glyphToRune: make(map[GlyphID]rune),
		log:         logger,
		height:      metrics.Height.Ceil(),
		ascent:      metrics.Ascent.Ceil(),
	}
	logger.Debug("loaded vector font", "font", name, "size", size, "pixels", pixels,
		"height", self.height)
	return self, nil
}

func (self *VectorFont) Size() Size      { return self.size }
func (self *VectorFont) Name() string    { return self.name }
func (self *VectorFont) IsBuiltIn() bool { return false }

func (self *VectorFont) Height() int    { return self.height }
func (self *VectorFont) Ascender() int  { return self.ascent }
func (self *VectorFont) Descender() int { return self.height - self.ascent }

func (self *VectorFont) MapCharToGlyph(char rune) GlyphID {
	index, err := self.fnt.GlyphIndex(&self.buffer, char)
	if err != nil || index == 0 { return 0 }
	key := GlyphID(index)
	self.glyphToRune[key] = char
	return key
}

func (self *VectorFont) Glyph(key GlyphID) *cache.Sprite {
	g := self.rasterize(key)
	if g == nil { return nil }
	return g.sprite
}

func (self *VectorFont) GlyphWidth(key GlyphID) int {
	g := self.rasterize(key)
	if g == nil { return 0 }
	return g.advance
}

func (self *VectorFont) rasterize(key GlyphID) *glyph {
	if key == 0 { return nil }
	if g, found := self.masks.Get(uint64(key)); found { return g }

	char, known := self.glyphToRune[key]
	if !known { return nil }

	dot := fixed.P(0, self.ascent)
	bounds, img, origin, advance, ok := self.face.Glyph(dot, char)
	if !ok {
		self.log.Warn("glyph rasterization failed", "font", self.name, "char", char)
		return nil
	}

	width := bounds.Dx()
	height := bounds.Dy()
	g := &glyph{
		sprite: &cache.Sprite{
			Width:  uint16(width),
			Height: uint16(height),
			XOffs:  int16(bounds.Min.X),
			YOffs:  int16(bounds.Min.Y - self.ascent),
			Data:   make([]byte, width*height),
		},
		advance: advance.Ceil(),
	}

	// normalize the source to an alpha image anchored at the origin
	alpha := image.NewAlpha(image.Rect(0, 0, width, height))
	draw.Draw(alpha, alpha.Bounds(), img, origin, draw.Src)
	copy(g.sprite.Data, alpha.Pix)

	self.masks.Set(uint64(key), g, int64(len(g.sprite.Data))+32)
	self.masks.Wait()
	return g
}

func (self *VectorFont) UpdateCharacterMap(claim func(char rune)) {
	// basic multilingual plane, skipping the surrogate range
	for char := rune(0x20); char <= 0xFFFF; char++ {
		if char >= 0xD800 && char <= 0xDFFF { continue }
		index, err := self.fnt.GlyphIndex(&self.buffer, char)
		if err != nil || index == 0 { continue }
		self.glyphToRune[GlyphID(index)] = char
		claim(char)
	}
}

func (self *VectorFont) ClearCache() {
	self.masks.Clear()
}
