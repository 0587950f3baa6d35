package cache

import "image"
import "image/color"

import "github.com/nfnt/resize"

import "gfxcache/fract"
import "gfxcache/loader"
import "gfxcache/zoom"

// GetRawAtScale returns the sprite's payload scaled by an arbitrary
// fractional factor, for interface elements that follow a
// non-power-of-two display scale. The scaled variant is cached in a
// per-entry slot separate from the regular payload; only the last
// requested scale is kept, and [Cache.Maintain] never evicts these
// (use [Cache.ClearFractional] when the interface scale changes).
//
// Scaling happens on the RGBA channels of the normal level, so the
// palette index does not survive; this path is only meaningful for
// 32bpp renderers. Whole scales and anything unscalable fall back to
// the regular [Cache.GetRaw] path.
func (self *Cache) GetRawAtScale(id SpriteID, typ SpriteType, scale fract.Unit) *Sprite {
	if scale <= 0 || scale == fract.One { return self.GetRaw(id, typ) }
	if typ != TypeNormal && typ != TypeFont { return self.GetRaw(id, typ) }
	if !self.Exists(id) || self.entries[id].typ != typ { return self.GetRaw(id, typ) }

	e := &self.entries[id]
	self.lruCounter++
	e.lru = self.lruCounter
	if e.fracData != nil && e.fracScale == scale { return e.fracData }

	sprite := self.scaleSprite(e, id, typ, scale)
	if sprite == nil { return self.GetRaw(id, typ) }
	self.setEntryFrac(e, sprite, scale)
	return sprite
}

func (self *Cache) scaleSprite(e *entry, id SpriteID, typ SpriteType, scale fract.Unit) *Sprite {
	var collection loader.Collection
	avail := self.loadFrames(e, typ, self.enc, &collection)
	if avail == 0 { return nil }

	if !avail.Has(zoom.Normal) {
		if err := resizeSpriteIn(&collection, avail.First(), zoom.Normal); err != nil {
			self.log.Warn("fractional scale unavailable", "sprite", id, "error", err)
			return nil
		}
	}
	src := collection.Frame(zoom.Normal)
	if src.Width == 0 || src.Height == 0 { return nil }

	img := image.NewNRGBA(image.Rect(0, 0, src.Width, src.Height))
	for i, px := range src.Pixels {
		img.Pix[i*4+0] = px.R
		img.Pix[i*4+1] = px.G
		img.Pix[i*4+2] = px.B
		img.Pix[i*4+3] = px.A
	}

	width := max(1, scale.MulInt(src.Width))
	height := max(1, scale.MulInt(src.Height))
	scaled := resize.Resize(uint(width), uint(height), img, resize.NearestNeighbor)

	var out loader.Collection
	frame := out.Frame(zoom.Normal)
	frame.Width = width
	frame.Height = height
	frame.XOffs = scale.MulInt(src.XOffs)
	frame.YOffs = scale.MulInt(src.YOffs)
	frame.Colours = loader.ColourRGB | loader.ColourAlpha
	frame.Allocate(width * height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := color.NRGBAModel.Convert(scaled.At(x, y)).(color.NRGBA)
			frame.Pixels[y*width+x] = loader.Pixel{R: px.R, G: px.G, B: px.B, A: px.A}
		}
	}

	mask := zoom.Mask(0).With(zoom.Normal)
	if err := completeSpriteSet(&out, mask, self.enc.SpriteAlignment(), zoom.Normal); err != nil {
		self.log.Warn("fractional scale unavailable", "sprite", id, "error", err)
		return nil
	}
	return self.enc.Encode(&out, SimpleAllocator{})
}
