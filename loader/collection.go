package loader

import "gfxcache/zoom"

// ColourMask describes which colour components a decoded frame
// actually carries.
type ColourMask uint8

const (
	ColourRGB ColourMask = 1 << iota
	ColourAlpha
	ColourPalette
)

// Pixel is the loader's common intermediate format: straight (not
// premultiplied) RGBA plus the palette index when the source was
// paletted. Every decoded frame uses this format regardless of the
// container's native encoding; the encoder converts it to whatever
// the renderer wants.
type Pixel struct {
	R, G, B, A uint8
	M          uint8 // palette index, 0 when not paletted
}

// A Frame is the pixel data of one zoom level of a sprite, plus the
// metadata needed to place it: dimensions, anchor offsets (in the
// frame's own units) and colour capabilities.
type Frame struct {
	Width, Height int
	XOffs, YOffs  int
	Colours       ColourMask
	Pixels        []Pixel
}

// Allocate replaces the frame's pixel buffer with a zeroed buffer of
// the given length. The frame owns its buffer; reallocation is the
// only way its backing array changes, which is what keeps the
// pipeline free of partially-updated frames.
func (self *Frame) Allocate(length int) {
	self.Pixels = make([]Pixel, length)
}

// A Collection holds the decoded frames of one sprite, indexed by
// zoom level. It is a transient type: produced by a [SpriteLoader],
// completed by the cache's resolution pipeline, consumed by an
// encoder, never stored.
type Collection struct {
	Frames [zoom.NumLevels]Frame
}

// Frame returns the frame at the given zoom level.
func (self *Collection) Frame(level zoom.Level) *Frame {
	return &self.Frames[level]
}
