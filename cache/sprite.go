package cache

import "gfxcache/loader"
import "gfxcache/zoom"

// A Sprite is one decoded sprite as produced by an [Encoder]:
// dimensions and anchor offsets of the normal zoom level plus the
// renderer-native payload. The payload layout is owned by whichever
// encoder produced it; the cache only tracks its size.
type Sprite struct {
	Width, Height uint16
	XOffs, YOffs  int16
	Data          []byte
}

// An Allocator produces the byte buffers encoders write payloads
// into. The returned buffer is owned by the caller of the encode
// operation, which is what lets export tooling decode sprites into
// its own memory without touching the shared cache.
type Allocator interface {
	Allocate(size int) []byte
}

// SimpleAllocator allocates plain heap buffers.
type SimpleAllocator struct{}

func (SimpleAllocator) Allocate(size int) []byte { return make([]byte, size) }

// An Encoder turns a completed sprite collection (all zoom levels
// present, padded and aligned) into a renderer-native [Sprite]. This
// is the cache's view of the rendering backend.
type Encoder interface {
	// Whether 32bpp decodes should be attempted at all.
	Is32BppSupported() bool

	// The renderer's colour depth in bits per pixel. Scales the
	// cache byte budget; 0 means no renderer is active.
	ScreenDepth() int

	// Required multiple for padded sprite dimensions, 0 for none.
	SpriteAlignment() int

	// Encodes the collection into the renderer's native format,
	// allocating the payload through the given allocator.
	Encode(collection *loader.Collection, allocator Allocator) *Sprite
}

// RawEncoder is a reference [Encoder] without a real renderer behind
// it: the payload is the collection's pixels serialized as 5 bytes
// per pixel (RGBA plus palette index), level by level. It backs
// headless tooling and tests.
type RawEncoder struct {
	Depth    int
	Align    int
	Use32Bpp bool
}

func (self *RawEncoder) Is32BppSupported() bool { return self.Use32Bpp }
func (self *RawEncoder) ScreenDepth() int       { return self.Depth }
func (self *RawEncoder) SpriteAlignment() int   { return self.Align }

func (self *RawEncoder) Encode(collection *loader.Collection, allocator Allocator) *Sprite {
	size := 0
	for level := zoom.Min; level < zoom.NumLevels; level++ {
		size += len(collection.Frame(level).Pixels) * 5
	}

	normal := collection.Frame(zoom.Normal)
	sprite := &Sprite{
		Width:  uint16(normal.Width),
		Height: uint16(normal.Height),
		XOffs:  int16(normal.XOffs),
		YOffs:  int16(normal.YOffs),
		Data:   allocator.Allocate(size),
	}

	offset := 0
	for level := zoom.Min; level < zoom.NumLevels; level++ {
		for _, px := range collection.Frame(level).Pixels {
			sprite.Data[offset+0] = px.R
			sprite.Data[offset+1] = px.G
			sprite.Data[offset+2] = px.B
			sprite.Data[offset+3] = px.A
			sprite.Data[offset+4] = px.M
			offset += 5
		}
	}
	return sprite
}
