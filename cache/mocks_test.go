package cache

import "os"
import "path/filepath"
import "testing"

import "gfxcache/asset"
import "gfxcache/loader"
import "gfxcache/zoom"

// stubLoader produces synthetic frames instead of parsing a container.
// Positions listed in fail decode to nothing, like corrupt data would.
type stubLoader struct {
	calls  int
	want32 []bool
	width  int
	height int
	levels zoom.Mask
	fail   map[int64]bool
}

func newStubLoader(width, height int) *stubLoader {
	return &stubLoader{width: width, height: height, fail: make(map[int64]bool)}
}

func (self *stubLoader) LoadSprite(collection *loader.Collection, file *asset.File, pos int64, spriteType loader.Type, want32bpp bool, flags loader.ControlFlags) (zoom.Mask, error) {
	self.calls++
	self.want32 = append(self.want32, want32bpp)
	if self.fail[pos] { return 0, nil }

	mask := self.levels
	if mask == 0 { mask = zoom.Mask(0).With(zoom.Normal) }
	for level := zoom.Min; level < zoom.NumLevels; level++ {
		if !mask.Has(level) { continue }
		frame := collection.Frame(level)
		frame.Width = zoom.Unscale(self.width, level)
		frame.Height = zoom.Unscale(self.height, level)
		frame.Colours = loader.ColourRGB | loader.ColourAlpha | loader.ColourPalette
		frame.Allocate(frame.Width * frame.Height)
		for i := range frame.Pixels {
			frame.Pixels[i] = loader.Pixel{R: byte(pos), A: 255, M: 1}
		}
	}
	return mask, nil
}

// fixedEncoder emits payloads of a fixed size so byte accounting can
// be asserted exactly.
type fixedEncoder struct {
	depth int
	align int
	size  int
}

func (self *fixedEncoder) Is32BppSupported() bool { return false }
func (self *fixedEncoder) ScreenDepth() int       { return self.depth }
func (self *fixedEncoder) SpriteAlignment() int   { return self.align }

func (self *fixedEncoder) Encode(collection *loader.Collection, allocator Allocator) *Sprite {
	normal := collection.Frame(zoom.Normal)
	return &Sprite{
		Width:  uint16(normal.Width),
		Height: uint16(normal.Height),
		Data:   allocator.Allocate(self.size),
	}
}

type countingAllocator struct {
	sizes []int
}

func (self *countingAllocator) Allocate(size int) []byte {
	self.sizes = append(self.sizes, size)
	return make([]byte, size)
}

// newTestCache builds a cache over a 512 byte scratch container whose
// byte at offset i is byte(i).
func newTestCache(t *testing.T, ld loader.SpriteLoader, enc Encoder, cfg Config) (*Cache, *asset.File) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "base.dat")
	data := make([]byte, 512)
	for i := range data { data[i] = byte(i) }
	err := os.WriteFile(path, data, 0o644)
	if err != nil { t.Fatal(err) }

	files := asset.NewRegistry(nil)
	file, err := files.Open(path, false)
	if err != nil { t.Fatal(err) }

	cache := New(files, ld, enc, cfg, nil)
	t.Cleanup(func() { _ = files.Clear() })
	return cache, file
}
