package cache

import "errors"
import "math"

import "gfxcache/loader"
import "gfxcache/zoom"

// Scaling up can push dimensions past what [Sprite] can carry.
var errSpriteTooLarge = errors.New("sprite dimensions overflow the supported maximum")

func alignTo(value, align int) int {
	if align == 0 { return value }
	return (value + align - 1) / align * align
}

// resizeSpriteIn derives a finer zoom level from a coarser one by
// plain pixel replication.
func resizeSpriteIn(collection *loader.Collection, src, tgt zoom.Level) error {
	scale := 1 << (src - tgt)
	srcFrame := collection.Frame(src)
	if srcFrame.Width*scale > math.MaxUint16 || srcFrame.Height*scale > math.MaxUint16 {
		return errSpriteTooLarge
	}

	tgtFrame := collection.Frame(tgt)
	tgtFrame.Width = srcFrame.Width * scale
	tgtFrame.Height = srcFrame.Height * scale
	tgtFrame.XOffs = srcFrame.XOffs * scale
	tgtFrame.YOffs = srcFrame.YOffs * scale
	tgtFrame.Colours = srcFrame.Colours
	tgtFrame.Allocate(tgtFrame.Width * tgtFrame.Height)

	for y := 0; y < tgtFrame.Height; y++ {
		srcRow := srcFrame.Pixels[(y/scale)*srcFrame.Width:]
		dstRow := tgtFrame.Pixels[y*tgtFrame.Width:]
		for x := 0; x < tgtFrame.Width; x++ {
			dstRow[x] = srcRow[x/scale]
		}
	}
	return nil
}

// resizeSpriteOut derives the given zoom level from the next finer
// one by dropping every other row and column. Of each horizontal
// pixel pair the right one wins if it is not transparent, which keeps
// thin vertical features from vanishing.
func resizeSpriteOut(collection *loader.Collection, level zoom.Level) {
	normal := collection.Frame(zoom.Normal)
	frame := collection.Frame(level)
	frame.Width = zoom.Unscale(normal.Width, level)
	frame.Height = zoom.Unscale(normal.Height, level)
	frame.XOffs = zoom.Unscale(normal.XOffs, level)
	frame.YOffs = zoom.Unscale(normal.YOffs, level)
	frame.Colours = normal.Colours
	frame.Allocate(frame.Width * frame.Height)

	prev := collection.Frame(level - 1)
	di := 0
	si := 0
	for si < len(prev.Pixels) && di < len(frame.Pixels) {
		lnEnd := si + prev.Width
		for si < lnEnd && di < len(frame.Pixels) {
			if si+1 != lnEnd && prev.Pixels[si+1].A != 0 {
				frame.Pixels[di] = prev.Pixels[si+1]
			} else {
				frame.Pixels[di] = prev.Pixels[si]
			}
			di++
			si += 2
		}
		si = lnEnd + prev.Width // skip the odd row
	}
}

// padSingleSprite grows the frame's canvas by transparent padding on
// the given sides. Offsets are the caller's business.
func padSingleSprite(frame *loader.Frame, left, top, right, bottom int) {
	if left == 0 && top == 0 && right == 0 && bottom == 0 { return }

	width := frame.Width + left + right
	height := frame.Height + top + bottom
	padded := make([]loader.Pixel, width*height)
	for y := 0; y < frame.Height; y++ {
		start := (y+top)*width + left
		copy(padded[start:start+frame.Width], frame.Pixels[y*frame.Width:(y+1)*frame.Width])
	}
	frame.Width = width
	frame.Height = height
	frame.Pixels = padded
}

// padSprites pads every available level so that all of them cover the
// same bounding box, expressed in each level's own units, with the
// final dimensions rounded up to the encoder's alignment. Fails when
// a padded level outgrows what [Sprite] can carry.
func padSprites(collection *loader.Collection, avail zoom.Mask, align int) error {
	// Smallest top left corner across levels, in normal units.
	minXOffs, minYOffs := math.MaxInt32, math.MaxInt32
	for level := zoom.Min; level < zoom.NumLevels; level++ {
		if !avail.Has(level) { continue }
		frame := collection.Frame(level)
		minXOffs = min(minXOffs, zoom.Scale(frame.XOffs, level))
		minYOffs = min(minYOffs, zoom.Scale(frame.YOffs, level))
	}

	// Largest extent once everything is anchored at that corner.
	maxWidth, maxHeight := math.MinInt32, math.MinInt32
	for level := zoom.Min; level < zoom.NumLevels; level++ {
		if !avail.Has(level) { continue }
		frame := collection.Frame(level)
		maxWidth = max(maxWidth, zoom.Scale(frame.Width+frame.XOffs, level)-minXOffs)
		maxHeight = max(maxHeight, zoom.Scale(frame.Height+frame.YOffs, level)-minYOffs)
	}

	maxWidth = alignTo(maxWidth, align)
	maxHeight = alignTo(maxHeight, align)

	for level := zoom.Min; level < zoom.NumLevels; level++ {
		if !avail.Has(level) { continue }
		frame := collection.Frame(level)
		width := zoom.Unscale(maxWidth, level)
		height := zoom.Unscale(maxHeight, level)
		if width > math.MaxUint16 || height > math.MaxUint16 { return errSpriteTooLarge }
		xoffs := zoom.Unscale(minXOffs, level)
		yoffs := zoom.Unscale(minYOffs, level)
		if frame.Width == width && frame.Height == height && frame.XOffs == xoffs && frame.YOffs == yoffs {
			continue
		}

		left := max(0, frame.XOffs-xoffs)
		top := max(0, frame.YOffs-yoffs)
		right := max(0, width-frame.Width-left)
		bottom := max(0, height-frame.Height-top)
		padSingleSprite(frame, left, top, right, bottom)
		frame.XOffs = xoffs
		frame.YOffs = yoffs
	}
	return nil
}

// completeSpriteSet fills in the zoom levels the loader did not
// provide: the normal level is upsampled from the finest available
// one if missing, all available levels are padded to a shared aligned
// bounding box, and the remaining coarser levels are downsampled.
// Finally, when a minimum zoom is configured, levels finer than it are
// replaced by upsampled coarser data so the whole chain renders
// consistently pixelated.
func completeSpriteSet(collection *loader.Collection, avail zoom.Mask, align int, minZoom zoom.Level) error {
	first := avail.First()
	if first != zoom.Normal {
		if err := resizeSpriteIn(collection, first, zoom.Normal); err != nil { return err }
		avail = avail.With(zoom.Normal)
	}

	if err := padSprites(collection, avail, align); err != nil { return err }

	for level := zoom.Normal + 1; level < zoom.NumLevels; level++ {
		if avail.Has(level) { continue }
		resizeSpriteOut(collection, level)
	}

	// only sprites with source data finer than the minimum zoom need
	// the pixelation rebase; coarser sources already render that way
	if first < minZoom {
		if minZoom >= zoom.Out4x {
			if err := resizeSpriteIn(collection, zoom.Out4x, zoom.Out2x); err != nil { return err }
		}
		if minZoom >= zoom.Out2x {
			if err := resizeSpriteIn(collection, zoom.Out2x, zoom.Normal); err != nil { return err }
		}
	}
	return nil
}
