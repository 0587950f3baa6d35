package resample

import "errors"
import "runtime"
import "encoding/binary"

import "golang.org/x/sync/errgroup"

// LinearEngine is the built-in rate converter: per-channel linear
// interpolation over the source samples, with the output split into
// chunks resampled in parallel. Not as clean as a proper polyphase
// filter, but artifact-free enough for short effect samples and free
// of external dependencies.
type LinearEngine struct {
	// Number of parallel workers, [runtime.NumCPU] when 0.
	Workers int
}

func (self *LinearEngine) Name() string { return "linear" }

func (self *LinearEngine) Resample(dst, src []byte, srcRate, dstRate, channels int) error {
	frameBytes := channels * 2
	if len(src)%frameBytes != 0 || len(dst)%frameBytes != 0 {
		return errors.New("sample data not aligned to whole frames")
	}
	srcFrames := len(src) / frameBytes
	dstFrames := len(dst) / frameBytes
	if srcFrames == 0 || dstFrames == 0 {
		return errors.New("empty sample data")
	}

	// fixed point source position per output frame, 16 fractional
	// bits, computed per frame so the last output frame lands exactly
	// on the last input frame
	position := func(frame int) int64 {
		if dstFrames == 1 { return 0 }
		return int64(frame) * (int64(srcFrames-1) << 16) / int64(dstFrames-1)
	}

	workers := self.Workers
	if workers <= 0 { workers = runtime.NumCPU() }
	chunk := (dstFrames + workers - 1) / workers

	var group errgroup.Group
	for begin := 0; begin < dstFrames; begin += chunk {
		begin := begin
		end := min(begin+chunk, dstFrames)
		group.Go(func() error {
			for frame := begin; frame < end; frame++ {
				pos := position(frame)
				index := int(pos >> 16)
				frac := pos & 0xFFFF
				next := min(index+1, srcFrames-1)
				for ch := 0; ch < channels; ch++ {
					s0 := int64(int16(binary.LittleEndian.Uint16(src[(index*channels+ch)*2:])))
					s1 := int64(int16(binary.LittleEndian.Uint16(src[(next*channels+ch)*2:])))
					sample := s0 + (s1-s0)*frac>>16
					binary.LittleEndian.PutUint16(dst[(frame*channels+ch)*2:], uint16(int16(sample)))
				}
			}
			return nil
		})
	}
	return group.Wait()
}
