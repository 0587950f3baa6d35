package resample

import "github.com/hashicorp/go-hclog"

// A Sound is one loaded sound effect. The resampler normalizes Data
// to 16 bit little-endian samples; Rate only changes when resampling
// actually succeeds.
type Sound struct {
	Data          []byte
	Rate          int
	BitsPerSample int
	Channels      int
}

// An Engine performs the actual rate conversion on 16 bit interleaved
// samples. dst is pre-sized for the target rate and aligned to whole
// frames; implementations must fill it completely.
type Engine interface {
	Name() string
	Resample(dst, src []byte, srcRate, dstRate, channels int) error
}

// A Resampler converts sounds to a mixer play rate through a pluggable
// [Engine].
type Resampler struct {
	engine Engine
	log    hclog.Logger
}

// Creates a new Resampler. A nil engine selects the built-in linear
// interpolator; a nil logger is replaced by [hclog.NewNullLogger]().
func New(engine Engine, logger hclog.Logger) *Resampler {
	if engine == nil { engine = &LinearEngine{} }
	if logger == nil { logger = hclog.NewNullLogger() }
	return &Resampler{engine: engine, log: logger}
}

// Resample converts the sound to 16 bit samples at the given play
// rate, in place. Returns false only for sounds the mixer can't use
// at all (unsupported sample format). Engine failures are not load
// failures: the sound keeps its 16 bit data at the original rate and
// the mixer plays it pitch-shifted.
func (self *Resampler) Resample(snd *Sound, playRate int) bool {
	if snd.Channels < 1 || playRate <= 0 || snd.Rate <= 0 { return false }

	switch snd.BitsPerSample {
	case 8:
		snd.Data = widenSamples(snd.Data)
		snd.BitsPerSample = 16
	case 16:
		// already in mixer format
	default:
		self.log.Error("unsupported sample format", "bits", snd.BitsPerSample)
		return false
	}

	if snd.Rate == playRate { return true }

	frameBytes := snd.Channels * 2
	if len(snd.Data)%frameBytes != 0 || len(snd.Data) == 0 { return false }

	outLen := int(int64(len(snd.Data)) * int64(playRate) / int64(snd.Rate))
	outLen -= outLen % frameBytes
	if outLen == 0 { return false }

	dst := make([]byte, outLen)
	err := self.engine.Resample(dst, snd.Data, snd.Rate, playRate, snd.Channels)
	if err != nil {
		self.log.Warn("resampling failed, keeping original rate",
			"engine", self.engine.Name(), "rate", snd.Rate, "target", playRate, "error", err)
		return true
	}

	snd.Data = dst
	snd.Rate = playRate
	return true
}

// widenSamples converts unsigned 8 bit samples to signed 16 bit
// little-endian by scaling each sample by 256.
func widenSamples(src []byte) []byte {
	dst := make([]byte, len(src)*2)
	for i, b := range src {
		value := int16(int8(b-128)) * 256
		dst[i*2] = byte(value)
		dst[i*2+1] = byte(value >> 8)
	}
	return dst
}
