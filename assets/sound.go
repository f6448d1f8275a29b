package assets

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/athora/prefabs"
)

// SampleRate is the rate of every synthesized clip.
const SampleRate = 44100

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// Context returns the process-wide audio context.
func Context() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// Tone renders spec as 16-bit little-endian stereo PCM. The frequency moves
// linearly by Slide Hz over the clip and the last fifth fades out.
func Tone(spec prefabs.ToneSpec, rate int) []byte {
	n := rate * spec.Millis / 1000
	if n <= 0 || spec.Frequency <= 0 {
		return nil
	}
	vol := spec.Volume
	if vol <= 0 || vol > 1 {
		vol = 1
	}
	fade := n / 5

	out := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := spec.Frequency + spec.Slide*progress
		phase += 2 * math.Pi * freq / float64(rate)

		amp := vol
		if rest := n - i; fade > 0 && rest < fade {
			amp *= float64(rest) / float64(fade)
		}
		v := int16(math.Sin(phase) * amp * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	return out
}

// Sounds renders every tone in spec.
func Sounds(spec prefabs.SoundsSpec) map[string][]byte {
	out := make(map[string][]byte, len(spec.Tones))
	for name, tone := range spec.Tones {
		if pcm := Tone(tone, SampleRate); pcm != nil {
			out[name] = pcm
		}
	}
	return out
}

// NewPlayer wraps a rendered clip in a player on the shared context.
func NewPlayer(pcm []byte) *audio.Player {
	return Context().NewPlayerFromBytes(pcm)
}
