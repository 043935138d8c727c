//go:build !libretro

package standalone

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/user-none/efuse/core"
)

// Sizes are counted in emulated frames of stereo s16le audio: 882 samples
// per channel at 50 fps, 3528 bytes.
const (
	audioChannels    = 2
	audioFrameBytes  = core.SampleRate / int(core.FPS) * audioChannels * 2
	audioQueueFrames = 10
	playerFrames     = 3

	// The emulation loop speeds up below paceLowFrames of queued audio and
	// slows down above paceHighFrames.
	paceLowFrames  = 2
	paceHighFrames = 6
)

const (
	ringBufferCapacity = audioQueueFrames * audioFrameBytes
	adtMinBuffer       = paceLowFrames * audioFrameBytes
	adtMaxBuffer       = paceHighFrames * audioFrameBytes
)

// AudioPlayer plays the Spectrum's sound through oto. Frames from the
// emulation goroutine go into a ring buffer that oto's player pulls from.
type AudioPlayer struct {
	player  *oto.Player
	queue   *AudioRingBuffer
	scratch []byte
}

var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

// otoContext opens the process-wide oto context at the core's sample rate.
// oto allows one context per process.
func otoContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   core.SampleRate,
			ChannelCount: audioChannels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   40 * time.Millisecond,
		})
		if otoErr == nil {
			<-ready
		}
	})
	return otoCtx, otoErr
}

// NewAudioPlayer starts playback at the given volume. A muted config
// passes 0 so nothing is heard before the first frame.
func NewAudioPlayer(volume float64) (*AudioPlayer, error) {
	ctx, err := otoContext()
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}

	queue := NewAudioRingBuffer(ringBufferCapacity)
	player := ctx.NewPlayer(queue)
	player.SetBufferSize(playerFrames * audioFrameBytes)
	player.SetVolume(clampVolume(volume))
	player.Play()

	return &AudioPlayer{
		player:  player,
		queue:   queue,
		scratch: make([]byte, 0, audioFrameBytes),
	}, nil
}

// QueueSamples appends one frame of interleaved stereo samples.
func (a *AudioPlayer) QueueSamples(samples []int16) {
	if len(samples) == 0 {
		return
	}
	a.scratch = appendS16LE(a.scratch[:0], samples)
	a.queue.Write(a.scratch)
}

// appendS16LE appends samples to dst as little-endian bytes.
func appendS16LE(dst []byte, samples []int16) []byte {
	for _, s := range samples {
		dst = append(dst, byte(s), byte(s>>8))
	}
	return dst
}

// GetBufferLevel returns the bytes waiting to be heard, in the ring buffer
// and inside oto's player.
func (a *AudioPlayer) GetBufferLevel() int {
	return a.queue.Buffered() + a.player.BufferedSize()
}

// ClearQueue drops queued audio, so a loaded state or new tape does not
// play the old session's tail.
func (a *AudioPlayer) ClearQueue() {
	a.queue.Clear()
}

// SetVolume sets the playback volume; 1 is unity gain.
func (a *AudioPlayer) SetVolume(vol float64) {
	a.player.SetVolume(clampVolume(vol))
}

func clampVolume(vol float64) float64 {
	return max(0, min(vol, 2))
}

// Close stops playback.
func (a *AudioPlayer) Close() {
	if a.queue != nil {
		a.queue.Close()
	}
	if a.player != nil {
		a.player.Close()
	}
}
