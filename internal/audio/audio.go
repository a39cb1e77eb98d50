// ABOUTME: Notification sound playback on top of the miniaudio bindings.
// ABOUTME: Decodes mp3/wav/ogg/flac via beep and aiff via go-audio, then streams S16 PCM.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// Device describes a playback device.
type Device struct {
	Name      string
	IsDefault bool
}

// Player plays sound files on a fixed output device at a fixed volume.
type Player struct {
	ctx        *malgo.AllocatedContext
	volume     float64 // 0.0-1.0
	deviceName string  // empty = system default
	deviceID   *malgo.DeviceID

	mu sync.Mutex
}

// ListDevices enumerates playback devices.
func ListDevices() ([]Device, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	infos, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate playback devices: %w", err)
	}

	devices := make([]Device, 0, len(infos))
	for _, info := range infos {
		devices = append(devices, Device{
			Name:      info.Name(),
			IsDefault: info.IsDefault != 0,
		})
	}
	return devices, nil
}

// NewPlayer creates a player bound to deviceName (empty = system default).
// A device name that matches nothing is an error.
func NewPlayer(deviceName string, volume float64) (*Player, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}

	p := &Player{
		ctx:        ctx,
		volume:     volume,
		deviceName: deviceName,
	}

	if deviceName != "" {
		infos, err := ctx.Devices(malgo.Playback)
		if err != nil {
			_ = ctx.Uninit()
			ctx.Free()
			return nil, fmt.Errorf("failed to enumerate playback devices: %w", err)
		}
		found := false
		for _, info := range infos {
			if info.Name() == deviceName {
				id := info.ID
				p.deviceID = &id
				found = true
				break
			}
		}
		if !found {
			_ = ctx.Uninit()
			ctx.Free()
			return nil, fmt.Errorf("audio device not found: %s", deviceName)
		}
	}

	return p, nil
}

// Play decodes path and plays it to completion. Blocking.
func (p *Player) Play(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("sound file not accessible: %w", err)
	}

	var (
		pcm        []byte
		sampleRate int
		channels   int
		err        error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".wav", ".ogg", ".flac":
		pcm, sampleRate, channels, err = decodeWithBeep(path, p.volume)
	case ".aiff", ".aif":
		pcm, sampleRate, channels, err = decodeAIFF(path, p.volume)
	default:
		return fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	if len(pcm) == 0 {
		return nil
	}

	return p.playPCM(pcm, sampleRate, channels)
}

// playPCM streams interleaved S16LE samples to the configured device.
func (p *Player) playPCM(pcm []byte, sampleRate, channels int) error {
	p.mu.Lock()
	ctx := p.ctx
	p.mu.Unlock()
	if ctx == nil {
		return fmt.Errorf("player is closed")
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = uint32(channels)
	cfg.SampleRate = uint32(sampleRate)
	if p.deviceID != nil {
		cfg.Playback.DeviceID = p.deviceID.Pointer()
	}

	done := make(chan struct{})
	var once sync.Once
	pos := 0

	callbacks := malgo.DeviceCallbacks{
		Data: func(out, _ []byte, frameCount uint32) {
			if pos >= len(pcm) {
				once.Do(func() { close(done) })
				return
			}
			n := copy(out, pcm[pos:])
			pos += n
			if pos >= len(pcm) {
				once.Do(func() { close(done) })
			}
		},
	}

	device, err := malgo.InitDevice(ctx.Context, cfg, callbacks)
	if err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("failed to start playback: %w", err)
	}

	<-done
	// Let the device drain its last buffer before teardown.
	time.Sleep(50 * time.Millisecond)
	return nil
}

// Close releases the audio context. Idempotent.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctx == nil {
		return nil
	}
	err := p.ctx.Uninit()
	p.ctx.Free()
	p.ctx = nil
	return err
}

// decodeWithBeep decodes mp3/wav/ogg/flac into interleaved S16LE PCM
// with volume applied.
func decodeWithBeep(path string, volume float64) (pcm []byte, sampleRate, channels int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	// beep streams stereo float64 samples regardless of source channels.
	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			for c := 0; c < 2; c++ {
				s := floatToSample(buf[i][c] * volume)
				pcm = append(pcm, byte(s), byte(s>>8))
			}
		}
		if !ok {
			break
		}
	}

	return pcm, int(format.SampleRate), 2, nil
}

// decodeAIFF decodes an AIFF file into interleaved S16LE PCM with volume
// applied.
func decodeAIFF(path string, volume float64) (pcm []byte, sampleRate, channels int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer f.Close()

	dec := aiff.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	samples := intBufferToSamples(buf, int(dec.BitDepth))
	if volume != 1.0 {
		for i, s := range samples {
			samples[i] = int16(float64(s) * volume)
		}
	}

	return samplesToBytes(samples), buf.Format.SampleRate, buf.Format.NumChannels, nil
}

// intBufferToSamples normalizes an IntBuffer of arbitrary bit depth to
// 16-bit samples. Unknown depths are treated as 16-bit.
func intBufferToSamples(buf *audio.IntBuffer, bitDepth int) []int16 {
	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		switch bitDepth {
		case 8:
			samples[i] = int16(v << 8)
		case 24:
			samples[i] = int16(v >> 8)
		case 32:
			samples[i] = int16(v >> 16)
		default: // 16-bit and anything unrecognized
			samples[i] = int16(v)
		}
	}
	return samples
}

// samplesToBytes converts 16-bit samples to little-endian bytes.
func samplesToBytes(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		out[i*2] = byte(s)
		out[i*2+1] = byte(s >> 8)
	}
	return out
}

// floatToSample clamps a float sample to the int16 range.
func floatToSample(v float64) int16 {
	if v > 1.0 {
		v = 1.0
	} else if v < -1.0 {
		v = -1.0
	}
	return int16(v * 32767)
}
