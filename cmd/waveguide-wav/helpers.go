package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	waveguide "github.com/goiosunw/go-waveguide"
)

// PCM quantization constants.
const (
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	monoChannels   = 1
	wavAudioFormat = 1 // PCM

	// Geometry field counts: delay:radius or delay:radius:loss.
	geometryFieldsShort = 2
	geometryFieldsFull  = 3
)

// parseGeometry parses a comma-separated list of delay:radius[:loss]
// segment descriptions into segment specs.
func parseGeometry(s string) ([]waveguide.SegmentSpec, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty geometry")
	}

	parts := strings.Split(s, ",")
	specs := make([]waveguide.SegmentSpec, 0, len(parts))
	for i, part := range parts {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) != geometryFieldsShort && len(fields) != geometryFieldsFull {
			return nil, fmt.Errorf("segment %d: want delay:radius[:loss], got %q", i, part)
		}

		delay, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("segment %d: invalid delay %q: %w", i, fields[0], err)
		}
		radius, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("segment %d: invalid radius %q: %w", i, fields[1], err)
		}
		loss := 0.0
		if len(fields) == geometryFieldsFull {
			loss, err = strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("segment %d: invalid loss %q: %w", i, fields[2], err)
			}
		}
		specs = append(specs, waveguide.SegmentSpec{Delay: delay, Radius: radius, Loss: loss})
	}
	return specs, nil
}

// parseTerminal maps the CLI terminal name to a terminal kind.
func parseTerminal(s string) (waveguide.TerminalKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return waveguide.TerminalOpen, nil
	case "closed":
		return waveguide.TerminalClosed, nil
	default:
		return 0, fmt.Errorf("unknown terminal %q (want open or closed)", s)
	}
}

// buildResonator constructs a resonator from CLI geometry and terminal
// strings.
func buildResonator(geometry, terminal string) (*waveguide.Resonator, error) {
	segments, err := parseGeometry(geometry)
	if err != nil {
		return nil, fmt.Errorf("invalid geometry: %w", err)
	}
	kind, err := parseTerminal(terminal)
	if err != nil {
		return nil, err
	}
	return waveguide.New(&waveguide.Config{Segments: segments, Terminal: kind})
}

// floatToPCM quantizes float samples to integer PCM at the given bit depth,
// clipping to full scale.
func floatToPCM(samples []float64, bits int) ([]int, error) {
	var scale float64
	switch bits {
	case bitsPerSample16:
		scale = maxInt16
	case bitsPerSample24:
		scale = maxInt24
	case bitsPerSample32:
		scale = maxInt32
	default:
		return nil, fmt.Errorf("unsupported bit depth %d (want 16, 24 or 32)", bits)
	}

	pcm := make([]int, len(samples))
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		pcm[i] = int(v * scale)
	}
	return pcm, nil
}

// writeWAV writes mono PCM samples to path.
func writeWAV(path string, pcm []int, rate, bits int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(f, rate, bits, monoChannels, wavAudioFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: monoChannels, SampleRate: rate},
		Data:           pcm,
		SourceBitDepth: bits,
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return f.Close()
}
