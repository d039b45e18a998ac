package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	waveguide "github.com/goiosunw/go-waveguide"
)

func TestParseGeometry(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []waveguide.SegmentSpec
		wantErr bool
	}{
		{
			name:  "full_triples",
			input: "40:1.0:0.001,60:1.8:0.002",
			want: []waveguide.SegmentSpec{
				{Delay: 40, Radius: 1.0, Loss: 0.001},
				{Delay: 60, Radius: 1.8, Loss: 0.002},
			},
		},
		{
			name:  "loss_defaults_to_zero",
			input: "80:1.5",
			want:  []waveguide.SegmentSpec{{Delay: 80, Radius: 1.5}},
		},
		{
			name:  "whitespace_tolerated",
			input: " 10:1.0 , 20:2.0:0.01 ",
			want: []waveguide.SegmentSpec{
				{Delay: 10, Radius: 1.0},
				{Delay: 20, Radius: 2.0, Loss: 0.01},
			},
		},
		{name: "empty", input: "   ", wantErr: true},
		{name: "too_few_fields", input: "40", wantErr: true},
		{name: "too_many_fields", input: "40:1:0:0", wantErr: true},
		{name: "bad_delay", input: "x:1.0", wantErr: true},
		{name: "bad_radius", input: "40:r", wantErr: true},
		{name: "bad_loss", input: "40:1.0:z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGeometry(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTerminal(t *testing.T) {
	kind, err := parseTerminal("open")
	require.NoError(t, err)
	assert.Equal(t, waveguide.TerminalOpen, kind)

	kind, err = parseTerminal(" Closed ")
	require.NoError(t, err)
	assert.Equal(t, waveguide.TerminalClosed, kind)

	_, err = parseTerminal("reflective")
	assert.Error(t, err)
}

func TestBuildResonator(t *testing.T) {
	r, err := buildResonator("10:1.0,20:2.0:0.01", "open")
	require.NoError(t, err)
	assert.Equal(t, 2, r.NumSegments())
	assert.Equal(t, 30, r.TotalDelay())

	_, err = buildResonator("0:1.0", "open")
	assert.ErrorIs(t, err, waveguide.ErrInvalidConfig)
}

func TestFloatToPCM(t *testing.T) {
	pcm, err := floatToPCM([]float64{0, 0.5, -0.5, 1, -1}, bitsPerSample16)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 16383, -16383, 32767, -32767}, pcm)

	// Values beyond full scale clip.
	pcm, err = floatToPCM([]float64{2, -3}, bitsPerSample16)
	require.NoError(t, err)
	assert.Equal(t, []int{32767, -32767}, pcm)

	_, err = floatToPCM([]float64{0}, 12)
	assert.Error(t, err)
}

func TestWriteWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "echo.wav")

	r, err := buildResonator("8:1.0", "open")
	require.NoError(t, err)
	response := r.ImpulseResponse(64)

	pcm, err := floatToPCM(response, bitsPerSample16)
	require.NoError(t, err)
	require.NoError(t, writeWAV(path, pcm, 48000, bitsPerSample16))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, len(pcm), len(buf.Data))
	assert.Equal(t, 48000, buf.Format.SampleRate)
	assert.Equal(t, 1, buf.Format.NumChannels)
	assert.Equal(t, pcm, buf.Data)
}
