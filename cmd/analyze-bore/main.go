// Command analyze-bore reports the resonance peaks of a tube assembly.
//
// It renders the impulse response at the driven end of the bore, transforms
// it to the frequency domain and prints the strongest spectral peaks. For a
// wind-instrument bore these are the frequencies the air column will
// support when coupled to a reed or lip excitation.
//
// Usage:
//
//	analyze-bore -geometry "40:1.0:0.001,60:1.8:0.001"
//	analyze-bore -geometry "80:1.0:0.001" -terminal closed -rate 44100
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/dsp/fourier"

	waveguide "github.com/goiosunw/go-waveguide"
	"github.com/goiosunw/go-waveguide/internal/simdops"
)

const (
	// Analysis defaults
	defaultGeometry = "40:1.0:0.001,60:1.8:0.001"
	defaultSamples  = 8192
	defaultRate     = 48000
	defaultPeaks    = 8

	// Peaks below this fraction of the strongest peak are noise, not
	// resonances.
	peakFloorRatio = 1e-4

	// dB conversion
	dbFactor = 20.0
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	geometry := flag.String("geometry", defaultGeometry, "Bore segments as delay:radius[:loss], comma separated")
	terminal := flag.String("terminal", "open", "Far-end condition: open or closed")
	samples := flag.Int("samples", defaultSamples, "Impulse response length in samples (power of two recommended)")
	rate := flag.Int("rate", defaultRate, "Sample rate in Hz used to report frequencies")
	peaks := flag.Int("peaks", defaultPeaks, "Number of resonance peaks to report")
	flag.Parse()

	if *samples < 2 {
		return fmt.Errorf("samples must be at least 2, got %d", *samples)
	}
	if *rate <= 0 {
		return fmt.Errorf("rate must be positive, got %d", *rate)
	}

	resonator, err := buildResonator(*geometry, *terminal)
	if err != nil {
		return err
	}

	fmt.Println("=== Bore resonance analysis ===")
	fmt.Printf("Segments:     %d\n", resonator.NumSegments())
	fmt.Printf("Total delay:  %d samples (%.2f ms at %d Hz)\n",
		resonator.TotalDelay(), 1000*float64(resonator.TotalDelay())/float64(*rate), *rate)
	fmt.Printf("Terminal:     %s\n\n", *terminal)

	response := resonator.ImpulseResponse(*samples)

	// Remove the DC component before transforming; the resonances of
	// interest are the AC peaks.
	mean := simdops.Sum(response) / float64(len(response))
	for i := range response {
		response[i] -= mean
	}

	found := findResonances(response, *rate, *peaks)
	if len(found) == 0 {
		fmt.Println("No resonance peaks found.")
		return nil
	}

	fmt.Printf("%-6s %-12s %-12s %s\n", "Peak", "Freq (Hz)", "Magnitude", "dB")
	ref := found[0].magnitude
	for i, p := range found {
		fmt.Printf("%-6d %-12.1f %-12.5g %.1f\n",
			i+1, p.frequency, p.magnitude, dbFactor*math.Log10(p.magnitude/ref))
	}
	return nil
}

// resonance is one spectral peak of the impulse response.
type resonance struct {
	frequency float64
	magnitude float64
}

// findResonances transforms the response and returns up to maxPeaks local
// maxima of the magnitude spectrum, strongest first.
func findResonances(response []float64, rate, maxPeaks int) []resonance {
	n := len(response)
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, response)

	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = math.Hypot(real(c), imag(c))
	}

	var peaks []resonance
	for i := 1; i < len(mags)-1; i++ {
		if mags[i] > mags[i-1] && mags[i] >= mags[i+1] {
			peaks = append(peaks, resonance{
				frequency: float64(i) * float64(rate) / float64(n),
				magnitude: mags[i],
			})
		}
	}
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].magnitude > peaks[j].magnitude })

	if len(peaks) == 0 {
		return nil
	}
	floor := peaks[0].magnitude * peakFloorRatio
	kept := peaks[:0]
	for _, p := range peaks {
		if p.magnitude < floor {
			break
		}
		kept = append(kept, p)
	}
	if len(kept) > maxPeaks {
		kept = kept[:maxPeaks]
	}
	return kept
}

// buildResonator constructs a resonator from CLI geometry and terminal
// strings.
func buildResonator(geometry, terminal string) (*waveguide.Resonator, error) {
	segments, err := parseGeometry(geometry)
	if err != nil {
		return nil, fmt.Errorf("invalid geometry: %w", err)
	}
	var kind waveguide.TerminalKind
	switch strings.ToLower(strings.TrimSpace(terminal)) {
	case "open":
		kind = waveguide.TerminalOpen
	case "closed":
		kind = waveguide.TerminalClosed
	default:
		return nil, fmt.Errorf("unknown terminal %q (want open or closed)", terminal)
	}
	return waveguide.New(&waveguide.Config{Segments: segments, Terminal: kind})
}

// parseGeometry parses a comma-separated list of delay:radius[:loss]
// segment descriptions.
func parseGeometry(s string) ([]waveguide.SegmentSpec, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("empty geometry")
	}

	parts := strings.Split(s, ",")
	specs := make([]waveguide.SegmentSpec, 0, len(parts))
	for i, part := range parts {
		fields := strings.Split(strings.TrimSpace(part), ":")
		if len(fields) < 2 || len(fields) > 3 {
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
		if len(fields) == 3 {
			loss, err = strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("segment %d: invalid loss %q: %w", i, fields[2], err)
			}
		}
		specs = append(specs, waveguide.SegmentSpec{Delay: delay, Radius: radius, Loss: loss})
	}
	return specs, nil
}
