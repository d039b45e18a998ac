// Command waveguide-wav renders the impulse response of a tube assembly to
// a mono WAV file.
//
// Usage:
//
//	waveguide-wav -geometry "40:1.0:0.001,60:1.8:0.001" out.wav
//	waveguide-wav -geometry "80:1.0" -terminal closed -samples 96000 out.wav
//	waveguide-wav -geometry "40:1.0:0.001" -bits 24 -gain 0.5 out.wav
//
// The geometry flag lists the bore segments from the driven end outward as
// delay:radius[:loss] triples. The rendered signal is the pressure at the
// driven end after a unit impulse, the response a reed or valve model would
// see.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goiosunw/go-waveguide/internal/simdops"
)

const (
	// CLI defaults
	defaultGeometry = "40:1.0:0.001,60:1.8:0.001"
	defaultSamples  = 48000
	defaultRate     = 48000
	defaultBits     = 16
	defaultGain     = 1.0

	minRequiredArgs = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	geometry := flag.String("geometry", defaultGeometry, "Bore segments as delay:radius[:loss], comma separated")
	terminal := flag.String("terminal", "open", "Far-end condition: open or closed")
	samples := flag.Int("samples", defaultSamples, "Number of samples to render")
	rate := flag.Int("rate", defaultRate, "Output sample rate in Hz")
	bits := flag.Int("bits", defaultBits, "Output bit depth (16, 24 or 32)")
	gain := flag.Float64("gain", defaultGain, "Linear gain applied before quantization")
	verbose := flag.Bool("verbose", false, "Print progress information")
	flag.Parse()

	if flag.NArg() < minRequiredArgs {
		flag.Usage()
		return errors.New("missing output file argument")
	}
	outputPath := flag.Arg(0)

	if *samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", *samples)
	}
	if *rate <= 0 {
		return fmt.Errorf("rate must be positive, got %d", *rate)
	}

	resonator, err := buildResonator(*geometry, *terminal)
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Bore: %d segments, total delay %d samples (%.1f ms at %d Hz)",
			resonator.NumSegments(), resonator.TotalDelay(),
			1000*float64(resonator.TotalDelay())/float64(*rate), *rate)
	}

	response := resonator.ImpulseResponse(*samples)
	if *gain != defaultGain {
		simdops.Scale(response, response, *gain)
	}

	pcm, err := floatToPCM(response, *bits)
	if err != nil {
		return err
	}

	if err := writeWAV(outputPath, pcm, *rate, *bits); err != nil {
		return err
	}

	if *verbose {
		info, err := os.Stat(outputPath)
		if err == nil {
			log.Printf("Wrote %s (%d samples, %d bytes)", outputPath, *samples, info.Size())
		}
	}
	return nil
}
