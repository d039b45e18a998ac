package waveguide

import (
	"fmt"

	"github.com/goiosunw/go-waveguide/internal/engine"
)

// Common errors returned by the package. All errors are synchronous and
// deterministic; nothing here is transient or retryable.
var (
	// ErrInvalidConfig indicates invalid construction parameters.
	ErrInvalidConfig = engine.ErrInvalidConfig

	// ErrEmptyAssembly indicates an operation that requires at least one
	// segment.
	ErrEmptyAssembly = engine.ErrEmptyAssembly

	// ErrOutOfRange indicates a position outside the resonator.
	ErrOutOfRange = engine.ErrOutOfRange
)

// SegmentSpec describes one cylindrical tube segment.
type SegmentSpec struct {
	// Delay is the segment length in samples of wave travel. Must be >= 1.
	Delay int

	// Radius is the segment radius in relative units; only ratios between
	// adjacent segments matter. Must be > 0.
	Radius float64

	// Loss is the fraction of wave amplitude lost per sample of travel.
	// 0 is lossless; must be < 1.
	Loss float64
}

// Validate checks the segment parameters.
func (s *SegmentSpec) Validate() error {
	if s.Delay < minSegmentDelay {
		return fmt.Errorf("%w: segment delay must be at least %d samples, got %d", ErrInvalidConfig, minSegmentDelay, s.Delay)
	}
	if s.Radius <= 0 {
		return fmt.Errorf("%w: segment radius must be positive, got %g", ErrInvalidConfig, s.Radius)
	}
	if s.Loss < 0 || s.Loss >= maxLossRate {
		return fmt.Errorf("%w: segment loss rate must be in [0, 1), got %g", ErrInvalidConfig, s.Loss)
	}
	return nil
}

// TerminalKind selects the radiation condition at the far end of the bore.
type TerminalKind int

const (
	// TerminalOpen is an ideally open pipe end: full reflection with
	// pressure inversion. This is the default.
	TerminalOpen TerminalKind = iota

	// TerminalClosed is a stopped pipe end: full reflection without
	// inversion.
	TerminalClosed
)

// Config holds resonator construction parameters.
type Config struct {
	// Segments lists the bore geometry from the driven input end outward.
	// At least one segment is required.
	Segments []SegmentSpec

	// Terminal is the far-end radiation condition.
	Terminal TerminalKind
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Segments) == 0 {
		return fmt.Errorf("%w: at least one segment is required", ErrInvalidConfig)
	}
	for i := range c.Segments {
		if err := c.Segments[i].Validate(); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
	}
	switch c.Terminal {
	case TerminalOpen, TerminalClosed:
	default:
		return fmt.Errorf("%w: unknown terminal kind %d", ErrInvalidConfig, c.Terminal)
	}
	return nil
}

// Resonator is a tube assembly driven one sample at a time. It always holds
// at least one segment; use AppendSegment to extend the bore.
type Resonator struct {
	asm *engine.Assembly
}

// New creates a resonator from the configuration.
func New(config *Config) (*Resonator, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var asm *engine.Assembly
	switch config.Terminal {
	case TerminalClosed:
		asm = engine.NewAssemblyWithTerminal(engine.NewClosedEndTerminal())
	default:
		asm = engine.NewAssembly()
	}

	r := &Resonator{asm: asm}
	for i := range config.Segments {
		s := &config.Segments[i]
		if err := asm.AppendTube(s.Delay, s.Radius, s.Loss); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
	}
	return r, nil
}

// AppendSegment extends the bore with one more segment at the far end. The
// junction at the new boundary is derived from the current radii.
func (r *Resonator) AppendSegment(spec SegmentSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	return r.asm.AppendTube(spec.Delay, spec.Radius, spec.Loss)
}

// Step advances the resonator by one sample with input entering the driven
// end and silence at the far end, and returns the sample radiated outward.
func (r *Resonator) Step(input float64) float64 {
	return r.StepWithReturn(input, 0)
}

// StepWithReturn is Step with an additional wave entering the far end from
// outside.
func (r *Resonator) StepWithReturn(input, terminalReturn float64) float64 {
	radiated, err := r.asm.Step(input, terminalReturn)
	if err != nil {
		// A Resonator always holds at least one segment.
		panic(err)
	}
	return radiated
}

// ProcessBlock advances the resonator once per input sample and returns the
// radiated samples. It is equivalent to calling Step in a loop.
func (r *Resonator) ProcessBlock(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, x := range input {
		output[i] = r.Step(x)
	}
	return output
}

// InputPressure returns the incoming pressure at the driven end, the value
// an external excitation model couples to.
func (r *Resonator) InputPressure() float64 {
	p, err := r.asm.IncomingPressureAtStart()
	if err != nil {
		panic(err)
	}
	return p
}

// PressureDistribution returns the pressure at every position along the
// bore, index 0 at the driven end, length TotalDelay+1.
func (r *Resonator) PressureDistribution() []float64 {
	return r.asm.SumDistribution()
}

// PressureAt returns the pressure at a position measured in samples from
// the driven end, 0 through TotalDelay inclusive.
func (r *Resonator) PressureAt(pos int) (float64, error) {
	return r.asm.SumAtPos(pos)
}

// ImpulseResponse resets the resonator, feeds a unit impulse and records
// the input-end pressure for n ticks. The resonator is left in the
// post-response state; call Reset to silence it again.
func (r *Resonator) ImpulseResponse(n int) []float64 {
	r.Reset()
	r.Step(1)
	response := make([]float64, n)
	for i := range response {
		response[i] = r.InputPressure()
		r.Step(0)
	}
	return response
}

// Reset silences the resonator, keeping its geometry.
func (r *Resonator) Reset() {
	r.asm.Reset()
}

// TotalDelay returns the bore length in samples of one-way wave travel.
func (r *Resonator) TotalDelay() int {
	return r.asm.TotalDelay()
}

// NumSegments returns the number of segments in the bore.
func (r *Resonator) NumSegments() int {
	return r.asm.NumTubes()
}
