package engine

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Errors reported by the assembly. All are synchronous configuration or
// usage errors; nothing in the engine is transient or retryable.
var (
	// ErrInvalidConfig indicates an invalid tube parameter at append time.
	ErrInvalidConfig = errors.New("invalid tube configuration")

	// ErrEmptyAssembly indicates an operation that needs at least one tube.
	ErrEmptyAssembly = errors.New("assembly has no tubes")

	// ErrOutOfRange indicates a position outside the assembly.
	ErrOutOfRange = errors.New("position out of range")
)

// Assembly is an ordered chain of tubes coupled by scattering junctions,
// terminated by a radiation condition at the far end of the last tube.
// junctions[i] couples tubes i and i+1, so an assembly of n tubes holds n-1
// internal junctions plus the terminal condition; each junction always
// reflects the currently stored radii of its two neighbors.
//
// The assembly is a pure per-sample recurrence: its entire state is the
// contents of the delay lines, advanced exactly once per Step. Steps must
// not overlap; the read-exits-then-write ordering within one tick is the
// only ordering guarantee the model has.
type Assembly struct {
	tubes     []*Tube
	junctions []*Junction
	radii     []float64
	terminal  *Junction
}

// NewAssembly creates an empty assembly with an ideally open far end.
func NewAssembly() *Assembly {
	return NewAssemblyWithTerminal(NewOpenEndTerminal())
}

// NewAssemblyWithTerminal creates an empty assembly with the given terminal
// radiation condition.
func NewAssemblyWithTerminal(terminal *Junction) *Assembly {
	return &Assembly{terminal: terminal}
}

// AppendTube validates the tube parameters, creates the tube at the far end
// of the chain and computes the one junction at the new boundary. Radius is
// in relative units; loss is the per-sample amplitude fraction lost.
func (a *Assembly) AppendTube(delay int, radius, loss float64) error {
	if delay < minTubeDelay {
		return fmt.Errorf("%w: delay must be at least %d samples, got %d", ErrInvalidConfig, minTubeDelay, delay)
	}
	if radius <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidConfig, radius)
	}
	if loss < 0 || loss >= maxLossRate {
		return fmt.Errorf("%w: loss rate must be in [0, 1), got %g", ErrInvalidConfig, loss)
	}

	a.tubes = append(a.tubes, NewTube(delay, loss))
	a.radii = append(a.radii, radius)
	if n := len(a.tubes); n > 1 {
		a.junctions = append(a.junctions, nil)
		a.recomputeJunction(n - 1)
	}
	return nil
}

// recomputeJunction rebuilds the junction at the boundary between tubes
// boundary-1 and boundary from the currently stored radii. boundary 0 is the
// driven input end and has no junction.
func (a *Assembly) recomputeJunction(boundary int) {
	if boundary == 0 {
		return
	}
	a.junctions[boundary-1] = NewJunction(a.radii[boundary-1], a.radii[boundary])
}

// SetRadius updates the radius of tube index and recomputes the junctions on
// both sides of it.
func (a *Assembly) SetRadius(index int, radius float64) error {
	if index < 0 || index >= len(a.tubes) {
		return fmt.Errorf("%w: tube index %d of %d", ErrOutOfRange, index, len(a.tubes))
	}
	if radius <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidConfig, radius)
	}
	a.radii[index] = radius
	a.recomputeJunction(index)
	if index+1 < len(a.tubes) {
		a.recomputeJunction(index + 1)
	}
	return nil
}

// Step advances the whole assembly by one sample. input enters the first
// tube's outgoing line; terminalReturn is the wave entering the far end from
// outside (zero for a passive termination). The returned value is the sample
// leaving the terminal junction outward.
//
// The update walks the chain left to right. For each internal boundary both
// exit values are read before either neighbor is written, so the coupling
// always uses previous-tick state, and every delay line in the assembly is
// advanced exactly once per call.
func (a *Assembly) Step(input, terminalReturn float64) (float64, error) {
	n := len(a.tubes)
	if n == 0 {
		return 0, fmt.Errorf("%w: cannot step", ErrEmptyAssembly)
	}

	carry := input
	for i := 0; i < n-1; i++ {
		outLeft := a.tubes[i].ReadOutgoingExit()
		inRight := a.tubes[i+1].ReadIncomingExit()
		outToRight, inToLeft := a.junctions[i].Scatter(outLeft, inRight)
		a.tubes[i].InsertIncoming(inToLeft)
		a.tubes[i].InsertOutgoing(carry)
		carry = outToRight
	}

	last := a.tubes[n-1]
	radiated, inToLeft := a.terminal.Scatter(last.ReadOutgoingExit(), terminalReturn)
	last.InsertIncoming(inToLeft)
	last.InsertOutgoing(carry)
	return radiated, nil
}

// SumDistribution returns the pressure at every position along the whole
// assembly, length TotalDelay+1, or nil for an empty assembly. Each shared
// boundary index is the sum of the two adjoining tubes' own boundary
// samples; junction-point pressure accumulates, it is not replaced.
func (a *Assembly) SumDistribution() []float64 {
	if len(a.tubes) == 0 {
		return nil
	}
	ps := make([]float64, a.TotalDelay()+1)
	pos := 0
	for _, t := range a.tubes {
		floats.Add(ps[pos:pos+t.delay+1], t.SumDistribution())
		pos += t.delay
	}
	return ps
}

// SumAtPos returns the pressure at a global position measured in samples
// from the assembly input, 0 through TotalDelay inclusive. Positions on a
// tube boundary are resolved to the leftmost tube that reaches them.
func (a *Assembly) SumAtPos(pos int) (float64, error) {
	if len(a.tubes) == 0 {
		return 0, fmt.Errorf("%w: no positions to read", ErrEmptyAssembly)
	}
	if pos < 0 || pos > a.TotalDelay() {
		return 0, fmt.Errorf("%w: position %d not in [0, %d]", ErrOutOfRange, pos, a.TotalDelay())
	}
	end := 0
	for _, t := range a.tubes {
		start := end
		end += t.delay
		if end >= pos {
			return t.SumAtPos(pos - start), nil
		}
	}
	// Unreachable: pos <= TotalDelay is covered by the last tube.
	return 0, fmt.Errorf("%w: position %d", ErrOutOfRange, pos)
}

// IncomingPressureAtStart returns the incoming wave at the driven input end
// of the assembly, the value an external excitation model couples to.
func (a *Assembly) IncomingPressureAtStart() (float64, error) {
	if len(a.tubes) == 0 {
		return 0, fmt.Errorf("%w: no input end", ErrEmptyAssembly)
	}
	return a.tubes[0].ReadIncomingAtPos(0), nil
}

// Reset zeroes every delay line, returning the assembly to silence while
// keeping its geometry.
func (a *Assembly) Reset() {
	for _, t := range a.tubes {
		t.Reset()
	}
}

// TotalDelay returns the summed delay of all tubes.
func (a *Assembly) TotalDelay() int {
	total := 0
	for _, t := range a.tubes {
		total += t.delay
	}
	return total
}

// NumTubes returns the number of tubes in the chain.
func (a *Assembly) NumTubes() int { return len(a.tubes) }

// Tube returns the tube at index.
func (a *Assembly) Tube(index int) *Tube { return a.tubes[index] }

// Terminal returns the terminal radiation condition.
func (a *Assembly) Terminal() *Junction { return a.terminal }

// Energy returns the summed squared delay-line contents of all tubes, a
// diagnostic for decay behavior.
func (a *Assembly) Energy() float64 {
	e := 0.0
	for _, t := range a.tubes {
		e += t.Energy()
	}
	return e
}
