package engine

import (
	"gonum.org/v1/gonum/floats"

	"github.com/goiosunw/go-waveguide/internal/simdops"
)

// Tube is a straight cylindrical waveguide segment represented by a pair of
// delay lines, one per travel direction. Position-indexed reads reconstruct
// the two physical state variables along the segment: pressure as the sum of
// the wave components and flow as their difference.
//
// Positions are measured in samples from the segment's input end, 0 through
// Delay inclusive.
type Tube struct {
	in  *DelayLine // wave traveling toward the input end
	out *DelayLine // wave traveling toward the far end

	delay int

	// samplePropMult attenuates a wave by one sample of travel, propMult by
	// the full segment traversal (samplePropMult^delay). ramp[i] holds
	// samplePropMult^i for i = 0..delay.
	samplePropMult float64
	propMult       float64
	ramp           []float64
}

// NewTube creates a tube of the given delay (length in samples of travel)
// with a per-sample loss rate. Both delay lines carry a fixed headroom past
// the nominal delay for the exit readout. Arguments are assumed validated by
// the assembly.
func NewTube(delay int, loss float64) *Tube {
	t := &Tube{
		in:             NewDelayLine(delay, lineHeadroom),
		out:            NewDelayLine(delay, lineHeadroom),
		delay:          delay,
		samplePropMult: 1 - loss,
		ramp:           make([]float64, delay+1),
	}
	m := 1.0
	for i := range t.ramp {
		t.ramp[i] = m
		m *= t.samplePropMult
	}
	t.propMult = t.ramp[delay]
	return t
}

// InsertIncoming pushes one sample into the incoming delay line.
func (t *Tube) InsertIncoming(sample float64) { t.in.Insert(sample) }

// InsertOutgoing pushes one sample into the outgoing delay line.
func (t *Tube) InsertOutgoing(sample float64) { t.out.Insert(sample) }

// ReadOutgoingExit reads the outgoing wave at the far end of the tube,
// attenuated by the full traversal. The read offset carries the fixed exit
// correction (see exitReadCorrection).
func (t *Tube) ReadOutgoingExit() float64 {
	return t.out.readWrapped(t.delay-exitReadCorrection) * t.propMult
}

// ReadIncomingExit reads the incoming wave at the input end of the tube,
// attenuated by the full traversal, with the same exit correction.
func (t *Tube) ReadIncomingExit() float64 {
	return t.in.readWrapped(t.delay-exitReadCorrection) * t.propMult
}

// ReadOutgoingAtPos returns the outgoing wave at position pos, attenuated by
// the travel from the input end.
func (t *Tube) ReadOutgoingAtPos(pos int) float64 {
	return t.out.ReadAt(pos) * t.ramp[pos]
}

// ReadIncomingAtPos returns the incoming wave at position pos, attenuated by
// the travel from the far end.
func (t *Tube) ReadIncomingAtPos(pos int) float64 {
	return t.in.ReadAt(t.delay-pos) * t.ramp[t.delay-pos]
}

// SumAtPos returns the acoustic pressure at position pos: the sum of the
// attenuated incoming and outgoing waves.
func (t *Tube) SumAtPos(pos int) float64 {
	return t.ReadIncomingAtPos(pos) + t.ReadOutgoingAtPos(pos)
}

// DiffAtPos returns the flow-like difference of the two waves at position
// pos. Unlike SumAtPos the reads are raw, without attenuation; the model is
// calibrated against this asymmetry, so it is preserved as is.
func (t *Tube) DiffAtPos(pos int) float64 {
	return t.out.ReadAt(pos) - t.in.ReadAt(t.delay-pos)
}

// SumDistribution returns the pressure at every position of the tube, index
// 0 at the input end, length Delay+1. The result is a snapshot; the delay
// lines are not modified.
func (t *Tube) SumDistribution() []float64 {
	n := t.delay + 1
	pout := make([]float64, n)
	pin := make([]float64, n)
	t.out.CopyRecent(pout)
	t.in.CopyRecent(pin)
	floats.Mul(pout, t.ramp)
	floats.Mul(pin, t.ramp)
	floats.Reverse(pin)
	floats.Add(pout, pin)
	return pout
}

// Energy returns the sum of squared samples held in both delay lines. It is
// a cheap diagnostic for decay behavior, not a calibrated acoustic energy.
func (t *Tube) Energy() float64 {
	return simdops.DotProductUnsafe(t.in.line, t.in.line) +
		simdops.DotProductUnsafe(t.out.line, t.out.line)
}

// Reset zeroes both delay lines.
func (t *Tube) Reset() {
	t.in.Reset()
	t.out.Reset()
}

// Delay returns the tube length in samples.
func (t *Tube) Delay() int { return t.delay }
