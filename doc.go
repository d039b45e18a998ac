// Package waveguide implements digital-waveguide simulation of acoustic
// tube resonators in pure Go.
//
// A resonator is a chain of cylindrical tube segments. Each segment is a
// pair of circular delay lines carrying the two oppositely-traveling wave
// components; adjacent segments are coupled by scattering junctions derived
// from their relative cross sections, and the far end carries an idealized
// radiation condition. The model follows the classical Kelly-Lochbaum
// formulation of waveguide synthesis.
//
// # Quick Start
//
// For a single cylindrical bore:
//
//	r, err := waveguide.NewCylinder(40, 1.0, 0.001)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, x := range excitation {
//	    r.Step(x)
//	    pressure := r.InputPressure()
//	    // couple pressure back into the excitation model
//	}
//
// For a stepped bore built from several segments:
//
//	config := &waveguide.Config{
//	    Segments: []waveguide.SegmentSpec{
//	        {Delay: 30, Radius: 1.0, Loss: 0.001},
//	        {Delay: 50, Radius: 1.8, Loss: 0.001},
//	    },
//	}
//	r, err := waveguide.New(config)
//
// # Model
//
// Time advances one sample per Step call. Each Step pushes the excitation
// value into the first segment, propagates the previous-tick exit values of
// every segment through the junction chain left to right, writes the
// scattered waves back, and returns the sample leaving the terminal
// junction outward. The resonator is the linear acoustic side only; the
// nonlinear reed or valve driving a self-oscillating instrument is an
// external collaborator that feeds Step and reads InputPressure.
//
// State queries (InputPressure, PressureDistribution, PressureAt) are
// non-destructive snapshots of the delay-line contents and may be called
// any number of times between Steps.
//
// # Concurrency
//
// A Resonator is not safe for concurrent use. Steps must be serialized by
// the caller; distinct Resonator instances are fully independent.
package waveguide
