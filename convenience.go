package waveguide

// NewCylinder creates a single-segment resonator with an open far end: the
// simplest bore, a uniform cylinder.
func NewCylinder(delay int, radius, loss float64) (*Resonator, error) {
	return New(&Config{
		Segments: []SegmentSpec{{Delay: delay, Radius: radius, Loss: loss}},
	})
}

// NewSteppedBore creates an open-ended resonator from a sequence of
// segments, input end first. A cone or horn profile is approximated by a
// staircase of widening cylinders.
func NewSteppedBore(segments ...SegmentSpec) (*Resonator, error) {
	return New(&Config{Segments: segments})
}

// NewClosedPipe creates a single-segment resonator with a stopped far end.
func NewClosedPipe(delay int, radius, loss float64) (*Resonator, error) {
	return New(&Config{
		Segments: []SegmentSpec{{Delay: delay, Radius: radius, Loss: loss}},
		Terminal: TerminalClosed,
	})
}
