package engine

// Delay line geometry constants.
const (
	// lineHeadroom is the extra delay-line capacity allocated beyond the
	// tube delay, reserved for the exit readout's history past the nominal
	// delay.
	lineHeadroom = 5

	// exitReadCorrection is the fixed 2-sample offset subtracted from the tube
	// delay when reading a wave at the far end of a tube. It compensates the
	// loop latency of the per-tick assembly update: with it, a single open
	// tube of delay d echoes an impulse back at the input exactly 2*d ticks
	// after insertion. Pinned by the round-trip tests; do not change.
	exitReadCorrection = 2
)

// Validation bounds for tube segments.
const (
	// minTubeDelay is the shortest representable tube, one sample of travel.
	minTubeDelay = 1

	// maxLossRate bounds the per-sample loss fraction; a rate of 1 would
	// absorb the entire wave within a single sample.
	maxLossRate = 1.0
)
