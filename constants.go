package waveguide

// Validation bounds for segment specifications.
const (
	// minSegmentDelay is the shortest representable segment in samples.
	minSegmentDelay = 1

	// maxLossRate is the exclusive upper bound of the per-sample loss rate.
	maxLossRate = 1.0
)
