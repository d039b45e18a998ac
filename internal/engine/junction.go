package engine

import "gonum.org/v1/gonum/mat"

// Junction is a two-port scattering element between adjoining waveguide
// sections. Its 2x2 matrix maps the two waves arriving at the junction
// (outgoing from the left section, incoming from the right) to the two waves
// leaving it. For an area discontinuity the matrix conserves acoustic power
// exactly in the ideal lossless, frequency-independent approximation.
//
// The matrix entries are cached as scalars so Scatter stays allocation-free
// in the per-tick path; Matrix exposes the underlying dense form for
// inspection and tests.
type Junction struct {
	m                  *mat.Dense
	m00, m01, m10, m11 float64
}

func newJunction(m00, m01, m10, m11 float64) *Junction {
	return &Junction{
		m:   mat.NewDense(2, 2, []float64{m00, m01, m10, m11}),
		m00: m00, m01: m01, m10: m10, m11: m11,
	}
}

// NewJunction builds the scattering matrix for the boundary between a left
// section of radius rLeft and a right section of radius rRight. The
// characteristic impedances enter as inverse-square radii:
//
//	scl = 1/rLeft^2, scr = 1/rRight^2
//	M   = [[2*scr, scl-scr], [scr-scl, 2*scl]] / (scr+scl)
//
// Matched radii yield the identity matrix, a fully transparent junction.
func NewJunction(rLeft, rRight float64) *Junction {
	scl := 1 / (rLeft * rLeft)
	scr := 1 / (rRight * rRight)
	sum := scl + scr
	return newJunction(2*scr/sum, (scl-scr)/sum, (scr-scl)/sum, 2*scl/sum)
}

// NewOpenEndTerminal returns the radiation condition of an ideally open pipe
// end: full reflection with pressure inversion and no transmission loss.
func NewOpenEndTerminal() *Junction {
	return newJunction(0, 1, -1, 0)
}

// NewClosedEndTerminal returns the reflection condition of a stopped pipe
// end: full reflection without inversion.
func NewClosedEndTerminal() *Junction {
	return newJunction(0, 1, 1, 0)
}

// Scatter maps the wave leaving the left section (outFromLeft) and the wave
// arriving from the right section (inFromRight) to the wave transmitted
// rightward and the wave reflected back into the left section.
func (j *Junction) Scatter(outFromLeft, inFromRight float64) (outToRight, inToLeft float64) {
	outToRight = inFromRight*j.m01 + outFromLeft*j.m00
	inToLeft = inFromRight*j.m11 + outFromLeft*j.m10
	return outToRight, inToLeft
}

// Matrix returns the scattering matrix.
func (j *Junction) Matrix() mat.Matrix { return j.m }
