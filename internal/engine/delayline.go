// Package engine implements the digital-waveguide core: circular delay
// lines, tube segments, scattering junctions and the tube assembly that
// advances the whole model one sample at a time.
//
// The engine is single-threaded by contract. Each structure is exclusively
// owned by its parent (delay lines by tubes, tubes by assemblies) and all
// memory is allocated at construction time; the per-tick update performs no
// allocation.
package engine

import "fmt"

// DelayLine is a fixed-capacity circular buffer of samples with a write
// pointer at the most recently inserted sample. A sample written k ticks ago
// lives at (ptr-k) mod capacity and stays addressable for capacity-1 further
// inserts.
type DelayLine struct {
	line  []float64
	ptr   int
	delay int // default read offset
	ticks uint64
}

// NewDelayLine creates a zeroed delay line holding maxDelay+extra samples.
// maxDelay becomes the default read offset used by Read.
func NewDelayLine(maxDelay, extra int) *DelayLine {
	return &DelayLine{
		line:  make([]float64, maxDelay+extra),
		delay: maxDelay,
	}
}

// Insert advances the write pointer by one slot, wrapping at capacity, and
// stores sample there.
func (d *DelayLine) Insert(sample float64) {
	d.ptr++
	if d.ptr == len(d.line) {
		d.ptr = 0
	}
	d.line[d.ptr] = sample
	d.ticks++
}

// ReadAt returns the sample inserted offset ticks ago without modifying the
// line. Before the line has received offset inserts the initialization zero
// is returned. Offsets outside [0, capacity) cannot address valid history
// and are a programming error; ReadAt panics rather than wrap into stale
// data.
func (d *DelayLine) ReadAt(offset int) float64 {
	if offset < 0 || offset >= len(d.line) {
		panic(fmt.Sprintf("engine: delay line read offset %d out of range [0, %d)", offset, len(d.line)))
	}
	i := d.ptr - offset
	if i < 0 {
		i += len(d.line)
	}
	return d.line[i]
}

// readWrapped is ReadAt with floor-modulo indexing and no bounds check. The
// tube exit readout applies a fixed negative correction to its offset, which
// for very short tubes produces an offset of -1; that read wraps around the
// pointer, and the round-trip behavior depends on it.
func (d *DelayLine) readWrapped(offset int) float64 {
	n := len(d.line)
	i := (d.ptr - offset) % n
	if i < 0 {
		i += n
	}
	return d.line[i]
}

// Read returns the sample at the default offset configured at construction.
func (d *DelayLine) Read() float64 {
	return d.ReadAt(d.delay)
}

// Dump returns the most recent default-offset-many samples ordered from
// most recent to oldest, so that Dump()[k] == ReadAt(k). The snapshot is a
// copy; reading it does not disturb the line.
func (d *DelayLine) Dump() []float64 {
	out := make([]float64, d.delay)
	d.CopyRecent(out)
	return out
}

// CopyRecent fills dst with the most recent len(dst) samples, most recent
// first. len(dst) must not exceed the line capacity.
func (d *DelayLine) CopyRecent(dst []float64) {
	for k := range dst {
		dst[k] = d.ReadAt(k)
	}
}

// Reset zeroes the line and returns the pointer and tick counter to their
// initial state.
func (d *DelayLine) Reset() {
	for i := range d.line {
		d.line[i] = 0
	}
	d.ptr = 0
	d.ticks = 0
}

// Delay returns the default read offset.
func (d *DelayLine) Delay() int { return d.delay }

// Capacity returns the total number of samples the line retains.
func (d *DelayLine) Capacity() int { return len(d.line) }

// Ticks returns the number of samples inserted since creation or the last
// Reset.
func (d *DelayLine) Ticks() uint64 { return d.ticks }
