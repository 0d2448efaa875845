package task

import (
	"FractalRasterizer/fractal"
	"FractalRasterizer/palette"
	"fmt"
)

const (
	Preview Quality = iota
	Full
)

// PreviewFactor is the block size a preview sample is replicated into.
const PreviewFactor = 4

// Quality trades sampling density for speed. It never changes kernels or colors.
type Quality int

// QualityFromFlag maps the host's high quality flag onto a Quality.
func QualityFromFlag(high bool) Quality {
	if high {
		return Full
	}
	return Preview
}

func (q Quality) String() string {
	if q == Full {
		return "Full"
	}
	return "Preview"
}

// Resolution is the sample grid a frame is computed on and the block size each sample fills.
type Resolution struct {
	Width       int
	Height      int
	Replication int
}

// ResolutionFor picks the sample grid for a width x height buffer. Preview samples a quarter of
// each dimension and replicates every sample into a PreviewFactor square block.
func ResolutionFor(quality Quality, width int, height int) Resolution {
	if quality == Full {
		return Resolution{Width: width, Height: height, Replication: 1}
	}
	return Resolution{
		Width:       width / PreviewFactor,
		Height:      height / PreviewFactor,
		Replication: PreviewFactor,
	}
}

// Task is one sample row of a frame. Pixels holds the row already replicated horizontally, so a
// row of n samples carries n * Replication colors.
type Task struct {
	Row         int
	Replication int
	Pixels      []uint32
}

func NewTask(row int, resolution Resolution) Task {
	return Task{
		Row:         row,
		Replication: resolution.Replication,
		Pixels:      make([]uint32, resolution.Width*resolution.Replication),
	}
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task Row: %d Replication: %d Pixel Count: %d}", t.Row, t.Replication, len(t.Pixels))
}

// Compute evaluates every sample of the row and stores its color. It only touches the task's own
// pixels, so tasks for different rows can run concurrently.
func (t *Task) Compute(transform Transform, kernel fractal.Kernel, maxIterations int) {
	samples := len(t.Pixels) / t.Replication
	for x := 0; x < samples; x++ {
		c := palette.Color(kernel(transform.Point(x, t.Row), maxIterations))
		block := t.Pixels[x*t.Replication : (x+1)*t.Replication]
		for i := range block {
			block[i] = c
		}
	}
}

// DestinationRows returns the buffer rows this task covers, [first, first + Replication).
func (t *Task) DestinationRows() (first int, count int) {
	return t.Row * t.Replication, t.Replication
}
