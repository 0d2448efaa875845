package coordinator

import (
	"FractalRasterizer/fractal"
	"FractalRasterizer/palette"
	"FractalRasterizer/task"
	"FractalRasterizer/worker"
	"github.com/BrugadaSyndrome/bslogger"
	"sync"
	"time"
	"unsafe"
)

// Config is everything a render pass reads. It is copied once at the start of the pass.
type Config struct {
	Variant   fractal.Variant
	View      task.View
	Quality   task.Quality
	Parameter complex128
}

// Coordinator owns the render configuration and the single output buffer. Setters may be called
// from any goroutine; a pass in progress keeps the configuration it started with. Render passes
// never overlap.
type Coordinator struct {
	buffer      []uint32
	config      Config
	configMutex sync.Mutex
	height      int
	logger      bslogger.Logger
	parameter   fractal.Parameter
	pool        worker.Pool
	renderMutex sync.RWMutex
	renders     uint64
	width       int
}

func NewCoordinator(settings Settings) *Coordinator {
	err := settings.Verify()
	coordinator := &Coordinator{
		buffer: make([]uint32, settings.Width*settings.Height),
		config: Config{
			Variant:   settings.Variant(),
			View:      settings.View(),
			Quality:   task.QualityFromFlag(settings.HighQuality),
			Parameter: settings.Parameter(),
		},
		height: settings.Height,
		logger: bslogger.NewLogger("Coordinator", bslogger.Normal, nil),
		parameter: fractal.Parameter{
			C:        settings.Parameter(),
			Rotation: settings.Rotation(),
		},
		pool:  worker.NewPool(settings.Workers),
		width: settings.Width,
	}
	if err != nil {
		coordinator.logger.Warning(err.Error())
	}
	for i := range coordinator.buffer {
		coordinator.buffer[i] = palette.Interior
	}
	coordinator.logger.Debugf("Allocated %dx%d buffer with %d workers", coordinator.width, coordinator.height, coordinator.pool.Workers())
	return coordinator
}

// SelectFractal activates the family with the given id. Unknown ids select Mandelbrot.
func (c *Coordinator) SelectFractal(id int) {
	variant, ok := fractal.VariantFromID(id)
	if !ok {
		c.logger.Warningf("Unknown fractal id %d, using %s", id, variant)
	}
	c.configMutex.Lock()
	c.config.Variant = variant
	c.configMutex.Unlock()
}

// SetView replaces the view wholesale. The values are not validated: a zoom that is not positive
// renders as a degenerate frame.
func (c *Coordinator) SetView(centerX float64, centerY float64, zoom float64) {
	c.configMutex.Lock()
	c.config.View = task.View{CenterX: centerX, CenterY: centerY, Zoom: zoom}
	c.configMutex.Unlock()
}

func (c *Coordinator) SetQuality(high bool) {
	c.configMutex.Lock()
	c.config.Quality = task.QualityFromFlag(high)
	c.configMutex.Unlock()
}

// SetParameter replaces the shared Julia and Phoenix parameter. When the new value leaves the
// animation band the rotation is inverted, see fractal.Parameter.Bound. Render applies the same
// bound again for Julia and Phoenix passes.
func (c *Coordinator) SetParameter(parameter complex128) {
	c.configMutex.Lock()
	defer c.configMutex.Unlock()
	c.parameter.C = parameter
	c.config.Parameter = parameter
	if c.parameter.Bound() {
		c.logger.Debugf("Parameter %v left the orbit band, rotation is now %v", parameter, c.parameter.Rotation)
	}
}

func (c *Coordinator) SetRotation(rotation complex128) {
	c.configMutex.Lock()
	c.parameter.Rotation = rotation
	c.configMutex.Unlock()
}

// Parameter returns the shared parameter together with its rotation.
func (c *Coordinator) Parameter() fractal.Parameter {
	c.configMutex.Lock()
	defer c.configMutex.Unlock()
	return c.parameter
}

func (c *Coordinator) Config() Config {
	c.configMutex.Lock()
	defer c.configMutex.Unlock()
	return c.config
}

func (c *Coordinator) Width() int {
	return c.width
}

func (c *Coordinator) Height() int {
	return c.height
}

// ReservedBytes is the memory the buffer and configuration occupy, for hosts sizing their
// address space up front.
func (c *Coordinator) ReservedBytes() int {
	return len(c.buffer)*int(unsafe.Sizeof(uint32(0))) + int(unsafe.Sizeof(Config{})) + int(unsafe.Sizeof(fractal.Parameter{}))
}

// Renders returns the number of completed render passes.
func (c *Coordinator) Renders() uint64 {
	c.renderMutex.RLock()
	defer c.renderMutex.RUnlock()
	return c.renders
}

// Render fills the buffer for the current configuration. Rows are computed in parallel into
// buffers owned by each row, then copied into the shared buffer in row order once all of them are
// done. Render blocks until the whole buffer is written.
func (c *Coordinator) Render() {
	c.renderMutex.Lock()
	defer c.renderMutex.Unlock()

	config := c.snapshot()
	startTime := time.Now()

	resolution := task.ResolutionFor(config.Quality, c.width, c.height)
	transform := task.NewTransform(resolution.Width, resolution.Height, config.View)
	kernel := config.Variant.Kernel(config.Parameter)
	maxIterations := config.Variant.MaxIterations(config.View.Zoom)

	rows := make([]task.Task, resolution.Height)
	c.pool.Process(len(rows), func(row int) {
		rows[row] = task.NewTask(row, resolution)
		rows[row].Compute(transform, kernel, maxIterations)
	})

	for i := range rows {
		c.writeBack(&rows[i])
	}
	c.renders++

	c.logger.Debugf("Rendered %s %s frame %d (%dx%d samples, %d iterations) in %s",
		config.Variant, config.Quality, c.renders, resolution.Width, resolution.Height, maxIterations, time.Since(startTime))
}

// snapshot copies the config for one pass. Passes of a parameterized family also bound the
// rotation, so a rotation set while the parameter is outside the orbit band is corrected before the
// host steps the parameter again.
func (c *Coordinator) snapshot() Config {
	c.configMutex.Lock()
	defer c.configMutex.Unlock()
	if c.config.Variant.Parameterized() && c.parameter.Bound() {
		c.logger.Debugf("Parameter %v is outside the orbit band, rotation is now %v", c.parameter.C, c.parameter.Rotation)
	}
	return c.config
}

// writeBack copies a row task into every buffer row it covers. Rows and columns past the buffer
// edge are skipped.
func (c *Coordinator) writeBack(t *task.Task) {
	first, count := t.DestinationRows()
	for y := first; y < first+count; y++ {
		if y < 0 || y >= c.height {
			continue
		}
		copy(c.buffer[y*c.width:(y+1)*c.width], t.Pixels)
	}
}

// Frame returns a copy of the buffer as of the last completed render pass.
func (c *Coordinator) Frame() Frame {
	c.renderMutex.RLock()
	defer c.renderMutex.RUnlock()

	pixels := make([]uint32, len(c.buffer))
	copy(pixels, c.buffer)
	return Frame{Width: c.width, Height: c.height, Pixels: pixels, Render: c.renders}
}

// Inspect calls fn with the live buffer, without copying it. No render pass runs while fn does,
// and fn must not modify or retain pixels.
func (c *Coordinator) Inspect(fn func(frame Frame)) {
	c.renderMutex.RLock()
	defer c.renderMutex.RUnlock()
	fn(Frame{Width: c.width, Height: c.height, Pixels: c.buffer, Render: c.renders})
}
