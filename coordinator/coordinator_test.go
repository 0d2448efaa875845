package coordinator

import (
	"FractalRasterizer/fractal"
	"FractalRasterizer/palette"
	"FractalRasterizer/task"
	"github.com/google/go-cmp/cmp"
	"math"
	"sync"
	"testing"
)

// 64x40 divides evenly into preview blocks, so preview samples land exactly on full pixels.
func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	return NewCoordinator(Settings{Width: 64, Height: 40, Workers: 4, Zoom: 1, CenterX: -0.5, HighQuality: true})
}

// =============================================================================
// Construction
// =============================================================================

func TestNewCoordinator_InteriorBuffer(t *testing.T) {
	c := newTestCoordinator(t)
	frame := c.Frame()
	if frame.Width != 64 || frame.Height != 40 {
		t.Fatalf("frame = %dx%d, want 64x40", frame.Width, frame.Height)
	}
	for i, p := range frame.Pixels {
		if p != palette.Interior {
			t.Fatalf("Pixels[%d] = %#08x before any render, want Interior", i, p)
		}
	}
	if c.Renders() != 0 {
		t.Errorf("Renders() = %d, want 0", c.Renders())
	}
}

func TestNewCoordinator_Config(t *testing.T) {
	c := NewCoordinator(Settings{Width: 64, Height: 40, Fractal: "julia", HighQuality: false, Zoom: 2})
	want := Config{
		Variant:   fractal.Julia,
		View:      task.View{Zoom: 2},
		Quality:   task.Preview,
		Parameter: fractal.DefaultParameter,
	}
	if diff := cmp.Diff(want, c.Config()); diff != "" {
		t.Errorf("Config() mismatch (-want +got):\n%s", diff)
	}
	if got := c.Parameter().Rotation; got != fractal.DefaultRotation {
		t.Errorf("Parameter().Rotation = %v, want %v", got, fractal.DefaultRotation)
	}
}

func TestNewCoordinator_ClampsBuffer(t *testing.T) {
	c := NewCoordinator(Settings{Width: MaxWidth * 2, Height: 10})
	if c.Width() != MaxWidth || c.Height() != 8 {
		t.Errorf("buffer = %dx%d, want %dx8", c.Width(), c.Height(), MaxWidth)
	}
}

func TestCoordinator_ReservedBytes(t *testing.T) {
	c := newTestCoordinator(t)
	if got, want := c.ReservedBytes(), 64*40*4; got < want {
		t.Errorf("ReservedBytes() = %d, want at least %d", got, want)
	}
}

// =============================================================================
// Control surface
// =============================================================================

func TestCoordinator_SelectFractal(t *testing.T) {
	c := newTestCoordinator(t)
	c.SelectFractal(int(fractal.Celtic))
	if got := c.Config().Variant; got != fractal.Celtic {
		t.Errorf("Variant = %s, want Celtic", got)
	}
	c.SelectFractal(99)
	if got := c.Config().Variant; got != fractal.Mandelbrot {
		t.Errorf("Variant after unknown id = %s, want Mandelbrot", got)
	}
	c.SelectFractal(-1)
	if got := c.Config().Variant; got != fractal.Mandelbrot {
		t.Errorf("Variant after negative id = %s, want Mandelbrot", got)
	}
}

func TestCoordinator_SetViewAndQuality(t *testing.T) {
	c := newTestCoordinator(t)
	c.SetView(0.25, -0.5, 16)
	c.SetQuality(false)

	config := c.Config()
	if diff := cmp.Diff(task.View{CenterX: 0.25, CenterY: -0.5, Zoom: 16}, config.View); diff != "" {
		t.Errorf("View mismatch (-want +got):\n%s", diff)
	}
	if config.Quality != task.Preview {
		t.Errorf("Quality = %s, want Preview", config.Quality)
	}
}

func TestCoordinator_SetParameterBoundsRotation(t *testing.T) {
	c := newTestCoordinator(t)
	c.SetRotation(2)
	c.SetParameter(3)

	p := c.Parameter()
	if p.C != 3 {
		t.Errorf("Parameter().C = %v, want 3", p.C)
	}
	if p.Rotation != 0.5 {
		t.Errorf("Parameter().Rotation = %v, want 0.5", p.Rotation)
	}
	if got := c.Config().Parameter; got != 3 {
		t.Errorf("Config().Parameter = %v, want 3", got)
	}

	// Inside the band the rotation is left alone.
	c.SetParameter(1)
	if got := c.Parameter().Rotation; got != 0.5 {
		t.Errorf("Rotation inside the band = %v, want 0.5", got)
	}
}

// =============================================================================
// Rendering
// =============================================================================

func TestCoordinator_RenderFull(t *testing.T) {
	c := newTestCoordinator(t)
	c.Render()
	frame := c.Frame()

	// The center of the default view is inside the main cardioid, the corner is far outside.
	if got := frame.At(32, 20); got != palette.Interior {
		t.Errorf("center = %#08x, want Interior", got)
	}
	if got := frame.At(0, 0); got == palette.Interior {
		t.Error("corner = Interior, want an escape color")
	}
	for i, p := range frame.Pixels {
		if p>>24 != 0xFF {
			t.Fatalf("Pixels[%d] = %#08x, want opaque", i, p)
		}
	}
	if frame.Render != 1 || c.Renders() != 1 {
		t.Errorf("frame.Render = %d, Renders() = %d, want 1", frame.Render, c.Renders())
	}
}

func TestCoordinator_RenderMatchesKernel(t *testing.T) {
	c := newTestCoordinator(t)
	c.SelectFractal(int(fractal.BurningShip))
	c.Render()
	frame := c.Frame()

	transform := task.NewTransform(64, 40, task.View{CenterX: -0.5, Zoom: 1})
	for y := 0; y < 40; y += 7 {
		for x := 0; x < 64; x += 5 {
			want := palette.Color(fractal.BurningShipEscape(transform.Point(x, y), 255))
			if got := frame.At(x, y); got != want {
				t.Errorf("At(%d, %d) = %#08x, want %#08x", x, y, got, want)
			}
		}
	}
}

func TestCoordinator_RenderPreviewBlocks(t *testing.T) {
	c := newTestCoordinator(t)
	c.SetQuality(false)
	c.Render()
	frame := c.Frame()

	for y := 0; y < 40; y++ {
		for x := 0; x < 64; x++ {
			corner := frame.At(x-x%4, y-y%4)
			if got := frame.At(x, y); got != corner {
				t.Fatalf("At(%d, %d) = %#08x, want block color %#08x", x, y, got, corner)
			}
		}
	}

	transform := task.NewTransform(16, 10, task.View{CenterX: -0.5, Zoom: 1})
	down := frame.Downsample(task.PreviewFactor)
	for y := 0; y < down.Height; y++ {
		for x := 0; x < down.Width; x++ {
			want := palette.Color(fractal.MandelbrotEscape(transform.Point(x, y), 255))
			if got := down.At(x, y); got != want {
				t.Errorf("preview sample (%d, %d) = %#08x, want %#08x", x, y, got, want)
			}
		}
	}
}

func TestCoordinator_PreviewAgreesWithFull(t *testing.T) {
	full := newTestCoordinator(t)
	full.Render()
	preview := newTestCoordinator(t)
	preview.SetQuality(false)
	preview.Render()

	for _, p := range []struct{ x, y int }{{32, 20}, {0, 0}, {60, 36}} {
		a := full.Frame().At(p.x, p.y) == palette.Interior
		b := preview.Frame().At(p.x, p.y) == palette.Interior
		if a != b {
			t.Errorf("(%d, %d): full interior %t, preview interior %t", p.x, p.y, a, b)
		}
	}
}

func TestCoordinator_RenderNewtonBasins(t *testing.T) {
	c := newTestCoordinator(t)
	c.SelectFractal(int(fractal.Newton))
	c.Render()

	// Pixel (51, 20) sits at 1.02 on the real axis, next to the root at 1.
	if got, want := c.Frame().At(51, 20), palette.Color(fractal.RootIndices[0]); got != want {
		t.Errorf("At(51, 20) = %#08x, want %#08x", got, want)
	}
}

func TestCoordinator_RenderEveryVariant(t *testing.T) {
	c := newTestCoordinator(t)
	for _, v := range fractal.Variants() {
		c.SelectFractal(int(v))
		c.Render()
		varied := false
		frame := c.Frame()
		for _, p := range frame.Pixels {
			if p != frame.Pixels[0] {
				varied = true
				break
			}
		}
		if !varied {
			t.Errorf("%s rendered a single color frame", v)
		}
	}
	if got := c.Renders(); got != uint64(len(fractal.Variants())) {
		t.Errorf("Renders() = %d, want %d", got, len(fractal.Variants()))
	}
}

func TestCoordinator_RenderDegenerateZoom(t *testing.T) {
	for _, zoom := range []float64{0, math.NaN()} {
		c := newTestCoordinator(t)
		c.SetView(0, 0, zoom)
		c.Render()
		for i, p := range c.Frame().Pixels {
			if p != palette.Interior {
				t.Fatalf("zoom %g: Pixels[%d] = %#08x, want Interior", zoom, i, p)
			}
		}
	}
}

func TestCoordinator_ConcurrentSetters(t *testing.T) {
	c := newTestCoordinator(t)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			c.SelectFractal(i % 8)
			c.SetView(float64(i%3)-1, 0, float64(i%5+1))
			c.SetQuality(i%2 == 0)
			c.SetParameter(complex(float64(i%4)/4, 0.5))
		}
	}()
	for i := 0; i < 5; i++ {
		c.Render()
		_ = c.Frame()
	}
	close(stop)
	wg.Wait()

	c.SelectFractal(int(fractal.Julia))
	c.SetView(-0.5, 0, 1)
	c.SetQuality(true)
	c.SetParameter(fractal.DefaultParameter)
	c.Render()

	fresh := newTestCoordinator(t)
	fresh.SelectFractal(int(fractal.Julia))
	fresh.Render()
	if diff := cmp.Diff(fresh.Frame().Pixels, c.Frame().Pixels); diff != "" {
		t.Errorf("final frame differs from a fresh render (-want +got):\n%s", diff)
	}
}

func TestCoordinator_InspectSharesBuffer(t *testing.T) {
	c := newTestCoordinator(t)
	c.Render()
	c.Inspect(func(frame Frame) {
		if &frame.Pixels[0] != &c.buffer[0] {
			t.Error("Inspect copied the buffer")
		}
		if frame.Render != 1 {
			t.Errorf("frame.Render = %d, want 1", frame.Render)
		}
	})

	copied := c.Frame()
	copied.Pixels[0] = 0
	if c.buffer[0] == 0 {
		t.Error("Frame() shares the live buffer")
	}
}

func TestCoordinator_WriteBackClamps(t *testing.T) {
	c := NewCoordinator(Settings{Width: 8, Height: 4, Workers: 1})

	// A row wider than the buffer only fills the columns that exist.
	wide := task.Task{Row: 0, Replication: 4, Pixels: make([]uint32, 12)}
	for i := range wide.Pixels {
		wide.Pixels[i] = 7
	}
	c.writeBack(&wide)

	// Rows entirely past the edge are ignored.
	past := task.Task{Row: 1, Replication: 4, Pixels: make([]uint32, 8)}
	for i := range past.Pixels {
		past.Pixels[i] = 9
	}
	c.writeBack(&past)

	if len(c.buffer) != 32 {
		t.Fatalf("len(buffer) = %d, want 32", len(c.buffer))
	}
	for i, p := range c.buffer {
		if p != 7 {
			t.Fatalf("buffer[%d] = %d, want 7", i, p)
		}
	}
}

func TestCoordinator_PreviewReplacesEveryPixel(t *testing.T) {
	// 66x42 rounds down to whole preview blocks.
	settings := Settings{Width: 66, Height: 42, Workers: 2, Zoom: 0.2, HighQuality: true}
	c := NewCoordinator(settings)
	if c.Width() != 64 || c.Height() != 40 {
		t.Fatalf("buffer = %dx%d, want 64x40", c.Width(), c.Height())
	}
	c.Render()

	c.SelectFractal(int(fractal.Newton))
	c.SetView(0, 0, 1)
	c.SetQuality(false)
	c.Render()

	fresh := NewCoordinator(settings)
	fresh.SelectFractal(int(fractal.Newton))
	fresh.SetView(0, 0, 1)
	fresh.SetQuality(false)
	fresh.Render()

	if diff := cmp.Diff(fresh.Frame().Pixels, c.Frame().Pixels); diff != "" {
		t.Errorf("preview pass left pixels from the previous pass (-want +got):\n%s", diff)
	}
}

func TestCoordinator_RenderBoundsRotation(t *testing.T) {
	c := newTestCoordinator(t)
	c.SetParameter(3)
	c.SetRotation(2)

	// Mandelbrot does not read the parameter, so its passes leave the rotation alone.
	c.Render()
	if got := c.Parameter().Rotation; got != 2 {
		t.Errorf("Rotation after a Mandelbrot pass = %v, want 2", got)
	}

	for _, v := range []fractal.Variant{fractal.Julia, fractal.Phoenix} {
		c.SetRotation(2)
		c.SelectFractal(int(v))
		c.Render()
		if got := c.Parameter().Rotation; got != 0.5 {
			t.Errorf("Rotation after a %s pass = %v, want 0.5", v, got)
		}
	}

	// Inside the orbit band a pass keeps the rotation.
	c.SetParameter(1)
	c.SetRotation(2)
	c.Render()
	if got := c.Parameter().Rotation; got != 2 {
		t.Errorf("Rotation inside the band = %v, want 2", got)
	}
}
