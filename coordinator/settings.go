package coordinator

import (
	"FractalRasterizer/fractal"
	"FractalRasterizer/misc"
	"FractalRasterizer/task"
	"encoding/json"
	"fmt"
	"github.com/BrugadaSyndrome/bslogger"
	"runtime"
)

const (
	// MaxWidth and MaxHeight are the largest buffer a coordinator will allocate.
	MaxWidth  = 3200
	MaxHeight = 2000
)

// Settings is the initial render configuration, usually read from a JSON file.
type Settings struct {
	logger  bslogger.Logger
	variant fractal.Variant

	CenterX       float64
	CenterY       float64
	Fractal       string
	Height        int
	HighQuality   bool
	ParameterImag *float64
	ParameterReal *float64
	RotationImag  *float64
	RotationReal  *float64
	Width         int
	Workers       int
	Zoom          float64
}

// DefaultSettings frames the whole Mandelbrot set on a full size buffer.
func DefaultSettings() Settings {
	s := Settings{
		CenterX:     task.DefaultView.CenterX,
		CenterY:     task.DefaultView.CenterY,
		HighQuality: true,
		Zoom:        task.DefaultView.Zoom,
	}
	err := s.Verify()
	misc.CheckError(err, &s.logger, misc.Warning)
	return s
}

func LoadSettings(settingsFile string) (Settings, error) {
	s := Settings{}
	fileBytes, err := misc.ReadFile(settingsFile)
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(fileBytes, &s); err != nil {
		return s, fmt.Errorf("unable to parse %s - %s", settingsFile, err)
	}
	if err := s.Verify(); err != nil {
		return s, err
	}
	s.logger.Debug(s.String())
	return s, nil
}

func (s *Settings) String() string {
	output := "\nCoordinator settings\n"
	output += fmt.Sprintf("Center X: %f\n", s.CenterX)
	output += fmt.Sprintf("Center Y: %f\n", s.CenterY)
	output += fmt.Sprintf("Fractal: %s\n", s.variant)
	output += fmt.Sprintf("Height: %d\n", s.Height)
	output += fmt.Sprintf("High Quality: %t\n", s.HighQuality)
	output += fmt.Sprintf("Parameter: %v\n", s.Parameter())
	output += fmt.Sprintf("Rotation: %v\n", s.Rotation())
	output += fmt.Sprintf("Width: %d\n", s.Width)
	output += fmt.Sprintf("Workers: %d\n", s.Workers)
	output += fmt.Sprintf("Zoom: %f\n", s.Zoom)
	return output
}

// Verify fills in defaults for missing values and clamps the buffer to MaxWidth x MaxHeight. Both
// dimensions are rounded down to whole preview blocks so a preview pass covers every pixel. A
// parameter or rotation is only defaulted when neither of its parts is given.
func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("CoordinatorSettings", bslogger.Normal, nil)

	if s.CenterX > 4.0 || s.CenterX < -4.0 {
		s.CenterX = 0.0
	}
	if s.CenterY > 4.0 || s.CenterY < -4.0 {
		s.CenterY = 0.0
	}
	s.variant = fractal.Mandelbrot
	if s.Fractal != "" {
		variant, err := fractal.ParseVariant(s.Fractal)
		if err != nil {
			s.logger.Warningf("%s, using %s", err, fractal.Mandelbrot)
		}
		s.variant = variant
	}
	s.Fractal = s.variant.String()
	if s.Height <= 0 {
		s.Height = MaxHeight
	}
	if s.Height > MaxHeight {
		s.logger.Warningf("Height %d is larger than the buffer, using %d", s.Height, MaxHeight)
		s.Height = MaxHeight
	}
	s.Height = s.wholeBlocks("Height", s.Height)
	if s.ParameterReal == nil && s.ParameterImag == nil {
		s.ParameterReal, s.ParameterImag = float64Pointer(real(fractal.DefaultParameter)), float64Pointer(imag(fractal.DefaultParameter))
	}
	if s.RotationReal == nil && s.RotationImag == nil {
		s.RotationReal, s.RotationImag = float64Pointer(real(fractal.DefaultRotation)), float64Pointer(imag(fractal.DefaultRotation))
	}
	if s.Width <= 0 {
		s.Width = MaxWidth
	}
	if s.Width > MaxWidth {
		s.logger.Warningf("Width %d is larger than the buffer, using %d", s.Width, MaxWidth)
		s.Width = MaxWidth
	}
	s.Width = s.wholeBlocks("Width", s.Width)
	if s.Workers <= 0 {
		s.Workers = runtime.GOMAXPROCS(0)
	}
	if s.Zoom <= 0 {
		s.Zoom = 1
	}

	return nil
}

// wholeBlocks rounds size down to a multiple of task.PreviewFactor, and never below one block.
func (s *Settings) wholeBlocks(name string, size int) int {
	rounded := size - size%task.PreviewFactor
	if rounded < task.PreviewFactor {
		rounded = task.PreviewFactor
	}
	if rounded != size {
		s.logger.Warningf("%s %d is not a multiple of %d, using %d", name, size, task.PreviewFactor, rounded)
	}
	return rounded
}

func float64Pointer(f float64) *float64 {
	return &f
}

func float64Value(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func (s *Settings) Variant() fractal.Variant {
	return s.variant
}

func (s *Settings) View() task.View {
	return task.View{CenterX: s.CenterX, CenterY: s.CenterY, Zoom: s.Zoom}
}

func (s *Settings) Parameter() complex128 {
	return complex(float64Value(s.ParameterReal), float64Value(s.ParameterImag))
}

func (s *Settings) Rotation() complex128 {
	return complex(float64Value(s.RotationReal), float64Value(s.RotationImag))
}
