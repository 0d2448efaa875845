package task

import "fmt"

// PlaneHeight is the height of the visible region of the complex plane at zoom 1.
const PlaneHeight = 3.2

// View is the visible rectangle of the complex plane. Zoom is expected to be positive; other
// values are not rejected and give a degenerate transform.
type View struct {
	CenterX float64
	CenterY float64
	Zoom    float64
}

// DefaultView centers the plane on the origin at zoom 1.
var DefaultView = View{CenterX: 0, CenterY: 0, Zoom: 1}

func (v View) String() string {
	return fmt.Sprintf("{View CenterX: %f CenterY: %f Zoom: %f}", v.CenterX, v.CenterY, v.Zoom)
}

// Transform is the affine mapping from sample coordinates to points of the complex plane.
type Transform struct {
	X0    float64
	Y0    float64
	Scale float64
}

// NewTransform maps a width x height sample grid onto the view. The vertical span is always
// PlaneHeight / zoom, so grids of different density over the same view cover the same region.
func NewTransform(width int, height int, view View) Transform {
	scale := PlaneHeight / float64(height) / view.Zoom
	return Transform{
		X0:    view.CenterX - float64(width)*scale/2,
		Y0:    view.CenterY - float64(height)*scale/2,
		Scale: scale,
	}
}

// Point returns the complex coordinate of sample (x, y).
func (t Transform) Point(x int, y int) complex128 {
	return complex(t.X0+float64(x)*t.Scale, t.Y0+float64(y)*t.Scale)
}
