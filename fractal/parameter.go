package fractal

const (
	// OrbitMin and OrbitMax bound the squared magnitude of the animated parameter.
	OrbitMin = 0.3
	OrbitMax = 2.0
)

var (
	// DefaultParameter is the Julia and Phoenix parameter a fresh coordinator starts with.
	DefaultParameter = complex(-0.5, 0.5)
	// DefaultRotation turns the parameter by about a tenth of a degree per frame.
	DefaultRotation = complex(1, 0.002)
)

// Parameter is the shared complex value read by Julia and Phoenix along with the rotation a host
// multiplies it by between frames. This package never advances C on its own.
type Parameter struct {
	C        complex128
	Rotation complex128
}

func NewParameter() Parameter {
	return Parameter{C: DefaultParameter, Rotation: DefaultRotation}
}

// Bound inverts the magnitude of the rotation, r = r / |r|^2, whenever |C|^2 leaves
// (OrbitMin, OrbitMax), so a host stepping C by the rotation turns back toward the band instead of
// spiralling away. It reports whether the rotation changed.
func (p *Parameter) Bound() bool {
	norm := real(p.C)*real(p.C) + imag(p.C)*imag(p.C)
	if norm > OrbitMin && norm < OrbitMax {
		return false
	}
	r := real(p.Rotation)*real(p.Rotation) + imag(p.Rotation)*imag(p.Rotation)
	if r == 0 {
		return false
	}
	p.Rotation = p.Rotation / complex(r, 0)
	return true
}
