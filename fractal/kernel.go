package fractal

// Kernel evaluates one sample point of the complex plane. A result of 0 marks the point as interior
// (or unclassified for the Newton families); any positive value is a smooth escape or convergence
// index suitable for coloring.
type Kernel func(point complex128, maxIterations int) float64

// Kernel returns the per pixel function for the family. The shared parameter c is bound here, so
// callers pick the kernel once per frame and call it directly for every sample.
func (v Variant) Kernel(c complex128) Kernel {
	switch v {
	case Julia:
		return func(point complex128, maxIterations int) float64 {
			return JuliaEscape(point, c, maxIterations)
		}
	case BurningShip:
		return BurningShipEscape
	case Newton:
		return NewtonRoot
	case RainbowNewton:
		return RainbowNewtonRoot
	case Tricorn:
		return TricornEscape
	case Phoenix:
		return func(point complex128, maxIterations int) float64 {
			return PhoenixEscape(point, c, maxIterations)
		}
	case Celtic:
		return CelticEscape
	default:
		return MandelbrotEscape
	}
}
