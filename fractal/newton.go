package fractal

import (
	"math"
	"math/cmplx"
)

const (
	// ConvergenceEpsilon is the squared step length below which the Newton orbit is settled.
	ConvergenceEpsilon = 1e-6
	// RootTolerance is the distance within which a settled point is assigned to a root.
	RootTolerance = 1e-3
	// rainbowStep is the index distance between orbits that settle one iteration apart.
	rainbowStep = 5
)

// Roots are the cube roots of unity, the attractors of the Newton map for z^3 - 1.
var Roots = [3]complex128{
	complex(1, 0),
	complex(-0.5, math.Sqrt(3)/2),
	complex(-0.5, -math.Sqrt(3)/2),
}

// RootIndices are the fixed color indices reported for each entry of Roots.
var RootIndices = [3]float64{85, 170, 255}

// converge applies z = z - (z^3 - 1) / (3z^2) until the step is shorter than ConvergenceEpsilon.
// It returns the point the final step started from, the point it landed on and the iteration it
// settled on, or ok as false when the bound runs out first. Iterations run from 1 up to, but not
// including, maxIterations. An orbit that hits z = 0 turns into NaN and never settles.
func converge(z complex128, maxIterations int) (last complex128, settled complex128, iteration int, ok bool) {
	for i := 1; i < maxIterations; i++ {
		z2 := z * z
		next := z - (z2*z-1)/(3*z2)
		d := next - z
		if real(d)*real(d)+imag(d)*imag(d) < ConvergenceEpsilon {
			return z, next, i, true
		}
		z = next
	}
	return z, z, maxIterations, false
}

// NewtonRoot colors a point by the cube root of unity its Newton orbit settles on.
func NewtonRoot(z complex128, maxIterations int) float64 {
	_, settled, _, ok := converge(z, maxIterations)
	if !ok {
		return 0
	}
	for i, root := range Roots {
		if cmplx.Abs(settled-root) < RootTolerance {
			return RootIndices[i]
		}
	}
	return 0
}

// RainbowNewtonRoot shares the convergence test of NewtonRoot. It returns 5 per iteration plus the
// angle of the last point as a fraction of a full turn in [0, 1), so each basin shades with speed
// and angle instead of using three colors.
func RainbowNewtonRoot(z complex128, maxIterations int) float64 {
	last, _, iteration, ok := converge(z, maxIterations)
	if !ok {
		return 0
	}
	turn := math.Mod(cmplx.Phase(last), 2*math.Pi)
	if turn < 0 {
		turn += 2 * math.Pi
	}
	return float64(iteration)*rainbowStep + turn/(2*math.Pi)
}
