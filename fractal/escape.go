package fractal

import "math"

const (
	// Bailout is the squared magnitude an orbit must exceed to count as escaped.
	Bailout = 16.0
	// PhoenixP weights the previous orbit value in the Phoenix recurrence.
	PhoenixP = -0.5
)

var mathLog4 = math.Log(4)

// smooth renormalizes the escape iteration so neighbouring points blend instead of banding.
// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Continuous_(smooth)_coloring
func smooth(iteration int, norm float64) float64 {
	return float64(iteration) + 1 - math.Log(math.Log(norm)/2)/mathLog4
}

// MandelbrotEscape iterates z = z^2 + c with c the sample point. The orbit starts at z1 = c, the
// value the first step from z0 = 0 produces, so iteration 1 is the first one that can escape.
// Iterations run from 1 up to, but not including, maxIterations.
func MandelbrotEscape(c complex128, maxIterations int) float64 {
	cx, cy := real(c), imag(c)
	x, y := cx, cy
	for i := 1; i < maxIterations; i++ {
		x, y = x*x-y*y+cx, 2*x*y+cy
		if norm := x*x + y*y; norm > Bailout {
			return smooth(i, norm)
		}
	}
	return 0
}

// JuliaEscape iterates z = z^2 + c starting from the sample point with c fixed for the frame. The
// sample point itself is tested on iteration 1.
func JuliaEscape(z complex128, c complex128, maxIterations int) float64 {
	cx, cy := real(c), imag(c)
	x, y := real(z), imag(z)
	for i := 1; i < maxIterations; i++ {
		if norm := x*x + y*y; norm > Bailout {
			return smooth(i, norm)
		}
		x, y = x*x-y*y+cx, 2*x*y+cy
	}
	return 0
}

// BurningShipEscape folds both components into the first quadrant before squaring.
func BurningShipEscape(c complex128, maxIterations int) float64 {
	cx, cy := real(c), imag(c)
	x, y := cx, cy
	for i := 1; i < maxIterations; i++ {
		ax, ay := math.Abs(x), math.Abs(y)
		x, y = ax*ax-ay*ay+cx, 2*ax*ay+cy
		if norm := x*x + y*y; norm > Bailout {
			return smooth(i, norm)
		}
	}
	return 0
}

// TricornEscape squares the conjugate of z, which flips the sign of the cross term.
func TricornEscape(c complex128, maxIterations int) float64 {
	cx, cy := real(c), imag(c)
	x, y := cx, cy
	for i := 1; i < maxIterations; i++ {
		x, y = x*x-y*y+cx, -2*x*y+cy
		if norm := x*x + y*y; norm > Bailout {
			return smooth(i, norm)
		}
	}
	return 0
}

// CelticEscape takes the absolute value of the real part of z^2 + c after each step.
func CelticEscape(c complex128, maxIterations int) float64 {
	cx, cy := real(c), imag(c)
	x, y := math.Abs(cx), cy
	for i := 1; i < maxIterations; i++ {
		x, y = math.Abs(x*x-y*y+cx), 2*x*y+cy
		if norm := x*x + y*y; norm > Bailout {
			return smooth(i, norm)
		}
	}
	return 0
}

// PhoenixEscape runs the second order recurrence z' = z^2 + c + p*zPrev from the sample point with
// zPrev starting at 0. Like JuliaEscape it tests the sample point first.
func PhoenixEscape(z complex128, c complex128, maxIterations int) float64 {
	cx, cy := real(c), imag(c)
	x, y := real(z), imag(z)
	px, py := 0.0, 0.0
	for i := 1; i < maxIterations; i++ {
		if norm := x*x + y*y; norm > Bailout {
			return smooth(i, norm)
		}
		nx := x*x - y*y + cx + PhoenixP*px
		ny := 2*x*y + cy + PhoenixP*py
		px, py = x, y
		x, y = nx, ny
	}
	return 0
}
