package fractal

import "math"

const (
	// baseIterations is the loop bound every escape time family starts from.
	baseIterations uint8 = 255
	// zoomBoost is the number of extra iterations granted per doubling of zoom.
	zoomBoost = 32
	// convergentIterations bounds the Newton families at every zoom level.
	convergentIterations uint8 = 32
)

// MaxIterations returns the loop bound for the family at the given zoom. The bound is an 8-bit
// value: the zoom boost is added with saturation, so deep zooms stay capped at 255.
func (v Variant) MaxIterations(zoom float64) int {
	switch v {
	case Newton, RainbowNewton:
		return int(convergentIterations)
	case Julia:
		if zoom <= 1.0 {
			return int(baseIterations)
		}
	}
	return int(saturatingAdd(baseIterations, zoomIterations(zoom)))
}

// zoomIterations is floor(max(log2(zoom), 0) * 32). NaN and negative zooms contribute nothing.
func zoomIterations(zoom float64) float64 {
	boost := math.Log2(zoom)
	if !(boost > 0) {
		return 0
	}
	return math.Floor(boost * zoomBoost)
}

func saturatingAdd(base uint8, extra float64) uint8 {
	if extra >= float64(math.MaxUint8-base) {
		return math.MaxUint8
	}
	return base + uint8(extra)
}
