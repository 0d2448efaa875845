package fractal

import (
	"fmt"
	"strings"
)

const (
	Mandelbrot Variant = iota
	Julia
	BurningShip
	Newton
	RainbowNewton
	Tricorn
	Phoenix
	Celtic
)

// Variant selects one of the supported fractal families. The zero value is Mandelbrot.
type Variant int

var variantNames = []string{
	"Mandelbrot", "Julia", "BurningShip", "Newton", "RainbowNewton", "Tricorn", "Phoenix", "Celtic",
}

// Variants lists every supported family in id order.
func Variants() []Variant {
	variants := make([]Variant, len(variantNames))
	for i := range variants {
		variants[i] = Variant(i)
	}
	return variants
}

// VariantFromID maps a host supplied id onto a Variant. Ids outside the known range fall back to
// Mandelbrot and report ok as false.
func VariantFromID(id int) (variant Variant, ok bool) {
	if id < int(Mandelbrot) || id > int(Celtic) {
		return Mandelbrot, false
	}
	return Variant(id), true
}

// ParseVariant looks a family up by name, ignoring case, dashes and underscores.
func ParseVariant(name string) (Variant, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(name))
	for i, n := range variantNames {
		if strings.ToLower(n) == key {
			return Variant(i), nil
		}
	}
	return Mandelbrot, fmt.Errorf("unknown fractal %q", name)
}

func (v Variant) String() string {
	if v < Mandelbrot || v > Celtic {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// Parameterized reports whether the family reads the shared complex parameter.
func (v Variant) Parameterized() bool {
	return v == Julia || v == Phoenix
}

// Convergent reports whether the family colors by root convergence instead of escape time.
func (v Variant) Convergent() bool {
	return v == Newton || v == RainbowNewton
}
