package palette

import (
	"image/color"
	"math"
)

const (
	// Interior is the packed color of points that never escape: opaque black.
	Interior uint32 = 0xFF000000

	hueStep    = 15.0
	saturation = 0.9
	valueDepth = 0.1
	valueFreq  = 0.015
)

// Color maps a kernel index onto a packed 0xAARRGGBB value. The alpha byte is always 0xFF.
// Index 0 is the interior marker and maps to Interior.
func Color(index float64) uint32 {
	if index == 0 {
		return Interior
	}
	hue := math.Mod(index*hueStep, 360)
	if hue < 0 {
		hue += 360
	}
	value := 1 - valueDepth*math.Cos(index*valueFreq)
	r, g, b := HSVToRGB(hue, saturation, value)
	return Pack(r, g, b)
}

// HSVToRGB converts hue in degrees [0, 360) with saturation and value in [0, 1] to 8-bit channels.
// https://en.wikipedia.org/wiki/HSL_and_HSV#HSV_to_RGB
func HSVToRGB(h, s, v float64) (r, g, b uint8) {
	c := v * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	m := v - c

	var rf, gf, bf float64
	switch int(hp) {
	case 0:
		rf, gf, bf = c, x, 0
	case 1:
		rf, gf, bf = x, c, 0
	case 2:
		rf, gf, bf = 0, c, x
	case 3:
		rf, gf, bf = 0, x, c
	case 4:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}
	return channel(rf + m), channel(gf + m), channel(bf + m)
}

func channel(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f * 255)
}

// Pack builds an opaque packed color from its channels.
func Pack(r, g, b uint8) uint32 {
	return 0xFF<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits a packed color into an image/color value.
func Unpack(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: uint8(c >> 24)}
}
