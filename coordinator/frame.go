package coordinator

import (
	"FractalRasterizer/palette"
	xdraw "golang.org/x/image/draw"
	"image"
)

// Frame is a rendered buffer of packed 0xAARRGGBB colors in row major order.
type Frame struct {
	Width  int
	Height int
	Pixels []uint32
	Render uint64
}

// At returns the packed color at (x, y), or 0 outside the frame.
func (f Frame) At(x int, y int) uint32 {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return 0
	}
	return f.Pixels[y*f.Width+x]
}

// Downsample keeps the top left pixel of every factor x factor block.
func (f Frame) Downsample(factor int) Frame {
	if factor <= 1 {
		return f
	}
	down := Frame{Width: f.Width / factor, Height: f.Height / factor, Render: f.Render}
	down.Pixels = make([]uint32, down.Width*down.Height)
	for y := 0; y < down.Height; y++ {
		for x := 0; x < down.Width; x++ {
			down.Pixels[y*down.Width+x] = f.At(x*factor, y*factor)
		}
	}
	return down
}

// RGBA converts the frame into an image that the image encoders accept.
func (f Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, palette.Unpack(f.Pixels[y*f.Width+x]))
		}
	}
	return img
}

// Thumbnail scales the frame to the given width, keeping its aspect ratio.
func (f Frame) Thumbnail(width int) *image.RGBA {
	if width <= 0 || f.Width == 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	height := f.Height * width / f.Width
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), f.RGBA(), image.Rect(0, 0, f.Width, f.Height), xdraw.Src, nil)
	return dst
}
