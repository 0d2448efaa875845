package rpc

import (
	"FractalRasterizer/coordinator"
	"encoding/binary"
	"fmt"
)

// Operations a host sends as JSON text messages. Render and Frame are answered with a binary
// frame message, every other operation with a Reply.
const (
	OpSelect    = "select"
	OpView      = "view"
	OpQuality   = "quality"
	OpParameter = "parameter"
	OpRotation  = "rotation"
	OpRender    = "render"
	OpFrame     = "frame"
)

// frameHeader is width and height as uint32 followed by the render count as uint64.
const frameHeader = 16

// MaxFrameBytes is the largest encoded frame a client accepts.
const MaxFrameBytes = frameHeader + coordinator.MaxWidth*coordinator.MaxHeight*4

type Request struct {
	Op      string  `json:"op"`
	Fractal int     `json:"fractal,omitempty"`
	CenterX float64 `json:"centerX,omitempty"`
	CenterY float64 `json:"centerY,omitempty"`
	Zoom    float64 `json:"zoom,omitempty"`
	High    bool    `json:"high,omitempty"`
	Real    float64 `json:"real,omitempty"`
	Imag    float64 `json:"imag,omitempty"`
}

type Reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// EncodeFrame serializes a frame as its header followed by every pixel as a big endian uint32.
func EncodeFrame(frame coordinator.Frame) []byte {
	data := make([]byte, frameHeader+4*len(frame.Pixels))
	binary.BigEndian.PutUint32(data[0:], uint32(frame.Width))
	binary.BigEndian.PutUint32(data[4:], uint32(frame.Height))
	binary.BigEndian.PutUint64(data[8:], frame.Render)
	for i, p := range frame.Pixels {
		binary.BigEndian.PutUint32(data[frameHeader+4*i:], p)
	}
	return data
}

func DecodeFrame(data []byte) (coordinator.Frame, error) {
	if len(data) < frameHeader {
		return coordinator.Frame{}, fmt.Errorf("frame too short: %d bytes", len(data))
	}
	frame := coordinator.Frame{
		Width:  int(binary.BigEndian.Uint32(data[0:])),
		Height: int(binary.BigEndian.Uint32(data[4:])),
		Render: binary.BigEndian.Uint64(data[8:]),
	}
	if want := frameHeader + 4*frame.Width*frame.Height; len(data) != want {
		return coordinator.Frame{}, fmt.Errorf("frame %dx%d needs %d bytes, got %d", frame.Width, frame.Height, want, len(data))
	}
	frame.Pixels = make([]uint32, frame.Width*frame.Height)
	for i := range frame.Pixels {
		frame.Pixels[i] = binary.BigEndian.Uint32(data[frameHeader+4*i:])
	}
	return frame, nil
}
