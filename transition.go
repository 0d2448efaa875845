package main

import (
	"FractalRasterizer/misc"
	"FractalRasterizer/task"
	"math"
)

// transitionSettings describes a zoom from one view to another, rendered as a run of frames.
type transitionSettings struct {
	EndX               float64
	EndY               float64
	FrameCount         uint
	MagnificationStart float64
	MagnificationEnd   float64
	MagnificationStep  float64
	StartX             float64
	StartY             float64
}

func (ts *transitionSettings) Verify() error {
	if ts.StartX < -4 || ts.StartX > 4 {
		ts.StartX = 0
	}
	if ts.StartY < -4 || ts.StartY > 4 {
		ts.StartY = 0
	}
	if ts.EndX < -4 || ts.EndX > 4 {
		ts.EndX = 0
	}
	if ts.EndY < -4 || ts.EndY > 4 {
		ts.EndY = 0
	}
	if ts.MagnificationEnd <= 0 {
		ts.MagnificationEnd = 8
	}
	if ts.MagnificationStart <= 0 {
		ts.MagnificationStart = 1
	}
	if ts.MagnificationStep <= 1 {
		ts.MagnificationStep = 1.1
	}
	if ts.FrameCount == 0 {
		ts.FrameCount = ts.frames()
	}
	return nil
}

// frames is the number of MagnificationStep sized steps between the start and end zoom.
//
// i.e.
// magnification_start * magnification_step^n = magnification_end
// n = |log(magnification_end / magnification_start)| / log(magnification_step)
func (ts *transitionSettings) frames() uint {
	n := math.Ceil(math.Abs(math.Log(ts.MagnificationEnd/ts.MagnificationStart)) / math.Log(ts.MagnificationStep))
	if !(n >= 1) {
		return 1
	}
	return uint(n)
}

// view returns the view of frame number frame, counting from 1 to FrameCount. Zooming in eases
// out of the start position, zooming out eases into the end position.
func (ts *transitionSettings) view(frame uint) task.View {
	t := 1.0
	if ts.FrameCount > 1 {
		t = float64(frame-1) / float64(ts.FrameCount-1)
	}

	ease := misc.EaseOutExpo
	if ts.MagnificationStart > ts.MagnificationEnd {
		ease = misc.EaseInExpo
	}
	return task.View{
		CenterX: misc.LerpFloat64(ts.StartX, ts.EndX, ease(t)),
		CenterY: misc.LerpFloat64(ts.StartY, ts.EndY, ease(t)),
		Zoom:    misc.LerpGeometric(ts.MagnificationStart, ts.MagnificationEnd, t),
	}
}
