package rpc

import (
	"FractalRasterizer/coordinator"
	"fmt"
)

// CoordinatorService exposes a coordinator as a net/rpc object, served with multirpc.NewTcpServer.
// The websocket Server routes its control requests through the same service.
type CoordinatorService struct {
	coordinator *coordinator.Coordinator
}

func NewCoordinatorService(c *coordinator.Coordinator) *CoordinatorService {
	return &CoordinatorService{coordinator: c}
}

// apply routes a control request to the coordinator.
func (cs *CoordinatorService) apply(request Request) Reply {
	switch request.Op {
	case OpSelect:
		cs.coordinator.SelectFractal(request.Fractal)
	case OpView:
		cs.coordinator.SetView(request.CenterX, request.CenterY, request.Zoom)
	case OpQuality:
		cs.coordinator.SetQuality(request.High)
	case OpParameter:
		cs.coordinator.SetParameter(complex(request.Real, request.Imag))
	case OpRotation:
		cs.coordinator.SetRotation(complex(request.Real, request.Imag))
	default:
		return Reply{Error: fmt.Sprintf("unknown operation %q", request.Op)}
	}
	return Reply{OK: true}
}

func (cs *CoordinatorService) call(op string, request Request, reply *Reply) error {
	request.Op = op
	*reply = cs.apply(request)
	return nil
}

func (cs *CoordinatorService) SelectFractal(request Request, reply *Reply) error {
	return cs.call(OpSelect, request, reply)
}

func (cs *CoordinatorService) SetView(request Request, reply *Reply) error {
	return cs.call(OpView, request, reply)
}

func (cs *CoordinatorService) SetQuality(request Request, reply *Reply) error {
	return cs.call(OpQuality, request, reply)
}

func (cs *CoordinatorService) SetParameter(request Request, reply *Reply) error {
	return cs.call(OpParameter, request, reply)
}

func (cs *CoordinatorService) SetRotation(request Request, reply *Reply) error {
	return cs.call(OpRotation, request, reply)
}

// Render runs a pass and replies with a copy of the new frame.
func (cs *CoordinatorService) Render(request Request, frame *coordinator.Frame) error {
	cs.coordinator.Render()
	*frame = cs.coordinator.Frame()
	return nil
}

// Frame replies with a copy of the current frame without rendering.
func (cs *CoordinatorService) Frame(request Request, frame *coordinator.Frame) error {
	*frame = cs.coordinator.Frame()
	return nil
}
