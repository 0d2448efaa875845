package rpc

import (
	"FractalRasterizer/coordinator"
	"context"
	"errors"
	"github.com/BrugadaSyndrome/multirpc"
)

// TcpClient drives a remote coordinator through a CoordinatorService served over net/rpc. Calls
// block until the server answers; ctx is only checked before each call.
type TcpClient struct {
	client multirpc.TcpClient
}

// NewTcpClient creates a client for the host:port of a multirpc tcp server.
func NewTcpClient(serverAddress string, name string) *TcpClient {
	return &TcpClient{client: multirpc.NewTcpClient(serverAddress, name)}
}

func (tc *TcpClient) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return tc.client.Connect()
}

func (tc *TcpClient) control(ctx context.Context, method string, request Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var reply Reply
	if err := tc.client.Call("CoordinatorService."+method, request, &reply); err != nil {
		return err
	}
	if !reply.OK {
		return errors.New(reply.Error)
	}
	return nil
}

func (tc *TcpClient) SelectFractal(ctx context.Context, id int) error {
	return tc.control(ctx, "SelectFractal", Request{Fractal: id})
}

func (tc *TcpClient) SetView(ctx context.Context, centerX float64, centerY float64, zoom float64) error {
	return tc.control(ctx, "SetView", Request{CenterX: centerX, CenterY: centerY, Zoom: zoom})
}

func (tc *TcpClient) SetQuality(ctx context.Context, high bool) error {
	return tc.control(ctx, "SetQuality", Request{High: high})
}

func (tc *TcpClient) SetParameter(ctx context.Context, parameter complex128) error {
	return tc.control(ctx, "SetParameter", Request{Real: real(parameter), Imag: imag(parameter)})
}

func (tc *TcpClient) SetRotation(ctx context.Context, rotation complex128) error {
	return tc.control(ctx, "SetRotation", Request{Real: real(rotation), Imag: imag(rotation)})
}

func (tc *TcpClient) Render(ctx context.Context) (coordinator.Frame, error) {
	return tc.frame(ctx, "Render")
}

func (tc *TcpClient) Frame(ctx context.Context) (coordinator.Frame, error) {
	return tc.frame(ctx, "Frame")
}

func (tc *TcpClient) frame(ctx context.Context, method string) (coordinator.Frame, error) {
	if err := ctx.Err(); err != nil {
		return coordinator.Frame{}, err
	}
	var frame coordinator.Frame
	err := tc.client.Call("CoordinatorService."+method, Request{}, &frame)
	return frame, err
}

func (tc *TcpClient) Disconnect() error {
	return tc.client.Disconnect()
}
