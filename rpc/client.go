package rpc

import (
	"FractalRasterizer/coordinator"
	"context"
	"errors"
	"fmt"
	"github.com/BrugadaSyndrome/bslogger"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Client drives a remote coordinator through a Server.
type Client struct {
	conn          *websocket.Conn
	serverAddress string

	Logger bslogger.Logger
	Name   string
}

// NewClient creates a client for the websocket url of a Server, e.g. ws://host:51000/ws.
func NewClient(serverAddress string, name string) *Client {
	return &Client{
		serverAddress: serverAddress,
		Name:          name,
		Logger:        bslogger.NewLogger(name, bslogger.Normal, nil),
	}
}

func (c *Client) Connect(ctx context.Context) error {
	if c.conn != nil {
		c.Logger.Warningf("Already connected to server at address %s", c.serverAddress)
		return nil
	}

	conn, _, err := websocket.Dial(ctx, c.serverAddress, nil)
	if err != nil {
		c.Logger.Errorf("Connecting to server at address %s", c.serverAddress)
		return err
	}
	conn.SetReadLimit(MaxFrameBytes)
	c.conn = conn
	c.Logger.Infof("Connected to server at: %s", c.serverAddress)
	return nil
}

// Call sends a control request and waits for the server to acknowledge it.
func (c *Client) Call(ctx context.Context, request Request) error {
	if c.conn == nil {
		return fmt.Errorf("not connected to server at address %s : operation %s", c.serverAddress, request.Op)
	}
	if request.Op == OpRender || request.Op == OpFrame {
		return fmt.Errorf("operation %s answers with a frame, use Render or Frame", request.Op)
	}

	if err := wsjson.Write(ctx, c.conn, request); err != nil {
		return err
	}
	var reply Reply
	if err := wsjson.Read(ctx, c.conn, &reply); err != nil {
		return err
	}
	if !reply.OK {
		return errors.New(reply.Error)
	}
	c.Logger.Debugf("Calling server [%s] %s", c.serverAddress, request.Op)
	return nil
}

func (c *Client) SelectFractal(ctx context.Context, id int) error {
	return c.Call(ctx, Request{Op: OpSelect, Fractal: id})
}

func (c *Client) SetView(ctx context.Context, centerX float64, centerY float64, zoom float64) error {
	return c.Call(ctx, Request{Op: OpView, CenterX: centerX, CenterY: centerY, Zoom: zoom})
}

func (c *Client) SetQuality(ctx context.Context, high bool) error {
	return c.Call(ctx, Request{Op: OpQuality, High: high})
}

func (c *Client) SetParameter(ctx context.Context, parameter complex128) error {
	return c.Call(ctx, Request{Op: OpParameter, Real: real(parameter), Imag: imag(parameter)})
}

func (c *Client) SetRotation(ctx context.Context, rotation complex128) error {
	return c.Call(ctx, Request{Op: OpRotation, Real: real(rotation), Imag: imag(rotation)})
}

// Render runs a render pass on the server and returns the resulting frame.
func (c *Client) Render(ctx context.Context) (coordinator.Frame, error) {
	return c.frame(ctx, OpRender)
}

// Frame returns the server's current frame without rendering.
func (c *Client) Frame(ctx context.Context) (coordinator.Frame, error) {
	return c.frame(ctx, OpFrame)
}

func (c *Client) frame(ctx context.Context, op string) (coordinator.Frame, error) {
	if c.conn == nil {
		return coordinator.Frame{}, fmt.Errorf("not connected to server at address %s : operation %s", c.serverAddress, op)
	}
	if err := wsjson.Write(ctx, c.conn, Request{Op: op}); err != nil {
		return coordinator.Frame{}, err
	}
	typ, data, err := c.conn.Read(ctx)
	if err != nil {
		return coordinator.Frame{}, err
	}
	if typ != websocket.MessageBinary {
		return coordinator.Frame{}, fmt.Errorf("expected a binary frame message, got %v", typ)
	}
	return DecodeFrame(data)
}

func (c *Client) Disconnect() error {
	if c.conn == nil {
		return fmt.Errorf("already disconnected from server at address %s", c.serverAddress)
	}

	err := c.conn.Close(websocket.StatusNormalClosure, "")
	c.conn = nil
	if err != nil {
		c.Logger.Errorf("Disconnecting from server at address %s", c.serverAddress)
		return err
	}
	c.Logger.Infof("Disconnected from server at %s", c.serverAddress)
	return nil
}
