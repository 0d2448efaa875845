package rpc

import (
	"FractalRasterizer/coordinator"
	"context"
	"strings"
)

// TcpScheme prefixes server addresses that are reached over net/rpc instead of websocket.
const TcpScheme = "tcp://"

// Host is the control surface of a remote coordinator, whichever transport reaches it.
type Host interface {
	Connect(ctx context.Context) error
	SelectFractal(ctx context.Context, id int) error
	SetView(ctx context.Context, centerX float64, centerY float64, zoom float64) error
	SetQuality(ctx context.Context, high bool) error
	SetParameter(ctx context.Context, parameter complex128) error
	SetRotation(ctx context.Context, rotation complex128) error
	Render(ctx context.Context) (coordinator.Frame, error)
	Frame(ctx context.Context) (coordinator.Frame, error)
	Disconnect() error
}

// NewHost picks the client for a server address: tcp://host:port uses TcpClient, anything else is
// treated as a websocket url.
func NewHost(serverAddress string, name string) Host {
	if strings.HasPrefix(serverAddress, TcpScheme) {
		return NewTcpClient(strings.TrimPrefix(serverAddress, TcpScheme), name)
	}
	return NewClient(serverAddress, name)
}
