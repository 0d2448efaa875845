package rpc

import (
	"FractalRasterizer/coordinator"
	"context"
	"errors"
		"github.com/BrugadaSyndrome/bslogger"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"net"
	"net/http"
	"time"
)

// Server exposes a coordinator to remote hosts over websocket. Every connection drives the same
// coordinator, so render passes from different hosts are serialized.
type Server struct {
	address     string
	cancel      context.CancelFunc
	coordinator *coordinator.Coordinator
	ctx         context.Context
	listener    net.Listener
	mux         *http.ServeMux
	server      *http.Server
	service     *CoordinatorService

	Logger bslogger.Logger
	Name   string
}

func NewServer(c *coordinator.Coordinator, address string, name string) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		address:     address,
		cancel:      cancel,
		coordinator: c,
		ctx:         ctx,
		mux:         http.NewServeMux(),
		service:     NewCoordinatorService(c),
		Logger:      bslogger.NewLogger(name, bslogger.Normal, nil),
		Name:        name,
	}
	s.mux.HandleFunc("/ws", s.serveWebsocket)
	return s
}

// Handler returns the http handler serving the websocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Run() error {
	var err error
	s.listener, err = net.Listen("tcp", s.address)
	if err != nil {
		s.Logger.Errorf("Listening at address %s", s.address)
		return err
	}

	s.server = &http.Server{Handler: s.mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := s.server.Serve(s.listener); !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Errorf("Error serving at address %s - %s", s.address, err)
		}
	}()

	s.Logger.Infof("Running server at ws://%s/ws", s.address)
	return nil
}

// Stop closes the listener and every open websocket connection.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(context.Background()); err != nil {
		s.Logger.Errorf("Shutting down server at address %s", s.address)
		return err
	}
	s.Logger.Infof("Shut down server at address %s", s.address)
	return nil
}

func (s *Server) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.Logger.Warningf("Accepting websocket from %s - %s", r.RemoteAddr, err)
		return
	}
	defer conn.CloseNow()

	s.Logger.Infof("Host connected from %s", r.RemoteAddr)
	err = s.handle(s.ctx, conn)
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		s.Logger.Infof("Host at %s disconnected", r.RemoteAddr)
		return
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		s.Logger.Warningf("Host at %s dropped - %s", r.RemoteAddr, err)
		conn.Close(websocket.StatusInternalError, err.Error())
		return
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

// handle answers requests from one host until it disconnects.
func (s *Server) handle(ctx context.Context, conn *websocket.Conn) error {
	for {
		var request Request
		if err := wsjson.Read(ctx, conn, &request); err != nil {
			return err
		}

		switch request.Op {
		case OpRender:
			s.coordinator.Render()
			fallthrough
		case OpFrame:
			if err := s.writeFrame(ctx, conn); err != nil {
				return err
			}
		default:
			if err := wsjson.Write(ctx, conn, s.service.apply(request)); err != nil {
				return err
			}
		}
	}
}

func (s *Server) writeFrame(ctx context.Context, conn *websocket.Conn) error {
	var data []byte
	s.coordinator.Inspect(func(frame coordinator.Frame) {
		data = EncodeFrame(frame)
	})
	return conn.Write(ctx, websocket.MessageBinary, data)
}
