// Package rpcserver implements the accept loop and per-connection request
// demultiplexer: bind a TCP listener, spawn one goroutine per accepted
// connection, and on each connection read frames until EOF or a codec
// error, dispatching every Request to the shared registry.
package rpcserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/op/go-logging"
	uuid "github.com/satori/go.uuid"

	"github.com/erer1243/rpcquickly/dispatch"
	rpclogging "github.com/erer1243/rpcquickly/internal/logging"
	"github.com/erer1243/rpcquickly/wire"
)

// Server serves a *dispatch.Registry over TCP. Registration
// (dispatch.Add/AddInfer) is expected to happen entirely before ServeTCP
// is called; the registry is then treated as read-only.
type Server struct {
	registry *dispatch.Registry
	log      *logging.Logger
}

// NewServer returns a Server dispatching to registry. log may be nil, in
// which case a default stderr logger is used.
func NewServer(registry *dispatch.Registry, log *logging.Logger) *Server {
	if log == nil {
		log = rpclogging.Setup("rpcquickly", logging.INFO)
	}
	return &Server{registry: registry, log: log}
}

// ServeTCP binds 0.0.0.0:port and serves until ctx is cancelled or the
// listener fails. A listener failure (other than the cancellation-induced
// close) is fatal to the serve loop and is returned to the caller.
func (s *Server) ServeTCP(ctx context.Context, port int) error {
	listener, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", port))
	if err != nil {
		return fmt.Errorf("rpcserver: listen: %w", err)
	}

	// Cancelling ctx closes the listener, which unblocks Accept with an
	// error below and ends the loop.
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	s.log.Noticef("listening on %s", listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("rpcserver: accept: %w", err)
		}
		connID := uuid.NewV4().String()
		go s.handleConnection(ctx, conn, connID)
	}
}

// handleConnection reads frames sequentially until EOF or a codec error,
// dispatching each Request in arrival order and writing exactly one
// Response per Request before reading the next -- no pipelining, so
// responses on a connection stay in the order their requests arrived.
func (s *Server) handleConnection(ctx context.Context, conn net.Conn, connID string) {
	defer conn.Close()
	s.log.Infof("[%s] connection from %s", connID, conn.RemoteAddr())

	dec := wire.NewDecoder(conn)
	enc := wire.NewEncoder(conn)

	for {
		req, err := dec.DecodeRequest()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Infof("[%s] connection closed", connID)
			} else {
				s.log.Infof("[%s] connection error: %v", connID, err)
			}
			return
		}

		var resp wire.Response
		rpclogging.RecoverToLog(s.log, func() {
			resp = s.handleRequest(ctx, req)
		})

		if err := enc.EncodeResponse(resp); err != nil {
			s.log.Warningf("[%s] write response: %v", connID, err)
			return
		}
	}
}

func (s *Server) handleRequest(ctx context.Context, req wire.Request) wire.Response {
	switch req.Kind {
	case wire.RequestKindPing:
		return wire.PingResponse()
	case wire.RequestKindRpcFunctions:
		return wire.NewRpcFunctionsResponse(s.registry.RpcFunctions())
	case wire.RequestKindCall:
		if req.Call == nil {
			return wire.NewCallErrorResponse(&dispatch.DispatchError{NoSuchFunction: true})
		}
		result, dispatchErr := s.registry.Call(ctx, req.Call.Name, req.Call.Args)
		if dispatchErr != nil {
			return wire.NewCallErrorResponse(dispatchErr)
		}
		return wire.NewCallResultResponse(result)
	default:
		return wire.NewCallErrorResponse(&dispatch.DispatchError{NoSuchFunction: true})
	}
}
