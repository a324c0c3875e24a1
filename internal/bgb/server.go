package bgb

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Guillem96/pokemon-trade-spoofer/internal/codec"
)

// PartySource supplies the roster a new connection offers up for
// trade. Each call should return a fresh, independently mutable copy:
// Connection mutates its party in place as trades complete.
type PartySource func() (*codec.Party, error)

// Server accepts BGB link-cable connections and runs one Connection
// per socket. Grounded on the teacher's internal/net/server.go
// (atomic connection counter, listener ownership, graceful shutdown by
// closing the listener and waiting for in-flight connections).
type Server struct {
	listener net.Listener
	log      *zap.Logger

	controlQueueSize int
	sioQueueSize     int
	partySource      PartySource

	nextID atomic.Uint64
	wg     sync.WaitGroup
}

// NewServer binds addr and returns a Server ready to Serve.
func NewServer(addr string, log *zap.Logger, controlQueueSize, sioQueueSize int, partySource PartySource) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("bgb: listen on %s: %w", addr, err)
	}
	return &Server{
		listener:         ln,
		log:              log,
		controlQueueSize: controlQueueSize,
		sioQueueSize:     sioQueueSize,
		partySource:      partySource,
	}, nil
}

// Addr reports the bound listen address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until ctx is canceled or the listener is
// closed. It blocks until every accepted connection has finished.
func (s *Server) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.listener.Close()
	}()

	var acceptErr error
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				break
			}
			acceptErr = err
			break
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, conn)
		}()
	}

	s.wg.Wait()
	return acceptErr
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	id := s.nextID.Add(1)

	party, err := s.partySource()
	if err != nil {
		s.log.Error("failed to build party for new connection", zap.Error(err), zap.Uint64("conn_id", id))
		conn.Close()
		return
	}

	c := NewConnection(id, conn, s.log, s.controlQueueSize, s.sioQueueSize, party)
	s.log.Info("connection accepted", zap.Uint64("conn_id", id), zap.String("remote", conn.RemoteAddr().String()))
	_ = c.Run(ctx)
	s.log.Info("connection closed", zap.Uint64("conn_id", id))
}

// Close stops accepting new connections immediately.
func (s *Server) Close() error {
	return s.listener.Close()
}
