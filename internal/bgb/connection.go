package bgb

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Guillem96/pokemon-trade-spoofer/internal/codec"
	"github.com/Guillem96/pokemon-trade-spoofer/internal/trade"
)

// Connection owns one accepted TCP socket: the BGB framing, the
// handshake, the per-kind control dispatch, and the trade state
// machine driven by the SIO byte stream.
//
// Grounded on the teacher's internal/net/session.go (per-connection
// goroutines, a close path that unblocks a blocking reader by closing
// the socket) and original_source/bgb_link_server.py's
// BGBLinkCableConnection, which runs one asyncio.TaskGroup per
// connection with a task per packet kind plus the SIO data task.
// golang.org/x/sync/errgroup is this codebase's TaskGroup: the first
// task to return an error cancels the group's context, which every
// other task observes at its next suspension point.
type Connection struct {
	id     uint64
	conn   net.Conn
	framer *Framer
	log    *zap.Logger

	controlQueueSize int
	sioQueueSize     int

	localParty *codec.Party
}

// NewConnection wraps an accepted socket. localParty is this side's
// roster; the trade machine mutates it in place as trades complete.
func NewConnection(id uint64, conn net.Conn, log *zap.Logger, controlQueueSize, sioQueueSize int, localParty *codec.Party) *Connection {
	return &Connection{
		id:               id,
		conn:             conn,
		framer:           NewFramer(conn),
		log:              log.With(zap.Uint64("conn_id", id), zap.String("remote", conn.RemoteAddr().String())),
		controlQueueSize: controlQueueSize,
		sioQueueSize:     sioQueueSize,
		localParty:       localParty,
	}
}

// Run drives the connection until the peer disconnects, the protocol
// is violated, or ctx is canceled. It always returns once the
// underlying socket is no longer usable.
func (c *Connection) Run(ctx context.Context) error {
	defer c.conn.Close()

	if err := c.framer.WriteVersion(); err != nil {
		return fmt.Errorf("bgb: send version: %w", err)
	}

	versionCh := make(chan Packet, c.controlQueueSize)
	sync3Ch := make(chan Packet, c.controlQueueSize)
	statusCh := make(chan Packet, c.controlQueueSize)
	disconnectCh := make(chan Packet, c.controlQueueSize)
	sioCh := make(chan byte, c.sioQueueSize)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.readLoop(gctx, versionCh, sync3Ch, statusCh, disconnectCh, sioCh)
	})
	g.Go(func() error { return c.handleVersion(gctx, versionCh) })
	g.Go(func() error { return c.handleSync3(gctx, sync3Ch) })
	g.Go(func() error { return c.handleStatus(gctx, statusCh) })
	g.Go(func() error { return c.handleWantDisconnect(gctx, disconnectCh) })
	g.Go(func() error { return c.runTrade(gctx, sioCh) })
	g.Go(func() error {
		// closing the socket is the only way to unblock readLoop's
		// blocking ReadPacket call once some other task fails or the
		// caller cancels ctx.
		<-gctx.Done()
		c.conn.Close()
		return nil
	})

	err := g.Wait()
	if errors.Is(err, ErrEndOfStream) {
		c.log.Debug("connection closed by peer")
		return nil
	}
	if err != nil {
		c.log.Warn("connection terminated", zap.Error(err))
	}
	return err
}

func (c *Connection) readLoop(ctx context.Context, versionCh, sync3Ch, statusCh, disconnectCh chan Packet, sioCh chan byte) error {
	for {
		p, err := c.framer.ReadPacket()
		if err != nil {
			return err
		}
		c.framer.UpdatePeerClock(p.Timestamp)

		switch {
		case p.Kind.isSIOTransfer():
			select {
			case sioCh <- p.B2:
			case <-ctx.Done():
				return ctx.Err()
			}
		case p.Kind == KindVersion:
			if err := sendOrDone(ctx, versionCh, p); err != nil {
				return err
			}
		case p.Kind == KindSync3:
			if err := sendOrDone(ctx, sync3Ch, p); err != nil {
				return err
			}
		case p.Kind == KindStatus:
			if err := sendOrDone(ctx, statusCh, p); err != nil {
				return err
			}
		case p.Kind == KindWantDisconnect:
			if err := sendOrDone(ctx, disconnectCh, p); err != nil {
				return err
			}
		case p.Kind == KindJoypad:
			// no game state to forward a joypad press into; dropped.
		default:
			c.log.Debug("ignoring unrecognized packet kind", zap.Uint8("kind", byte(p.Kind)))
		}
	}
}

func sendOrDone(ctx context.Context, ch chan<- Packet, p Packet) error {
	select {
	case ch <- p:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Connection) handleVersion(ctx context.Context, ch <-chan Packet) error {
	for {
		select {
		case p := <-ch:
			if [3]byte{p.B2, p.B3, p.B4} != protocolVersion {
				return fmt.Errorf("%w: peer sent %d.%d.%d", ErrUnsupportedVersion, p.B2, p.B3, p.B4)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Connection) handleSync3(ctx context.Context, ch <-chan Packet) error {
	for {
		select {
		case p := <-ch:
			if err := c.framer.WriteSync3(p); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Connection) handleStatus(ctx context.Context, ch <-chan Packet) error {
	for {
		select {
		case <-ch:
			if err := c.framer.WriteStatusRunning(); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Connection) handleWantDisconnect(ctx context.Context, ch <-chan Packet) error {
	for {
		select {
		case <-ch:
			c.log.Debug("peer requested disconnect")
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Connection) runTrade(ctx context.Context, sioCh chan byte) error {
	tc := &trade.Context{
		Queue:      trade.NewQueue(sioCh),
		Write:      func(ctx context.Context, b byte) error { return c.writeSIO(ctx, b) },
		Rand:       rand.New(rand.NewSource(int64(c.id))),
		LocalParty: c.localParty,
		Log: func(format string, args ...any) {
			c.log.Sugar().Debugf(format, args...)
		},
	}
	return trade.NewMachine(tc).Run(ctx)
}

func (c *Connection) writeSIO(ctx context.Context, b byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return c.framer.WriteSlave(b)
}
