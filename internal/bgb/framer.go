package bgb

import (
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
)

// Framer serializes reads and writes of fixed 8-byte BGB frames over a
// TCP connection, and tracks the peer's clock: the timestamp of the
// last packet received from it. Every write helper stamps the peer's
// current clock value into the outgoing frame — the "cheat perfect
// sync" trick BGB link partners use instead of real Game Boy timing.
//
// Modeled on the teacher's internal/net/codec.go ReadFrame/WriteFrame
// pair, generalized from a 2-byte length prefix to BGB's fixed 8-byte
// frame and extended with the peer-clock bookkeeping the BGB protocol
// requires.
type Framer struct {
	conn net.Conn

	writeMu sync.Mutex

	peerClock atomic.Uint32
}

// NewFramer wraps conn for BGB frame I/O.
func NewFramer(conn net.Conn) *Framer {
	return &Framer{conn: conn}
}

// ReadPacket blocks for the next 8-byte frame. A closed connection or
// short read is reported as ErrEndOfStream.
func (f *Framer) ReadPacket() (Packet, error) {
	var buf [PacketSize]byte
	if _, err := io.ReadFull(f.conn, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Packet{}, ErrEndOfStream
		}
		return Packet{}, err
	}
	return DecodePacket(buf[:])
}

// PeerClock returns the timestamp of the most recent packet observed
// from the peer.
func (f *Framer) PeerClock() uint32 {
	return f.peerClock.Load()
}

// UpdatePeerClock records ts as the peer's current clock. The
// connection dispatcher calls this immediately after reading every
// inbound packet, before any response is written, so replies always
// echo the latest timestamp seen.
func (f *Framer) UpdatePeerClock(ts uint32) {
	f.peerClock.Store(ts)
}

// writePacket serializes p, overwriting its Timestamp with the current
// peer clock, and writes the frame under the write lock.
func (f *Framer) writePacket(p Packet) error {
	p.Timestamp = f.peerClock.Load()
	buf := p.Encode()

	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	_, err := f.conn.Write(buf[:])
	return err
}

// WriteVersion sends this server's VERSION packet (1, 4, 0).
func (f *Framer) WriteVersion() error {
	return f.writePacket(Packet{
		Kind: KindVersion,
		B2:   protocolVersion[0],
		B3:   protocolVersion[1],
		B4:   protocolVersion[2],
	})
}

// WriteStatusRunning replies to a STATUS packet reporting "running, not
// paused, no reconnect support" (b2 bit 0 set, others clear).
func (f *Framer) WriteStatusRunning() error {
	return f.writePacket(Packet{Kind: KindStatus, B2: 1})
}

// WriteSlave emits b as an SIO_SLAVE transfer byte — this server's
// fixed role is to act as the peer of a BGB instance driving the link
// as master (original_source/bgb_link_server.py wires its single
// master_data_task_fn to write_slave; no production user of this
// spoofer has been observed running BGB as slave).
func (f *Framer) WriteSlave(b byte) error {
	return f.writePacket(Packet{Kind: KindSIOSlave, B2: b, B3: controlByteSlave})
}

// WriteMaster emits b as an SIO_MASTER transfer byte. Provided for
// parity with the link framer's full operation set; unused by
// Connection, which always answers as SIO_SLAVE (see WriteSlave).
func (f *Framer) WriteMaster(b byte) error {
	return f.writePacket(Packet{Kind: KindSIOMaster, B2: b, B3: controlByteMaster})
}

// WriteSync3 echoes a SYNC3 packet's payload back unchanged, per the
// BGB protocol's "just echo it" contract for that packet kind.
func (f *Framer) WriteSync3(in Packet) error {
	return f.writePacket(Packet{Kind: KindSync3, B2: in.B2, B3: in.B3, B4: in.B4})
}
