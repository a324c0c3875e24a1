// Package bgb implements the BGB emulator's TCP link-cable protocol:
// fixed 8-byte packet framing, the client-initiated version handshake,
// and the per-connection dispatch of control packets versus raw SIO
// transfer bytes. See https://bgb.bircd.org/bgblink.html.
package bgb

import (
	"encoding/binary"
	"fmt"
)

// PacketSize is the fixed wire size of a BGB packet: type, b2, b3, b4,
// and a little-endian 32-bit timestamp.
const PacketSize = 8

// Kind identifies a BGB packet's purpose. MASTER and SYNC1 share the
// wire value 104; SLAVE and SYNC2 share 105 — both pairs are kept as a
// single enum value each (spec §9) since this implementation always
// treats 104/105 uniformly as an SIO transfer.
type Kind byte

const (
	KindVersion        Kind = 1
	KindJoypad         Kind = 101
	KindSIOMaster      Kind = 104 // aka SYNC1
	KindSIOSlave       Kind = 105 // aka SYNC2
	KindSync3          Kind = 106
	KindStatus         Kind = 108
	KindWantDisconnect Kind = 109
)

func (k Kind) String() string {
	switch k {
	case KindVersion:
		return "VERSION"
	case KindJoypad:
		return "JOYPAD"
	case KindSIOMaster:
		return "SIO_MASTER"
	case KindSIOSlave:
		return "SIO_SLAVE"
	case KindSync3:
		return "SYNC3"
	case KindStatus:
		return "STATUS"
	case KindWantDisconnect:
		return "WANT_DISCONNECT"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// outbound control bytes stamped into b3 by the write-side helpers.
const (
	controlByteMaster = 0x81
	controlByteSlave  = 0x80
)

// protocolVersion is the only (major, minor, patch) tuple this server
// accepts or ever sends (spec §4.3).
var protocolVersion = [3]byte{1, 4, 0}

// Packet is one 8-byte BGB link-cable frame.
type Packet struct {
	Kind      Kind
	B2        byte
	B3        byte
	B4        byte
	Timestamp uint32
}

// Encode renders p as its 8-byte wire form: type, b2, b3, b4,
// timestamp (little-endian).
func (p Packet) Encode() [PacketSize]byte {
	var buf [PacketSize]byte
	buf[0] = byte(p.Kind)
	buf[1] = p.B2
	buf[2] = p.B3
	buf[3] = p.B4
	binary.LittleEndian.PutUint32(buf[4:], p.Timestamp)
	return buf
}

// DecodePacket parses an 8-byte BGB frame.
func DecodePacket(buf []byte) (Packet, error) {
	if len(buf) != PacketSize {
		return Packet{}, fmt.Errorf("bgb: packet must be %d bytes, got %d", PacketSize, len(buf))
	}
	return Packet{
		Kind:      Kind(buf[0]),
		B2:        buf[1],
		B3:        buf[2],
		B4:        buf[3],
		Timestamp: binary.LittleEndian.Uint32(buf[4:]),
	}, nil
}

// isSIOTransfer reports whether k carries one SIO byte of in-game
// serial data (spec: MASTER/SLAVE, values 104/105).
func (k Kind) isSIOTransfer() bool {
	return k == KindSIOMaster || k == KindSIOSlave
}
