package bgb

import "errors"

// ErrEndOfStream marks a clean peer disconnect: the socket closed (or
// returned a short read) while waiting for the next 8-byte frame.
var ErrEndOfStream = errors.New("bgb: end of stream")

// ErrUnsupportedVersion is returned when a peer's VERSION packet does
// not carry the (1, 4, 0) tuple this server speaks.
var ErrUnsupportedVersion = errors.New("bgb: unsupported protocol version")
