package trade

import "errors"

// ErrProtocolViolation marks an SIO byte sequence that cannot be
// explained by any defined state transition — e.g. reaching the
// transfer terminator without having first negotiated which slots are
// being traded.
var ErrProtocolViolation = errors.New("trade: protocol violation")
