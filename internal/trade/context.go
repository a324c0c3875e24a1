package trade

import (
	"context"
	"math/rand"

	"github.com/Guillem96/pokemon-trade-spoofer/internal/codec"
)

// Magic bytes the Generation-II trade protocol exchanges over the SIO
// link (original_source/trading_state_machine.py).
const (
	master        = 0x01
	slave         = 0x02
	connected     = 0x61
	terminator    = 0xFD
	inTradeRoom   = 0xD1
	firstPokemon  = 0x70
	lastPokemon   = 0x75
	exitSelection = 0x7F
	cancelTrade   = 0x71
	confirmTrade  = 0x72
)

// Writer emits one SIO byte to the peer.
type Writer func(ctx context.Context, b byte) error

// Context holds everything a State needs to run one step: the inbound
// byte queue, the outbound writer, this side's party (mutated in
// place when a trade completes), the most recently decoded copy of
// the peer's party, and the pending slot choice on each side once a
// trade has been proposed.
type Context struct {
	Queue *Queue
	Write Writer
	Rand  *rand.Rand
	Log   func(format string, args ...any)

	LocalParty *codec.Party
	OtherParty *codec.Party

	MeSends    *int
	OtherSends *int
}

func (tc *Context) logf(format string, args ...any) {
	if tc.Log != nil {
		tc.Log(format, args...)
	}
}
