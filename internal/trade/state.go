package trade

import (
	"context"
	"time"

	"github.com/Guillem96/pokemon-trade-spoofer/internal/codec"
)

// waitWhilePollInterval is how long WaitWhile sleeps between peeks
// when the queue is momentarily empty, mirroring
// original_source/trading_state_machine.py's WaitWhileState busy-loop
// (a bare `await asyncio.sleep(0)` there; a short fixed sleep here
// keeps an idle connection from spinning a CPU core).
const waitWhilePollInterval = time.Millisecond

// State is one node of the trade protocol's state machine. Run
// consumes and/or emits at most what one protocol step requires and
// returns the next state (itself, to remain). Modeled on
// original_source/trading_state_machine.py's abstract State.run, which
// returns Optional[State]; Go's nil-interface return serves the same
// "no transition" case as a non-nil same-state return, so Run always
// returns a concrete next state instead.
type State interface {
	Run(ctx context.Context, tc *Context) (State, error)
	String() string
}

// NotConnected is the initial state: the link partners haven't yet
// finished the 0x01/0x02/0x61 connection handshake.
type NotConnected struct{}

func (NotConnected) String() string { return "NotConnected" }

func (s NotConnected) Run(ctx context.Context, tc *Context) (State, error) {
	b, err := tc.Queue.Get(ctx)
	if err != nil {
		return nil, err
	}
	switch b {
	case master:
		if err := tc.Write(ctx, slave); err != nil {
			return nil, err
		}
	case slave:
		if err := tc.Write(ctx, master); err != nil {
			return nil, err
		}
	case connected:
		if err := tc.Write(ctx, connected); err != nil {
			return nil, err
		}
		return WaitFor{Value: inTradeRoom, Next: InTradeRoom{}}, nil
	default:
		if err := tc.Write(ctx, b); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// InTradeRoom is reached once both sides have entered the trade room
// menu. It waits for the transfer terminator before the random seed
// exchange begins.
type InTradeRoom struct{}

func (InTradeRoom) String() string { return "InTradeRoom" }

func (InTradeRoom) Run(context.Context, *Context) (State, error) {
	return WaitFor{Value: terminator, Next: SendingRandomSeed{}}, nil
}

// SendingRandomSeed waits out the random-seed exchange preceding the
// team interchange; the seed bytes themselves are never inspected.
type SendingRandomSeed struct{}

func (SendingRandomSeed) String() string { return "SendingRandomSeed" }

func (SendingRandomSeed) Run(context.Context, *Context) (State, error) {
	return WaitFor{Value: terminator, Next: InterchangePokemonTeams{}}, nil
}

// InterchangePokemonTeams performs the full 441-byte, byte-for-byte
// interleaved party exchange: every byte this side sends of its own
// party is paired with one byte received of the peer's.
type InterchangePokemonTeams struct{}

func (InterchangePokemonTeams) String() string { return "InterchangePokemonTeams" }

func (InterchangePokemonTeams) Run(ctx context.Context, tc *Context) (State, error) {
	mine, err := codec.EncodeParty(*tc.LocalParty)
	if err != nil {
		return nil, err
	}

	theirs := make([]byte, len(mine))
	for i, b := range mine {
		in, err := tc.Queue.Get(ctx)
		if err != nil {
			return nil, err
		}
		if err := tc.Write(ctx, b); err != nil {
			return nil, err
		}
		theirs[i] = in
	}

	other, err := codec.DecodeParty(theirs)
	if err != nil {
		return nil, err
	}
	tc.OtherParty = &other

	return WaitWhile{Value: terminator, Next: SelectingPokemon{}}, nil
}

// SelectingPokemon handles the peer either offering a slot
// (firstPokemon..lastPokemon), leaving the selection screen
// (exitSelection), or idly echoing any other menu-navigation byte.
type SelectingPokemon struct{}

func (SelectingPokemon) String() string { return "SelectingPokemon" }

func (s SelectingPokemon) Run(ctx context.Context, tc *Context) (State, error) {
	b, err := tc.Queue.Get(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case b >= firstPokemon && b <= lastPokemon && int(b-firstPokemon) < len(tc.LocalParty.Pokemon):
		mySlot := tc.Rand.Intn(len(tc.LocalParty.Pokemon))
		theirSlot := int(b - firstPokemon)
		tc.MeSends = &mySlot
		tc.OtherSends = &theirSlot

		echo := byte(mySlot) + firstPokemon
		if err := tc.Write(ctx, echo); err != nil {
			return nil, err
		}
		return WaitWhile{Value: b, Echo: &echo, Next: WaitingTradeConfirm{}}, nil

	case b == exitSelection:
		if err := tc.Write(ctx, exitSelection); err != nil {
			return nil, err
		}
		return WaitWhile{Value: b, Next: InTradeRoom{}}, nil

	default:
		if err := tc.Write(ctx, b); err != nil {
			return nil, err
		}
		return s, nil
	}
}

// WaitingTradeConfirm waits for the peer to accept or cancel the
// proposed trade.
type WaitingTradeConfirm struct{}

func (WaitingTradeConfirm) String() string { return "WaitingTradeConfirm" }

func (s WaitingTradeConfirm) Run(ctx context.Context, tc *Context) (State, error) {
	b, err := tc.Queue.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := tc.Write(ctx, b); err != nil {
		return nil, err
	}

	switch b {
	case cancelTrade:
		tc.MeSends = nil
		tc.OtherSends = nil
		echo := byte(cancelTrade)
		return WaitWhile{Value: b, Echo: &echo, Next: SelectingPokemon{}}, nil
	case confirmTrade:
		echo := byte(confirmTrade)
		return WaitWhile{Value: b, Echo: &echo, Next: TradingPokemon{}}, nil
	default:
		return s, nil
	}
}

// TradingPokemon waits for the transfer terminator and then, once it
// arrives, performs the actual slot swap: the offered local Pokémon,
// its nickname, and its OT name are replaced with the peer's.
type TradingPokemon struct{}

func (TradingPokemon) String() string { return "TradingPokemon" }

func (s TradingPokemon) Run(ctx context.Context, tc *Context) (State, error) {
	b, err := tc.Queue.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := tc.Write(ctx, b); err != nil {
		return nil, err
	}
	if b != terminator {
		return s, nil
	}

	if tc.MeSends == nil || tc.OtherSends == nil || tc.OtherParty == nil {
		return nil, ErrProtocolViolation
	}

	me, other := *tc.MeSends, *tc.OtherSends
	tc.LocalParty.Pokemon[me] = tc.OtherParty.Pokemon[other]
	tc.LocalParty.Nicknames[me] = tc.OtherParty.Nicknames[other]
	tc.LocalParty.OTNames[me] = tc.OtherParty.OTNames[other]

	tc.logf("traded local slot %d for peer slot %d (species %d)", me, other, tc.LocalParty.Pokemon[me].DexID)

	tc.MeSends = nil
	tc.OtherSends = nil
	tc.OtherParty = nil

	return WaitWhile{Value: terminator, Next: SendingRandomSeed{}}, nil
}

// WaitFor blocks for Value, echoing every byte it reads (including
// Value itself). Once Value arrives it hands off to
// WaitWhile{Value, Echo, Next}, which drains any repeats of Value
// before Next runs. If
// Echo is set, every reply uses *Echo instead of the byte just read,
// matching original_source/trading_state_machine.py's
// WaitForState.echo_value.
type WaitFor struct {
	Value byte
	Echo  *byte
	Next  State
}

func (s WaitFor) String() string { return "WaitFor(" + next(s.Next) + ")" }

func (s WaitFor) Run(ctx context.Context, tc *Context) (State, error) {
	b, err := tc.Queue.Get(ctx)
	if err != nil {
		return nil, err
	}
	echo := b
	if s.Echo != nil {
		echo = *s.Echo
	}
	if err := tc.Write(ctx, echo); err != nil {
		return nil, err
	}
	if b == s.Value {
		return WaitWhile{Value: s.Value, Echo: s.Echo, Next: s.Next}, nil
	}
	return s, nil
}

// WaitWhile peeks (without consuming) the next byte. While it keeps
// matching Value, it is echoed and consumed and WaitWhile remains.
// Once a non-matching byte is peeked, it is echoed but left in the
// queue for Next to consume as its first input. If Echo is set, every
// reply uses *Echo instead of the peeked byte, matching
// original_source/trading_state_machine.py's WaitWhileState.echo_value
// — used so a peer polling with a repeated offer/cancel/confirm byte
// is answered with the chosen reply rather than its own byte bounced
// back.
type WaitWhile struct {
	Value byte
	Echo  *byte
	Next  State
}

func (s WaitWhile) String() string { return "WaitWhile(" + next(s.Next) + ")" }

func (s WaitWhile) Run(ctx context.Context, tc *Context) (State, error) {
	b, ok := tc.Queue.Peek()
	if !ok {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(waitWhilePollInterval):
			return s, nil
		}
	}

	echo := b
	if s.Echo != nil {
		echo = *s.Echo
	}
	if err := tc.Write(ctx, echo); err != nil {
		return nil, err
	}
	if b != s.Value {
		return s.Next, nil
	}
	tc.Queue.Consume()
	return s, nil
}

func next(s State) string {
	if s == nil {
		return "?"
	}
	return s.String()
}
