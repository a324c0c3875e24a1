package dex

import (
	"fmt"
	"math/rand"

	"github.com/Guillem96/pokemon-trade-spoofer/internal/codec"
)

// generation is the move version-group ceiling this factory gates
// learnsets against (original_source/pokemon.py calls
// pokemon_by_id(..., gen=2) implicitly via _is_valid_move(move, level, 2)).
const generation = 2

// maxLearnedMoves is the number of level-up moves a fresh Pokémon is
// given, oldest-to-newest, capped at the battle record's four slots.
const maxLearnedMoves = 4

// PartyFactory builds a codec.Pokemon for a given species, the way a
// freshly caught or hatched Generation-II Pokémon would be stocked.
type PartyFactory interface {
	NewPokemon(dexID byte, level int, ivs codec.StatBlock, heldItemID byte, ot uint16) (codec.Pokemon, error)
}

// StaticFactory computes stats and moves from an in-memory species
// table, the Go equivalent of original_source/pokemon.py's
// pokemon_by_id (which instead queries the PokeAPI over HTTP per
// call). OT defaults to a random trainer ID when ot is zero, matching
// `OT or random.randint(1, 10000)`.
type StaticFactory struct {
	table *Table
	rand  *rand.Rand
}

// NewStaticFactory builds a StaticFactory backed by table. rnd may be
// nil, in which case a new source seeded from the process-global one
// is used.
func NewStaticFactory(table *Table, rnd *rand.Rand) *StaticFactory {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}
	return &StaticFactory{table: table, rand: rnd}
}

func (f *StaticFactory) NewPokemon(dexID byte, level int, ivs codec.StatBlock, heldItemID byte, ot uint16) (codec.Pokemon, error) {
	species, ok := f.table.Get(dexID)
	if !ok {
		return codec.Pokemon{}, fmt.Errorf("dex: unknown species id %d", dexID)
	}

	var moveIDs [4]byte
	var movePPs [4]codec.PP
	n := 0
	for _, m := range species.Moves {
		if n >= maxLearnedMoves {
			break
		}
		if m.VersionGroup > generation || m.LevelLearnedAt > level {
			continue
		}
		moveIDs[n] = m.MoveID
		movePPs[n] = codec.PP{CurrentPPs: 1} // pokemon_by_id seeds every move with exactly 1 PP
		n++
	}

	if ot == 0 {
		ot = uint16(1 + f.rand.Intn(10000))
	}

	stats := computeStats(species.BaseStats, ivs, level)

	return codec.Pokemon{
		DexID:      dexID,
		HeldItemID: heldItemID,
		MoveIDs:    moveIDs,
		OT:         ot,
		ExpPoints:  0,
		EVs:        codec.StatBlock{},
		IVs:        ivs,
		MovePPs:    movePPs,
		Friendship: 70,
		Pokerus:    0,
		CaughtData: 0,
		Level:      byte(level),
		StatusCond: 0,
		HP:         uint16(stats.HP),
		MaxHP:      uint16(stats.HP),
		Attack:     uint16(stats.Attack),
		Defense:    uint16(stats.Defense),
		Speed:      uint16(stats.Speed),
		SpecialAtk: uint16(stats.Special),
		SpecialDef: uint16(stats.Special),
	}, nil
}

// computeStats applies the Generation-II stat formula used by
// original_source/pokemon.py's pokemon_by_id: floor(((base+iv)*2*level)/100)
// plus level+10 for HP or +5 for every other stat.
func computeStats(base BaseStats, ivs codec.StatBlock, level int) BaseStats {
	calc := func(b, iv int, hp bool) int {
		v := ((b + iv) * 2 * level) / 100
		if hp {
			return v + level + 10
		}
		return v + 5
	}
	return BaseStats{
		HP:      calc(base.HP, ivs.HP, true),
		Attack:  calc(base.Attack, ivs.Attack, false),
		Defense: calc(base.Defense, ivs.Defense, false),
		Speed:   calc(base.Speed, ivs.Speed, false),
		Special: calc(base.Special, ivs.Special, false),
	}
}
