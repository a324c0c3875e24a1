package dex

import (
	"math/rand"
	"strings"

	"github.com/Guillem96/pokemon-trade-spoofer/internal/codec"
)

// RandomIVs rolls a fresh set of 0..15 IVs the way a wild encounter
// would, excluding HP (never stored on the wire — see codec.Pokemon).
func RandomIVs(rnd *rand.Rand) codec.StatBlock {
	roll := func() int { return rnd.Intn(16) }
	return codec.StatBlock{Attack: roll(), Defense: roll(), Speed: roll(), Special: roll()}
}

// NewScaffoldParty builds a ready-to-trade Party from a list of
// species IDs, used to seed a server instance that isn't wired to a
// richer party source. Nicknames default to the species name
// (truncated/upper-cased to fit the 10-glyph pokestr limit); every
// slot's OT name is trainerName.
func NewScaffoldParty(factory PartyFactory, table *Table, trainerName string, dexIDs []byte, level int, rnd *rand.Rand) (codec.Party, error) {
	party := codec.Party{TrainerName: trainerName}
	for _, id := range dexIDs {
		ivs := RandomIVs(rnd)
		p, err := factory.NewPokemon(id, level, ivs, 0, 0)
		if err != nil {
			return codec.Party{}, err
		}
		party.Pokemon = append(party.Pokemon, p)
		party.OTNames = append(party.OTNames, trainerName)

		nickname := trainerName
		if species, ok := table.Get(id); ok {
			nickname = strings.ToUpper(species.Name)
		}
		if len(nickname) > 10 {
			nickname = nickname[:10]
		}
		party.Nicknames = append(party.Nicknames, nickname)
	}
	return party, nil
}
