package codec

import "fmt"

// MaxPartySize is the number of fixed party slots on the wire; a party
// may hold fewer live Pokémon, with the remaining slots zero- or
// 0xFF-filled depending on the field (see encodeHeader/decodeHeader).
const MaxPartySize = 6

const speciesArrayLen = MaxPartySize + 1 // 6 slots + trailing 0xFF terminator

const speciesTerminator = 0xFF

const (
	partySentinel1 = 0xF3
	partySentinel2 = 0x74
)

// PartySize is the fixed wire size of an encoded Party, in bytes:
// trainer name (11) + count (1) + species array (7) + sentinel (2) +
// six Pokémon records (6*48) + six OT names (6*11) + six nicknames
// (6*11) = 441. (original_source/pkm_trade_spoofer/models.py:
// PARTY_N_BYTES computes the same total; spec.md's headline "415"
// transposes two digits of the correct 441 — see DESIGN.md.)
const PartySize = pokestrFieldLen + 1 + speciesArrayLen + 2 +
	PokemonSize*MaxPartySize + pokestrFieldLen*MaxPartySize*2

// Party is the Generation-II six-slot roster: a trainer name plus, per
// occupied slot, a Pokémon's battle data, its original-trainer name,
// and its nickname.
type Party struct {
	TrainerName string
	Pokemon     []Pokemon
	OTNames     []string
	Nicknames   []string
}

// EncodeParty renders party as its fixed 441-byte Generation-II record.
// It fails with ErrInvalidName if the trainer name or any OT/nickname
// field exceeds 10 glyphs.
func EncodeParty(party Party) ([PartySize]byte, error) {
	var buf [PartySize]byte
	count := len(party.Pokemon)

	w := newFieldWriter(buf[:])

	name, err := encodePokestr(party.TrainerName)
	if err != nil {
		return buf, err
	}
	w.bytes(name)

	w.byte(byte(count))

	for i := 0; i < speciesArrayLen; i++ {
		if i < count {
			w.byte(party.Pokemon[i].DexID)
		} else {
			w.byte(speciesTerminator)
		}
	}

	w.byte(partySentinel1)
	w.byte(partySentinel2)

	for i := 0; i < MaxPartySize; i++ {
		if i < count {
			rec := EncodePokemon(party.Pokemon[i])
			w.bytes(rec[:])
		} else {
			w.bytes(make([]byte, PokemonSize))
		}
	}

	if err := writeNameSlots(w, party.OTNames, count); err != nil {
		return buf, err
	}
	if err := writeNameSlots(w, party.Nicknames, count); err != nil {
		return buf, err
	}

	return buf, nil
}

func writeNameSlots(w *fieldWriter, names []string, count int) error {
	for i := 0; i < MaxPartySize; i++ {
		if i < count {
			encoded, err := encodePokestr(names[i])
			if err != nil {
				return err
			}
			w.bytes(encoded)
		} else {
			w.bytes(make([]byte, pokestrFieldLen)) // zero-filled, not pokestr-terminated
		}
	}
	return nil
}

// DecodeParty parses a 441-byte Generation-II party record. It fails
// with ErrInvalidLayout if the count byte is out of 0..6, or if an
// occupied name slot lacks its 0x50 terminator.
func DecodeParty(buf []byte) (Party, error) {
	if len(buf) != PartySize {
		return Party{}, fmt.Errorf("%w: party record must be %d bytes, got %d", ErrInvalidLayout, PartySize, len(buf))
	}

	r := newFieldReader(buf)

	name, err := decodePokestr(r.bytes(pokestrFieldLen))
	if err != nil {
		return Party{}, err
	}

	count := int(r.byte())
	if count < 0 || count > MaxPartySize {
		return Party{}, fmt.Errorf("%w: party count byte %d out of range 0..%d", ErrInvalidLayout, count, MaxPartySize)
	}

	r.bytes(speciesArrayLen) // species ids + terminator; not cross-checked against decoded Pokémon
	r.bytes(2)               // sentinel bytes

	pokemon := make([]Pokemon, count)
	for i := 0; i < MaxPartySize; i++ {
		rec := r.bytes(PokemonSize)
		if i < count {
			p, err := DecodePokemon(rec)
			if err != nil {
				return Party{}, err
			}
			pokemon[i] = p
		}
	}

	otNames, err := readNameSlots(r, count)
	if err != nil {
		return Party{}, err
	}
	nicknames, err := readNameSlots(r, count)
	if err != nil {
		return Party{}, err
	}

	return Party{
		TrainerName: name,
		Pokemon:     pokemon,
		OTNames:     otNames,
		Nicknames:   nicknames,
	}, nil
}

func readNameSlots(r *fieldReader, count int) ([]string, error) {
	names := make([]string, count)
	for i := 0; i < MaxPartySize; i++ {
		field := r.bytes(pokestrFieldLen)
		if i < count {
			name, err := decodePokestr(field)
			if err != nil {
				return nil, err
			}
			names[i] = name
		}
	}
	return names, nil
}
