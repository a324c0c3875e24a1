package codec

import (
	"bytes"
	"testing"
)

func TestEncodePokemonExplicitLayout(t *testing.T) {
	p := Pokemon{
		DexID:      25, // Pikachu
		HeldItemID: 0,
		MoveIDs:    [4]byte{84, 98, 0, 0}, // Thundershock, Quick Attack
		OT:         4242,
		ExpPoints:  0x010203,
		EVs:        StatBlock{HP: 1, Attack: 2, Defense: 3, Speed: 4, Special: 5},
		IVs:        StatBlock{HP: 0, Attack: 15, Defense: 9, Speed: 3, Special: 1},
		MovePPs: [4]PP{
			{PPUps: 1, CurrentPPs: 30},
			{PPUps: 0, CurrentPPs: 20},
			{},
			{},
		},
		Friendship: 70,
		Pokerus:    0,
		CaughtData: 0,
		Level:      1,
		StatusCond: 0,
		HP:         11,
		MaxHP:      11,
		Attack:     7,
		Defense:    6,
		Speed:      8,
		SpecialAtk: 6,
		SpecialDef: 6,
	}

	got := EncodePokemon(p)

	ivPacked := uint16(15) | uint16(9)<<4 | uint16(3)<<8 | uint16(1)<<12

	want := []byte{
		25, 0, // dex, item
		84, 98, 0, 0, // moves
		0x10, 0x92, // OT=4242
		0x01, 0x02, 0x03, // exp
		0, 1, 0, 2, 0, 3, 0, 4, 0, 5, // evs
		byte(ivPacked >> 8), byte(ivPacked), // ivs
		1<<6 | 30, 20, 0, 0, // move pps
		70, 0, // friendship, pokerus
		0, 0, // caught data
		1, 0, // level, status
		0,     // padding
		0, 11, // hp
		0, 11, // max hp
		0, 7, // attack
		0, 6, // defense
		0, 8, // speed
		0, 6, // spatk
		0, 6, // spdef
	}

	if !bytes.Equal(got[:], want) {
		t.Fatalf("layout mismatch:\ngot:  % x\nwant: % x", got[:], want)
	}

	decoded, err := DecodePokemon(got[:])
	if err != nil {
		t.Fatal(err)
	}
	decoded.IVs.HP = p.IVs.HP // hp_iv is never emitted; not part of round-trip check
	if decoded != p {
		t.Fatalf("round trip mismatch:\ngot:  %+v\nwant: %+v", decoded, p)
	}
}

func TestPokemonRoundTrip(t *testing.T) {
	samples := []Pokemon{
		{},
		{
			DexID: 1, HeldItemID: 255,
			MoveIDs: [4]byte{1, 2, 3, 4},
			OT:      65535, ExpPoints: 0xFFFFFF,
			EVs: StatBlock{HP: 65535, Attack: 65535, Defense: 65535, Speed: 65535, Special: 65535},
			IVs: StatBlock{Attack: 15, Defense: 15, Speed: 15, Special: 15},
			MovePPs: [4]PP{
				{PPUps: 3, CurrentPPs: 63},
				{PPUps: 3, CurrentPPs: 63},
				{PPUps: 3, CurrentPPs: 63},
				{PPUps: 3, CurrentPPs: 63},
			},
			Friendship: 255, Pokerus: 255, CaughtData: 65535,
			Level: 100, StatusCond: 8,
			HP: 65535, MaxHP: 65535, Attack: 65535, Defense: 65535,
			Speed: 65535, SpecialAtk: 65535, SpecialDef: 65535,
		},
	}

	for i, p := range samples {
		enc := EncodePokemon(p)
		got, err := DecodePokemon(enc[:])
		if err != nil {
			t.Fatalf("sample %d: decode: %v", i, err)
		}
		if got != p {
			t.Fatalf("sample %d round trip mismatch:\ngot:  %+v\nwant: %+v", i, got, p)
		}
	}
}

func TestDecodePokemonWrongSize(t *testing.T) {
	_, err := DecodePokemon(make([]byte, PokemonSize-1))
	if err == nil {
		t.Fatal("expected error for short buffer")
	}
}
