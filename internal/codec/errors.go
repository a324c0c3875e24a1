// Package codec implements the Generation-II Pokémon binary layout: the
// per-Pokémon 48-byte record, the 441-byte six-slot party, and the
// "pokestr" trainer-text encoding shared by all three name fields.
package codec

import "errors"

// ErrInvalidName is returned by EncodeParty when a trainer, OT, or
// nickname field exceeds the pokestr maximum of 10 glyphs.
var ErrInvalidName = errors.New("codec: name exceeds 10 glyphs")

// ErrInvalidLayout is returned by DecodeParty/DecodePokemon when the
// input buffer does not match the expected Gen-II layout (wrong size,
// out-of-range count byte, or a name field missing its terminator).
var ErrInvalidLayout = errors.New("codec: invalid layout")
