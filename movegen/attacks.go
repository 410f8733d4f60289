/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package movegen

import (
	"github.com/frankkopp/hyperbola/logging"
	"github.com/frankkopp/hyperbola/position"
	. "github.com/frankkopp/hyperbola/types"
)

var log = logging.GetLog("movegen")

// Attacks is a cache of every square a color attacks or defends in a given
// position, with per-piece attack sets and mobility counts. Compute is
// idempotent per position: a second call against the same Zobrist key is a
// no-op.
type Attacks struct {
	Zobrist position.Key
	From    [ColorLength][SqLength]Bitboard
	To      [ColorLength][SqLength]Bitboard
	All     [ColorLength]Bitboard
	Piece   [ColorLength][PtLength]Bitboard
	Mobility [ColorLength]int
	Pawns       [ColorLength]Bitboard
	PawnsDouble [ColorLength]Bitboard
}

// NewAttacks creates a new, empty Attacks instance.
func NewAttacks() *Attacks {
	return &Attacks{}
}

// Clear resets all fields without reallocating.
func (a *Attacks) Clear() {
	a.Zobrist = 0
	for sq := 0; sq < SqLength; sq++ {
		a.From[White][sq] = BbZero
		a.From[Black][sq] = BbZero
		a.To[White][sq] = BbZero
		a.To[Black][sq] = BbZero
	}
	for pt := PtNone; pt < PtLength; pt++ {
		a.Piece[White][pt] = BbZero
		a.Piece[Black][pt] = BbZero
	}
	a.All[White] = BbZero
	a.All[Black] = BbZero
	a.Mobility[White] = 0
	a.Mobility[Black] = 0
	a.Pawns[White] = 0
	a.Pawns[Black] = 0
	a.PawnsDouble[White] = 0
	a.PawnsDouble[Black] = 0
}

// Compute fills a for pos. A repeated call against the same Zobrist key
// leaves the cached result untouched.
func (a *Attacks) Compute(pos *position.Position) {
	if pos.ZobristKey() == a.Zobrist {
		return
	}
	a.Clear()
	a.Zobrist = pos.ZobristKey()
	a.NonPawnAttacks(pos)
	a.pawnAttacks(pos)
}

// NonPawnAttacks calculates all attacks of non pawn pieces, king included.
func (a *Attacks) NonPawnAttacks(pos *position.Position) {
	ptList := [5]PieceType{King, Knight, Bishop, Rook, Queen}
	var attacks Bitboard
	allPieces := pos.OccupiedAll()

	for c := White; c <= Black; c++ {
		myPieces := pos.OccupiedBb(c)
		for _, pt := range ptList {
			for pieces := pos.PiecesBb(c, pt); pieces != BbZero; {
				psq := pieces.PopLsb()
				attacks = GetAttacksBb(pt, psq, allPieces)
				a.From[c][psq] = attacks
				a.Piece[c][pt] |= attacks
				a.All[c] |= attacks
				tmp := attacks
				for tmp != BbZero {
					toSq := tmp.PopLsb()
					a.To[c][toSq].PushSquare(psq)
				}
				a.Mobility[c] += (attacks &^ myPieces).PopCount()
			}
		}
	}
}

// pawnAttacks calculates the squares each color's pawns attack.
func (a *Attacks) pawnAttacks(pos *position.Position) {
	a.Pawns[White] = ShiftBitboard(pos.PiecesBb(White, Pawn), Northwest) | ShiftBitboard(pos.PiecesBb(White, Pawn), Northeast)
	a.Pawns[Black] = ShiftBitboard(pos.PiecesBb(Black, Pawn), Southwest) | ShiftBitboard(pos.PiecesBb(Black, Pawn), Southeast)
	a.PawnsDouble[White] = ShiftBitboard(pos.PiecesBb(White, Pawn), Northwest) & ShiftBitboard(pos.PiecesBb(White, Pawn), Northeast)
	a.PawnsDouble[Black] = ShiftBitboard(pos.PiecesBb(Black, Pawn), Southwest) & ShiftBitboard(pos.PiecesBb(Black, Pawn), Southeast)
}

// IsAttacked reports whether sq is attacked by any piece of color by. Thin
// wrapper over Position.IsAttacked for callers already in the movegen
// package; a king is in check exactly when IsAttacked(pos, kingSquare(pos),
// opponent) is true.
func IsAttacked(pos *position.Position, sq Square, by Color) bool {
	return pos.IsAttacked(sq, by)
}
