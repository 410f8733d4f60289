/*
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

package types

// hyperbolaLine computes sliding attacks along a single line (rank, file or
// diagonal) through sq, given the occupied set and a precomputed mask of the
// line excluding sq itself:
//
//   attacks = ((o & mask) - 2*bit(sq)) ^ reverse(reverse(o & mask) - 2*reverse(bit(sq)))
//
// The subtraction on each side cascades a borrow up to (and including) the
// first occupied bit in that direction, so the xor of the forward and
// reversed result naturally stops exactly at the first blocker both ways.
func hyperbolaLine(sq Square, occupied Bitboard, mask Bitboard) Bitboard {
	o := occupied & mask
	s := sqBb[sq]
	forward := o - 2*s
	backward := o.Reverse() - 2*s.Reverse()
	return (forward ^ backward.Reverse()) & mask
}

// BishopAttacksHq returns the bishop's reachable squares from sq on an
// occupied board, using Hyperbola Quintessence over the two diagonals
// through sq.
func BishopAttacksHq(sq Square, occupied Bitboard) Bitboard {
	return hyperbolaLine(sq, occupied, sqDiagUpBb[sq]&^sqBb[sq]) |
		hyperbolaLine(sq, occupied, sqDiagDownBb[sq]&^sqBb[sq])
}

// RookAttacksHq returns the rook's reachable squares from sq on an occupied
// board, using Hyperbola Quintessence over sq's file and rank.
func RookAttacksHq(sq Square, occupied Bitboard) Bitboard {
	return hyperbolaLine(sq, occupied, sqToFileBb[sq]&^sqBb[sq]) |
		hyperbolaLine(sq, occupied, sqToRankBb[sq]&^sqBb[sq])
}

// QueenAttacksHq is the union of BishopAttacksHq and RookAttacksHq.
func QueenAttacksHq(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacksHq(sq, occupied) | RookAttacksHq(sq, occupied)
}

// AttacksBbHq is the Hyperbola Quintessence counterpart to AttacksBb: same
// signature and contract, computed from the two o'clock-wise line shifts
// instead of a magic-multiplied table lookup. King, Knight and Pawn attacks
// have no sliding component and are served from the same pseudoAttacks
// table AttacksBb uses.
func AttacksBbHq(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Bishop:
		return BishopAttacksHq(sq, occupied)
	case Rook:
		return RookAttacksHq(sq, occupied)
	case Queen:
		return QueenAttacksHq(sq, occupied)
	default:
		return pseudoAttacks[pt][sq]
	}
}

// SlidingAttackVariant selects which sliding-attack implementation
// computes rays. Both compute identical results;
// they differ in technique and footprint.
type SlidingAttackVariant uint8

const (
	// Hyperbola computes sliding attacks on demand from reversed-bitboard
	// arithmetic. No attack table, a few dozen bytes of per-square masks.
	Hyperbola SlidingAttackVariant = iota
	// MagicBitboards looks sliding attacks up in precomputed per-square
	// tables indexed by a multiplicative magic hash of the occupancy.
	MagicBitboards
)

// Attacks dispatches to the Hyperbola Quintessence or magic-bitboard
// implementation of AttacksBb according to v.
func (v SlidingAttackVariant) Attacks(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	if v == MagicBitboards {
		return AttacksBb(pt, sq, occupied)
	}
	return AttacksBbHq(pt, sq, occupied)
}

// DefaultSlidingAttackVariant is the implementation GetAttacksBb serves.
// Hyperbola Quintessence needs no attack table and is the package default;
// the magic-bitboard alternative is reached through MagicBitboards.Attacks
// or AttacksBb.
var DefaultSlidingAttackVariant = Hyperbola

// GetAttacksBb is a convenience wrapper over DefaultSlidingAttackVariant,
// for callers (check detection, evaluation) that have no reason to care
// which sliding-attack technique answers the query.
func GetAttacksBb(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	return DefaultSlidingAttackVariant.Attacks(pt, sq, occupied)
}
