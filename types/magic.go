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

package types

// Magic holds all magic bitboards relevant for a single square
// Taken from Stockfish
type Magic struct {
	Mask    Bitboard
	Magic   Bitboard
	Attacks []Bitboard
	Shift   uint
}

// Index calculates the index in the table for the attacks
// https://www.chessprogramming.org/Magic_Bitboards
//   occ      &= mBishopTbl[sq].mask;
//   occ      *= mBishopTbl[sq].magic;
//   occ     >>= mBishopTbl[sq].shift;
func (m *Magic) index(occupied Bitboard) uint {
	occ := occupied & m.Mask
	occ = occ * m.Magic
	occ = occ >> m.Shift
	return uint(occ)
}

// rookDirections and bishopDirections are the four ray directions each
// sliding piece type searches when a mask or reference attack set is built.
var (
	rookDirections   = [4]Direction{North, East, South, West}
	bishopDirections = [4]Direction{Northeast, Southeast, Southwest, Northwest}
	knightSteps      = [8]Direction{17, 15, 10, 6, -17, -15, -10, -6}
)

var (
	bishopMagics  [64]Magic
	rookMagics    [64]Magic
	pseudoAttacks [PtLength][64]Bitboard
)

// initMagics computes all rook and bishop attacks at startup. Magic
// bitboards are used to look up attacks of sliding pieces. As a reference see
// www.chessprogramming.org/Magic_Bitboards. In particular, here we use the so
// called "fancy" approach. It also fills pseudoAttacks for King and Knight,
// the non-sliding pieces AttacksBb serves directly from a table.
// Taken from Stockfish, adapted to allocate one independently sized Attacks
// slice per square instead of slicing a shared backing array.
func initMagics() {
	initPseudoAttacks()
	fillMagics(&bishopMagics, &bishopDirections)
	fillMagics(&rookMagics, &rookDirections)
}

func initPseudoAttacks() {
	for sq := SqA1; sq <= SqH8; sq++ {
		for _, d := range Directions {
			if to := sq.To(d); to.IsValid() && SquareDistance(sq, to) == 1 {
				pseudoAttacks[King][sq].PushSquare(to)
			}
		}
		for _, step := range knightSteps {
			to := sq + Square(step)
			if to.IsValid() && SquareDistance(sq, to) == 2 {
				pseudoAttacks[Knight][sq].PushSquare(to)
			}
		}
		// sliding pieces on an otherwise empty board - the full ray, not
		// blocker-aware. Used by move generation to enumerate candidate
		// target squares before a per-square Intermediate() blocker check.
		pseudoAttacks[Bishop][sq] = (sqDiagUpBb[sq] | sqDiagDownBb[sq]) &^ sqBb[sq]
		pseudoAttacks[Rook][sq] = (sqToFileBb[sq] | sqToRankBb[sq]) &^ sqBb[sq]
		pseudoAttacks[Queen][sq] = pseudoAttacks[Bishop][sq] | pseudoAttacks[Rook][sq]
	}
}

func fillMagics(magics *[64]Magic, directions *[4]Direction) {
	// Optimal PrnG seeds to pick the correct magics in the shortest time
	seeds := [RankLength]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

	occupancy := [4096]Bitboard{}
	reference := [4096]Bitboard{}
	var edges, b Bitboard
	cnt := 0
	epoch := [4096]int{}

	for sq := SqA1; sq <= SqH8; sq++ {
		// Board edges are not considered in the relevant occupancies
		edges = ((Rank1_Bb | Rank8_Bb) &^ sq.RankOf().Bb()) | ((FileA_Bb | FileH_Bb) &^ sq.FileOf().Bb())

		// Given a square 's', the mask is the bitboard of sliding attacks from
		// 's' computed on an empty board. The index must be big enough to contain
		// all the attacks for each possible subset of the mask and so is 2 power
		// the number of 1s of the mask. Hence we deduce the size of the shift to
		// apply to the 64 bit word to get the index.
		m := &(*magics)[sq]
		m.Mask = slidingAttack(directions, sq, BbZero) &^ edges
		m.Shift = uint(64 - m.Mask.PopCount())
		m.Attacks = make([]Bitboard, 1<<m.Mask.PopCount())

		// Use Carry-Rippler trick to enumerate all subsets of mask and
		// store the corresponding sliding attack bitboard in reference[].
		b = 0
		size := 0
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(directions, sq, b)
			size++
			b = (b - m.Mask) & m.Mask
			if b == 0 { // do - while(b)
				break
			}
		}

		// special random number generator
		rng := NewPrnG(seeds[sq.RankOf()])

		// Find a magic for square 's' picking up an (almost) random number
		// until we find the one that passes the verification test.
		for i := 0; i < size; {
			for m.Magic = 0; ; {
				m.Magic = Bitboard(rng.sparseRand())
				if ((m.Magic * m.Mask) >> 56).PopCount() >= 6 {
					break
				}
			}

			// A good magic must map every possible occupancy to an index that
			// looks up the correct sliding attack in the attacks[s] database.
			// Note that we build up the database for square 's' as a side
			// effect of verifying the magic. Keep track of the attempt count
			// and save it in epoch[], little speed-up trick to avoid resetting
			// m.attacks[] after every failed attempt.
			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.Attacks[idx] = reference[i]
				} else if m.Attacks[idx] != reference[i] {
					break
				}
			}
		}
	}
}

// slidingAttack calculate sliding attacks along the given directions for the given square
// and the given board occupation. Uses loop in loop and is not very efficient.
// Doesn't matter for pre-computing but should not be used during move gen or search
func slidingAttack(directions *[4]Direction, sq Square, occupied Bitboard) Bitboard {
	attack := BbZero
	for i := 0; i < 4; i++ {
		s := sq
		for {
			s = s.To(directions[i])
			if !s.IsValid() {
				break
			}
			attack.PushSquare(s)
			if occupied.Has(s) {
				break
			}
			if !s.To(directions[i]).IsValid() || SquareDistance(s, s.To(directions[i])) != 1 {
				break
			}
		}
	}
	return attack
}

// AttacksBb returns a bitboard representing all the squares attacked by a
// piece of the given type pt (not pawn) placed on 's'.
// For sliding pieces this uses the pre-computed Magic Bitboard Attack arrays.
// For Knight and King this uses the pre-computed pseudo attacks.
// From Stockfish
func AttacksBb(pt PieceType, s Square, occupied Bitboard) Bitboard {
	switch pt {
	case Bishop:
		m := &bishopMagics[s]
		return m.Attacks[m.index(occupied)]
	case Rook:
		m := &rookMagics[s]
		return m.Attacks[m.index(occupied)]
	case Queen:
		mb := &bishopMagics[s]
		mr := &rookMagics[s]
		return mb.Attacks[mb.index(occupied)] | mr.Attacks[mr.index(occupied)]
	default:
		return pseudoAttacks[pt][s]
	}
}

// GetPseudoAttacks returns the squares a piece of type pt placed on sq would
// attack on an otherwise empty board. For sliding pieces this is the full
// ray in every direction, not blocker-aware; callers filter blocked squares
// themselves (see Intermediate).
func GetPseudoAttacks(pt PieceType, sq Square) Bitboard {
	return pseudoAttacks[pt][sq]
}

// PrnG random generator for magic bitboards
// from Stockfish
// xorshift64star Pseudo-Random Number Generator
// This class is based on original code written and dedicated
// to the public domain by Sebastiano Vigna (2014).
// It has the following characteristics:
//  -  Outputs 64-bit numbers
//  -  Passes Dieharder and SmallCrush test batteries
//  -  Does not require warm-up, no zeroland to escape
//  -  Internal state is a single 64-bit integer
//  -  Period is 2^64 - 1
//  -  Speed: 1.60 ns/call (Core i7 @3.40GHz)
// For further analysis see
//   <http://vigna.di.unimi.it/ftp/papers/xorshift.pdf>
type PrnG struct {
	s uint64
}

// NewPrnG creates a new instance of the pseudo random generator
func NewPrnG(seed uint64) *PrnG {
	return &PrnG{s: seed}
}

func (r *PrnG) rand64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// Special generator used to fast init magic numbers.
// Output values only have 1/8th of their bits set on average.
func (r *PrnG) sparseRand() uint64 {
	return r.rand64() & r.rand64() & r.rand64()
}
