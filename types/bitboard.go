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

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/frankkopp/hyperbola/util"
)

// Bitboard is a 64 bit set of squares, one bit per square, A1 == bit 0.
type Bitboard uint64

// Bitboard returns the singleton bitboard for sq, using the pre computed
// table built by initBb.
func (sq Square) Bitboard() Bitboard {
	return sqBb[sq]
}

// PushSquare sets the bit for s in b and returns the result.
func PushSquare(b Bitboard, s Square) Bitboard {
	return b | s.Bitboard()
}

// PushSquare sets the bit for s.
func (b *Bitboard) PushSquare(s Square) {
	*b |= s.Bitboard()
}

// PopSquare clears the bit for s in b and returns the result.
func PopSquare(b Bitboard, s Square) Bitboard {
	return b &^ s.Bitboard()
}

// PopSquare clears the bit for s.
func (b *Bitboard) PopSquare(s Square) {
	*b &^= s.Bitboard()
}

// Has reports whether s is a member of b.
func (b Bitboard) Has(s Square) bool {
	return b&s.Bitboard() != 0
}

// ShiftBitboard shifts every bit of b by one square in direction d, masking
// off bits that would wrap around a file edge.
func ShiftBitboard(b Bitboard, d Direction) Bitboard {
	switch d {
	case North:
		return (Rank8Mask & b) << 8
	case East:
		return (MsbMask & b) << 1 & FileAMask
	case South:
		return b >> 8
	case West:
		return (b >> 1) & FileHMask
	case Northeast:
		return (Rank8Mask & b) << 9 & FileAMask
	case Southeast:
		return (b >> 7) & FileAMask
	case Southwest:
		return (b >> 9) & FileHMask
	case Northwest:
		return (b << 7) & FileHMask
	}
	return b
}

// PopCount returns the number of set bits in b.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// Reverse returns b with its 64 bits in reverse order. Used by the
// Hyperbola Quintessence sliding attack formula.
func (b Bitboard) Reverse() Bitboard {
	return Bitboard(bits.Reverse64(uint64(b)))
}

// Lsb returns the square of the least significant set bit, or SqNone if b
// is empty.
func (b Bitboard) Lsb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Msb returns the square of the most significant set bit, or SqNone if b
// is empty.
func (b Bitboard) Msb() Square {
	if b == BbZero {
		return SqNone
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLsb removes and returns the least significant set square.
func (b *Bitboard) PopLsb() Square {
	if *b == BbZero {
		return SqNone
	}
	lsb := b.Lsb()
	*b &= *b - 1
	return lsb
}

// Str returns the raw 64 character bit string of b.
func (b Bitboard) Str() string {
	return fmt.Sprintf("%-0.64b", uint64(b))
}

// StrBoard renders b as an 8x8 ascii board, rank 8 first.
func (b Bitboard) StrBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank8 + 1; r != Rank1; r-- {
		for f := FileA; f <= FileH; f++ {
			if b.Has(SquareOf(f, r-1)) {
				os.WriteString("| X ")
			} else {
				os.WriteString("|   ")
			}
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// StrGrp renders b as 8 groups of 8 bits, A1 first.
func (b Bitboard) StrGrp() string {
	var os strings.Builder
	for i := 0; i < 64; i++ {
		if i > 0 && i%8 == 0 {
			os.WriteString(".")
		}
		if b&(BbOne<<i) != 0 {
			os.WriteString("1")
		} else {
			os.WriteString("0")
		}
	}
	os.WriteString(fmt.Sprintf(" (%d)", b))
	return os.String()
}

// FileDistance returns the absolute distance in files between f1 and f2.
func FileDistance(f1 File, f2 File) int {
	return util.Abs(int(f2) - int(f1))
}

// RankDistance returns the absolute distance in ranks between r1 and r2.
func RankDistance(r1 Rank, r2 Rank) int {
	return util.Abs(int(r2) - int(r1))
}

// SquareDistance returns Chebyshev distance between two squares.
func SquareDistance(s1 Square, s2 Square) int {
	return squareDistance[s1][s2]
}

// various constant bitboards for convenience
const (
	BbZero Bitboard = Bitboard(0)
	BbAll  Bitboard = ^BbZero
	BbOne  Bitboard = Bitboard(1)

	FileA_Bb Bitboard = 0x0101010101010101
	FileB_Bb Bitboard = FileA_Bb << 1
	FileC_Bb Bitboard = FileA_Bb << 2
	FileD_Bb Bitboard = FileA_Bb << 3
	FileE_Bb Bitboard = FileA_Bb << 4
	FileF_Bb Bitboard = FileA_Bb << 5
	FileG_Bb Bitboard = FileA_Bb << 6
	FileH_Bb Bitboard = FileA_Bb << 7

	Rank1_Bb Bitboard = 0xFF
	Rank2_Bb Bitboard = Rank1_Bb << (8 * 1)
	Rank3_Bb Bitboard = Rank1_Bb << (8 * 2)
	Rank4_Bb Bitboard = Rank1_Bb << (8 * 3)
	Rank5_Bb Bitboard = Rank1_Bb << (8 * 4)
	Rank6_Bb Bitboard = Rank1_Bb << (8 * 5)
	Rank7_Bb Bitboard = Rank1_Bb << (8 * 6)
	Rank8_Bb Bitboard = Rank1_Bb << (8 * 7)

	// Go does not overflow const values when shifting a bit over msb, these
	// masks erase bits that would otherwise wrap to the opposite file/rank.
	MsbMask   Bitboard = ^(Bitboard(1) << 63)
	Rank8Mask Bitboard = ^Rank8_Bb
	FileAMask Bitboard = ^FileA_Bb
	FileHMask Bitboard = ^FileH_Bb

	DiagUpA1 Bitboard = 0b10000000_01000000_00100000_00010000_00001000_00000100_00000010_00000001
	DiagUpB1 Bitboard = (MsbMask & DiagUpA1) << 1 & FileAMask
	DiagUpC1 Bitboard = (MsbMask & DiagUpB1) << 1 & FileAMask
	DiagUpD1 Bitboard = (MsbMask & DiagUpC1) << 1 & FileAMask
	DiagUpE1 Bitboard = (MsbMask & DiagUpD1) << 1 & FileAMask
	DiagUpF1 Bitboard = (MsbMask & DiagUpE1) << 1 & FileAMask
	DiagUpG1 Bitboard = (MsbMask & DiagUpF1) << 1 & FileAMask
	DiagUpH1 Bitboard = (MsbMask & DiagUpG1) << 1 & FileAMask
	DiagUpA2 Bitboard = (Rank8Mask & DiagUpA1) << 8
	DiagUpA3 Bitboard = (Rank8Mask & DiagUpA2) << 8
	DiagUpA4 Bitboard = (Rank8Mask & DiagUpA3) << 8
	DiagUpA5 Bitboard = (Rank8Mask & DiagUpA4) << 8
	DiagUpA6 Bitboard = (Rank8Mask & DiagUpA5) << 8
	DiagUpA7 Bitboard = (Rank8Mask & DiagUpA6) << 8
	DiagUpA8 Bitboard = (Rank8Mask & DiagUpA7) << 8

	DiagDownH1 Bitboard = 0b00000001_00000010_00000100_00001000_00010000_00100000_01000000_10000000
	DiagDownH2 Bitboard = (Rank8Mask & DiagDownH1) << 8
	DiagDownH3 Bitboard = (Rank8Mask & DiagDownH2) << 8
	DiagDownH4 Bitboard = (Rank8Mask & DiagDownH3) << 8
	DiagDownH5 Bitboard = (Rank8Mask & DiagDownH4) << 8
	DiagDownH6 Bitboard = (Rank8Mask & DiagDownH5) << 8
	DiagDownH7 Bitboard = (Rank8Mask & DiagDownH6) << 8
	DiagDownH8 Bitboard = (Rank8Mask & DiagDownH7) << 8
	DiagDownG1 Bitboard = (DiagDownH1 >> 1) & FileHMask
	DiagDownF1 Bitboard = (DiagDownG1 >> 1) & FileHMask
	DiagDownE1 Bitboard = (DiagDownF1 >> 1) & FileHMask
	DiagDownD1 Bitboard = (DiagDownE1 >> 1) & FileHMask
	DiagDownC1 Bitboard = (DiagDownD1 >> 1) & FileHMask
	DiagDownB1 Bitboard = (DiagDownC1 >> 1) & FileHMask
	DiagDownA1 Bitboard = (DiagDownB1 >> 1) & FileHMask
)

// Returns a Bitboard of the square by shifting the square onto an empty
// bitboard, used only during table initialisation before sqBb is built.
func (sq Square) bitboard_() Bitboard {
	return Bitboard(uint64(1) << sq)
}

// sqBb, sqToFileBb, sqToRankBb, sqDiagUpBb and sqDiagDownBb are the per
// square masks the sliding-attack generators (magic and Hyperbola
// Quintessence alike) are built from. Populated once by initBb.
var sqBb [SqLength]Bitboard
var sqToFileBb [SqLength]Bitboard
var sqToRankBb [SqLength]Bitboard
var sqDiagUpBb [SqLength]Bitboard
var sqDiagDownBb [SqLength]Bitboard
var squareDistance [SqLength][SqLength]int
var intermediateBb [SqLength][SqLength]Bitboard

// CastlingMask covers the six squares whose occupation or movement can
// affect castling rights: both kings' home squares and all four rooks'
// home squares.
var CastlingMask Bitboard

// Intermediate returns the squares strictly between s1 and s2 if they share
// a rank, file or diagonal, or BbZero otherwise.
func Intermediate(s1, s2 Square) Bitboard {
	return intermediateBb[s1][s2]
}

// lineDirection returns the single step direction from sq1 towards sq2 if
// the two lie on a common rank, file or diagonal.
func lineDirection(sq1, sq2 Square) (Direction, bool) {
	df := int(sq2.FileOf()) - int(sq1.FileOf())
	dr := int(sq2.RankOf()) - int(sq1.RankOf())
	switch {
	case df == 0 && dr > 0:
		return North, true
	case df == 0 && dr < 0:
		return South, true
	case dr == 0 && df > 0:
		return East, true
	case dr == 0 && df < 0:
		return West, true
	case df == dr && df > 0:
		return Northeast, true
	case df == dr && df < 0:
		return Southwest, true
	case df == -dr && df > 0:
		return Southeast, true
	case df == -dr && df < 0:
		return Northwest, true
	default:
		return 0, false
	}
}

func initBb() {
	for sq := SqA1; sq < SqNone; sq++ {
		sqBb[sq] = sq.bitboard_()
		sqToFileBb[sq] = FileA_Bb << sq.FileOf()
		sqToRankBb[sq] = Rank1_Bb << (8 * sq.RankOf())

		// @formatter:off
		switch {
		case DiagUpA8&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpA8
		case DiagUpA7&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpA7
		case DiagUpA6&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpA6
		case DiagUpA5&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpA5
		case DiagUpA4&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpA4
		case DiagUpA3&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpA3
		case DiagUpA2&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpA2
		case DiagUpA1&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpA1
		case DiagUpB1&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpB1
		case DiagUpC1&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpC1
		case DiagUpD1&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpD1
		case DiagUpE1&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpE1
		case DiagUpF1&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpF1
		case DiagUpG1&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpG1
		case DiagUpH1&sq.bitboard_() != 0: sqDiagUpBb[sq] = DiagUpH1
		}

		switch {
		case DiagDownH8&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownH8
		case DiagDownH7&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownH7
		case DiagDownH6&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownH6
		case DiagDownH5&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownH5
		case DiagDownH4&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownH4
		case DiagDownH3&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownH3
		case DiagDownH2&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownH2
		case DiagDownH1&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownH1
		case DiagDownG1&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownG1
		case DiagDownF1&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownF1
		case DiagDownE1&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownE1
		case DiagDownD1&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownD1
		case DiagDownC1&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownC1
		case DiagDownB1&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownB1
		case DiagDownA1&sq.bitboard_() != 0: sqDiagDownBb[sq] = DiagDownA1
		}
		// @formatter:on
	}

	for sq1 := SqA1; sq1 <= SqH8; sq1++ {
		for sq2 := SqA1; sq2 <= SqH8; sq2++ {
			if sq1 != sq2 {
				squareDistance[sq1][sq2] =
					util.Max(FileDistance(sq1.FileOf(), sq2.FileOf()), RankDistance(sq1.RankOf(), sq2.RankOf()))
				if d, ok := lineDirection(sq1, sq2); ok {
					bb := BbZero
					for s := sq1.To(d); s != sq2 && s.IsValid(); s = s.To(d) {
						bb.PushSquare(s)
					}
					intermediateBb[sq1][sq2] = bb
				}
			}
		}
	}

	for _, sq := range [6]Square{SqE1, SqH1, SqA1, SqE8, SqH8, SqA8} {
		CastlingMask.PushSquare(sq)
	}
}
