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
	"strings"

	"github.com/frankkopp/hyperbola/assert"
)

// MoveType distinguishes the four move shapes the position state machine
// treats specially when applying or unapplying a move.
type MoveType uint8

const (
	Normal MoveType = iota
	Promotion
	EnPassant
	Castling
	MoveTypeLength
)

func (t MoveType) IsValid() bool {
	return t < MoveTypeLength
}

func (t MoveType) String() string {
	switch t {
	case Normal:
		return "n"
	case Promotion:
		return "p"
	case EnPassant:
		return "e"
	case Castling:
		return "c"
	default:
		return "?"
	}
}

// Move is a 32 bit encoded chess move: 16 bits of move data plus 16 bits of
// move-ordering value.
//
//	BITMAP 32-bit
//	|-value ------------------------|-Move -------------------------|
//	3 3 2 2 2 2 2 2 2 2 2 2 1 1 1 1 | 1 1 1 1 1 1 0 0 0 0 0 0 0 0 0 0
//	1 0 9 8 7 6 5 4 3 2 1 0 9 8 7 6 | 5 4 3 2 1 0 9 8 7 6 5 4 3 2 1 0
//	--------------------------------|--------------------------------
//	                                |                     1 1 1 1 1 1  to
//	                                |         1 1 1 1 1 1              from
//	                                |     1 1                          promotion piece type (pt-2 -> 0-3)
//	                                | 1 1                              move type
//	1 1 1 1 1 1 1 1 1 1 1 1 1 1 1 1 |                                  move sort value
type Move uint32

// MoveNone is the zero value, never a valid move.
const MoveNone Move = 0

const (
	fromShift     uint = 6
	promTypeShift uint = 12
	typeShift     uint = 14
	valueShift    uint = 16

	squareMask   Move = 0x3F
	toMask            = squareMask
	fromMask          = squareMask << fromShift
	promTypeMask Move = 3 << promTypeShift
	moveTypeMask Move = 3 << typeShift
	moveMask     Move = 0xFFFF
	valueMask    Move = 0xFFFF << valueShift
)

// CreateMove encodes from, to, move type and (for promotions) the promoted
// piece type into a Move with no sort value.
func CreateMove(from Square, to Square, t MoveType, promType PieceType) Move {
	if promType < Knight {
		promType = Knight
	}
	return Move(to) |
		Move(from)<<fromShift |
		Move(promType-Knight)<<promTypeShift |
		Move(t)<<typeShift
}

// CreateMoveValue is CreateMove plus an embedded move-ordering value.
func CreateMoveValue(from Square, to Square, t MoveType, promType PieceType, value Value) Move {
	if promType < Knight {
		promType = Knight
	}
	return Move(value-ValueNA)<<valueShift |
		Move(to) |
		Move(from)<<fromShift |
		Move(promType-Knight)<<promTypeShift |
		Move(t)<<typeShift
}

// MoveType returns the move's shape.
func (m Move) MoveType() MoveType {
	return MoveType((m & moveTypeMask) >> typeShift)
}

// PromotionType returns the piece type to promote to. Only meaningful when
// MoveType() == Promotion.
func (m Move) PromotionType() PieceType {
	return PieceType((m&promTypeMask)>>promTypeShift) + Knight
}

// To returns the destination square.
func (m Move) To() Square {
	return Square(m & toMask)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square((m & fromMask) >> fromShift)
}

// MoveOf strips any embedded sort value, leaving the bare 16 bit move.
func (m Move) MoveOf() Move {
	return m & moveMask
}

// ValueOf returns the embedded move-ordering value.
func (m Move) ValueOf() Value {
	return Value((m&valueMask)>>valueShift) + ValueNA
}

// SetValue overwrites the embedded sort value in place and returns the
// updated move. A no-op on MoveNone.
func (m *Move) SetValue(v Value) Move {
	if assert.DEBUG {
		assert.Assert(v == ValueNA || v.IsValid(), "invalid move sort value: %d", v)
	}
	if *m == MoveNone {
		return *m
	}
	*m = *m&moveMask | Move(v-ValueNA)<<valueShift
	return *m
}

// IsValid reports whether m has legal-looking squares, promotion type and
// move type. MoveNone is never valid.
func (m Move) IsValid() bool {
	return m != MoveNone &&
		m.From().IsValid() &&
		m.To().IsValid() &&
		m.PromotionType().IsValid() &&
		m.MoveType().IsValid()
}

// String is a verbose, debugging oriented representation.
func (m Move) String() string {
	if m == MoveNone {
		return "Move{none}"
	}
	return fmt.Sprintf("Move{%-5s type:%s prom:%s value:%d}",
		m.StringUci(), m.MoveType().String(), m.PromotionType().Char(), m.ValueOf())
}

// StringUci renders m in UCI long algebraic form, e.g. "e2e4" or "a7a8q".
func (m Move) StringUci() string {
	if m == MoveNone {
		return "0000"
	}
	var os strings.Builder
	os.WriteString(m.From().String())
	os.WriteString(m.To().String())
	if m.MoveType() == Promotion {
		os.WriteString(strings.ToLower(m.PromotionType().Char()))
	}
	return os.String()
}
