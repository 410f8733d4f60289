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

package position

import (
	. "github.com/frankkopp/hyperbola/types"
)

// ZobristKey returns the current zobrist key for this position.
func (p *Position) ZobristKey() Key {
	return p.zobristKey
}

// NextPlayer returns the next player as Color for the position.
func (p *Position) NextPlayer() Color {
	return p.nextPlayer
}

// GetPiece returns the piece on the given square. Empty squares are
// initialized with PieceNone and return the same.
func (p *Position) GetPiece(sq Square) Piece {
	return p.board[sq]
}

// PiecesBb returns the Bitboard for the given piece type of the given color.
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.piecesBb[c][pt]
}

// OccupiedAll returns a Bitboard of all pieces currently on the board.
func (p *Position) OccupiedAll() Bitboard {
	return p.occupiedBb[White] | p.occupiedBb[Black]
}

// OccupiedBb returns a Bitboard of all pieces of color c.
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.occupiedBb[c]
}

// GamePhase returns the current game phase value of the position. GamePhase
// is GamePhaseMax at the start of the game and 0 when no officers are left.
func (p *Position) GamePhase() int {
	return p.gamePhase
}

// GamePhaseFactor returns a factor between 0 and 1 reflecting the ratio
// between the actual game phase and the max game phase.
func (p *Position) GamePhaseFactor() float64 {
	return float64(p.gamePhase) / GamePhaseMax
}

// GetEnPassantSquare returns the en passant square or SqNone if not set.
func (p *Position) GetEnPassantSquare() Square {
	return p.enPassantSquare
}

// CastlingRights returns the castling rights of the position.
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// KingSquare returns the current square of the king of color c.
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// HalfMoveClock returns the position's half move clock.
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// Material returns the material value for the given color on this position.
func (p *Position) Material(c Color) Value {
	return Value(p.material[c])
}

// MaterialNonPawn returns the non pawn material value for the given color.
func (p *Position) MaterialNonPawn(c Color) Value {
	return Value(p.materialNonPawn[c])
}

// PsqMidValue returns the positional value for the given color for early
// game phases. Best used together with a game phase factor.
func (p *Position) PsqMidValue(c Color) Value {
	return Value(p.psqMidValue[c])
}

// PsqEndValue returns the positional value for the given color for later
// game phases. Best used together with a game phase factor.
func (p *Position) PsqEndValue(c Color) Value {
	return Value(p.psqEndValue[c])
}

// LastMove returns the last move made on the position or MoveNone if the
// position has no history of earlier moves.
func (p *Position) LastMove() Move {
	if p.historyCounter <= 0 {
		return MoveNone
	}
	return p.history[p.historyCounter-1].move
}

// LastCapturedPiece returns the captured piece of the last move made on the
// position, or PieceNone if the move was non-capturing or there is no history.
func (p *Position) LastCapturedPiece() Piece {
	if p.historyCounter <= 0 {
		return PieceNone
	}
	return p.history[p.historyCounter-1].capturedPiece
}

// WasCapturingMove returns true if the last move was a capturing move.
func (p *Position) WasCapturingMove() bool {
	return p.LastCapturedPiece() != PieceNone
}

// WasLegalMove reports whether the move last committed via DoMove was legal.
// It returns false if that move left the moving side's own king in check or,
// for a castling move, if the king started on or crossed an attacked square.
// Call this immediately after DoMove to decide whether to keep or undo a
// pseudo-legal move.
func (p *Position) WasLegalMove() bool {
	if p.isAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer) {
		return false
	}
	if p.historyCounter > 0 {
		move := p.history[p.historyCounter-1].move
		if move.MoveType() == Castling {
			if p.isAttacked(move.From(), p.nextPlayer) {
				return false
			}
			switch move.To() {
			case SqG1:
				return !p.isAttacked(SqF1, p.nextPlayer)
			case SqC1:
				return !p.isAttacked(SqD1, p.nextPlayer)
			case SqG8:
				return !p.isAttacked(SqF8, p.nextPlayer)
			case SqC8:
				return !p.isAttacked(SqD8, p.nextPlayer)
			}
		}
	}
	return true
}

// IsCapturingMove reports whether move, played on this position, would
// capture an opponent piece, including en passant.
func (p *Position) IsCapturingMove(move Move) bool {
	return p.occupiedBb[p.nextPlayer.Flip()].Has(move.To()) || move.MoveType() == EnPassant
}

// IsLegalMove reports whether move is legal on this position: a castling
// move must not start on, cross, or land with the king on an attacked
// square, and no move may leave the moving side's own king in check. The
// move is played and undone to evaluate this.
func (p *Position) IsLegalMove(move Move) bool {
	if move.MoveType() == Castling {
		if p.IsAttacked(move.From(), p.nextPlayer.Flip()) {
			return false
		}
		switch move.To() {
		case SqG1:
			if p.IsAttacked(SqF1, p.nextPlayer.Flip()) {
				return false
			}
		case SqC1:
			if p.IsAttacked(SqD1, p.nextPlayer.Flip()) {
				return false
			}
		case SqG8:
			if p.IsAttacked(SqF8, p.nextPlayer.Flip()) {
				return false
			}
		case SqC8:
			if p.IsAttacked(SqD8, p.nextPlayer.Flip()) {
				return false
			}
		}
	}
	p.DoMove(move)
	legal := !p.IsAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer)
	p.UndoMove()
	return legal
}

// HasCheck reports whether the side to move is currently in check. The
// result is cached per position and invalidated by DoMove/UndoMove.
func (p *Position) HasCheck() bool {
	if p.hasCheckFlag == flagTBD {
		if p.isAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip()) {
			p.hasCheckFlag = flagTrue
		} else {
			p.hasCheckFlag = flagFalse
		}
	}
	return p.hasCheckFlag == flagTrue
}

// IsAttacked reports whether sq is attacked by any piece of color by.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	return p.isAttacked(sq, by)
}

// isAttacked is the actual check-detection primitive. It is defined directly
// on piecesBb/occupiedBb rather than deferring to the movegen package to
// avoid a position<->movegen import cycle (movegen imports position).
func (p *Position) isAttacked(sq Square, by Color) bool {
	occupied := p.OccupiedAll()

	if GetAttacksBb(Knight, sq, occupied)&p.piecesBb[by][Knight] != BbZero {
		return true
	}
	if GetAttacksBb(King, sq, occupied)&p.piecesBb[by][King] != BbZero {
		return true
	}
	if GetAttacksBb(Bishop, sq, occupied)&(p.piecesBb[by][Bishop]|p.piecesBb[by][Queen]) != BbZero {
		return true
	}
	if GetAttacksBb(Rook, sq, occupied)&(p.piecesBb[by][Rook]|p.piecesBb[by][Queen]) != BbZero {
		return true
	}

	var pawnAttackers Bitboard
	if by == White {
		pawnAttackers = ShiftBitboard(sq.Bitboard(), Southwest) | ShiftBitboard(sq.Bitboard(), Southeast)
	} else {
		pawnAttackers = ShiftBitboard(sq.Bitboard(), Northwest) | ShiftBitboard(sq.Bitboard(), Northeast)
	}
	return pawnAttackers&p.piecesBb[by][Pawn] != BbZero
}
