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

// Package movegen contains functionality to create moves on a
// chess position. It implements several variants like
// pseudo legal move list, legal move list or on demand move
// generation of pseudo legal moves.
package movegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/frankkopp/hyperbola/assert"
	"github.com/frankkopp/hyperbola/movearray"
	"github.com/frankkopp/hyperbola/position"
	. "github.com/frankkopp/hyperbola/types"
)

// Movegen generates moves for a position. Create new instances via
//  movegen.NewMoveGen()
// A zero-value Movegen is not usable.
type Movegen struct {
	pseudoLegalMoves   movearray.MoveArray
	legalMoves         movearray.MoveArray
	onDemandMoves      movearray.MoveArray
	killerMoves        [2]Move
	pvMove             Move
	currentODStage     int
	currentIteratorKey position.Key
	pvMovePushed       bool
	takeIndex          int
}

// States for the on demand move generator
const (
	odNew = iota
	odPv
	od1
	od2
	od3
	od4
	od5
	od6
	od7
	od8
	odEnd
)

// //////////////////////////////////////////////////////
// // Public functions
// //////////////////////////////////////////////////////

// GenMode generation modes for on demand move generation
type GenMode int

// GenMode generation modes for on demand move generation
const (
	GenZero   GenMode = 0b00
	GenCap    GenMode = 0b01
	GenNonCap GenMode = 0b10
	GenAll    GenMode = 0b11
)

// NewMoveGen creates a new instance of a move generator.
func NewMoveGen() *Movegen {
	return &Movegen{
		pseudoLegalMoves:   movearray.New(MaxMoves),
		legalMoves:         movearray.New(MaxMoves),
		onDemandMoves:      movearray.New(MaxMoves),
		killerMoves:        [2]Move{MoveNone, MoveNone},
		pvMove:             MoveNone,
		currentODStage:     odNew,
		currentIteratorKey: 0,
		pvMovePushed:       false,
		takeIndex:          0,
	}
}

// GeneratePseudoLegalMoves generates pseudo moves for the next player. Does not check if
// king is left in check or passes an attacked square when castling or has been in check
// before castling. Disregards PV moves and Killer moves other than to sort them first;
// callers still need to filter for legality or use GenerateLegalMoves.
func (mg *Movegen) GeneratePseudoLegalMoves(pos *position.Position, mode GenMode) *movearray.MoveArray {
	mg.pseudoLegalMoves.Clear()
	if mode&GenCap != 0 {
		mg.generatePawnMoves(pos, GenCap, &mg.pseudoLegalMoves)
		mg.generateCastling(pos, GenCap, &mg.pseudoLegalMoves)
		mg.generateKingMoves(pos, GenCap, &mg.pseudoLegalMoves)
		mg.generateMoves(pos, GenCap, &mg.pseudoLegalMoves)
	}
	if mode&GenNonCap != 0 {
		mg.generatePawnMoves(pos, GenNonCap, &mg.pseudoLegalMoves)
		mg.generateCastling(pos, GenNonCap, &mg.pseudoLegalMoves)
		mg.generateKingMoves(pos, GenNonCap, &mg.pseudoLegalMoves)
		mg.generateMoves(pos, GenNonCap, &mg.pseudoLegalMoves)
	}
	// PV and killer moves sort first
	mg.pseudoLegalMoves.ForEach(func(i int) {
		at := mg.pseudoLegalMoves.At(i)
		switch {
		case at.MoveOf() == mg.pvMove:
			mg.pseudoLegalMoves.Set(i, at.SetValue(ValueMax))
		case at.MoveOf() == mg.killerMoves[0]:
			mg.pseudoLegalMoves.Set(i, at.SetValue(-4000))
		case at.MoveOf() == mg.killerMoves[1]:
			mg.pseudoLegalMoves.Set(i, at.SetValue(-4001))
		}
	})
	mg.pseudoLegalMoves.Sort()
	// remove internal sort value
	mg.pseudoLegalMoves.ForEach(func(i int) {
		mg.pseudoLegalMoves.Set(i, mg.pseudoLegalMoves.At(i).MoveOf())
	})
	return &mg.pseudoLegalMoves
}

// GenerateLegalMoves generates legal moves for the next player by generating
// pseudo legal moves and filtering out any that leave the king in check or,
// for castling, cross an attacked square.
func (mg *Movegen) GenerateLegalMoves(pos *position.Position, mode GenMode) *movearray.MoveArray {
	mg.GeneratePseudoLegalMoves(pos, mode)
	legal := mg.pseudoLegalMoves.FilterCopy(func(i int) bool {
		return pos.IsLegalMove(mg.pseudoLegalMoves.At(i))
	})
	mg.legalMoves = *legal
	return &mg.legalMoves
}

// HasLegalMove determines if the position has at least one legal move, without
// generating or sorting a full move list. Checked roughly in order of most to
// least likely to find a move quickly: king, pawns, officers, en passant.
func (mg *Movegen) HasLegalMove(pos *position.Position) bool {
	nextPlayer := pos.NextPlayer()
	nextPlayerBb := pos.OccupiedBb(nextPlayer)

	// king
	kingSquare := pos.KingSquare(nextPlayer)
	tmpMoves := GetPseudoAttacks(King, kingSquare) &^ nextPlayerBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		if pos.IsLegalMove(CreateMove(kingSquare, toSquare, Normal, PtNone)) {
			return true
		}
	}

	myPawns := pos.PiecesBb(nextPlayer, Pawn)
	opponentBb := pos.OccupiedBb(nextPlayer.Flip())

	// pawn captures to the west
	tmpMoves = ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North+West) & opponentBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North + East)
		if pos.IsLegalMove(CreateMove(fromSquare, toSquare, Normal, PtNone)) {
			return true
		}
	}
	// pawn captures to the east
	tmpMoves = ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North+East) & opponentBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North + West)
		if pos.IsLegalMove(CreateMove(fromSquare, toSquare, Normal, PtNone)) {
			return true
		}
	}

	occupiedBb := pos.OccupiedAll()

	// pawn single step pushes; double steps are redundant for this check
	tmpMoves = ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North) &^ occupiedBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North)
		if pos.IsLegalMove(CreateMove(fromSquare, toSquare, Normal, PtNone)) {
			return true
		}
	}

	// officers
	for pt := Knight; pt <= Queen; pt++ {
		pieces := pos.PiecesBb(nextPlayer, pt)
		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			moves := GetPseudoAttacks(pt, fromSquare) &^ nextPlayerBb
			for moves != 0 {
				toSquare := moves.PopLsb()
				if pt > Knight { // sliding pieces can be blocked
					if Intermediate(fromSquare, toSquare)&occupiedBb != 0 {
						continue
					}
				}
				if pos.IsLegalMove(CreateMove(fromSquare, toSquare, Normal, PtNone)) {
					return true
				}
			}
		}
	}

	// en passant
	enPassantSquare := pos.GetEnPassantSquare()
	if enPassantSquare != SqNone {
		tmpMoves = ShiftBitboard(enPassantSquare.Bb(), Direction(nextPlayer.Flip().MoveDirection())*North+West) & myPawns
		if tmpMoves != 0 {
			fromSquare := tmpMoves.PopLsb()
			toSq := fromSquare.To(Direction(nextPlayer.MoveDirection())*North + East)
			if pos.IsLegalMove(CreateMove(fromSquare, toSq, EnPassant, PtNone)) {
				return true
			}
		}
		tmpMoves = ShiftBitboard(enPassantSquare.Bb(), Direction(nextPlayer.Flip().MoveDirection())*North+East) & myPawns
		if tmpMoves != 0 {
			fromSquare := tmpMoves.PopLsb()
			toSq := fromSquare.To(Direction(nextPlayer.MoveDirection())*North + West)
			if pos.IsLegalMove(CreateMove(fromSquare, toSq, EnPassant, PtNone)) {
				return true
			}
		}
	}

	return false
}

// GetNextMove returns the next move for pos, generating moves in phases
// (PV move, captures, non-captures) so that search can start acting on the
// most promising moves before the full list exists. Calling this again on a
// different position resets the iterator automatically; to reuse it on the
// same position call ResetOnDemand first.
func (mg *Movegen) GetNextMove(pos *position.Position, mode GenMode) Move {
	if pos.ZobristKey() != mg.currentIteratorKey {
		mg.onDemandMoves.Clear()
		mg.currentODStage = odNew
		mg.pvMovePushed = false
		mg.takeIndex = 0
		mg.currentIteratorKey = pos.ZobristKey()
	}

	if mg.onDemandMoves.Len() == 0 {
		mg.fillOnDemandMoveList(pos, mode)
	}

	if mg.onDemandMoves.Len() != 0 {
		if mg.currentODStage != od1 &&
			mg.pvMovePushed &&
			mg.onDemandMoves.At(mg.takeIndex).MoveOf() == mg.pvMove.MoveOf() {

			mg.takeIndex++
			mg.pvMovePushed = false

			if mg.takeIndex >= mg.onDemandMoves.Len() {
				mg.takeIndex = 0
				mg.onDemandMoves.Clear()
				mg.fillOnDemandMoveList(pos, mode)
				if mg.onDemandMoves.Len() == 0 {
					return MoveNone
				}
			}
		}

		move := mg.onDemandMoves.At(mg.takeIndex).MoveOf()
		mg.takeIndex++
		if mg.takeIndex >= mg.onDemandMoves.Len() {
			mg.takeIndex = 0
			mg.onDemandMoves.Clear()
		}
		return move
	}

	mg.takeIndex = 0
	mg.pvMovePushed = false
	return MoveNone
}

// ResetOnDemand resets the on demand move generator to start fresh, also
// clearing killer and PV moves.
func (mg *Movegen) ResetOnDemand() {
	mg.onDemandMoves.Clear()
	mg.currentODStage = odNew
	mg.currentIteratorKey = 0
	mg.pvMove = MoveNone
	mg.pvMovePushed = false
	mg.takeIndex = 0
	mg.killerMoves = [2]Move{MoveNone, MoveNone}
}

// SetPvMove sets a move that GetNextMove should return first.
func (mg *Movegen) SetPvMove(move Move) {
	mg.pvMove = move.MoveOf()
}

// StoreKiller records a killer move for the on demand generator to prioritize
// as soon as it is generated.
func (mg *Movegen) StoreKiller(move Move) {
	moveOf := move.MoveOf()
	switch {
	case mg.killerMoves[0] == moveOf:
		return
	case mg.killerMoves[1] == moveOf:
		mg.killerMoves[1] = mg.killerMoves[0]
		mg.killerMoves[0] = moveOf
	default:
		mg.killerMoves[1] = mg.killerMoves[0]
		mg.killerMoves[0] = moveOf
	}
}

// PvMove returns the current PV move.
func (mg *Movegen) PvMove() Move {
	return mg.pvMove
}

// KillerMoves returns a pointer to the two stored killer moves.
func (mg *Movegen) KillerMoves() *[2]Move {
	return &mg.killerMoves
}

var regexUciMove = regexp.MustCompile("([a-h][1-8][a-h][1-8])([NBRQnbrq])?")

// GetMoveFromUci generates all legal moves for posPtr and returns the one
// matching the given UCI move string, or MoveNone if there is no match. Not
// efficient; intended for parsing input, not for search hot paths.
func (mg *Movegen) GetMoveFromUci(posPtr *position.Position, uciMove string) Move {
	matches := regexUciMove.FindStringSubmatch(uciMove)
	if matches == nil {
		return MoveNone
	}
	movePart := matches[1]
	promotionPart := ""
	if len(matches) == 3 {
		promotionPart = strings.ToUpper(matches[2])
	}

	legal := mg.GenerateLegalMoves(posPtr, GenAll)
	for i := 0; i < legal.Len(); i++ {
		m := legal.At(i)
		if m.StringUci() == movePart+promotionPart {
			return m
		}
	}
	return MoveNone
}

var regexSanMove = regexp.MustCompile("([NBRQK])?([a-h])?([1-8])?x?([a-h][1-8]|O-O-O|O-O)(=?([NBRQ]))?([!?+#]*)?")

// GetMoveFromSan generates all legal moves for posPtr and returns the one
// matching the given SAN move string, or MoveNone if there is no match. Not
// efficient; intended for parsing input, not for search hot paths.
func (mg *Movegen) GetMoveFromSan(posPtr *position.Position, sanMove string) Move {
	matches := regexSanMove.FindStringSubmatch(sanMove)
	if matches == nil {
		return MoveNone
	}

	pieceType := matches[1]
	disambFile := matches[2]
	disambRank := matches[3]
	toSquare := matches[4]
	promotion := matches[6]

	movesFound := 0
	moveFromSAN := MoveNone

	legal := mg.GenerateLegalMoves(posPtr, GenAll)
	for i := 0; i < legal.Len(); i++ {
		genMove := legal.At(i)

		if genMove.MoveType() == Castling {
			kingToSquare := genMove.To()
			var castlingString string
			switch kingToSquare {
			case SqG1, SqG8:
				castlingString = "O-O"
			case SqC1, SqC8:
				castlingString = "O-O-O"
			default:
				log.Errorf("move type Castling but unexpected to square %s", kingToSquare.String())
				continue
			}
			if castlingString == toSquare {
				moveFromSAN = genMove
				movesFound++
			}
			continue
		}

		if genMove.To().String() != toSquare {
			continue
		}

		legalPt := posPtr.GetPiece(genMove.From()).TypeOf()
		legalPtChar := legalPt.Char()
		if (len(pieceType) == 0 || legalPtChar != pieceType) &&
			(len(pieceType) != 0 || legalPt != Pawn) {
			continue
		}
		if len(disambFile) != 0 && genMove.From().FileOf().String() != disambFile {
			continue
		}
		if len(disambRank) != 0 && genMove.From().RankOf().String() != disambRank {
			continue
		}
		if (len(promotion) != 0 && genMove.PromotionType().Char() != promotion) ||
			(len(promotion) == 0 && genMove.MoveType() == Promotion) {
			continue
		}

		moveFromSAN = genMove
		movesFound++
	}

	if movesFound > 1 {
		log.Warningf("SAN move %s is ambiguous (%d matches) on %s", sanMove, movesFound, posPtr.StringFen())
	} else if movesFound == 0 || !moveFromSAN.IsValid() {
		log.Warningf("SAN move not valid: %s not found on position %s", sanMove, posPtr.StringFen())
	} else {
		return moveFromSAN
	}
	return MoveNone
}

// ValidateMove reports whether move is a legal move on p.
func (mg *Movegen) ValidateMove(p *position.Position, move Move) bool {
	if move == MoveNone {
		return false
	}
	ml := mg.GenerateLegalMoves(p, GenAll)
	for i := 0; i < ml.Len(); i++ {
		if move.MoveOf() == ml.At(i) {
			return true
		}
	}
	return false
}

func (mg *Movegen) String() string {
	return fmt.Sprintf("Movegen: { OnDemand Stage: %d, PV Move: %s, Killer: %s %s }",
		mg.currentODStage, mg.pvMove.String(), mg.killerMoves[0].String(), mg.killerMoves[1].String())
}

// //////////////////////////////////////////////////////
// // Private functions
// //////////////////////////////////////////////////////

// fillOnDemandMoveList drives the on demand move generator through its
// phases, roughly ordered from most to least promising: PV move, captures,
// non-captures, each pass sorted and with killers bumped to the front.
func (mg *Movegen) fillOnDemandMoveList(p *position.Position, mode GenMode) {
	for mg.onDemandMoves.Len() == 0 && mg.currentODStage < odEnd {
		switch mg.currentODStage {
		case odNew:
			mg.currentODStage = odPv
			fallthrough
		case odPv:
			if mg.pvMove != MoveNone {
				switch mode {
				case GenAll:
					mg.pvMovePushed = true
					mg.onDemandMoves.PushBack(mg.pvMove)
				case GenCap:
					if p.IsCapturingMove(mg.pvMove) {
						mg.pvMovePushed = true
						mg.onDemandMoves.PushBack(mg.pvMove)
					}
				case GenNonCap:
					if !p.IsCapturingMove(mg.pvMove) {
						mg.pvMovePushed = true
						mg.onDemandMoves.PushBack(mg.pvMove)
					}
				}
			}
			if mode&GenCap != 0 {
				mg.currentODStage = od1
			} else {
				mg.currentODStage = od4
			}
		case od1:
			mg.generatePawnMoves(p, GenCap, &mg.onDemandMoves)
			mg.currentODStage = od2
		case od2:
			mg.generateMoves(p, GenCap, &mg.onDemandMoves)
			mg.currentODStage = od3
		case od3:
			mg.generateKingMoves(p, GenCap, &mg.onDemandMoves)
			mg.currentODStage = od4
		case od4:
			if mode&GenNonCap != 0 {
				mg.currentODStage = od5
			} else {
				mg.currentODStage = odEnd
			}
		case od5:
			mg.generatePawnMoves(p, GenNonCap, &mg.onDemandMoves)
			mg.pushKiller(&mg.onDemandMoves)
			mg.currentODStage = od6
		case od6:
			mg.generateCastling(p, GenNonCap, &mg.onDemandMoves)
			mg.pushKiller(&mg.onDemandMoves)
			mg.currentODStage = od7
		case od7:
			mg.generateMoves(p, GenNonCap, &mg.onDemandMoves)
			mg.pushKiller(&mg.onDemandMoves)
			mg.currentODStage = od8
		case od8:
			mg.generateKingMoves(p, GenNonCap, &mg.onDemandMoves)
			mg.pushKiller(&mg.onDemandMoves)
			mg.currentODStage = odEnd
		}
		if mg.onDemandMoves.Len() > 0 {
			mg.onDemandMoves.Sort()
		}
	}
}

// pushKiller re-sorts killer moves to the front of m once they actually
// appear in the generated list. Killers are stored per ply, so a killer may
// not be a legal (or even pseudo-legal) move in the current position; we
// only act on it once the normal generation phases have produced it.
func (mg *Movegen) pushKiller(m *movearray.MoveArray) {
	m.ForEach(func(i int) {
		move := m.At(i)
		if mg.killerMoves[1] == move.MoveOf() {
			m.Set(i, move.SetValue(-4001))
		}
		if mg.killerMoves[0] == move.MoveOf() {
			m.Set(i, move.SetValue(-4000))
		}
	})
}

func (mg *Movegen) generatePawnMoves(pos *position.Position, mode GenMode, ml *movearray.MoveArray) {

	nextPlayer := pos.NextPlayer()
	myPawns := pos.PiecesBb(nextPlayer, Pawn)
	oppPieces := pos.OccupiedBb(nextPlayer.Flip())
	gamePhase := pos.GamePhase()
	piece := MakePiece(nextPlayer, Pawn)

	// captures
	if mode&GenCap != 0 {

		// This algorithm shifts the own pawn bitboard in the direction of pawn captures
		// and ANDs it with the opponents pieces. With this we get all possible captures
		// and can easily create the moves by using a loop over all captures and using
		// the backward shift for the from-Square.
		// All moves get sort values so that sort order should be:
		//   captures: most value victim least value attacker - promotion piece value
		//   non captures: killer, promotions, castling, normal moves (position value)
		// Values for sorting are descending - the most valuable move has the highest value.

		var tmpCaptures, promCaptures Bitboard

		for _, dir := range []Direction{West, East} {
			tmpCaptures = ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North+dir) & oppPieces
			promCaptures = tmpCaptures & nextPlayer.PromotionRankBb()
			for promCaptures != 0 {
				toSquare := promCaptures.PopLsb()
				fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North - dir)
				value := Value(pos.GetPiece(toSquare).ValueOf()-pos.GetPiece(fromSquare).ValueOf()) +
					PosValue(piece, toSquare, gamePhase)
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Queen, value+Value(Queen.ValueOf())))
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Knight, value+Value(Knight.ValueOf())))
				// rook and bishop promotions are usually redundant to queen promotion
				// except in stalemate situations, so give them lower sort order
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Rook, value+Value(Rook.ValueOf())-Value(2000)))
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Bishop, value+Value(Bishop.ValueOf())-Value(2000)))
			}
			tmpCaptures &= ^nextPlayer.PromotionRankBb()
			for tmpCaptures != 0 {
				toSquare := tmpCaptures.PopLsb()
				fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection())*North - dir)
				value := Value(pos.GetPiece(toSquare).ValueOf()-pos.GetPiece(fromSquare).ValueOf()) +
					PosValue(piece, toSquare, gamePhase)
				ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
			}
		}

		// en passant captures
		enPassantSquare := pos.GetEnPassantSquare()
		if enPassantSquare != SqNone {
			for _, dir := range []Direction{West, East} {
				tmpCaptures = ShiftBitboard(enPassantSquare.Bb(),
					Direction(nextPlayer.Flip().MoveDirection())*North+dir) & myPawns
				if tmpCaptures != 0 {
					fromSquare := tmpCaptures.PopLsb()
					toSquare := fromSquare.To(Direction(nextPlayer.MoveDirection())*North - dir)
					value := PosValue(piece, toSquare, gamePhase)
					ml.PushBack(CreateMoveValue(fromSquare, toSquare, EnPassant, PtNone, value))
				}
			}
		}
	}

	// non captures
	if mode&GenNonCap != 0 {

		// Move pawns one step forward into unoccupied squares, then move
		// those now on the double-step rank one further forward to find
		// double pushes.

		tmpMoves := ShiftBitboard(myPawns, Direction(nextPlayer.MoveDirection())*North) & ^pos.OccupiedAll()
		tmpMovesDouble := ShiftBitboard(tmpMoves&nextPlayer.PawnDoubleRank(), Direction(nextPlayer.MoveDirection())*North) & ^pos.OccupiedAll()

		promMoves := tmpMoves & nextPlayer.PromotionRankBb()
		for promMoves != 0 {
			toSquare := promMoves.PopLsb()
			fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North)
			value := Value(-10_000)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Queen, value+Value(Queen.ValueOf())))
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Knight, value+Value(Knight.ValueOf())))
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Rook, value+Value(Rook.ValueOf())-Value(2000)))
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Promotion, Bishop, value+Value(Bishop.ValueOf())-Value(2000)))
		}
		for tmpMovesDouble != 0 {
			toSquare := tmpMovesDouble.PopLsb()
			fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North).
				To(Direction(nextPlayer.Flip().MoveDirection()) * North)
			value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}
		tmpMoves &= ^nextPlayer.PromotionRankBb()
		for tmpMoves != 0 {
			toSquare := tmpMoves.PopLsb()
			fromSquare := toSquare.To(Direction(nextPlayer.Flip().MoveDirection()) * North)
			value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}
	}
}

func (mg *Movegen) generateCastling(pos *position.Position, mode GenMode, ml *movearray.MoveArray) {
	nextPlayer := pos.NextPlayer()
	occupiedBB := pos.OccupiedAll()

	// pseudo castling - does not check for passing through an attacked
	// square or being in check; IsLegalMove filters that afterwards.

	if mode&GenNonCap != 0 && pos.CastlingRights() != CastlingNone {
		cr := pos.CastlingRights()
		if nextPlayer == White {
			if cr.Has(CastlingWhiteOO) && Intermediate(SqE1, SqH1)&occupiedBB == 0 {
				if assert.DEBUG {
					assert.Assert(pos.KingSquare(White) == SqE1, "MoveGen Castling: White King not on e1")
					assert.Assert(pos.GetPiece(SqH1) == WhiteRook, "MoveGen Castling: White Rook not on h1")
				}
				ml.PushBack(CreateMoveValue(SqE1, SqG1, Castling, PtNone, Value(-5000)))
			}
			if cr.Has(CastlingWhiteOOO) && Intermediate(SqE1, SqA1)&occupiedBB == 0 {
				if assert.DEBUG {
					assert.Assert(pos.KingSquare(White) == SqE1, "MoveGen Castling: White King not on e1")
					assert.Assert(pos.GetPiece(SqA1) == WhiteRook, "MoveGen Castling: White Rook not on a1")
				}
				ml.PushBack(CreateMoveValue(SqE1, SqC1, Castling, PtNone, Value(-5000)))
			}
		} else {
			if cr.Has(CastlingBlackOO) && Intermediate(SqE8, SqH8)&occupiedBB == 0 {
				if assert.DEBUG {
					assert.Assert(pos.KingSquare(Black) == SqE8, "MoveGen Castling: Black King not on e8")
					assert.Assert(pos.GetPiece(SqH8) == BlackRook, "MoveGen Castling: Black Rook not on h8")
				}
				ml.PushBack(CreateMoveValue(SqE8, SqG8, Castling, PtNone, Value(-5000)))
			}
			if cr.Has(CastlingBlackOOO) && Intermediate(SqE8, SqA8)&occupiedBB == 0 {
				if assert.DEBUG {
					assert.Assert(pos.KingSquare(Black) == SqE8, "MoveGen Castling: Black King not on e8")
					assert.Assert(pos.GetPiece(SqA8) == BlackRook, "MoveGen Castling: Black Rook not on a8")
				}
				ml.PushBack(CreateMoveValue(SqE8, SqC8, Castling, PtNone, Value(-5000)))
			}
		}
	}
}

func (mg *Movegen) generateKingMoves(pos *position.Position, mode GenMode, ml *movearray.MoveArray) {
	nextPlayer := pos.NextPlayer()
	piece := MakePiece(nextPlayer, King)
	gamePhase := pos.GamePhase()
	kingSquareBb := pos.PiecesBb(nextPlayer, King)
	if assert.DEBUG {
		assert.Assert(kingSquareBb.PopCount() == 1,
			"Chess always needs exactly one king. Found=%d ", kingSquareBb.PopCount())
	}
	fromSquare := kingSquareBb.PopLsb()

	// pseudo attacks include all moves no matter if the king would be in check
	pseudoMoves := GetPseudoAttacks(King, fromSquare)

	if mode&GenCap != 0 {
		captures := pseudoMoves & pos.OccupiedBb(nextPlayer.Flip())
		for captures != 0 {
			toSquare := captures.PopLsb()
			value := Value(pos.GetPiece(toSquare).ValueOf()-pos.GetPiece(fromSquare).ValueOf()) +
				PosValue(piece, toSquare, gamePhase)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}
	}

	if mode&GenNonCap != 0 {
		nonCaptures := pseudoMoves &^ pos.OccupiedAll()
		for nonCaptures != 0 {
			toSquare := nonCaptures.PopLsb()
			value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
			ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
		}
	}
}

// generateMoves generates knight, bishop, rook and queen moves. Candidate
// target squares come from GetPseudoAttacks on an otherwise empty board;
// sliding pieces then need an Intermediate() blocker check per target
// square, knights do not.
func (mg *Movegen) generateMoves(pos *position.Position, mode GenMode, ml *movearray.MoveArray) {
	nextPlayer := pos.NextPlayer()
	gamePhase := pos.GamePhase()
	occupiedBb := pos.OccupiedAll()

	for pt := Knight; pt <= Queen; pt++ {
		pieces := pos.PiecesBb(nextPlayer, pt)
		piece := MakePiece(nextPlayer, pt)

		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			pseudoMoves := GetPseudoAttacks(pt, fromSquare)

			if mode&GenCap != 0 {
				captures := pseudoMoves & pos.OccupiedBb(nextPlayer.Flip())
				for captures != 0 {
					toSquare := captures.PopLsb()
					if pt > Knight && Intermediate(fromSquare, toSquare)&occupiedBb != 0 {
						continue
					}
					value := Value(pos.GetPiece(toSquare).ValueOf()-pos.GetPiece(fromSquare).ValueOf()) +
						PosValue(piece, toSquare, gamePhase)
					ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
				}
			}

			if mode&GenNonCap != 0 {
				nonCaptures := pseudoMoves &^ occupiedBb
				for nonCaptures != 0 {
					toSquare := nonCaptures.PopLsb()
					if pt > Knight && Intermediate(fromSquare, toSquare)&occupiedBb != 0 {
						continue
					}
					value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
					ml.PushBack(CreateMoveValue(fromSquare, toSquare, Normal, PtNone, value))
				}
			}
		}
	}
}
