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

package search

import (
	"time"

	"github.com/frankkopp/hyperbola/evaluator"
	"github.com/frankkopp/hyperbola/movearray"
	"github.com/frankkopp/hyperbola/movegen"
	"github.com/frankkopp/hyperbola/position"
	. "github.com/frankkopp/hyperbola/types"
)

// searchStatus is the tri-state a recursive search node returns: ok means
// the subtree was searched to completion, poisoned means a budget was
// exceeded or the search was cancelled somewhere below and the caller must
// unwind without trusting the returned value.
type searchStatus int

const (
	searchOk searchStatus = iota
	searchPoisoned
)

// rootSearch runs one iteration of the root ply. Root moves are searched in
// the order produced by the move generator; there is no move ordering or
// principal-variation-first re-search here, matching the plain negamax
// contract the driver promises. When Limits.Moves is non-empty, the root is
// restricted to that subset (the "searchmoves" constraint of §4.5).
func (s *Search) rootSearch(p *position.Position, depth int) (Move, Value, searchStatus) {
	mg := movegen.NewMoveGen()
	moves := restrictToSearchMoves(*mg.GenerateLegalMoves(p, movegen.GenAll), s.searchLimits.Moves)
	if moves.Len() == 0 {
		s.pv[0].Clear()
		if p.HasCheck() {
			return MoveNone, -ValueCheckMate, searchOk
		}
		return MoveNone, ValueDraw, searchOk
	}

	alpha, beta := -ValueInf, ValueInf
	bestValue := -ValueInf
	bestMove := MoveNone

	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)

		p.DoMove(m)
		s.nodesVisited++
		value, status := s.search(p, depth-1, 1, -beta, -alpha)
		p.UndoMove()

		if status == searchPoisoned {
			if bestMove == MoveNone {
				return MoveNone, 0, searchPoisoned
			}
			return bestMove, bestValue, searchOk
		}
		value = -value

		if value > bestValue {
			bestValue = value
			bestMove = m
			savePV(m, s.pv[1], &s.pv[0])
		}
		if value > alpha {
			alpha = value
		}
	}

	return bestMove, bestValue, searchOk
}

// restrictToSearchMoves returns moves unchanged if allowed is empty,
// otherwise the subset of moves also present in allowed.
func restrictToSearchMoves(moves movearray.MoveArray, allowed movearray.MoveArray) movearray.MoveArray {
	if allowed.Len() == 0 {
		return moves
	}
	return *moves.FilterCopy(func(i int) bool {
		m := moves.At(i)
		for j := 0; j < allowed.Len(); j++ {
			if allowed.At(j) == m {
				return true
			}
		}
		return false
	})
}

// search is the recursive negamax core below the root. The score returned
// is always from the perspective of the side to move at p.
func (s *Search) search(p *position.Position, depth int, ply int, alpha Value, beta Value) (Value, searchStatus) {
	if s.stopConditions() {
		return 0, searchPoisoned
	}

	s.nodesVisited++
	if s.nodesVisited%s.nodeReportInterval == 0 {
		s.reportProgress(depth, ply)
	}

	if depth <= 0 {
		s.pv[ply].Clear()
		return evaluator.Evaluate(p), searchOk
	}

	mg := movegen.NewMoveGen()
	moves := mg.GenerateLegalMoves(p, movegen.GenAll)
	if moves.Len() == 0 {
		s.pv[ply].Clear()
		if p.HasCheck() {
			return -ValueCheckMate + Value(ply), searchOk
		}
		return ValueDraw, searchOk
	}

	best := -ValueInf
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)

		p.DoMove(m)
		value, status := s.search(p, depth-1, ply+1, -beta, -alpha)
		p.UndoMove()

		if status == searchPoisoned {
			return 0, searchPoisoned
		}
		value = -value

		if value > best {
			best = value
			savePV(m, s.pv[ply+1], &s.pv[ply])
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			break
		}
	}
	return best, searchOk
}

// reportProgress emits a periodic info record with depth, node count,
// nodes-per-second, elapsed time, and the score/pv of the last completed
// iteration (the current iteration isn't finished yet, so there is nothing
// honester to report mid-iteration). The sink is stdout/log unless a uci
// handler is attached.
func (s *Search) reportProgress(depth int, ply int) {
	elapsed := time.Since(s.startTime)
	nps := (s.nodesVisited * time.Second.Nanoseconds()) / (1 + elapsed.Nanoseconds())
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendInfo(out.Sprintf("depth %d seldepth %d score %s nodes %d nps %d time %d pv %s",
			depth, ply, s.reportValue.String(), s.nodesVisited, nps, elapsed.Milliseconds(), s.reportPv.StringUci()))
	} else {
		log.Debugf("info depth %d seldepth %d score %s nodes %d nps %d time %d ms pv %s",
			depth, ply, s.reportValue.String(), s.nodesVisited, nps, elapsed.Milliseconds(), s.reportPv.StringUci())
	}
}

// savePV prepends move to src and stores the result in dest. Used to build
// up the principal variation as the search unwinds back to the root.
func savePV(move Move, src movearray.MoveArray, dest *movearray.MoveArray) {
	dest.Clear()
	dest.PushBack(move)
	for i := 0; i < src.Len(); i++ {
		dest.PushBack(src.At(i))
	}
}

// copyPV returns an independent copy of src. s.pv entries are reused and
// mutated in place by later iterations/searches, so a result that outlives
// the current rootSearch call must not alias that backing array.
func copyPV(src movearray.MoveArray) movearray.MoveArray {
	dest := movearray.New(src.Len())
	for i := 0; i < src.Len(); i++ {
		dest.PushBack(src.At(i))
	}
	return dest
}
