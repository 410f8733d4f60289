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

// Package evaluator provides the default leaf evaluation function handed to
// the search driver as its `evaluate` collaborator. It has no dependency on
// search or move generation: it only reads material and piece-square values
// off a position.
package evaluator

import (
	"github.com/frankkopp/hyperbola/position"
	. "github.com/frankkopp/hyperbola/types"
)

// tempo is a small bonus for the side to move, scaled by game phase. It
// reduces evaluation swing between plies of the same line, which in turn
// helps move ordering early-exit more often.
const tempo = 30

// Evaluator wraps Evaluate for callers that want an evaluator value to pass
// around. search.Search does not take one; it calls Evaluate directly.
type Evaluator struct{}

// NewEvaluator creates a new Evaluator. Stateless; kept as a constructor to
// match the shape callers expect from other collaborators.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate scores pos from the perspective of the side to move: positive is
// better for the mover. Pure and side-effect free.
func (e *Evaluator) Evaluate(pos *position.Position) Value {
	return Evaluate(pos)
}

// Evaluate is the free-function form of (*Evaluator).Evaluate and the
// function the search calls at its leaf nodes.
func Evaluate(pos *position.Position) Value {
	gamePhaseFactor := float64(pos.GamePhase()) / float64(GamePhaseMax)

	value := material(pos) + positional(pos, gamePhaseFactor)

	if pos.NextPlayer() == Black {
		value = -value
	}

	value += Value(tempo * gamePhaseFactor)

	return value
}

func material(pos *position.Position) Value {
	return pos.Material(White) - pos.Material(Black)
}

func positional(pos *position.Position, gamePhaseFactor float64) Value {
	return Value(float64(pos.PsqMidValue(White)-pos.PsqMidValue(Black))*gamePhaseFactor +
		float64(pos.PsqEndValue(White)-pos.PsqEndValue(Black))*(1-gamePhaseFactor))
}
