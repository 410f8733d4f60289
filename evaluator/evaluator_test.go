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

package evaluator

import (
	"os"
	"path"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/hyperbola/config"
	"github.com/frankkopp/hyperbola/position"
)

// make tests run in the project's root directory so config.File resolves
func init() {
	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
}

func TestMain(m *testing.M) {
	config.Setup()
	os.Exit(m.Run())
}

func TestStartPosEvalIsJustTempo(t *testing.T) {
	p := position.NewPosition()
	v := Evaluate(p)
	// material and positional terms cancel by symmetry; only the side to
	// move's tempo bonus remains.
	assert.EqualValues(t, tempo, v)
}

func TestMirroredPositionIsJustTempo(t *testing.T) {
	p := position.NewPositionFen("r1bq1rk1/pppp1pp1/2n2n1p/1B2p3/1b2P3/2N2N1P/PPPP1PP1/R1BQ1RK1 w - - 0 1")
	e := NewEvaluator()
	assert.EqualValues(t, tempo, e.Evaluate(p))
}

func TestMaterialImbalanceFavorsSideUp(t *testing.T) {
	// white is missing its queen: black should be clearly ahead from its
	// own perspective once it is black to move.
	p := position.NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNB1KBNR b KQkq - 0 1")
	v := Evaluate(p)
	assert.Greater(t, int(v), 0)
}
