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

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/hyperbola/position"
)

// results holds, for each depth, the expected node/capture/en-passant/check/
// checkmate counts from the standard starting position.
var results = [7][6]uint64{
	// @formatter:off
	// N       Nodes      Captures       EP     Checks     Mates
	{0, 1, 0, 0, 0, 0},
	{1, 20, 0, 0, 0, 0},
	{2, 400, 0, 0, 0, 0},
	{3, 8_902, 34, 0, 12, 0},
	{4, 197_281, 1_576, 0, 469, 8},
	{5, 4_865_609, 82_719, 258, 27_351, 347},
	{6, 119_060_324, 2_812_008, 5_248, 809_099, 10_828},
	// @formatter:on
}

func TestStandardPerft(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping perft depth sweep in short mode")
	}
	maxDepth := 4
	for i := 1; i <= maxDepth; i++ {
		var perft Perft
		perft.StartPerft(position.StartFen, i, false)
		assert.Equal(t, results[i][1], perft.Nodes)
		assert.Equal(t, results[i][2], perft.CaptureCounter)
		assert.Equal(t, results[i][3], perft.EnpassantCounter)
		assert.Equal(t, results[i][4], perft.CheckCounter)
		assert.Equal(t, results[i][5], perft.CheckMateCounter)
	}
}

func TestStandardPerftOnDemand(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping perft depth sweep in short mode")
	}
	maxDepth := 4
	for i := 1; i <= maxDepth; i++ {
		var perft Perft
		perft.StartPerft(position.StartFen, i, true)
		assert.Equal(t, results[i][1], perft.Nodes)
		assert.Equal(t, results[i][2], perft.CaptureCounter)
		assert.Equal(t, results[i][3], perft.EnpassantCounter)
		assert.Equal(t, results[i][4], perft.CheckCounter)
		assert.Equal(t, results[i][5], perft.CheckMateCounter)
	}
}

func TestPerftMulti(t *testing.T) {
	var perft Perft
	perft.StartPerftMulti(position.StartFen, 1, 3, false)
	assert.Len(t, perft.MultiResults, 3)
	assert.Equal(t, results[3][1], perft.MultiResults[2].Nodes)
}
