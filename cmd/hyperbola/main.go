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

// Command hyperbola drives the move generator and search core from the
// command line: perft node counts and a plain depth/time limited search,
// both over a FEN starting position. It has no UCI protocol front-end.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/frankkopp/hyperbola/config"
	"github.com/frankkopp/hyperbola/movegen"
	"github.com/frankkopp/hyperbola/position"
	"github.com/frankkopp/hyperbola/search"
)

func main() {
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	fen := flag.String("fen", position.StartFen, "fen position to run perft or search from")
	perftDepth := flag.Int("perft", 0, "run perft to the given depth on -fen and exit")
	onDemand := flag.Bool("ondemand", false, "use the on-demand move generator for perft")
	searchDepth := flag.Int("depth", 0, "run a depth-limited search on -fen and exit")
	searchTime := flag.Duration("movetime", 0, "run a time-limited search on -fen and exit, e.g. 5s")
	cpuProfile := flag.Bool("profile", false, "enable CPU profiling, writes cpu.pprof to the working directory")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	config.File = *configFile
	config.Setup()

	switch {
	case *perftDepth > 0:
		var p movegen.Perft
		p.StartPerft(*fen, *perftDepth, *onDemand)
	case *searchDepth > 0 || *searchTime > 0:
		runSearch(*fen, *searchDepth, *searchTime)
	default:
		fmt.Println("nothing to do: pass -perft, -depth or -movetime")
		os.Exit(1)
	}
}

func runSearch(fen string, depth int, moveTime time.Duration) {
	p := position.NewPositionFen(fen)
	s := search.NewSearch()
	sl := search.NewSearchLimits()
	if depth > 0 {
		sl.Depth = depth
	}
	if moveTime > 0 {
		sl.TimeControl = true
		sl.MoveTime = moveTime
	}
	s.StartSearch(*p, *sl)
	s.WaitWhileSearching()
	result := s.LastSearchResult()
	fmt.Println(result.String())
}
