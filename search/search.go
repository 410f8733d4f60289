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

// Package search implements the negamax alpha-beta search driver: iterative
// deepening over a hard depth/node/time budget, with cooperative
// cancellation polled at every recursive node. It has no opening book,
// transposition table or parallel workers; those are explicit non-goals of
// this engine core.
package search

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/hyperbola/config"
	"github.com/frankkopp/hyperbola/logging"
	"github.com/frankkopp/hyperbola/movearray"
	"github.com/frankkopp/hyperbola/position"
	. "github.com/frankkopp/hyperbola/types"
	"github.com/frankkopp/hyperbola/uciInterface"
	"github.com/frankkopp/hyperbola/util"
)

var out = message.NewPrinter(language.German)
var log = logging.GetLog("search")

// Search represents the data structure for a chess engine search.
// Create new instance with NewSearch().
type Search struct {
	uciHandlerPtr  uciInterface.UciDriver
	initSemaphore  *semaphore.Weighted
	isRunning      *semaphore.Weighted
	timerWaitGroup sync.WaitGroup

	// previous search
	lastSearchResult *Result

	// current search
	stopFlag           bool
	startTime          time.Time
	hasResult          bool
	currentPosition    *position.Position
	searchLimits       *Limits
	timeLimit          time.Duration
	extraTime          time.Duration
	nodesVisited       int64
	nodeReportInterval int64
	curDepth           int
	curExtraDepth      int
	statistics         Statistics

	// pv[ply] holds the best continuation found so far at that ply of the
	// node currently being searched; savePV rebuilds pv[ply] from pv[ply+1]
	// each time a move improves best at ply. reportValue/reportPv are a
	// snapshot of the root pv/score taken at the end of the last fully
	// completed iterative-deepening iteration, for honest mid-search
	// progress reports.
	pv          []movearray.MoveArray
	reportValue Value
	reportPv    movearray.MoveArray
}

// //////////////////////////////////////////////////////
// // Public
// //////////////////////////////////////////////////////

// NewSearch creates a new Search instance. Until a uci handler is set with
// SetUciHandler all output will be sent to the search log.
func NewSearch() *Search {
	return &Search{
		initSemaphore: semaphore.NewWeighted(int64(1)),
		isRunning:     semaphore.NewWeighted(int64(1)),
	}
}

// NewGame resets the search to be ready for a different game.
func (s *Search) NewGame() {
	s.lastSearchResult = nil
	s.hasResult = false
}

// StartSearch starts the search on the given position with the given search
// limits. Search can be stopped with StopSearch(). Search status can be
// checked with IsSearching(). This takes a copy of the position and the
// search limits.
func (s *Search) StartSearch(p position.Position, sl Limits) {
	// acquire init phase lock
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.searchLimits = &sl
	s.currentPosition = &p
	go s.run(&p, &sl)
	// wait until search is running and initialization is done before
	// returning
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
}

// StopSearch stops a running search as quickly as possible. The search stops
// gracefully and a result will be sent to the uci handler if one is set.
func (s *Search) StopSearch() {
	s.stopFlag = true
	s.WaitWhileSearching()
}

// IsSearching checks if search is running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching checks if search is running and blocks until search has
// stopped.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// SetUciHandler sets the UCI handler to communicate with the UCI user
// interface. If not set output will be logged instead.
func (s *Search) SetUciHandler(uciHandler uciInterface.UciDriver) {
	s.uciHandlerPtr = uciHandler
}

// GetUciHandlerPtr returns the current UciHandler or nil if none is set.
func (s *Search) GetUciHandlerPtr() uciInterface.UciDriver {
	return s.uciHandlerPtr
}

// IsReady signals the uciHandler that the search is ready. Part of the UCI
// protocol handshake to make sure the engine is initialized before commands
// arrive.
func (s *Search) IsReady() {
	s.initialize()
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendReadyOk()
	} else {
		log.Debug("uci >> readyok")
	}
}

// LastSearchResult returns a copy of the last search result.
func (s *Search) LastSearchResult() Result {
	return *s.lastSearchResult
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// run is called by StartSearch() in a separate goroutine. It drives
// iterative deepening until a search limit is reached or the search has
// been stopped by StopSearch().
func (s *Search) run(p *position.Position, sl *Limits) {
	if !s.isRunning.TryAcquire(1) {
		log.Error("Search already running")
		return
	}
	defer s.isRunning.Release(1)

	s.startTime = time.Now()
	s.initialize()
	s.hasResult = false
	s.stopFlag = false
	s.nodesVisited = 0
	s.curDepth = 0
	s.curExtraDepth = 0

	s.setupSearchLimits(p, sl)
	if s.searchLimits.TimeControl {
		s.startTimer()
	}

	// release the init phase lock to signal the calling goroutine waiting in
	// StartSearch() to return
	s.initSemaphore.Release(1)

	searchResult := s.iterativeDeepening(p)

	// If we arrive here and the search is not stopped it means that the
	// search finished before being stopped or ponderhit; wait for that
	// signal before reporting.
	if !s.stopFlag && (s.searchLimits.Ponder || s.searchLimits.Infinite) {
		for !s.stopFlag && (s.searchLimits.Ponder || s.searchLimits.Infinite) {
			time.Sleep(5 * time.Millisecond)
		}
	}

	searchResult.SearchTime = time.Since(s.startTime)
	searchResult.Nodes = s.nodesVisited

	s.sendResult(searchResult)
	s.lastSearchResult = searchResult
	s.hasResult = true

	log.Info(out.Sprintf("Search finished after %d ms ", searchResult.SearchTime.Milliseconds()))
	log.Info(out.Sprintf("Search depth was %d(%d) with %d nodes visited. NPS = %d nps",
		s.curDepth, s.curExtraDepth, s.nodesVisited,
		(s.nodesVisited*time.Second.Nanoseconds())/(1+searchResult.SearchTime.Nanoseconds())))
	log.Infof("Search result: %s", searchResult.String())

	s.stopFlag = true
}

// iterativeDeepening repeatedly calls rootSearch at increasing depths,
// keeping the result of the last iteration. When a deeper iteration is
// cancelled partway through, the best of the root moves it completed
// replaces the previous result; the previous iteration's result is kept only
// if no root move of the cancelled iteration completed. A Mate constraint
// additionally caps the depth at one ply beyond the mate distance.
func (s *Search) iterativeDeepening(p *position.Position) *Result {
	result := &Result{BestMove: MoveNone, BestValue: ValueNA}

	maxDepth := s.searchLimits.Depth
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}
	if s.searchLimits.Mate > 0 {
		// search() only checks for a terminal zero-move position (the mate
		// itself) while its own depth budget is still above zero; one extra
		// ply of root depth is needed for that check to fire exactly at the
		// node Mate plies from the root, rather than falling back to a
		// static eval one ply too early.
		mateDepth := s.searchLimits.Mate + 1
		if mateDepth < maxDepth {
			maxDepth = mateDepth
		}
	}

	for depth := 1; depth <= maxDepth; depth++ {
		s.curDepth = depth

		bestMove, bestValue, status := s.rootSearch(p, depth)
		if status == searchPoisoned {
			break
		}

		result.BestMove = bestMove
		result.BestValue = bestValue
		result.SearchDepth = depth
		result.Pv = copyPV(s.pv[0])

		s.reportValue = bestValue
		s.reportPv = result.Pv

		if s.stopConditions() {
			break
		}
	}
	result.Cancelled = s.stopFlag

	if s.searchLimits.Mate > 0 && !bestValueIsMate(result.BestValue, s.searchLimits.Mate) {
		result.BestMove = MoveNone
	}

	return result
}

// bestValueIsMate reports whether v is a forced mate found within
// withinPlies plies, regardless of which side is being mated: a losing
// mate score is just as valid a "found the forced mate" answer as a
// winning one, since the distance to ValueCheckMate is symmetric in |v|.
func bestValueIsMate(v Value, withinPlies int) bool {
	if !v.IsCheckMateValue() {
		return false
	}
	distance := int(ValueCheckMate) - util.Abs(int(v))
	return distance <= withinPlies
}

// initialize sets up any potentially time consuming setup tasks. Can be
// called several times without doing initialization again.
func (s *Search) initialize() {
	s.nodeReportInterval = int64(config.Settings.Search.NodeReportInterval)
	if s.nodeReportInterval <= 0 {
		s.nodeReportInterval = 10_000
	}

	if s.pv == nil {
		s.pv = make([]movearray.MoveArray, MaxDepth+2)
		for i := range s.pv {
			s.pv[i] = movearray.New(MaxDepth + 1)
		}
	}
	for i := range s.pv {
		s.pv[i].Clear()
	}
	s.reportValue = ValueNA
	s.reportPv = movearray.New(0)
}

func (s *Search) stopConditions() bool {
	if s.stopFlag {
		return true
	}
	if s.searchLimits.Nodes > 0 && s.nodesVisited >= s.searchLimits.Nodes {
		s.stopFlag = true
	}
	if s.searchLimits.TimeControl && time.Since(s.startTime) >= s.timeLimit+s.extraTime {
		s.stopFlag = true
	}
	return s.stopFlag
}

func (s *Search) setupSearchLimits(position *position.Position, sl *Limits) {
	if sl.Infinite {
		log.Debug("Search mode: Infinite")
	}
	if sl.Ponder {
		log.Debug("Search mode: Ponder")
	}
	if sl.Mate > 0 {
		log.Debugf("Search mode: Search for mate in %d", sl.Mate)
	}
	if sl.TimeControl {
		s.timeLimit = s.setupTimeControl(position, sl)
		s.extraTime = 0
		if sl.MoveTime > 0 {
			log.Debugf("Search mode: Time controlled: Time per move %d ms", sl.MoveTime.Milliseconds())
		} else {
			log.Debug(out.Sprintf("Search mode: Time controlled: White = %d ms (inc %d ms) Black = %d ms (inc %d ms) Moves to go: %d",
				sl.WhiteTime.Milliseconds(), sl.WhiteInc.Milliseconds(),
				sl.BlackTime.Milliseconds(), sl.BlackInc.Milliseconds(),
				sl.MovesToGo))
			log.Debug(out.Sprintf("Search mode: Time limit     : %d ms", s.timeLimit.Milliseconds()))
		}
	} else {
		log.Debug("Search mode: No time control")
	}
	if sl.Depth > 0 {
		log.Debugf("Search mode: Depth limited  : %d", sl.Depth)
	}
	if sl.Nodes > 0 {
		log.Debugf(out.Sprintf("Search mode: Nodes limited  : %d", sl.Nodes))
	}
	if sl.Moves.Len() > 0 {
		log.Debugf(out.Sprintf("Search mode: Moves limited  : %s", sl.Moves.StringUci()))
	}
}

func (s *Search) setupTimeControl(p *position.Position, sl *Limits) time.Duration {
	if sl.MoveTime > 0 {
		return sl.MoveTime
	}
	movesLeft := int64(sl.MovesToGo)
	if movesLeft == 0 {
		// we estimate minimum 10 more moves in final game phases; in early
		// game phases this grows up to 40
		movesLeft = int64(10 + (30 * (p.GamePhase() / GamePhaseMax)))
	}
	var timeLeft time.Duration
	switch p.NextPlayer() {
	case White:
		timeLeft = sl.WhiteTime + time.Duration(movesLeft*sl.WhiteInc.Nanoseconds())
	case Black:
		timeLeft = sl.BlackTime + time.Duration(movesLeft*sl.BlackInc.Nanoseconds())
	}
	timeLimit := time.Duration(timeLeft.Nanoseconds() / movesLeft)
	if timeLimit.Milliseconds() < 100 {
		timeLimit = time.Duration(int64(0.8 * float64(timeLimit.Nanoseconds())))
	} else {
		timeLimit = time.Duration(int64(0.9 * float64(timeLimit.Nanoseconds())))
	}
	return timeLimit
}

func (s *Search) startTimer() {
	go func() {
		log.Debugf("Timer started with time limit of %d ms", s.timeLimit.Milliseconds())
		for time.Since(s.startTime) < s.timeLimit+s.extraTime && !s.stopFlag {
			time.Sleep(5 * time.Millisecond)
		}
		if !s.stopFlag {
			s.stopFlag = true
		}
	}()
}

func (s *Search) sendResult(searchResult *Result) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendResult(searchResult.BestMove, searchResult.PonderMove)
	}
}
