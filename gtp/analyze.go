package gtp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kaorahi/DIY-on-kata/game"
	"github.com/kaorahi/DIY-on-kata/searcher"
)

// handleLzAnalyze accepts the command up front with an empty success reply,
// then keeps searching and reporting inside the reply block until the client
// sends another line. Malformed arguments are rejected before any search
// starts.
func (s *Session) handleLzAnalyze(args []string) result {
	player, interval, ok := decodeAnalyzeArgs(args, s.nextPlayer())
	if !ok {
		return failure("syntax error")
	}
	return result{ok: true, followUp: func() { s.lzAnalyze(player, interval) }}
}

// decodeAnalyzeArgs follows the lz-analyze argument shapes Lizzie sends: an
// optional color, an optional "interval" keyword, and the interval itself in
// centiseconds. (Reused logic from TamaGo's _decode_analyze_arg.)
func decodeAnalyzeArgs(args []string, toMove game.Color) (game.Color, time.Duration, bool) {
	player := toMove
	rest := make([]string, len(args))
	for i, arg := range args {
		rest[i] = strings.ToUpper(arg)
	}

	if len(rest) > 0 && (rest[0] == string(game.Black) || rest[0] == string(game.White)) {
		player = game.Color(rest[0])
		rest = rest[1:]
	}
	if len(rest) > 0 && rest[0] == "INTERVAL" {
		rest = rest[1:]
	}
	if len(rest) != 1 || !isDigits(rest[0]) {
		return player, 0, false
	}
	centiseconds, _ := strconv.Atoi(rest[0])
	return player, time.Duration(centiseconds) * 10 * time.Millisecond, true
}

// lzAnalyze searches from a fresh root until input arrives, emitting a
// ranking report whenever the interval has elapsed. Cancellation is
// cooperative: the pending-input check runs between playouts and never
// consumes the interrupting line, which the dispatch loop handles next.
func (s *Session) lzAnalyze(player game.Color, interval time.Duration) {
	root := searcher.NewNode()
	collector := searcher.NewCollector()
	var nextReport time.Time // zero value: report as soon as possible
	for !s.inputPending() {
		s.mcts.Playout(root, s.history, player)
		collector.AddPlayout()
		if root.Expanded() && root.Policy().Len() == 0 {
			break // nothing is legal, so nothing to search
		}
		if time.Now().After(nextReport) && root.HasChildren() {
			fmt.Fprintln(s.out, s.analyzeReport(root))
			s.out.Flush()
			nextReport = time.Now().Add(interval)
		}
	}

	metrics := collector.Complete()
	log.Debug().
		Int("playouts", metrics.Playouts).
		Dur("duration", metrics.Duration).
		Float64("playoutsPerSec", metrics.PlayoutsPerSecond()).
		Msg("analysis interrupted")
}

// analyzeReport formats one "info ..." entry per ranked child, the shape
// Lizzie parses. Winrates are reported from the to-move player's
// perspective; probabilities are scaled to the 0..10000 integer range.
func (s *Session) analyzeReport(root *searcher.Node) string {
	player := s.nextPlayer()
	ranked := root.RankedLocations()
	infos := make([]string, 0, len(ranked))
	for order, location := range ranked {
		child := root.FindChild(location)
		winrate := game.WinrateFor(child.BlackWinrate(), player)
		prior, _ := root.Policy().Prior(location)
		pv := strings.Join(root.PrincipalVariation(location), " ")
		infos = append(infos, fmt.Sprintf("info move %s visits %d winrate %d prior %d order %d pv %s",
			location, child.Visits(), integerize(winrate), integerize(prior), order, pv))
	}
	return strings.Join(infos, " ")
}

// integerize scales a probability into Lizzie's 0..10000 range.
func integerize(p float64) int {
	return int(math.Round(p * 10000))
}
