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

// result is a handler's verdict: the reply text, whether it is a success,
// and an optional follow-up that runs inside the reply block.
type result struct {
	ok       bool
	text     string
	followUp func()
}

func success(text string) result { return result{ok: true, text: text} }
func failure(text string) result { return result{ok: false, text: text} }

type handler func(*Session, []string) result

// command pairs a handler with its exact argument count; argc -1 means the
// handler decodes its own arguments.
type command struct {
	name string
	argc int
	fn   handler
}

// commands is the dispatch table; its order is the list_commands output.
// Both tables are assigned in init because the known_command and
// list_commands handlers read them back, which package-level initializers
// cannot express without a dependency cycle.
var (
	commands     []command
	commandIndex map[string]command
)

func init() {
	commands = []command{
		// Required by the GTP specification
		{"protocol_version", 0, (*Session).handleProtocolVersion},
		{"name", 0, (*Session).handleName},
		{"version", 0, (*Session).handleVersion},
		{"known_command", 1, (*Session).handleKnownCommand},
		{"list_commands", 0, (*Session).handleListCommands},
		{"quit", 0, (*Session).handleQuit},
		{"boardsize", 1, (*Session).handleBoardsize},
		{"clear_board", 0, (*Session).handleClearBoard},
		{"komi", 1, (*Session).handleKomi},
		{"play", 2, (*Session).handlePlay},
		{"genmove", 1, (*Session).handleGenmove},
		// For Lizzie
		{"undo", 0, (*Session).handleUndo},
		{"lz-analyze", -1, (*Session).handleLzAnalyze},
		{"time_settings", 3, (*Session).handleTimeSettings},
		{"fixed_handicap", 1, (*Session).handleFixedHandicap},
	}
	commandIndex = make(map[string]command, len(commands))
	for _, c := range commands {
		commandIndex[c.name] = c
	}
}

func (s *Session) handleProtocolVersion([]string) result {
	return success(protocolVersion)
}

func (s *Session) handleName([]string) result {
	return success(engineName)
}

func (s *Session) handleVersion([]string) result {
	return success(engineVersion)
}

func (s *Session) handleKnownCommand(args []string) result {
	if _, known := commandIndex[args[0]]; known {
		return success("true")
	}
	return success("false")
}

func (s *Session) handleListCommands([]string) result {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}
	return success(strings.Join(names, "\n"))
}

func (s *Session) handleQuit([]string) result {
	return success("")
}

func (s *Session) handleBoardsize(args []string) result {
	size, err := strconv.Atoi(args[0])
	if err != nil {
		return failure("syntax error")
	}
	if size < 2 || size > 19 {
		return failure("unacceptable size")
	}
	s.evaluator.SetBoardSize(size)
	return success("")
}

func (s *Session) handleClearBoard([]string) result {
	s.history = s.history[:0]
	s.evaluator.SetInitialStones(nil)
	return success("")
}

func (s *Session) handleKomi(args []string) result {
	komi, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return failure("syntax error")
	}
	if 2*komi != math.Trunc(2*komi) {
		return failure(fmt.Sprintf("unacceptable komi %q", args[0]))
	}
	s.evaluator.SetKomi(komi)
	return success("")
}

func (s *Session) handlePlay(args []string) result {
	s.play(args[0], args[1])
	return success("")
}

// handleGenmove searches from a fresh root under the time budget, plays the
// most-visited move, and replies with it. A fresh root's first playout only
// expands it, so the loop insists on a child before stopping, even on a
// spent budget.
func (s *Session) handleGenmove(args []string) result {
	player := game.Color(strings.ToUpper(args[0]))
	root := searcher.NewNode()
	collector := searcher.NewCollector()
	stop := time.Now().Add(s.genmoveTime)
	for time.Now().Before(stop) || !root.HasChildren() {
		s.mcts.Playout(root, s.history, player)
		collector.AddPlayout()
		if root.Expanded() && root.Policy().Len() == 0 {
			break // nothing is legal, so nothing to search
		}
	}

	location, ok := root.BestNextLocation()
	if !ok {
		location = "pass"
	}
	s.play(string(player), location)

	metrics := collector.Complete()
	log.Debug().
		Str("move", location).
		Int("playouts", metrics.Playouts).
		Dur("duration", metrics.Duration).
		Float64("playoutsPerSec", metrics.PlayoutsPerSecond()).
		Msg("genmove finished")
	return success(location)
}

func (s *Session) handleUndo([]string) result {
	if len(s.history) == 0 {
		return failure("cannot undo")
	}
	s.history = s.history[:len(s.history)-1]
	return success("")
}

// handleTimeSettings derives the per-move budget from GTP time settings:
// main time spread over 400 moves, or 90% of the byo-yomi rate, whichever is
// larger. Zero byo-yomi stones means no per-stone term.
func (s *Session) handleTimeSettings(args []string) result {
	mainTime, err1 := strconv.Atoi(args[0])
	byoYomiTime, err2 := strconv.Atoi(args[1])
	byoYomiStones, err3 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return failure("syntax error")
	}

	perMove := float64(mainTime) / 400
	if byoYomiStones > 0 {
		perMove = math.Max(perMove, float64(byoYomiTime)/float64(byoYomiStones)*0.9)
	}
	s.genmoveTime = time.Duration(perMove * float64(time.Second))
	return success("")
}
