// Package gtp implements the Go Text Protocol front end: a line-oriented
// request/response loop that drives the Monte-Carlo searcher and the
// evaluator configuration.
//
// (cf.) https://www.lysator.liu.se/~gunnar/gtp/gtp2-spec-draft2/gtp2-spec.html
package gtp

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kaorahi/DIY-on-kata/game"
	"github.com/kaorahi/DIY-on-kata/searcher"
)

const (
	protocolVersion = "2"
	engineName      = "DIY_on_kata"
	engineVersion   = "0.0.0"
)

// Evaluator is the external collaborator a session drives: position
// evaluation for the searcher plus the configuration the protocol mutates.
type Evaluator interface {
	searcher.Evaluator
	SetBoardSize(size int)
	SetKomi(komi float64)
	SetInitialStones(stones []game.Move)
	BoardSize() int
	LocationForCoord(row, column int) string
}

// Session is one GTP conversation. It owns the move history, the per-move
// time budget, and the dispatch loop; the search tree itself lives only for
// the duration of a single genmove or analyze command.
type Session struct {
	evaluator   Evaluator
	mcts        *searcher.MCTS
	out         *bufio.Writer
	lines       chan string
	eof         chan struct{}
	done        chan struct{}
	history     []game.Move
	genmoveTime time.Duration
}

type Option func(*Session)

// WithGenmoveTime sets the initial per-move search budget; time_settings
// overrides it later.
func WithGenmoveTime(d time.Duration) Option {
	return func(s *Session) { s.genmoveTime = d }
}

func NewSession(in io.Reader, out io.Writer, evaluator Evaluator, options ...Option) *Session {
	s := &Session{
		evaluator:   evaluator,
		mcts:        searcher.NewMCTS(evaluator),
		out:         bufio.NewWriter(out),
		lines:       make(chan string, 1),
		eof:         make(chan struct{}),
		done:        make(chan struct{}),
		genmoveTime: time.Second,
	}
	for _, option := range options {
		option(s)
	}
	go s.readLines(in)
	return s
}

// readLines feeds input to the dispatcher through a buffered channel, so the
// analyze loop can see that a line is waiting without consuming it. The done
// channel unblocks a send in flight when Run stops on quit, so the goroutine
// never outlives the session.
func (s *Session) readLines(in io.Reader) {
	defer close(s.eof)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case s.lines <- scanner.Text():
		case <-s.done:
			return
		}
	}
	close(s.lines)
}

// inputPending reports whether another line is already waiting or the input
// has closed. It never reads, so the pending line stays available for the
// dispatch loop.
func (s *Session) inputPending() bool {
	select {
	case <-s.eof:
		return true
	default:
		return len(s.lines) > 0
	}
}

// Run processes commands until quit or end of input.
func (s *Session) Run() {
	log.Info().Msg("GTP ready")
	for line := range s.lines {
		id, command, args, ok := parseLine(line)
		if !ok { // ignore empty lines
			continue
		}
		s.execute(id, command, args)
		if command == "quit" {
			close(s.done)
			return
		}
	}
}

// parseLine splits a request into an optional all-digit id, the command
// name, and its raw arguments. ok is false for a blank line, which produces
// no response at all.
func parseLine(line string) (id, command string, args []string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", "", nil, false
	}
	if isDigits(fields[0]) {
		id = fields[0]
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return id, "", nil, true
	}
	return id, fields[0], fields[1:], true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// execute emits the reply block for one request: the status line, then any
// follow-up activity's output, then the terminating blank line. The analyze
// follow-up depends on this ordering: its reports appear inside the block
// and the blank line only once it stops.
func (s *Session) execute(id, command string, args []string) {
	res := s.dispatch(command, args)
	header := "="
	if !res.ok {
		header = "?"
	}
	fmt.Fprintf(s.out, "%s%s %s\n", header, id, res.text)
	s.out.Flush()
	if res.followUp != nil {
		res.followUp()
	}
	fmt.Fprintln(s.out)
	s.out.Flush()
}

func (s *Session) dispatch(command string, args []string) result {
	c, known := commandIndex[command]
	if !known {
		return failure("unknown command")
	}
	if c.argc >= 0 && len(args) != c.argc {
		return failure("syntax error")
	}
	return c.fn(s, args)
}

// nextPlayer is the player to move given the history so far.
func (s *Session) nextPlayer() game.Color {
	if len(s.history) == 0 {
		return game.Black
	}
	return s.history[len(s.history)-1].Player.Opponent()
}

// play appends a normalized move to the history: players and coordinates are
// upper-cased and any spelling of pass becomes the literal "pass" token.
func (s *Session) play(color, vertex string) game.Move {
	location := strings.ToUpper(vertex)
	if location == "PASS" {
		location = "pass"
	}
	move := game.Move{Player: game.Color(strings.ToUpper(color)), Location: location}
	s.history = append(s.history, move)
	return move
}
