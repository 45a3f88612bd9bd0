// Package nnet drives a KataGo analysis engine as a position evaluator, one
// single-visit query at a time.
//
// See https://github.com/lightvector/KataGo/blob/master/docs/Analysis_Engine.md
// for the query parameters.
package nnet

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kaorahi/DIY-on-kata/game"
)

var ErrNoCommand = errors.New("nnet: empty evaluator command")

// Client owns a KataGo subprocess and the query parameters sent with every
// evaluation request.
type Client struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	params parameters
}

// parameters mirrors the analysis-engine query fields that stay fixed
// between moves.
type parameters struct {
	MaxVisits     int
	IncludePolicy bool
	Rules         string
	Komi          float64
	BoardXSize    int
	BoardYSize    int
	InitialStones []game.Move
}

func defaultParameters() parameters {
	return parameters{
		MaxVisits:     1,
		IncludePolicy: true,
		Rules:         "tromp-taylor",
		Komi:          7.5,
		BoardXSize:    19,
		BoardYSize:    19,
		InitialStones: []game.Move{},
	}
}

type query struct {
	ID            string      `json:"id"`
	Moves         []game.Move `json:"moves"`
	MaxVisits     int         `json:"maxVisits"`
	IncludePolicy bool        `json:"includePolicy"`
	Rules         string      `json:"rules"`
	Komi          float64     `json:"komi"`
	BoardXSize    int         `json:"boardXSize"`
	BoardYSize    int         `json:"boardYSize"`
	InitialStones []game.Move `json:"initialStones"`
}

type response struct {
	ID       string    `json:"id"`
	Error    string    `json:"error"`
	RootInfo rootInfo  `json:"rootInfo"`
	Policy   []float64 `json:"policy"`
}

type rootInfo struct {
	Visits     int     `json:"visits"`
	RawWinrate float64 `json:"rawWinrate"`
	RawLead    float64 `json:"rawLead"`
}

// NewClient launches the engine from its command line. A single-element
// command is run through the shell, so a quoted full command line works too.
// The engine's stderr is passed through to ours.
func NewClient(command []string) (*Client, error) {
	if len(command) == 0 {
		return nil, ErrNoCommand
	}
	argv := command
	if len(command) == 1 {
		argv = []string{"sh", "-c", command[0]}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("nnet: opening stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("nnet: opening stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("nnet: starting %q: %w", argv[0], err)
	}
	log.Debug().Strs("command", command).Msg("evaluator started")

	return &Client{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
		params: defaultParameters(),
	}, nil
}

// Close shuts the engine down by closing its stdin and waiting for it to
// exit.
func (c *Client) Close() error {
	if c.stdin != nil {
		c.stdin.Close()
	}
	if c.cmd != nil {
		return c.cmd.Wait()
	}
	return nil
}

// SetBoardSize configures a square board. The caller validates the size.
func (c *Client) SetBoardSize(size int) {
	c.params.BoardXSize = size
	c.params.BoardYSize = size
}

func (c *Client) SetKomi(komi float64) {
	c.params.Komi = komi
}

func (c *Client) SetRules(rules string) {
	c.params.Rules = rules
}

// SetInitialStones installs pre-existing stones, e.g. a fixed handicap. They
// ride along with every query instead of appearing in the move list.
func (c *Client) SetInitialStones(stones []game.Move) {
	if stones == nil {
		stones = []game.Move{}
	}
	c.params.InitialStones = stones
}

func (c *Client) BoardSize() int {
	return c.params.BoardXSize
}

// Evaluate queries the engine about the position after moves. The engine is
// trusted absolutely: any contract violation aborts the whole process, since
// a broken evaluator session cannot be safely continued.
func (c *Client) Evaluate(moves []game.Move) game.Evaluation {
	q := c.buildQuery(moves)
	if err := c.send(q); err != nil {
		log.Fatal().Err(err).Msg("evaluator query failed")
	}
	resp, err := c.receive()
	if err != nil {
		log.Fatal().Err(err).Msg("evaluator response failed")
	}
	if err := checkResponse(q.ID, resp); err != nil {
		log.Fatal().Err(err).Msg("evaluator violated the single-visit contract")
	}
	return c.evaluation(resp)
}

func (c *Client) buildQuery(moves []game.Move) query {
	if moves == nil {
		moves = []game.Move{}
	}
	return query{
		ID:            uuid.NewString(),
		Moves:         moves,
		MaxVisits:     c.params.MaxVisits,
		IncludePolicy: c.params.IncludePolicy,
		Rules:         c.params.Rules,
		Komi:          c.params.Komi,
		BoardXSize:    c.params.BoardXSize,
		BoardYSize:    c.params.BoardYSize,
		InitialStones: c.params.InitialStones,
	}
}

func (c *Client) send(q query) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encoding query: %w", err)
	}
	log.Debug().RawJSON("query", data).Msg("evaluator query")
	if _, err := c.stdin.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing query: %w", err)
	}
	return nil
}

func (c *Client) receive() (response, error) {
	line, err := c.stdout.ReadBytes('\n')
	if err != nil {
		return response{}, fmt.Errorf("reading response: %w", err)
	}
	var resp response
	if err := json.Unmarshal(line, &resp); err != nil {
		return response{}, fmt.Errorf("decoding response: %w", err)
	}
	log.Debug().
		Str("id", resp.ID).
		Int("visits", resp.RootInfo.Visits).
		Float64("rawWinrate", resp.RootInfo.RawWinrate).
		Msg("evaluator response")
	return resp, nil
}

func checkResponse(queryID string, resp response) error {
	if resp.Error != "" {
		return fmt.Errorf("engine reported an error: %s", resp.Error)
	}
	if resp.ID != queryID {
		return fmt.Errorf("response id %q does not match query id %q", resp.ID, queryID)
	}
	if resp.RootInfo.Visits != 1 {
		return fmt.Errorf("expected exactly 1 visit, got %d", resp.RootInfo.Visits)
	}
	return nil
}

// evaluation translates the flat policy vector into a per-location policy,
// dropping illegal moves, which the engine marks with a negative prior.
func (c *Client) evaluation(resp response) game.Evaluation {
	policy := game.NewPolicy()
	for k, prior := range resp.Policy {
		if prior < 0 {
			continue
		}
		policy.Add(c.locationForIndex(k), prior)
	}
	return game.Evaluation{Policy: policy, BlackWinrate: resp.RootInfo.RawWinrate}
}
