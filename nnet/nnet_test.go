package nnet

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kaorahi/DIY-on-kata/game"
)

func TestLocationForCoord(t *testing.T) {
	require.Equal(t, "A19", locationForCoord(19, 0, 0), "Row 0 is the top of the board")
	require.Equal(t, "T1", locationForCoord(19, 18, 18))
	require.Equal(t, "J10", locationForCoord(19, 9, 8), "Column letters skip I")
	require.Equal(t, "A9", locationForCoord(9, 0, 0))
	require.Equal(t, "E5", locationForCoord(9, 4, 4))
}

func TestLocationForIndex(t *testing.T) {
	c := &Client{params: defaultParameters()}
	c.SetBoardSize(9)

	require.Equal(t, "A9", c.locationForIndex(0))
	require.Equal(t, "B9", c.locationForIndex(1))
	require.Equal(t, "A8", c.locationForIndex(9), "Index wraps to the next row")
	require.Equal(t, "J1", c.locationForIndex(80))
	require.Equal(t, "pass", c.locationForIndex(81), "The index past the board is the pass sentinel")
}

func TestCheckResponse(t *testing.T) {
	good := response{ID: "q1", RootInfo: rootInfo{Visits: 1, RawWinrate: 0.5}}

	t.Run("accepts a clean single-visit response", func(t *testing.T) {
		require.NoError(t, checkResponse("q1", good))
	})

	t.Run("rejects an engine error", func(t *testing.T) {
		bad := good
		bad.Error = "could not parse query"
		require.Error(t, checkResponse("q1", bad))
	})

	t.Run("rejects an id mismatch", func(t *testing.T) {
		require.Error(t, checkResponse("q2", good))
	})

	t.Run("rejects extra visits", func(t *testing.T) {
		bad := good
		bad.RootInfo.Visits = 2
		require.Error(t, checkResponse("q1", bad))
	})
}

func TestEvaluationDecodesPolicyVector(t *testing.T) {
	c := &Client{params: defaultParameters()}
	c.SetBoardSize(2)

	eval := c.evaluation(response{
		RootInfo: rootInfo{Visits: 1, RawWinrate: 0.62},
		Policy:   []float64{0.5, -1, 0.25, 0.15, 0.1},
	})

	require.Equal(t, 0.62, eval.BlackWinrate)
	require.Equal(t, []string{"A2", "A1", "B1", "pass"}, eval.Policy.Locations(),
		"Illegal moves (negative prior) are dropped; the rest keep vector order")
	prior, ok := eval.Policy.Prior("pass")
	require.True(t, ok)
	require.Equal(t, 0.1, prior)
}

func TestEvaluateRoundTrip(t *testing.T) {
	queryR, queryW := io.Pipe()
	respR, respW := io.Pipe()
	c := &Client{
		stdin:  queryW,
		stdout: bufio.NewReader(respR),
		params: defaultParameters(),
	}
	c.SetBoardSize(2)
	c.SetKomi(6.5)
	c.SetRules("japanese")

	queries := make(chan query, 1)
	go func() {
		scanner := bufio.NewScanner(queryR)
		scanner.Scan()
		var q query
		json.Unmarshal(scanner.Bytes(), &q)
		queries <- q
		fmt.Fprintf(respW,
			`{"id":%q,"rootInfo":{"visits":1,"rawWinrate":0.62},"policy":[0.5,-1,0.25,0.15,0.1]}`+"\n",
			q.ID)
	}()

	moves := []game.Move{{Player: game.Black, Location: "A2"}}
	eval := c.Evaluate(moves)

	q := <-queries
	require.NotEmpty(t, q.ID)
	require.Equal(t, moves, q.Moves)
	require.Equal(t, 1, q.MaxVisits, "Every query asks for exactly one visit")
	require.True(t, q.IncludePolicy)
	require.Equal(t, "japanese", q.Rules)
	require.Equal(t, 6.5, q.Komi)
	require.Equal(t, 2, q.BoardXSize)
	require.Equal(t, 2, q.BoardYSize)
	require.Empty(t, q.InitialStones)

	require.Equal(t, 0.62, eval.BlackWinrate)
	require.Equal(t, []string{"A2", "A1", "B1", "pass"}, eval.Policy.Locations())
}

func TestInitialStonesRideAlong(t *testing.T) {
	c := &Client{params: defaultParameters()}
	stones := []game.Move{{Player: game.Black, Location: "D4"}}
	c.SetInitialStones(stones)

	q := c.buildQuery(nil)
	require.Equal(t, stones, q.InitialStones)
	require.Empty(t, q.Moves, "Initial stones never appear in the move list")

	c.SetInitialStones(nil)
	q = c.buildQuery(nil)
	require.Empty(t, q.InitialStones)
	require.NotNil(t, q.InitialStones, "Cleared stones must still encode as an empty JSON array")
}

func TestNewClientRequiresCommand(t *testing.T) {
	_, err := NewClient(nil)
	require.ErrorIs(t, err, ErrNoCommand)
}
