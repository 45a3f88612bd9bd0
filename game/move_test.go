package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpponent(t *testing.T) {
	require.Equal(t, White, Black.Opponent(), "Black's opponent should be White")
	require.Equal(t, Black, White.Opponent(), "White's opponent should be Black")
}

func TestWinrateFor(t *testing.T) {
	require.Equal(t, 0.75, WinrateFor(0.75, Black), "Black perspective should keep the black winrate")
	require.Equal(t, 0.25, WinrateFor(0.75, White), "White perspective should flip the black winrate")
}

func TestMoveJSON(t *testing.T) {
	t.Run("marshals as a player/location pair", func(t *testing.T) {
		data, err := json.Marshal(Move{Player: Black, Location: "Q16"})
		require.NoError(t, err)
		require.JSONEq(t, `["B","Q16"]`, string(data), "Move should encode as the evaluator's two-element array")
	})

	t.Run("marshals a pass", func(t *testing.T) {
		data, err := json.Marshal(Move{Player: White, Location: "pass"})
		require.NoError(t, err)
		require.JSONEq(t, `["W","pass"]`, string(data))
	})

	t.Run("round-trips through a move list", func(t *testing.T) {
		moves := []Move{{Black, "D4"}, {White, "D16"}, {Black, "pass"}}
		data, err := json.Marshal(moves)
		require.NoError(t, err)

		var got []Move
		require.NoError(t, json.Unmarshal(data, &got))
		require.Equal(t, moves, got, "Decoding should reproduce the original move list")
	})
}
