package gtp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kaorahi/DIY-on-kata/game"
)

func TestFixedHandicap(t *testing.T) {
	t.Run("four corner stars on 9x9", func(t *testing.T) {
		evaluator := newFakeEvaluator()
		evaluator.boardSize = 9
		s, _ := newTestSession(evaluator)

		res := s.dispatch("fixed_handicap", []string{"4"})

		require.True(t, res.ok)
		require.Equal(t, "G7 C3 G3 C7", res.text,
			"Corner stars come first, in a fixed order")
		require.Empty(t, s.history, "Handicap stones never enter the move history")
		require.Equal(t, []game.Move{
			{Player: game.Black, Location: "G7"},
			{Player: game.Black, Location: "C3"},
			{Player: game.Black, Location: "G3"},
			{Player: game.Black, Location: "C7"},
		}, evaluator.stones, "All stones are Black initial stones in the evaluator")
	})

	t.Run("five stones put the fifth on the center", func(t *testing.T) {
		evaluator := newFakeEvaluator()
		evaluator.boardSize = 9
		s, _ := newTestSession(evaluator)

		res := s.dispatch("fixed_handicap", []string{"5"})

		require.True(t, res.ok)
		require.Equal(t, "G7 C3 G3 C7 E5", res.text,
			"The center replaces the last computed point for 5 stones")
	})

	t.Run("nineteen by nineteen uses the 4-4 points", func(t *testing.T) {
		evaluator := newFakeEvaluator()
		s, _ := newTestSession(evaluator)

		res := s.dispatch("fixed_handicap", []string{"2"})

		require.True(t, res.ok)
		require.Equal(t, "Q16 D4", res.text)
	})

	t.Run("rejected after a move is played", func(t *testing.T) {
		evaluator := newFakeEvaluator()
		s, _ := newTestSession(evaluator)
		s.dispatch("play", []string{"b", "d4"})

		res := s.dispatch("fixed_handicap", []string{"4"})
		require.False(t, res.ok)
		require.False(t, evaluator.stonesSet)
	})

	t.Run("rejected outside 1..9", func(t *testing.T) {
		s, _ := newTestSession(newFakeEvaluator())
		require.False(t, s.dispatch("fixed_handicap", []string{"0"}).ok)
		require.False(t, s.dispatch("fixed_handicap", []string{"10"}).ok)
	})

	t.Run("malformed count", func(t *testing.T) {
		s, _ := newTestSession(newFakeEvaluator())
		require.Equal(t, failure("syntax error"), s.dispatch("fixed_handicap", []string{"four"}))
	})
}
