package game

import (
	"encoding/json"
	"fmt"
)

// Color identifies a player, "B" or "W".
type Color string

const (
	Black Color = "B"
	White Color = "W"
)

// Opponent returns the other player.
func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

// WinrateFor converts a black-perspective winrate into the given player's
// perspective.
func WinrateFor(blackWinrate float64, player Color) float64 {
	if player == Black {
		return blackWinrate
	}
	return 1.0 - blackWinrate
}

// Move is one play: a player and a board location such as "Q16", or the
// "pass" sentinel.
type Move struct {
	Player   Color
	Location string
}

// MarshalJSON encodes a move as the two-element array the KataGo analysis
// engine expects, e.g. ["B","Q16"].
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{string(m.Player), m.Location})
}

func (m *Move) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	m.Player = Color(pair[0])
	m.Location = pair[1]
	return nil
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s", m.Player, m.Location)
}
