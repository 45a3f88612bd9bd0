package gtp

import (
	"strconv"
	"strings"

	"github.com/kaorahi/DIY-on-kata/game"
)

// handleFixedHandicap installs n black stones on the standard star points.
// Legal only before any move has been played; the stones become initial
// stones in the evaluator configuration, not history entries.
func (s *Session) handleFixedHandicap(args []string) result {
	stones, err := strconv.Atoi(args[0])
	if err != nil {
		return failure("syntax error")
	}
	if stones < 1 || stones > 9 || len(s.history) > 0 {
		return failure("")
	}

	locations := s.fixedHandicapLocations(stones)
	moves := make([]game.Move, len(locations))
	for i, location := range locations {
		moves[i] = game.Move{Player: game.Black, Location: location}
	}
	s.evaluator.SetInitialStones(moves)
	return success(strings.Join(locations, " "))
}

// fixedHandicapLocations computes the star-point layout for the configured
// board size: corners first, then edge stars, then the center, with the
// center replacing the last stone when 5 or 7 are asked for.
//
// (ref.) gtp2-spec section on fixed handicap placement; imported from
// add_handicap_stones in LizGoban.
func (s *Session) fixedHandicapLocations(stones int) []string {
	size := s.evaluator.BoardSize()
	edge := 2
	if size > 12 {
		edge = 3
	}
	mid := size / 2
	far := size - 1 - edge

	stars := [][2]int{
		{edge, far}, {far, edge}, {far, far}, {edge, edge}, // corners
		{mid, far}, {mid, edge}, {edge, mid}, {far, mid}, // edge stars
		{mid, mid}, // center
	}
	locations := make([]string, 0, stones)
	for _, star := range stars[:stones] {
		locations = append(locations, s.evaluator.LocationForCoord(star[0], star[1]))
	}
	if stones == 5 || stones == 7 {
		locations[len(locations)-1] = s.evaluator.LocationForCoord(mid, mid)
	}
	return locations
}
