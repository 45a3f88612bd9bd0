package searcher

import (
	"math"

	"github.com/kaorahi/DIY-on-kata/game"
)

const defaultExploration = 1.0

// Evaluator produces priors and a black-perspective winrate for the position
// reached by playing the given moves from an empty board.
type Evaluator interface {
	Evaluate(moves []game.Move) game.Evaluation
}

type Option func(*MCTS)

// WithExploration overrides the PUCT exploration constant.
func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

// MCTS runs playouts against a single evaluator. All tree mutation happens
// on the calling goroutine and at most one evaluator query is in flight at a
// time, so no locking is needed anywhere in the tree.
type MCTS struct {
	evaluator   Evaluator
	exploration float64
}

func NewMCTS(evaluator Evaluator, options ...Option) *MCTS {
	if evaluator == nil {
		panic("searcher: nil evaluator")
	}
	m := &MCTS{
		evaluator:   evaluator,
		exploration: defaultExploration,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Playout performs one descend/evaluate/backpropagate cycle from root. The
// moves played before the root are prefixed to the descended path when
// querying the evaluator. It returns the leaf, the path descended through,
// and the ancestors that were updated.
func (m *MCTS) Playout(root *Node, movesBeforeRoot []game.Move, player game.Color) (*Node, []game.Move, []*Node) {
	leaf, moves, ancestors := m.descendToLeaf(root, player)

	var eval game.Evaluation
	if leaf.Expanded() {
		// A position with nothing selectable below stays a leaf forever;
		// its stored evaluation stands in for a fresh query.
		eval = game.Evaluation{Policy: leaf.policy, BlackWinrate: leaf.blackWinrate}
		leaf.update(eval.BlackWinrate)
	} else {
		query := make([]game.Move, 0, len(movesBeforeRoot)+len(moves))
		query = append(query, movesBeforeRoot...)
		query = append(query, moves...)
		eval = m.evaluator.Evaluate(query)
		leaf.expand(eval)
	}

	for _, ancestor := range ancestors {
		ancestor.update(eval.BlackWinrate)
	}
	return leaf, moves, ancestors
}

func (m *MCTS) descendToLeaf(root *Node, player game.Color) (*Node, []game.Move, []*Node) {
	node := root
	next := player
	var moves []game.Move
	var ancestors []*Node
	for node.selectable() {
		location := m.selectLocation(node, next)
		moves = append(moves, game.Move{Player: next, Location: location})
		ancestors = append(ancestors, node)
		node = node.getChild(location)
		next = next.Opponent()
	}
	return node, moves, ancestors
}

// selectLocation picks the legal location with the highest PUCT priority.
// Ties keep the first candidate in policy order, so selection is
// deterministic even on a zero-visit node where every priority is 0.
func (m *MCTS) selectLocation(node *Node, player game.Color) string {
	selected := ""
	best := math.Inf(-1)
	for _, location := range node.policy.Locations() {
		if priority := m.priority(node, player, location); priority > best {
			selected, best = location, priority
		}
	}
	return selected
}

// priority is the PUCT score of one candidate move: the mover's estimated
// value plus an exploration bonus weighted by the prior and decaying with
// the child's visits.
func (m *MCTS) priority(node *Node, player game.Color, location string) float64 {
	prior, _ := node.policy.Prior(location)

	visits := 0
	value := 0.0 // unvisited moves score as neutral
	if child := node.FindChild(location); child != nil {
		visits = child.visits
		value = game.WinrateFor(child.blackWinrate, player)
	}

	c := m.exploration * math.Sqrt(float64(node.visits))
	return value + c*prior/float64(visits+1)
}
