package searcher

import "github.com/kaorahi/DIY-on-kata/game"

// Node is one position in the search tree. A node is expanded once the
// evaluator has been asked about it; until then its policy is nil and its
// winrate is meaningless. Children exist only for locations that have been
// descended into at least once, so the policy usually names far more
// locations than the children map does.
type Node struct {
	visits       int
	children     map[string]*Node
	childOrder   []string
	policy       *game.Policy
	blackWinrate float64
}

func NewNode() *Node {
	return &Node{children: map[string]*Node{}}
}

// FindChild returns the child at location, or nil without creating one.
func (n *Node) FindChild(location string) *Node {
	return n.children[location]
}

// getChild returns the child at location, creating and registering an empty
// node if absent. Creation order is remembered for stable rankings.
func (n *Node) getChild(location string) *Node {
	child := n.children[location]
	if child == nil {
		child = NewNode()
		n.children[location] = child
		n.childOrder = append(n.childOrder, location)
	}
	return child
}

// Expanded reports whether the evaluator has been consulted about this node.
func (n *Node) Expanded() bool {
	return n.policy != nil
}

// selectable reports whether a descent can continue below this node. An
// expanded node whose policy turned out empty stays a leaf forever.
func (n *Node) selectable() bool {
	return n.policy.Len() > 0
}

// HasChildren reports whether any move below this node has been explored.
func (n *Node) HasChildren() bool {
	return len(n.children) > 0
}

func (n *Node) Visits() int {
	return n.visits
}

// BlackWinrate is the mean black-perspective evaluation of every playout
// that visited this node.
func (n *Node) BlackWinrate() float64 {
	return n.blackWinrate
}

func (n *Node) Policy() *game.Policy {
	return n.policy
}

// expand records the evaluator's verdict. The evaluation itself counts as
// the node's first visit.
func (n *Node) expand(eval game.Evaluation) {
	n.policy = eval.Policy
	n.blackWinrate = eval.BlackWinrate
	n.visits = 1
}

// update folds one more leaf evaluation into the running mean. The node's
// own post-increment visit count keeps the mean exact.
func (n *Node) update(blackWinrate float64) {
	n.visits++
	n.blackWinrate += (blackWinrate - n.blackWinrate) / float64(n.visits)
}
