package searcher

import "golang.org/x/exp/slices"

// RankedLocations lists the existing children's locations by descending
// visit count. Equal counts keep their creation order, so the ranking is
// reproducible run to run.
func (n *Node) RankedLocations() []string {
	ranked := slices.Clone(n.childOrder)
	slices.SortStableFunc(ranked, func(a, b string) int {
		return n.children[b].visits - n.children[a].visits
	})
	return ranked
}

// BestNextLocation returns the most-visited child's location. The second
// result is false when no move has been explored yet.
func (n *Node) BestNextLocation() (string, bool) {
	ranked := n.RankedLocations()
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0], true
}

// PrincipalVariation is the current best line opening with location: the
// given move followed by the most-visited child at every node after it.
func (n *Node) PrincipalVariation(location string) []string {
	pv := []string{location}
	node := n.FindChild(location)
	for node != nil && node.HasChildren() {
		best, _ := node.BestNextLocation()
		pv = append(pv, best)
		node = node.FindChild(best)
	}
	return pv
}
