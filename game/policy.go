package game

// Policy holds the evaluator's prior probability per legal location.
// Insertion order is preserved so that iteration, and therefore move
// selection tie-breaking, is deterministic.
type Policy struct {
	priors map[string]float64
	order  []string
}

func NewPolicy() *Policy {
	return &Policy{priors: map[string]float64{}}
}

// Add registers a location with its prior. Re-adding a location overwrites
// the prior and keeps its original position in the iteration order.
func (p *Policy) Add(location string, prior float64) {
	if _, ok := p.priors[location]; !ok {
		p.order = append(p.order, location)
	}
	p.priors[location] = prior
}

// Prior returns the prior probability for a location.
func (p *Policy) Prior(location string) (float64, bool) {
	prior, ok := p.priors[location]
	return prior, ok
}

// Locations lists the legal locations in insertion order.
func (p *Policy) Locations() []string {
	if p == nil {
		return nil
	}
	return p.order
}

// Len is the number of legal locations; it is 0 for a nil policy.
func (p *Policy) Len() int {
	if p == nil {
		return 0
	}
	return len(p.order)
}
