package game

// Evaluation is the evaluator's verdict on one position: prior probabilities
// for the next move and the winrate from Black's perspective.
type Evaluation struct {
	Policy       *Policy
	BlackWinrate float64
}
