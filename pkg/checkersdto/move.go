package checkersdto

// MoveSummary describes one accepted or rejected step.
type MoveSummary struct {
	State    *SessionState
	Mover    string
	Move     string
	Captured string
	Promoted bool

	// Result is rejected, chain_continues, turn_ended or game_over.
	Result   string
	Accepted bool
	Finished bool
	Profiles []*Profile
}
