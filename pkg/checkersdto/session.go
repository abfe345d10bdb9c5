package checkersdto

import "time"

type PieceCount struct {
	LightPawns int
	LightKings int
	DarkPawns  int
	DarkKings  int
}

func (c PieceCount) Light() int { return c.LightPawns + c.LightKings }

func (c PieceCount) Dark() int { return c.DarkPawns + c.DarkKings }

type SessionState struct {
	MatchID   string
	Variant   string
	LightName string
	DarkName  string

	// State is one of not_started, light_move, dark_move, light_victory,
	// dark_victory or draw.
	State  string
	ToMove string
	Chain  string

	BoardText string
	Board     [][]string
	BoardSize int

	// BoardImage is a PNG, empty when rendering is disabled.
	BoardImage []byte

	Moves         []string
	LegalMoves    []string
	MoveCount     int
	Pieces        PieceCount
	Outcome       string
	OutcomeMethod string
	GameID        int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s *SessionState) Finished() bool {
	return s != nil && s.Outcome != ""
}
