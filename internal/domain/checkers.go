package domain

import "time"

// Result is a finished match from one player's point of view.
type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultDraw Result = "draw"
)

// GameRecord is a finished match kept for the history view.
type GameRecord struct {
	ID        int64
	MatchID   string
	Variant   string
	LightName string
	DarkName  string
	Result    string // light, dark or draw
	Method    string // blocked, resign or draw
	Moves     []string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
}

// Involves reports whether name played either side.
func (g *GameRecord) Involves(name string) bool {
	return g.LightName == name || g.DarkName == name
}

type Profile struct {
	Name         string    `json:"name"`
	GamesPlayed  int       `json:"games_played"`
	Wins         int       `json:"wins"`
	Losses       int       `json:"losses"`
	Draws        int       `json:"draws"`
	Streak       int       `json:"streak"`
	StreakType   Result    `json:"streak_type,omitempty"`
	LastVariant  string    `json:"last_variant,omitempty"`
	LastPlayedAt time.Time `json:"last_played_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Apply folds one finished match into the profile.
func (p *Profile) Apply(result Result, variant string, at time.Time) {
	p.GamesPlayed++
	switch result {
	case ResultWin:
		p.Wins++
	case ResultLoss:
		p.Losses++
	case ResultDraw:
		p.Draws++
	}
	if p.StreakType == result {
		p.Streak++
	} else {
		p.StreakType = result
		p.Streak = 1
	}
	p.LastVariant = variant
	p.LastPlayedAt = at
	p.UpdatedAt = at
	if p.CreatedAt.IsZero() {
		p.CreatedAt = at
	}
}
