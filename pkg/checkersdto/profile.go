package checkersdto

import "time"

type Profile struct {
	Name         string
	GamesPlayed  int
	Wins         int
	Losses       int
	Draws        int
	Streak       int
	StreakType   string
	LastVariant  string
	LastPlayedAt time.Time
	UpdatedAt    time.Time
	CreatedAt    time.Time
}
