package checkersdto

import "time"

type GameRecord struct {
	ID        int64
	MatchID   string
	Variant   string
	LightName string
	DarkName  string
	Result    string
	Method    string
	Moves     []string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
}
