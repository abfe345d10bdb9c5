package domain

import (
	"testing"
	"time"
)

func TestProfileApply(t *testing.T) {
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	var p Profile
	p.Apply(ResultWin, "american", at)
	p.Apply(ResultWin, "american", at.Add(time.Hour))
	p.Apply(ResultDraw, "pool", at.Add(2*time.Hour))

	if p.GamesPlayed != 3 || p.Wins != 2 || p.Draws != 1 || p.Losses != 0 {
		t.Fatalf("unexpected counters: %+v", p)
	}
	if p.StreakType != ResultDraw || p.Streak != 1 {
		t.Fatalf("unexpected streak: %s x%d", p.StreakType, p.Streak)
	}
	if !p.CreatedAt.Equal(at) || p.LastVariant != "pool" {
		t.Fatalf("unexpected metadata: %+v", p)
	}
}
