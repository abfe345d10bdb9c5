package checkers

import "fmt"

// Player is a participant with a running record. The engine only reads
// players; callers that share a Player across matches serialize updates.
type Player struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Ties   int    `json:"ties"`
}

func NewPlayer(name string) *Player {
	return &Player{Name: name}
}

func (p *Player) RecordWin()  { p.Wins++ }
func (p *Player) RecordLoss() { p.Losses++ }
func (p *Player) RecordTie()  { p.Ties++ }

func (p *Player) TotalGamesPlayed() int {
	return p.Wins + p.Losses + p.Ties
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%d-%d-%d)", p.Name, p.Wins, p.Losses, p.Ties)
}
