package match

import (
	"errors"
	"time"

	"github.com/park285/justcheckers-go/internal/checkers"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrMatchFinished  = errors.New("match already finished")
	ErrNotParticipant = errors.New("player is not in this match")
	ErrInvalidArgs    = errors.New("invalid arguments")
	ErrTooManyMatches = errors.New("too many active matches")
	ErrManagerClosed  = errors.New("match manager closed")
)

// Status is the lifecycle of a match as seen by the registry.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusFinished Status = "FINISHED"
	StatusResigned Status = "RESIGNED"
	StatusDraw     Status = "DRAW"
)

// Method names how a finished match ended.
const (
	MethodBlocked = "blocked"
	MethodResign  = "resign"
	MethodDraw    = "draw"
)

type CreateRequest struct {
	Variant   checkers.Variant
	LightName string
	DarkName  string
	// Position starts the match from a prepared board instead of the
	// variant's opening setup.
	Position *checkers.Board
	ToMove   checkers.Side
}

// Snapshot is a point-in-time copy of a match. It shares nothing with the
// live game.
type Snapshot struct {
	ID        string
	Variant   checkers.Variant
	Rules     checkers.Rules
	LightName string
	DarkName  string
	Status    Status
	State     checkers.GameState
	Board     *checkers.Board
	Chain     *checkers.Point
	Movable   []checkers.Point
	Legal     []checkers.Move
	History   []checkers.MoveRecord
	// Winner is meaningful for FINISHED and RESIGNED matches.
	Winner    checkers.Side
	Method    string
	GameID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToMove returns the side to move while the match is live.
func (s *Snapshot) ToMove() (checkers.Side, bool) {
	if s == nil || s.Status != StatusActive {
		return checkers.Light, false
	}
	return s.State.ToMove()
}

// NameOf returns the player name seated on side.
func (s *Snapshot) NameOf(side checkers.Side) string {
	if side == checkers.Light {
		return s.LightName
	}
	return s.DarkName
}

// SideOf finds the seat of a player by name.
func (s *Snapshot) SideOf(name string) (checkers.Side, error) {
	switch name {
	case s.LightName:
		return checkers.Light, nil
	case s.DarkName:
		return checkers.Dark, nil
	default:
		return checkers.Light, ErrNotParticipant
	}
}

// LastMove returns the most recent accepted step.
func (s *Snapshot) LastMove() (checkers.MoveRecord, bool) {
	if s == nil || len(s.History) == 0 {
		return checkers.MoveRecord{}, false
	}
	return s.History[len(s.History)-1], true
}

// Outcome is light, dark or draw once the match has ended.
func (s *Snapshot) Outcome() string {
	switch s.Status {
	case StatusDraw:
		return "draw"
	case StatusFinished, StatusResigned:
		if s.Winner == checkers.Light {
			return "light"
		}
		return "dark"
	default:
		return ""
	}
}
