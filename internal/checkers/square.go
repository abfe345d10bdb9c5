// Package checkers implements the checkers rules engine: variant rules, the
// board, move legality and the game state machine.
package checkers

import "fmt"

// Side identifies one of the two players.
type Side uint8

const (
	Light Side = iota
	Dark
)

func (s Side) Opposite() Side {
	if s == Light {
		return Dark
	}
	return Light
}

func (s Side) String() string {
	switch s {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// Square is the state of a single board cell.
type Square uint8

const (
	// OffBoard cells can never hold a piece.
	OffBoard Square = iota
	Empty
	LightPawn
	LightKing
	DarkPawn
	DarkKing
)

func (sq Square) String() string {
	switch sq {
	case OffBoard:
		return "##"
	case Empty:
		return "__"
	case LightPawn:
		return "LP"
	case LightKing:
		return "LK"
	case DarkPawn:
		return "DP"
	case DarkKing:
		return "DK"
	default:
		return "??"
	}
}

// IsPiece reports whether the square holds a pawn or a king.
func (sq Square) IsPiece() bool {
	switch sq {
	case LightPawn, LightKing, DarkPawn, DarkKing:
		return true
	default:
		return false
	}
}

func (sq Square) IsKing() bool { return sq == LightKing || sq == DarkKing }

func (sq Square) IsPawn() bool { return sq == LightPawn || sq == DarkPawn }

// Side returns the owner of the piece on the square; ok is false for empty
// and off-board squares.
func (sq Square) Side() (side Side, ok bool) {
	switch sq {
	case LightPawn, LightKing:
		return Light, true
	case DarkPawn, DarkKing:
		return Dark, true
	default:
		return Light, false
	}
}

// Crowned returns the king of the same side. Non-pawns are returned unchanged.
func (sq Square) Crowned() Square {
	switch sq {
	case LightPawn:
		return LightKing
	case DarkPawn:
		return DarkKing
	default:
		return sq
	}
}

// Point is a board coordinate. Row 0 is the dark home row.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

func (p Point) add(dr, dc int) Point { return Point{Row: p.Row + dr, Col: p.Col + dc} }
