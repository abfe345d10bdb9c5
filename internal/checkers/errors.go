package checkers

import "errors"

var (
	// ErrUnimplemented marks variant behaviour that has no registered strategy.
	// It is distinct from a game that simply has no winner yet.
	ErrUnimplemented  = errors.New("variant behaviour not implemented")
	ErrInvalidRules   = errors.New("invalid rules")
	ErrUnknownVariant = errors.New("unknown checkers variant")
	ErrNilPlayer      = errors.New("player is nil")
)
