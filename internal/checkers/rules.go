package checkers

import (
	"fmt"
	"strings"
)

// Variant selects one of the supported checkers rule sets.
type Variant uint8

const (
	American Variant = iota
	International
	Brazilian
	Canadian
	Pool
	Spanish
	Russian
	Italian
	Suicide
	Ghanaian
)

const (
	StandardBoardSize      = 8
	InternationalBoardSize = 10
	CanadianBoardSize      = 12
)

var variantNames = map[Variant]string{
	American:      "american",
	International: "international",
	Brazilian:     "brazilian",
	Canadian:      "canadian",
	Pool:          "pool",
	Spanish:       "spanish",
	Russian:       "russian",
	Italian:       "italian",
	Suicide:       "suicide",
	Ghanaian:      "ghanaian",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", uint8(v))
}

// ParseVariant accepts the lower-case variant name, case-insensitively.
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for v, n := range variantNames {
		if n == name {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Variants lists every known variant in declaration order.
func Variants() []Variant {
	return []Variant{American, International, Brazilian, Canadian, Pool, Spanish, Russian, Italian, Suicide, Ghanaian}
}

// Rules describes one checkers variant. A Rules value is created once at game
// setup and never mutated; it is passed and stored by value.
type Rules struct {
	Variant   Variant
	BoardSize int

	// KingsFly lets kings slide and capture along an entire diagonal.
	KingsFly bool
	// PawnsJumpBackward lets pawns capture toward their own home row.
	PawnsJumpBackward bool

	LightStartsFirst bool
	Mirrored         bool

	ForceCapture        bool
	ForceCaptureMaximum bool

	// KingCapturePriority requires a king to capture when a king and a pawn
	// can take the same number of pieces.
	KingCapturePriority bool
	// PawnsCaptureKings is false when pawns may not jump over kings.
	PawnsCaptureKings bool
	// ContinueAfterPromotion lets a pawn crowned mid-chain keep capturing as a king.
	ContinueAfterPromotion bool
}

func baseRules(v Variant) Rules {
	return Rules{
		Variant:             v,
		BoardSize:           StandardBoardSize,
		KingsFly:            true,
		PawnsJumpBackward:   true,
		LightStartsFirst:    true,
		ForceCapture:        true,
		ForceCaptureMaximum: true,
		PawnsCaptureKings:   true,
	}
}

// RulesFor returns the rule set for a variant.
func RulesFor(v Variant) (Rules, error) {
	r := baseRules(v)
	switch v {
	case American:
		r.KingsFly = false
		r.PawnsJumpBackward = false
		r.LightStartsFirst = false
		r.ForceCaptureMaximum = false
	case International:
		r.BoardSize = InternationalBoardSize
	case Brazilian:
	case Canadian:
		r.BoardSize = CanadianBoardSize
		r.ForceCaptureMaximum = false
	case Pool:
		r.LightStartsFirst = false
		r.ForceCaptureMaximum = false
	case Spanish:
		r.PawnsJumpBackward = false
		r.Mirrored = true
	case Russian:
		r.ForceCaptureMaximum = false
		r.ContinueAfterPromotion = true
	case Italian:
		r.PawnsJumpBackward = false
		r.Mirrored = true
		r.KingCapturePriority = true
		r.PawnsCaptureKings = false
	case Suicide:
	case Ghanaian:
		r.BoardSize = InternationalBoardSize
		r.Mirrored = true
		r.ForceCaptureMaximum = false
	default:
		return Rules{}, fmt.Errorf("%w: %d", ErrUnknownVariant, uint8(v))
	}
	return r, nil
}

// MustRulesFor is RulesFor for variants known at compile time.
func MustRulesFor(v Variant) Rules {
	r, err := RulesFor(v)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate checks the board geometry and that the variant has a registered
// strategy set.
func (r Rules) Validate() error {
	if r.BoardSize < 4 || r.BoardSize%2 != 0 {
		return fmt.Errorf("%w: board size %d", ErrInvalidRules, r.BoardSize)
	}
	if _, ok := variantSpecs[r.Variant]; !ok {
		return fmt.Errorf("%w: no strategies for %s", ErrUnimplemented, r.Variant)
	}
	return nil
}

// FirstSide is the side that moves first.
func (r Rules) FirstSide() Side {
	if r.LightStartsFirst {
		return Light
	}
	return Dark
}
