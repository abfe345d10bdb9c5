package checkers

import "fmt"

// Outcome is the verdict of a victory rule after a completed turn.
type Outcome uint8

const (
	NoOutcome Outcome = iota
	LightWins
	DarkWins
	Drawn
)

func (o Outcome) String() string {
	switch o {
	case LightWins:
		return "light_wins"
	case DarkWins:
		return "dark_wins"
	case Drawn:
		return "draw"
	default:
		return "none"
	}
}

func winsFor(side Side) Outcome {
	if side == Light {
		return LightWins
	}
	return DarkWins
}

// PoolDrawTurns is how many turns the stronger side gets in a three kings
// against one king ending before the pool game is drawn.
const PoolDrawTurns = 13

// VictoryContext is the position handed to a VictoryRule once a turn has
// ended. Board must not be modified.
type VictoryContext struct {
	Board *Board
	Rules Rules
	// Mover is the side that just completed its turn.
	Mover Side
	// EndgameTurns counts the stronger side's turns since a three kings
	// against one king ending was reached. Zero outside that ending.
	EndgameTurns int
}

// VictoryRule evaluates a position after a completed turn.
type VictoryRule func(VictoryContext) (Outcome, error)

type variantSpec struct {
	victory VictoryRule
	// setupRows is the number of pawn rows each side starts with.
	setupRows func(size int) int
}

var variantSpecs = map[Variant]variantSpec{
	American:      {victory: opponentBlocked, setupRows: StartingRows},
	International: {victory: opponentBlocked, setupRows: StartingRows},
	Brazilian:     {victory: opponentBlocked, setupRows: StartingRows},
	Canadian:      {victory: opponentBlocked, setupRows: StartingRows},
	Pool:          {victory: poolVictory, setupRows: StartingRows},
	Spanish:       {victory: opponentBlocked, setupRows: StartingRows},
	Russian:       {victory: opponentBlocked, setupRows: StartingRows},
	Italian:       {victory: opponentBlocked, setupRows: StartingRows},
	Suicide:       {victory: suicideVictory, setupRows: StartingRows},
	Ghanaian:      {victory: ghanaianVictory, setupRows: StartingRows},
}

// VictoryRuleFor returns the victory strategy registered for a variant.
func VictoryRuleFor(v Variant) (VictoryRule, error) {
	spec, ok := variantSpecs[v]
	if !ok || spec.victory == nil {
		return nil, fmt.Errorf("%w: victory rule for %s", ErrUnimplemented, v)
	}
	return spec.victory, nil
}

func hasNoMoves(b *Board, r Rules, side Side) bool {
	return len(legalMoves(b, r, side, nil)) == 0
}

// opponentBlocked: the mover wins once the opponent has no legal move, which
// includes having no pieces left.
func opponentBlocked(c VictoryContext) (Outcome, error) {
	if hasNoMoves(c.Board, c.Rules, c.Mover.Opposite()) {
		return winsFor(c.Mover), nil
	}
	return NoOutcome, nil
}

// poolVictory adds the three kings against one king draw to opponentBlocked.
func poolVictory(c VictoryContext) (Outcome, error) {
	out, err := opponentBlocked(c)
	if err != nil || out != NoOutcome {
		return out, err
	}
	if c.EndgameTurns >= PoolDrawTurns {
		return Drawn, nil
	}
	return NoOutcome, nil
}

// suicideVictory: a side that cannot move has won.
func suicideVictory(c VictoryContext) (Outcome, error) {
	opp := c.Mover.Opposite()
	if hasNoMoves(c.Board, c.Rules, opp) {
		return winsFor(opp), nil
	}
	return NoOutcome, nil
}

// ghanaianVictory: the first side reduced to a single piece loses.
func ghanaianVictory(c VictoryContext) (Outcome, error) {
	opp := c.Mover.Opposite()
	pawns, kings := c.Board.Count(opp)
	if pawns+kings == 1 {
		return winsFor(c.Mover), nil
	}
	return opponentBlocked(c)
}

// endgameCounter tracks the pool three kings against one king ending.
type endgameCounter struct {
	active bool
	strong Side
	turns  int
}

// advance returns the counter after mover completed a turn leaving b.
func (c endgameCounter) advance(b *Board, mover Side) endgameCounter {
	strong, ok := threeKingsAgainstOne(b)
	if !ok {
		return endgameCounter{}
	}
	if !c.active || c.strong != strong {
		c = endgameCounter{active: true, strong: strong}
	}
	if mover == strong {
		c.turns++
	}
	return c
}

// threeKingsAgainstOne reports the stronger side when one side has exactly
// three kings and the other a lone king, with no pawns on the board.
func threeKingsAgainstOne(b *Board) (Side, bool) {
	lp, lk := b.Count(Light)
	dp, dk := b.Count(Dark)
	if lp != 0 || dp != 0 {
		return Light, false
	}
	switch {
	case lk == 3 && dk == 1:
		return Light, true
	case dk == 3 && lk == 1:
		return Dark, true
	default:
		return Light, false
	}
}
