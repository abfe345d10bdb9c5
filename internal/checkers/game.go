package checkers

import (
	"fmt"

	"go.uber.org/zap"
)

// GameState is the externally visible status of a game.
type GameState uint8

const (
	NotStarted GameState = iota
	LightMove
	DarkMove
	LightVictory
	DarkVictory
	Draw
)

var gameStateNames = [...]string{
	NotStarted:   "not_started",
	LightMove:    "light_move",
	DarkMove:     "dark_move",
	LightVictory: "light_victory",
	DarkVictory:  "dark_victory",
	Draw:         "draw",
}

func (s GameState) String() string {
	if int(s) < len(gameStateNames) {
		return gameStateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

func (s GameState) IsTerminal() bool {
	return s == LightVictory || s == DarkVictory || s == Draw
}

// ToMove returns the side whose turn it is; ok is false outside play.
func (s GameState) ToMove() (Side, bool) {
	switch s {
	case LightMove:
		return Light, true
	case DarkMove:
		return Dark, true
	default:
		return Light, false
	}
}

func moveState(side Side) GameState {
	if side == Light {
		return LightMove
	}
	return DarkMove
}

// Phase separates the start of a turn from a capture chain in progress.
type Phase uint8

const (
	PhaseTurnStart Phase = iota
	PhaseChainCapture
)

func (p Phase) String() string {
	if p == PhaseChainCapture {
		return "chain_capture"
	}
	return "turn_start"
}

// turn is the whole turn marker. chain is meaningful only in PhaseChainCapture.
type turn struct {
	state GameState
	phase Phase
	chain Point
}

func (t turn) chainPoint() *Point {
	if t.phase != PhaseChainCapture {
		return nil
	}
	p := t.chain
	return &p
}

// MoveOutcome classifies the result of AttemptMove.
type MoveOutcome uint8

const (
	MoveRejected MoveOutcome = iota
	ChainContinues
	TurnEnded
	GameOver
)

func (o MoveOutcome) String() string {
	switch o {
	case ChainContinues:
		return "chain_continues"
	case TurnEnded:
		return "turn_ended"
	case GameOver:
		return "game_over"
	default:
		return "rejected"
	}
}

// MoveResult reports what AttemptMove did. Move and Promoted are zero for a
// rejected move; State is always the state after the call.
type MoveResult struct {
	Outcome  MoveOutcome
	Move     Move
	Promoted bool
	State    GameState
}

func (r MoveResult) Accepted() bool { return r.Outcome != MoveRejected }

// MoveRecord is one accepted step in the game history.
type MoveRecord struct {
	Seq      int  `json:"seq"`
	Side     Side `json:"side"`
	Move     Move `json:"move"`
	Promoted bool `json:"promoted"`
}

// Option configures a Game.
type Option func(*Game)

// WithLogger routes move diagnostics to l. The default discards them.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// Game owns one board and the turn marker. It is not safe for concurrent use;
// callers serialize access to a game.
type Game struct {
	light *Player
	dark  *Player
	rules Rules
	spec  variantSpec

	board   *Board
	turn    turn
	endgame endgameCounter
	history []MoveRecord

	logger *zap.Logger
}

// NewGame builds a game in the NotStarted state with an empty board.
func NewGame(light, dark *Player, rules Rules, opts ...Option) (*Game, error) {
	if light == nil || dark == nil {
		return nil, ErrNilPlayer
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		light:  light,
		dark:   dark,
		rules:  rules,
		spec:   variantSpecs[rules.Variant],
		board:  NewBoard(rules.BoardSize, rules.Mirrored),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// SetupNewGame places the starting pieces and hands the move to the first
// side. Any game in progress is discarded.
func (g *Game) SetupNewGame() error {
	if g.spec.setupRows == nil {
		return fmt.Errorf("%w: setup for %s", ErrUnimplemented, g.rules.Variant)
	}
	b := NewBoard(g.rules.BoardSize, g.rules.Mirrored)
	b.setup(g.spec.setupRows(g.rules.BoardSize))
	g.history = nil
	g.commit(b, turn{state: moveState(g.rules.FirstSide())}, endgameCounter{}, nil)
	g.logger.Debug("game_setup",
		zap.Stringer("variant", g.rules.Variant),
		zap.Stringer("to_move", g.rules.FirstSide()),
	)
	return nil
}

// SetPosition replaces the board with a copy of b and gives the move to
// toMove. History is cleared. The board must match the rules' geometry.
// When toMove has no legal move the variant's victory rule decides the
// position at once, as if the other side had just completed its turn.
func (g *Game) SetPosition(b *Board, toMove Side) error {
	if b == nil || b.Size() != g.rules.BoardSize || b.Mirrored() != g.rules.Mirrored {
		return fmt.Errorf("%w: board does not match %s geometry", ErrInvalidRules, g.rules.Variant)
	}
	next := b.Clone()
	state := moveState(toMove)
	if hasNoMoves(next, g.rules, toMove) {
		state = g.decide(next, toMove.Opposite(), endgameCounter{})
	}
	g.history = nil
	g.commit(next, turn{state: state}, endgameCounter{}, nil)
	return nil
}

// commit installs the next board, turn and endgame counter together.
func (g *Game) commit(b *Board, t turn, ec endgameCounter, rec *MoveRecord) {
	g.board = b
	g.turn = t
	g.endgame = ec
	if rec != nil {
		g.history = append(g.history, *rec)
	}
}

func (g *Game) Rules() Rules { return g.rules }

func (g *Game) LightPlayer() *Player { return g.light }

func (g *Game) DarkPlayer() *Player { return g.dark }

// Board returns a copy of the current board.
func (g *Game) Board() *Board { return g.board.Clone() }

func (g *Game) State() GameState { return g.turn.state }

func (g *Game) Phase() Phase { return g.turn.phase }

func (g *Game) IsLightPlayerTurn() bool { return g.turn.state == LightMove }

// JumpInProgress returns the square of the piece that must continue capturing.
func (g *Game) JumpInProgress() (Point, bool) {
	if g.turn.phase != PhaseChainCapture {
		return Point{}, false
	}
	return g.turn.chain, true
}

// Winner returns the winning side once the game is won.
func (g *Game) Winner() (Side, bool) {
	switch g.turn.state {
	case LightVictory:
		return Light, true
	case DarkVictory:
		return Dark, true
	default:
		return Light, false
	}
}

// History returns a copy of the accepted steps so far.
func (g *Game) History() []MoveRecord {
	out := make([]MoveRecord, len(g.history))
	copy(out, g.history)
	return out
}

// LegalMoves lists every move the side to move may play right now.
func (g *Game) LegalMoves() []Move {
	side, ok := g.turn.state.ToMove()
	if !ok {
		return nil
	}
	return legalMoves(g.board, g.rules, side, g.turn.chainPoint())
}

// CanPlayerJump reports whether the side to move has a capture available.
func (g *Game) CanPlayerJump() bool {
	side, ok := g.turn.state.ToMove()
	if !ok {
		return false
	}
	return len(availableJumps(g.board, g.rules, side, g.turn.chainPoint())) > 0
}

// IsMovablePiece reports whether the piece at (row, col) has a legal move.
func (g *Game) IsMovablePiece(row, col int) bool {
	p := Point{Row: row, Col: col}
	for _, mv := range g.LegalMoves() {
		if mv.From == p {
			return true
		}
	}
	return false
}

func (g *Game) CanMove(srcRow, srcCol, dstRow, dstCol int) bool {
	_, ok := g.findMove(srcRow, srcCol, dstRow, dstCol)
	return ok
}

func (g *Game) findMove(srcRow, srcCol, dstRow, dstCol int) (Move, bool) {
	if !g.board.IsLegalPosition(srcRow, srcCol) || !g.board.IsLegalPosition(dstRow, dstCol) {
		return Move{}, false
	}
	from := Point{Row: srcRow, Col: srcCol}
	to := Point{Row: dstRow, Col: dstCol}
	if chain := g.turn.chainPoint(); chain != nil && *chain != from {
		return Move{}, false
	}
	for _, mv := range g.LegalMoves() {
		if mv.From == from && mv.To == to {
			return mv, true
		}
	}
	return Move{}, false
}

// AttemptMove plays one step for the side to move. Illegal requests are
// reported as MoveRejected and leave the game untouched.
func (g *Game) AttemptMove(srcRow, srcCol, dstRow, dstCol int) MoveResult {
	side, playing := g.turn.state.ToMove()
	mv, ok := g.findMove(srcRow, srcCol, dstRow, dstCol)
	if !playing || !ok {
		g.logger.Debug("move_rejected",
			zap.Stringer("state", g.turn.state),
			zap.Int("src_row", srcRow),
			zap.Int("src_col", srcCol),
			zap.Int("dst_row", dstRow),
			zap.Int("dst_col", dstCol),
		)
		return MoveResult{Outcome: MoveRejected, State: g.turn.state}
	}

	next := g.board.Clone()
	promoted := applyStep(next, mv)
	rec := &MoveRecord{Seq: len(g.history) + 1, Side: side, Move: mv, Promoted: promoted}

	if mv.IsJump() && chainMayContinue(g.rules, promoted) {
		if len(availableJumps(next, g.rules, side, &mv.To)) > 0 {
			t := turn{state: g.turn.state, phase: PhaseChainCapture, chain: mv.To}
			g.commit(next, t, g.endgame, rec)
			return MoveResult{Outcome: ChainContinues, Move: mv, Promoted: promoted, State: t.state}
		}
	}

	ec := g.endgame.advance(next, side)
	t := turn{state: g.decide(next, side, ec)}
	outcome := TurnEnded
	if t.state.IsTerminal() {
		outcome = GameOver
	}
	g.commit(next, t, ec, rec)
	if outcome == GameOver {
		g.logger.Info("game_over",
			zap.Stringer("variant", g.rules.Variant),
			zap.Stringer("state", t.state),
			zap.Int("moves", len(g.history)),
		)
	}
	return MoveResult{Outcome: outcome, Move: mv, Promoted: promoted, State: t.state}
}

// decide runs the victory rule after mover completed a turn leaving b and
// returns the next state. A failing rule counts as no outcome.
func (g *Game) decide(b *Board, mover Side, ec endgameCounter) GameState {
	verdict, err := g.spec.victory(VictoryContext{
		Board:        b,
		Rules:        g.rules,
		Mover:        mover,
		EndgameTurns: ec.turns,
	})
	if err != nil {
		g.logger.Warn("victory_rule_failed", zap.Stringer("variant", g.rules.Variant), zap.Error(err))
		verdict = NoOutcome
	}
	switch verdict {
	case LightWins:
		return LightVictory
	case DarkWins:
		return DarkVictory
	case Drawn:
		return Draw
	}
	return moveState(mover.Opposite())
}
