package match

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/justcheckers-go/internal/checkers"
	"github.com/park285/justcheckers-go/internal/domain"
	"github.com/park285/justcheckers-go/internal/obslog"
	svc "github.com/park285/justcheckers-go/internal/service/checkers"
)

const DefaultMaxActive = 200

// Manager is an in-process registry of live matches. Each match carries its
// own lock; the registry lock only guards the map.
type Manager struct {
	mu      sync.RWMutex
	matches map[string]*entry
	closed  bool

	maxActive int
	games     svc.GameRepository
	profiles  svc.ProfileRepository
	renderer  svc.BoardRenderer
	render    renderSettings
	now       func() time.Time
}

type renderSettings struct {
	squareSize int
	showCoords bool
}

type entry struct {
	mu        sync.Mutex
	id        string
	game      *checkers.Game
	status    Status
	winner    checkers.Side
	method    string
	gameID    int64
	createdAt time.Time
	updatedAt time.Time
}

type Option func(*Manager)

func WithMaxActive(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxActive = n
		}
	}
}

// WithRepository stores finished games and player records.
func WithRepository(r svc.Repository) Option {
	return func(m *Manager) {
		m.games = r
		m.profiles = r
	}
}

// WithProfiles overrides where player records are kept.
func WithProfiles(p svc.ProfileRepository) Option {
	return func(m *Manager) { m.profiles = p }
}

// WithRenderer enables board images in ToDTO.
func WithRenderer(r svc.BoardRenderer, squareSize int, showCoords bool) Option {
	return func(m *Manager) {
		m.renderer = r
		m.render = renderSettings{squareSize: squareSize, showCoords: showCoords}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		matches:   make(map[string]*entry),
		maxActive: DefaultMaxActive,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateMatch seats two players and sets up the opening position, or the
// prepared one when req.Position is set.
// 이미 승부가 난 배치는 등록하지 않음.
func (m *Manager) CreateMatch(ctx context.Context, req CreateRequest) (*Snapshot, error) {
	light := strings.TrimSpace(req.LightName)
	dark := strings.TrimSpace(req.DarkName)
	if light == "" || dark == "" || light == dark {
		return nil, fmt.Errorf("%w: players %q and %q", ErrInvalidArgs, req.LightName, req.DarkName)
	}
	rules, err := checkers.RulesFor(req.Variant)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	game, err := checkers.NewGame(checkers.NewPlayer(light), checkers.NewPlayer(dark), rules,
		checkers.WithLogger(obslog.L().With(zap.String("match_id", id))))
	if err != nil {
		return nil, err
	}
	if req.Position != nil {
		err = game.SetPosition(req.Position, req.ToMove)
	} else {
		err = game.SetupNewGame()
	}
	if err != nil {
		return nil, err
	}
	if game.State().IsTerminal() {
		return nil, fmt.Errorf("%w: position is already decided (%s)", ErrInvalidArgs, game.State())
	}

	now := m.now()
	e := &entry{
		id:        id,
		game:      game,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrManagerClosed
	}
	if m.activeCountLocked(nil) >= m.maxActive {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: limit %d", ErrTooManyMatches, m.maxActive)
	}
	m.matches[id] = e
	m.mu.Unlock()

	obslog.L().Info("match_create",
		zap.String("match_id", id),
		zap.Stringer("variant", rules.Variant),
		zap.String("light", light),
		zap.String("dark", dark),
		zap.Bool("custom_position", req.Position != nil),
	)

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot(), nil
}

// PlayMove plays one step in a match. An illegal step is not an error: the
// returned MoveResult is MoveRejected and the match is unchanged.
func (m *Manager) PlayMove(ctx context.Context, id string, from, to checkers.Point) (*Snapshot, checkers.MoveResult, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, checkers.MoveResult{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusActive {
		return e.snapshot(), checkers.MoveResult{Outcome: checkers.MoveRejected, State: e.game.State()}, ErrMatchFinished
	}
	mover, _ := e.game.State().ToMove()
	res := e.game.AttemptMove(from.Row, from.Col, to.Row, to.Col)
	if !res.Accepted() {
		obslog.L().Debug("move_rejected",
			zap.String("match_id", e.id),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
		return e.snapshot(), res, nil
	}
	e.updatedAt = m.now()

	obslog.L().Info("match_move",
		zap.String("match_id", e.id),
		zap.Stringer("side", mover),
		zap.Stringer("move", res.Move),
		zap.Stringer("result", res.Outcome),
		zap.Bool("promoted", res.Promoted),
		zap.Stringer("state", res.State),
	)

	if res.Outcome == checkers.GameOver {
		switch res.State {
		case checkers.LightVictory:
			e.status, e.winner, e.method = StatusFinished, checkers.Light, MethodBlocked
		case checkers.DarkVictory:
			e.status, e.winner, e.method = StatusFinished, checkers.Dark, MethodBlocked
		default:
			e.status, e.method = StatusDraw, MethodDraw
		}
		m.finish(ctx, e)
	}
	return e.snapshot(), res, nil
}

// Resign ends a live match in favour of the other side.
func (m *Manager) Resign(ctx context.Context, id string, side checkers.Side) (*Snapshot, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusActive {
		return e.snapshot(), ErrMatchFinished
	}
	e.status = StatusResigned
	e.winner = side.Opposite()
	e.method = MethodResign
	e.updatedAt = m.now()

	obslog.L().Info("match_resign",
		zap.String("match_id", e.id),
		zap.Stringer("resigner", side),
	)
	m.finish(ctx, e)
	return e.snapshot(), nil
}

// Restart discards the current game and deals the opening position again
// with the same players.
// 종료된 대국을 다시 열 때도 동시 진행 한도를 적용.
func (m *Manager) Restart(ctx context.Context, id string) (*Snapshot, error) {
	id = strings.TrimSpace(id)
	// 락 순서: 레지스트리 → 대국
	m.mu.Lock()
	defer m.mu.Unlock()
	e, err := m.lookupLocked(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusActive && m.activeCountLocked(e) >= m.maxActive {
		return nil, fmt.Errorf("%w: limit %d", ErrTooManyMatches, m.maxActive)
	}
	if err := e.game.SetupNewGame(); err != nil {
		return nil, err
	}
	now := m.now()
	e.status = StatusActive
	e.winner = 0
	e.method = ""
	e.gameID = 0
	e.createdAt = now
	e.updatedAt = now
	obslog.L().Info("match_restart", zap.String("match_id", e.id))
	return e.snapshot(), nil
}

func (m *Manager) Snapshot(ctx context.Context, id string) (*Snapshot, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot(), nil
}

// Active lists live matches, oldest first.
func (m *Manager) Active(ctx context.Context) []*Snapshot {
	m.mu.RLock()
	entries := make([]*entry, 0, len(m.matches))
	for _, e := range m.matches {
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	out := make([]*Snapshot, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if e.status == StatusActive {
			out = append(out, e.snapshot())
		}
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Remove drops a match from the registry.
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.matches[id]; !ok {
		return ErrMatchNotFound
	}
	delete(m.matches, id)
	return nil
}

// Close empties the registry. Later calls fail with ErrManagerClosed.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.matches = make(map[string]*entry)
	return nil
}

func (m *Manager) lookup(id string) (*entry, error) {
	id = strings.TrimSpace(id)
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookupLocked(id)
}

// lookupLocked requires m.mu.
func (m *Manager) lookupLocked(id string) (*entry, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty match id", ErrInvalidArgs)
	}
	if m.closed {
		return nil, ErrManagerClosed
	}
	e, ok := m.matches[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	return e, nil
}

// activeCountLocked counts live matches other than skip. Caller holds m.mu
// and, when skip is set, skip.mu.
func (m *Manager) activeCountLocked(skip *entry) int {
	n := 0
	for _, e := range m.matches {
		if e == skip {
			continue
		}
		e.mu.Lock()
		if e.status == StatusActive {
			n++
		}
		e.mu.Unlock()
	}
	return n
}

// finish updates player records and archives the game. Storage failures are
// logged; the match result stands regardless. Caller holds e.mu.
func (m *Manager) finish(ctx context.Context, e *entry) {
	light, dark := e.game.LightPlayer(), e.game.DarkPlayer()
	lightResult, darkResult := domain.ResultDraw, domain.ResultDraw
	switch {
	case e.status == StatusDraw:
		light.RecordTie()
		dark.RecordTie()
	case e.winner == checkers.Light:
		light.RecordWin()
		dark.RecordLoss()
		lightResult, darkResult = domain.ResultWin, domain.ResultLoss
	default:
		dark.RecordWin()
		light.RecordLoss()
		lightResult, darkResult = domain.ResultLoss, domain.ResultWin
	}

	snap := e.snapshot()
	obslog.L().Info("match_finish",
		zap.String("match_id", e.id),
		zap.String("status", string(e.status)),
		zap.String("outcome", snap.Outcome()),
		zap.String("method", e.method),
		zap.Int("steps", len(snap.History)),
	)

	variant := e.game.Rules().Variant.String()
	if m.profiles != nil {
		for _, r := range []struct {
			name   string
			result domain.Result
		}{{light.Name, lightResult}, {dark.Name, darkResult}} {
			_, err := m.profiles.UpdateProfile(ctx, r.name, func(p *domain.Profile) {
				p.Apply(r.result, variant, e.updatedAt)
			})
			if err != nil {
				obslog.L().Error("match_profile_update_error",
					zap.String("match_id", e.id),
					zap.String("player", r.name),
					zap.Error(err),
				)
			}
		}
	}

	if m.games == nil {
		return
	}
	moves := make([]string, 0, len(snap.History))
	for _, rec := range snap.History {
		moves = append(moves, rec.Move.String())
	}
	gameID, err := m.games.InsertGame(ctx, &domain.GameRecord{
		MatchID:   e.id,
		Variant:   variant,
		LightName: light.Name,
		DarkName:  dark.Name,
		Result:    snap.Outcome(),
		Method:    e.method,
		Moves:     moves,
		StartedAt: e.createdAt,
		EndedAt:   e.updatedAt,
		Duration:  e.updatedAt.Sub(e.createdAt),
	})
	if err != nil {
		if !errors.Is(err, svc.ErrDuplicateGame) {
			obslog.L().Error("match_persist_error", zap.String("match_id", e.id), zap.Error(err))
		}
		return
	}
	e.gameID = gameID
	obslog.L().Info("match_persist", zap.String("match_id", e.id), zap.Int64("game_id", gameID))
}

// snapshot copies the live state. Caller holds e.mu.
func (e *entry) snapshot() *Snapshot {
	g := e.game
	s := &Snapshot{
		ID:        e.id,
		Variant:   g.Rules().Variant,
		Rules:     g.Rules(),
		LightName: g.LightPlayer().Name,
		DarkName:  g.DarkPlayer().Name,
		Status:    e.status,
		State:     g.State(),
		Board:     g.Board(),
		History:   g.History(),
		Winner:    e.winner,
		Method:    e.method,
		GameID:    e.gameID,
		CreatedAt: e.createdAt,
		UpdatedAt: e.updatedAt,
	}
	if p, ok := g.JumpInProgress(); ok {
		s.Chain = &p
	}
	if e.status == StatusActive {
		s.Legal = g.LegalMoves()
		seen := make(map[checkers.Point]bool)
		for _, mv := range s.Legal {
			if !seen[mv.From] {
				seen[mv.From] = true
				s.Movable = append(s.Movable, mv.From)
			}
		}
	}
	return s
}
