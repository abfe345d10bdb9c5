package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/park285/justcheckers-go/internal/adapter/checkerspresenter"
	"github.com/park285/justcheckers-go/internal/checkers"
	appcfg "github.com/park285/justcheckers-go/internal/config"
	"github.com/park285/justcheckers-go/internal/match"
	"github.com/park285/justcheckers-go/pkg/checkersdto"
)

// session drives one hot-seat match from typed commands.
type session struct {
	cfg       *appcfg.AppConfig
	manager   *match.Manager
	formatter *checkerspresenter.Formatter
	presenter *checkerspresenter.Presenter

	matchID string
	size    int
}

func newSession(cfg *appcfg.AppConfig, m *match.Manager, f *checkerspresenter.Formatter, p *checkerspresenter.Presenter) *session {
	return &session{cfg: cfg, manager: m, formatter: f, presenter: p}
}

func (s *session) start(ctx context.Context, variant checkers.Variant) error {
	if s.matchID != "" {
		_ = s.manager.Remove(ctx, s.matchID)
	}
	snap, err := s.manager.CreateMatch(ctx, match.CreateRequest{
		Variant:   variant,
		LightName: s.cfg.LightName,
		DarkName:  s.cfg.DarkName,
	})
	if err != nil {
		return err
	}
	s.matchID = snap.ID
	s.size = snap.Board.Size()
	state := s.state(ctx, snap)
	return s.presenter.Board(imageName(state), s.formatter.Created(state), state)
}

func (s *session) prompt() string {
	snap, err := s.manager.Snapshot(context.Background(), s.matchID)
	if err != nil {
		return "> "
	}
	if side, ok := snap.ToMove(); ok {
		return fmt.Sprintf("[%s] > ", snap.NameOf(side))
	}
	return "[game over] > "
}

// handle runs one input line. It returns false when the user quits.
func (s *session) handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	switch cmd := strings.ToLower(fields[0]); cmd {
	case "quit", "exit", "q":
		return false
	case "help", "?":
		s.say(s.formatter.Help())
	case "board":
		s.show(ctx)
	case "moves":
		snap, err := s.manager.Snapshot(ctx, s.matchID)
		if err != nil {
			s.fail(err)
			return true
		}
		s.say(s.formatter.LegalMoves(s.manager.ToDTO(ctx, snap)))
	case "resign":
		s.resign(ctx, fields[1:])
	case "new":
		variant := s.cfg.Variant
		if len(fields) > 1 {
			v, err := checkers.ParseVariant(fields[1])
			if err != nil {
				s.fail(err)
				return true
			}
			variant = v
		}
		if err := s.start(ctx, variant); err != nil {
			s.fail(err)
		}
	case "profile":
		s.profile(ctx, argOr(fields, s.cfg.LightName))
	case "history":
		s.history(ctx, argOr(fields, s.cfg.LightName))
	default:
		from, to, err := parseMove(fields, s.size)
		if err != nil {
			s.say(s.formatter.BadInput(strings.TrimSpace(line)))
			return true
		}
		s.play(ctx, from, to, fields)
	}
	return true
}

func (s *session) play(ctx context.Context, from, to checkers.Point, fields []string) {
	before, err := s.manager.Snapshot(ctx, s.matchID)
	if err != nil {
		s.fail(err)
		return
	}
	mover, _ := before.ToMove()
	snap, res, err := s.manager.PlayMove(ctx, s.matchID, from, to)
	if err != nil {
		s.fail(err)
		return
	}
	state := s.state(ctx, snap)
	summary := checkerspresenter.ToDTOMoveSummary(state, mover, res)
	if res.Outcome == checkers.GameOver {
		for _, name := range []string{snap.LightName, snap.DarkName} {
			if p, err := s.manager.Profile(ctx, name); err == nil && p != nil {
				summary.Profiles = append(summary.Profiles, checkerspresenter.ToDTOProfile(p))
			}
		}
	}
	text := s.formatter.Move(summary, fields[0], fields[len(fields)-1])
	if !res.Accepted() {
		s.say(text)
		return
	}
	_ = s.presenter.Board(imageName(state), text, state)
}

// resign gives up for the named player, or for the side to move.
func (s *session) resign(ctx context.Context, args []string) {
	snap, err := s.manager.Snapshot(ctx, s.matchID)
	if err != nil {
		s.fail(err)
		return
	}
	side, ok := snap.ToMove()
	if !ok {
		s.fail(match.ErrMatchFinished)
		return
	}
	if len(args) > 0 {
		if side, err = snap.SideOf(args[0]); err != nil {
			s.fail(err)
			return
		}
	}
	snap, err = s.manager.Resign(ctx, s.matchID, side)
	if err != nil {
		s.fail(err)
		return
	}
	state := s.state(ctx, snap)
	_ = s.presenter.Board(imageName(state), s.formatter.Board(state), state)
}

func (s *session) show(ctx context.Context) {
	snap, err := s.manager.Snapshot(ctx, s.matchID)
	if err != nil {
		s.fail(err)
		return
	}
	state := s.state(ctx, snap)
	_ = s.presenter.Board(imageName(state), s.formatter.Board(state), state)
}

func (s *session) profile(ctx context.Context, name string) {
	p, err := s.manager.Profile(ctx, name)
	if err != nil {
		s.fail(err)
		return
	}
	s.say(s.formatter.Profile(checkerspresenter.ToDTOProfile(p), name))
}

func (s *session) history(ctx context.Context, name string) {
	games, err := s.manager.RecentGames(ctx, name, 10)
	if err != nil {
		s.fail(err)
		return
	}
	s.say(s.formatter.History(name, checkerspresenter.ToDTOGames(games)))
}

func (s *session) state(ctx context.Context, snap *match.Snapshot) *checkersdto.SessionState {
	return s.manager.ToDTO(ctx, snap)
}

func (s *session) say(text string) {
	_ = s.presenter.Message("", text)
}

func (s *session) fail(err error) {
	s.say(s.formatter.Error(checkerspresenter.ToDomainError(err)))
}

// imageName is unique per step; a resignation keeps the step count, so
// finished boards carry the outcome instead of the state.
func imageName(state *checkersdto.SessionState) string {
	suffix := state.State
	if state.Finished() {
		suffix = state.Outcome
	}
	return fmt.Sprintf("%s-%03d-%s", state.MatchID, state.MoveCount, suffix)
}

func argOr(fields []string, fallback string) string {
	if len(fields) > 1 {
		return strings.Join(fields[1:], " ")
	}
	return fallback
}

// parseMove reads "5,0 4,1", "a3 b4", "a3-b4" or "a3xc5".
func parseMove(fields []string, size int) (checkers.Point, checkers.Point, error) {
	var parts []string
	switch len(fields) {
	case 1:
		parts = strings.FieldsFunc(fields[0], func(r rune) bool { return r == '-' || r == 'x' || r == 'X' })
	case 2:
		parts = fields
	default:
		return checkers.Point{}, checkers.Point{}, fmt.Errorf("expected two squares, got %d fields", len(fields))
	}
	if len(parts) != 2 {
		return checkers.Point{}, checkers.Point{}, fmt.Errorf("expected two squares in %q", strings.Join(fields, " "))
	}
	from, err := checkers.ParsePoint(parts[0], size)
	if err != nil {
		return checkers.Point{}, checkers.Point{}, err
	}
	to, err := checkers.ParsePoint(parts[1], size)
	if err != nil {
		return checkers.Point{}, checkers.Point{}, err
	}
	return from, to, nil
}
