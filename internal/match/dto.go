package match

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/park285/justcheckers-go/internal/checkers"
	"github.com/park285/justcheckers-go/internal/domain"
	"github.com/park285/justcheckers-go/internal/obslog"
	svc "github.com/park285/justcheckers-go/internal/service/checkers"
	"github.com/park285/justcheckers-go/pkg/checkersdto"
)

// RenderOptions builds renderer options for a snapshot: last step, chain
// piece, movable pieces and the piece score.
func RenderOptions(s *Snapshot, squareSize int, showCoords bool) svc.RenderOptions {
	opts := svc.RenderOptions{
		SquareSize: squareSize,
		ShowCoords: showCoords,
		Chain:      s.Chain,
		Movable:    append([]checkers.Point(nil), s.Movable...),
		HUDHeader:  s.LightName + " vs " + s.DarkName,
		HUDTurn:    hudTurn(s),
	}
	lp, lk := s.Board.Count(checkers.Light)
	dp, dk := s.Board.Count(checkers.Dark)
	opts.Score = svc.PieceScore{Light: lp + lk, Dark: dp + dk}
	if rec, ok := s.LastMove(); ok {
		h := &svc.MoveHighlight{From: rec.Move.From, To: rec.Move.To, Mover: rec.Side}
		if rec.Move.IsJump() {
			c := rec.Move.Captured
			h.Captured = &c
		}
		opts.Highlight = h
	}
	return opts
}

func hudTurn(s *Snapshot) string {
	if side, ok := s.ToMove(); ok {
		return s.NameOf(side) + " to move"
	}
	switch s.Outcome() {
	case "light":
		return s.LightName + " wins"
	case "dark":
		return s.DarkName + " wins"
	case "draw":
		return "draw"
	}
	return s.State.String()
}

// RenderPNG draws the snapshot with the configured renderer. It returns nil
// when no renderer is set.
func (m *Manager) RenderPNG(ctx context.Context, s *Snapshot) ([]byte, error) {
	if m.renderer == nil || s == nil {
		return nil, nil
	}
	return m.renderer.RenderPNG(ctx, s.Board, RenderOptions(s, m.render.squareSize, m.render.showCoords))
}

// ToDTO converts a snapshot for the presentation layer. A render failure is
// logged and leaves BoardImage empty.
func (m *Manager) ToDTO(ctx context.Context, s *Snapshot) *checkersdto.SessionState {
	if s == nil {
		return nil
	}
	size := s.Board.Size()
	rows := s.Board.Rows()
	board := make([][]string, len(rows))
	for i, row := range rows {
		board[i] = make([]string, len(row))
		for j, sq := range row {
			board[i][j] = sq.String()
		}
	}
	lp, lk := s.Board.Count(checkers.Light)
	dp, dk := s.Board.Count(checkers.Dark)

	moves := make([]string, 0, len(s.History))
	for _, rec := range s.History {
		moves = append(moves, rec.Move.String())
	}

	out := &checkersdto.SessionState{
		MatchID:       s.ID,
		Variant:       s.Variant.String(),
		LightName:     s.LightName,
		DarkName:      s.DarkName,
		State:         s.State.String(),
		BoardText:     s.Board.String(),
		Board:         board,
		BoardSize:     size,
		Moves:         moves,
		MoveCount:     len(moves),
		Pieces:        checkersdto.PieceCount{LightPawns: lp, LightKings: lk, DarkPawns: dp, DarkKings: dk},
		Outcome:       s.Outcome(),
		OutcomeMethod: s.Method,
		GameID:        s.GameID,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
	if side, ok := s.ToMove(); ok {
		out.ToMove = side.String()
	}
	for _, mv := range s.Legal {
		out.LegalMoves = append(out.LegalMoves, mv.String())
	}
	if s.Chain != nil {
		out.Chain = s.Chain.Algebraic(size)
	}

	img, err := m.RenderPNG(ctx, s)
	if err != nil {
		obslog.L().Warn("match_render_error", zap.String("match_id", s.ID), zap.Error(err))
	}
	out.BoardImage = img
	return out
}

// Profile returns a player's record, or nil when none is kept.
func (m *Manager) Profile(ctx context.Context, name string) (*domain.Profile, error) {
	if m.profiles == nil {
		return nil, nil
	}
	return m.profiles.GetProfile(ctx, strings.TrimSpace(name))
}

// RecentGames lists a player's finished games, newest first.
func (m *Manager) RecentGames(ctx context.Context, name string, limit int) ([]*domain.GameRecord, error) {
	if m.games == nil {
		return nil, nil
	}
	return m.games.GetRecentGames(ctx, strings.TrimSpace(name), limit)
}
