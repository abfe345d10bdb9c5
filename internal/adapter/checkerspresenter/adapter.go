package checkerspresenter

import (
	"errors"

	"github.com/park285/justcheckers-go/internal/checkers"
	"github.com/park285/justcheckers-go/internal/domain"
	"github.com/park285/justcheckers-go/internal/match"
	"github.com/park285/justcheckers-go/pkg/checkersdto"
)

// Error codes carried by checkersdto.DomainError.
const (
	CodeNotFound    = "match_not_found"
	CodeFinished    = "match_finished"
	CodeClosed      = "manager_closed"
	CodeTooMany     = "too_many_matches"
	CodeInvalidArgs = "invalid_args"
	CodeBadVariant  = "unknown_variant"
	CodeNotPlayer   = "not_participant"
	CodeInternal    = "internal"
)

// ToDomainError classifies manager and engine errors for display.
func ToDomainError(err error) *checkersdto.DomainError {
	if err == nil {
		return nil
	}
	code := CodeInternal
	retryable := false
	switch {
	case errors.Is(err, match.ErrMatchNotFound):
		code = CodeNotFound
	case errors.Is(err, match.ErrMatchFinished):
		code = CodeFinished
	case errors.Is(err, match.ErrManagerClosed):
		code = CodeClosed
	case errors.Is(err, match.ErrTooManyMatches):
		code, retryable = CodeTooMany, true
	case errors.Is(err, match.ErrNotParticipant):
		code = CodeNotPlayer
	case errors.Is(err, checkers.ErrUnknownVariant), errors.Is(err, checkers.ErrUnimplemented):
		code = CodeBadVariant
	case errors.Is(err, match.ErrInvalidArgs), errors.Is(err, checkers.ErrInvalidRules):
		code = CodeInvalidArgs
	}
	return &checkersdto.DomainError{Code: code, Message: err.Error(), Retryable: retryable}
}

func ToDTOMoveSummary(state *checkersdto.SessionState, mover checkers.Side, res checkers.MoveResult, profiles ...*domain.Profile) *checkersdto.MoveSummary {
	out := &checkersdto.MoveSummary{
		State:    state,
		Mover:    mover.String(),
		Promoted: res.Promoted,
		Result:   resultToken(res.Outcome),
		Accepted: res.Accepted(),
		Finished: res.Outcome == checkers.GameOver,
	}
	if res.Accepted() {
		out.Move = res.Move.String()
		if res.Move.IsJump() {
			out.Captured = res.Move.Captured.String()
		}
	}
	for _, p := range profiles {
		if dto := ToDTOProfile(p); dto != nil {
			out.Profiles = append(out.Profiles, dto)
		}
	}
	return out
}

func resultToken(o checkers.MoveOutcome) string {
	switch o {
	case checkers.ChainContinues:
		return "chain_continues"
	case checkers.TurnEnded:
		return "turn_ended"
	case checkers.GameOver:
		return "game_over"
	default:
		return "rejected"
	}
}

func ToDTOProfile(p *domain.Profile) *checkersdto.Profile {
	if p == nil {
		return nil
	}
	return &checkersdto.Profile{
		Name:         p.Name,
		GamesPlayed:  p.GamesPlayed,
		Wins:         p.Wins,
		Losses:       p.Losses,
		Draws:        p.Draws,
		Streak:       p.Streak,
		StreakType:   string(p.StreakType),
		LastVariant:  p.LastVariant,
		LastPlayedAt: p.LastPlayedAt,
		UpdatedAt:    p.UpdatedAt,
		CreatedAt:    p.CreatedAt,
	}
}

func ToDTOGames(games []*domain.GameRecord) []*checkersdto.GameRecord {
	out := make([]*checkersdto.GameRecord, 0, len(games))
	for _, g := range games {
		if g == nil {
			continue
		}
		out = append(out, &checkersdto.GameRecord{
			ID:        g.ID,
			MatchID:   g.MatchID,
			Variant:   g.Variant,
			LightName: g.LightName,
			DarkName:  g.DarkName,
			Result:    g.Result,
			Method:    g.Method,
			Moves:     append([]string(nil), g.Moves...),
			StartedAt: g.StartedAt,
			EndedAt:   g.EndedAt,
			Duration:  g.Duration,
		})
	}
	return out
}
