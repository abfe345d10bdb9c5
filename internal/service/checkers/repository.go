package checkers

import (
	"context"
	"errors"

	"github.com/park285/justcheckers-go/internal/domain"
)

var (
	ErrDuplicateGame = errors.New("checkers game already recorded")
	ErrEmptyName     = errors.New("profile name is empty")
)

// GameRepository keeps finished matches.
type GameRepository interface {
	InsertGame(ctx context.Context, game *domain.GameRecord) (int64, error)
	GetRecentGames(ctx context.Context, player string, limit int) ([]*domain.GameRecord, error)
	GetGame(ctx context.Context, id int64) (*domain.GameRecord, error)
}

// ProfileRepository keeps per-player records. GetProfile returns nil, nil for
// an unknown name. UpdateProfile creates the profile on first use and hands
// fn a mutable copy.
type ProfileRepository interface {
	GetProfile(ctx context.Context, name string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, name string, fn func(*domain.Profile)) (*domain.Profile, error)
}

type Repository interface {
	GameRepository
	ProfileRepository
}
