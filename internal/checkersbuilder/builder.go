package checkersbuilder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/park285/justcheckers-go/internal/adapter/checkerspresenter"
	"github.com/park285/justcheckers-go/internal/config"
	"github.com/park285/justcheckers-go/internal/match"
	"github.com/park285/justcheckers-go/internal/msgcat"
	"github.com/park285/justcheckers-go/internal/obslog"
	svc "github.com/park285/justcheckers-go/internal/service/checkers"
)

type Deps struct {
	Manager   *match.Manager
	Formatter *checkerspresenter.Formatter
	Catalog   *msgcat.Catalog
	Renderer  svc.BoardRenderer
	Repo      svc.Repository
	Profiles  svc.ProfileRepository

	redis *svc.RedisProfileRepository
}

// New wires the match manager and its collaborators. Player records go to
// Redis when cfg.RedisURL is set and stay in memory otherwise.
func New(ctx context.Context, cfg *config.AppConfig) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}

	cat, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	deps := &Deps{
		Catalog:   cat,
		Formatter: checkerspresenter.NewFormatter(cat),
		Renderer:  svc.NewSVGBoardRenderer(),
		Repo:      svc.NewMemoryRepository(),
	}
	deps.Profiles = deps.Repo

	if url := strings.TrimSpace(cfg.RedisURL); url != "" {
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		rp, err := svc.DialRedisProfiles(pctx, url)
		if err != nil {
			return nil, fmt.Errorf("init profile store: %w", err)
		}
		deps.redis = rp
		deps.Profiles = rp
	}

	opts := []match.Option{
		match.WithMaxActive(cfg.MaxActiveMatches),
		match.WithRepository(deps.Repo),
		match.WithProfiles(deps.Profiles),
	}
	if strings.TrimSpace(cfg.RenderDir) != "" {
		opts = append(opts, match.WithRenderer(deps.Renderer, cfg.SquareSize, cfg.ShowCoords))
	}
	deps.Manager = match.NewManager(opts...)

	obslog.L().Info("checkers_deps_ready",
		zap.Stringer("variant", cfg.Variant),
		zap.Bool("redis_profiles", deps.redis != nil),
		zap.String("render_dir", cfg.RenderDir),
		zap.Int("max_active", cfg.MaxActiveMatches),
	)
	return deps, nil
}

func (d *Deps) Close() error {
	if d == nil {
		return nil
	}
	if d.Manager != nil {
		_ = d.Manager.Close()
	}
	if d.redis != nil {
		return d.redis.Close()
	}
	return nil
}
