package checkers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/park285/justcheckers-go/internal/domain"
)

// memrepo keeps games and profiles in process memory.
type memrepo struct {
	mu sync.RWMutex

	nextID int64

	gamesByID     map[int64]*domain.GameRecord
	gamesByMatch  map[string]*domain.GameRecord
	gamesByPlayer map[string][]*domain.GameRecord // name -> games, latest last

	profiles map[string]*domain.Profile
}

func NewMemoryRepository() Repository {
	return &memrepo{
		gamesByID:     make(map[int64]*domain.GameRecord),
		gamesByMatch:  make(map[string]*domain.GameRecord),
		gamesByPlayer: make(map[string][]*domain.GameRecord),
		profiles:      make(map[string]*domain.Profile),
	}
}

func (m *memrepo) InsertGame(ctx context.Context, game *domain.GameRecord) (int64, error) {
	if game == nil {
		return 0, ErrDuplicateGame
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.gamesByMatch[game.MatchID]; exists {
		return 0, ErrDuplicateGame
	}

	m.nextID++
	stored := cloneGame(game)
	stored.ID = m.nextID

	m.gamesByID[stored.ID] = stored
	m.gamesByMatch[stored.MatchID] = stored
	m.gamesByPlayer[stored.LightName] = append(m.gamesByPlayer[stored.LightName], stored)
	if stored.DarkName != stored.LightName {
		m.gamesByPlayer[stored.DarkName] = append(m.gamesByPlayer[stored.DarkName], stored)
	}
	return stored.ID, nil
}

func (m *memrepo) GetRecentGames(ctx context.Context, player string, limit int) ([]*domain.GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := m.gamesByPlayer[strings.TrimSpace(player)]
	if len(list) == 0 {
		return []*domain.GameRecord{}, nil
	}
	items := make([]*domain.GameRecord, 0, len(list))
	for _, g := range list {
		items = append(items, cloneGame(g))
	}
	// newest first, ID breaks ties
	sort.Slice(items, func(i, j int) bool {
		if !items[i].EndedAt.Equal(items[j].EndedAt) {
			return items[i].EndedAt.After(items[j].EndedAt)
		}
		return items[i].ID > items[j].ID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (m *memrepo) GetGame(ctx context.Context, id int64) (*domain.GameRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.gamesByID[id]
	if !ok {
		return nil, nil
	}
	return cloneGame(g), nil
}

func (m *memrepo) GetProfile(ctx context.Context, name string) (*domain.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.profiles[name]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memrepo) UpdateProfile(ctx context.Context, name string, fn func(*domain.Profile)) (*domain.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p := domain.Profile{Name: name}
	if cur, ok := m.profiles[name]; ok {
		p = *cur
	}
	if fn != nil {
		fn(&p)
	}
	p.Name = name
	stored := p
	m.profiles[name] = &stored
	return &p, nil
}

func cloneGame(g *domain.GameRecord) *domain.GameRecord {
	cp := *g
	cp.Moves = append([]string(nil), g.Moves...)
	return &cp
}
