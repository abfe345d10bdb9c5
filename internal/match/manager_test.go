package match

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/park285/justcheckers-go/internal/checkers"
	svc "github.com/park285/justcheckers-go/internal/service/checkers"
)

func newTestManager(t *testing.T, opts ...Option) (*Manager, svc.Repository) {
	t.Helper()
	repo := svc.NewMemoryRepository()
	clock := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	base := []Option{
		WithRepository(repo),
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	}
	m := NewManager(append(base, opts...)...)
	t.Cleanup(func() { _ = m.Close() })
	return m, repo
}

func createAmerican(t *testing.T, m *Manager) *Snapshot {
	t.Helper()
	s, err := m.CreateMatch(context.Background(), CreateRequest{
		Variant:   checkers.American,
		LightName: "alice",
		DarkName:  "bob",
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	return s
}

// lastPieceMatch sets up a position where light captures dark's only piece.
func lastPieceMatch(t *testing.T, m *Manager) *Snapshot {
	t.Helper()
	b := checkers.NewBoard(8, false)
	b.Place(5, 2, checkers.LightPawn)
	b.Place(4, 3, checkers.DarkPawn)
	s, err := m.CreateMatch(context.Background(), CreateRequest{
		Variant:   checkers.American,
		LightName: "alice",
		DarkName:  "bob",
		Position:  b,
		ToMove:    checkers.Light,
	})
	if err != nil {
		t.Fatalf("CreateMatch: %v", err)
	}
	return s
}

func TestCreateMatchValidation(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	cases := []CreateRequest{
		{Variant: checkers.American, LightName: "", DarkName: "bob"},
		{Variant: checkers.American, LightName: "alice", DarkName: " alice "},
	}
	for _, req := range cases {
		if _, err := m.CreateMatch(ctx, req); !errors.Is(err, ErrInvalidArgs) {
			t.Fatalf("expected ErrInvalidArgs for %+v, got %v", req, err)
		}
	}
	_, err := m.CreateMatch(ctx, CreateRequest{Variant: checkers.Variant(99), LightName: "a", DarkName: "b"})
	if !errors.Is(err, checkers.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
	wrong := checkers.NewBoard(10, false)
	_, err = m.CreateMatch(ctx, CreateRequest{Variant: checkers.American, LightName: "a", DarkName: "b", Position: wrong})
	if !errors.Is(err, checkers.ErrInvalidRules) {
		t.Fatalf("expected ErrInvalidRules for mismatched board, got %v", err)
	}

	// dark to move with no dark pieces is already lost
	decided := checkers.NewBoard(8, false)
	decided.Place(5, 2, checkers.LightPawn)
	_, err = m.CreateMatch(ctx, CreateRequest{Variant: checkers.American, LightName: "a", DarkName: "b", Position: decided, ToMove: checkers.Dark})
	if !errors.Is(err, ErrInvalidArgs) {
		t.Fatalf("expected ErrInvalidArgs for a decided position, got %v", err)
	}
	if len(m.Active(ctx)) != 0 {
		t.Fatalf("decided position must not be registered")
	}
}

func TestPlayMoveOpening(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	s := createAmerican(t, m)

	if side, ok := s.ToMove(); !ok || side != checkers.Dark {
		t.Fatalf("american opens with dark, got %v %v", side, ok)
	}
	if len(s.Legal) != 7 || len(s.Movable) != 4 {
		t.Fatalf("unexpected opening moves: legal=%d movable=%d", len(s.Legal), len(s.Movable))
	}

	after, res, err := m.PlayMove(ctx, s.ID, checkers.Point{Row: 2, Col: 1}, checkers.Point{Row: 4, Col: 1})
	if err != nil {
		t.Fatalf("PlayMove illegal returned error: %v", err)
	}
	if res.Accepted() || len(after.History) != 0 || after.State != checkers.DarkMove {
		t.Fatalf("illegal move changed the match: %+v", res)
	}

	after, res, err = m.PlayMove(ctx, s.ID, checkers.Point{Row: 2, Col: 1}, checkers.Point{Row: 3, Col: 0})
	if err != nil {
		t.Fatalf("PlayMove: %v", err)
	}
	if res.Outcome != checkers.TurnEnded || after.State != checkers.LightMove {
		t.Fatalf("unexpected result %v state %v", res.Outcome, after.State)
	}
	if rec, ok := after.LastMove(); !ok || rec.Side != checkers.Dark {
		t.Fatalf("unexpected last move %+v", rec)
	}
	if !after.UpdatedAt.After(after.CreatedAt) {
		t.Fatalf("expected UpdatedAt to advance")
	}

	if _, _, err := m.PlayMove(ctx, "missing", checkers.Point{}, checkers.Point{}); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestPlayMoveFinishesMatch(t *testing.T) {
	m, repo := newTestManager(t)
	ctx := context.Background()
	s := lastPieceMatch(t, m)

	done, res, err := m.PlayMove(ctx, s.ID, checkers.Point{Row: 5, Col: 2}, checkers.Point{Row: 3, Col: 4})
	if err != nil {
		t.Fatalf("PlayMove: %v", err)
	}
	if res.Outcome != checkers.GameOver || done.Status != StatusFinished {
		t.Fatalf("expected finished match, got %v / %s", res.Outcome, done.Status)
	}
	if done.Winner != checkers.Light || done.Outcome() != "light" || done.Method != MethodBlocked {
		t.Fatalf("unexpected outcome %s by %s", done.Outcome(), done.Method)
	}
	if done.GameID == 0 {
		t.Fatalf("expected the game to be archived")
	}
	if len(done.Legal) != 0 {
		t.Fatalf("finished match must not list moves")
	}

	winner, err := repo.GetProfile(ctx, "alice")
	if err != nil || winner == nil || winner.Wins != 1 {
		t.Fatalf("winner profile not updated: %+v %v", winner, err)
	}
	loser, err := m.Profile(ctx, "bob")
	if err != nil || loser == nil || loser.Losses != 1 || loser.LastVariant != "american" {
		t.Fatalf("loser profile not updated: %+v %v", loser, err)
	}
	games, err := m.RecentGames(ctx, "bob", 5)
	if err != nil || len(games) != 1 || games[0].Result != "light" || len(games[0].Moves) != 1 {
		t.Fatalf("unexpected history: %+v %v", games, err)
	}

	if _, _, err := m.PlayMove(ctx, s.ID, checkers.Point{Row: 3, Col: 4}, checkers.Point{Row: 2, Col: 5}); !errors.Is(err, ErrMatchFinished) {
		t.Fatalf("expected ErrMatchFinished, got %v", err)
	}
	if n := len(m.Active(ctx)); n != 0 {
		t.Fatalf("finished match still active: %d", n)
	}
}

func TestResign(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	s := createAmerican(t, m)

	done, err := m.Resign(ctx, s.ID, checkers.Dark)
	if err != nil {
		t.Fatalf("Resign: %v", err)
	}
	if done.Status != StatusResigned || done.Winner != checkers.Light || done.Method != MethodResign {
		t.Fatalf("unexpected resign result: %+v", done)
	}
	if _, ok := done.ToMove(); ok {
		t.Fatalf("resigned match has no side to move")
	}
	if _, err := m.Resign(ctx, s.ID, checkers.Light); !errors.Is(err, ErrMatchFinished) {
		t.Fatalf("expected ErrMatchFinished, got %v", err)
	}
	p, _ := m.Profile(ctx, "bob")
	if p == nil || p.Losses != 1 {
		t.Fatalf("resigner should have a loss: %+v", p)
	}

	restarted, err := m.Restart(ctx, s.ID)
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if restarted.Status != StatusActive || len(restarted.History) != 0 || restarted.State != checkers.DarkMove {
		t.Fatalf("unexpected restart: %+v", restarted)
	}
}

func TestMaxActiveMatches(t *testing.T) {
	m, _ := newTestManager(t, WithMaxActive(1))
	ctx := context.Background()
	first := createAmerican(t, m)

	_, err := m.CreateMatch(ctx, CreateRequest{Variant: checkers.Pool, LightName: "carol", DarkName: "dave"})
	if !errors.Is(err, ErrTooManyMatches) {
		t.Fatalf("expected ErrTooManyMatches, got %v", err)
	}
	if _, err := m.Resign(ctx, first.ID, checkers.Light); err != nil {
		t.Fatalf("Resign: %v", err)
	}
	second, err := m.CreateMatch(ctx, CreateRequest{Variant: checkers.Pool, LightName: "carol", DarkName: "dave"})
	if err != nil {
		t.Fatalf("CreateMatch after resign: %v", err)
	}

	if _, err := m.Restart(ctx, first.ID); !errors.Is(err, ErrTooManyMatches) {
		t.Fatalf("restart over the limit: expected ErrTooManyMatches, got %v", err)
	}
	if s, _ := m.Snapshot(ctx, first.ID); s.Status != StatusResigned || s.Winner != checkers.Dark {
		t.Fatalf("refused restart must leave the match alone: %+v", s)
	}
	if len(m.Active(ctx)) != 1 {
		t.Fatalf("active count changed")
	}
	// restarting a live match does not need a free slot
	if _, err := m.Restart(ctx, second.ID); err != nil {
		t.Fatalf("Restart live match: %v", err)
	}

	if _, err := m.Resign(ctx, second.ID, checkers.Dark); err != nil {
		t.Fatalf("Resign: %v", err)
	}
	again, err := m.Restart(ctx, first.ID)
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if again.Status != StatusActive || again.Winner != checkers.Light || again.Method != "" || again.GameID != 0 {
		t.Fatalf("restart kept the old result: %+v", again)
	}
}

func TestSnapshotSideOf(t *testing.T) {
	m, _ := newTestManager(t)
	s := createAmerican(t, m)

	if side, err := s.SideOf("alice"); err != nil || side != checkers.Light {
		t.Fatalf("alice: %v %v", side, err)
	}
	if side, err := s.SideOf("bob"); err != nil || side != checkers.Dark {
		t.Fatalf("bob: %v %v", side, err)
	}
	if _, err := s.SideOf("carol"); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestConcurrentMovesSerialize(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	s := createAmerican(t, m)

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, res, err := m.PlayMove(ctx, s.ID, checkers.Point{Row: 2, Col: 1}, checkers.Point{Row: 3, Col: 2})
			if err != nil {
				t.Errorf("PlayMove: %v", err)
				return
			}
			if res.Accepted() {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if accepted != 1 {
		t.Fatalf("expected exactly one accepted move, got %d", accepted)
	}
	snap, err := m.Snapshot(ctx, s.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if len(snap.History) != 1 {
		t.Fatalf("expected one recorded step, got %d", len(snap.History))
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	s := createAmerican(t, m)

	s.Board.Clear()
	again, err := m.Snapshot(ctx, s.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if p, k := again.Board.Count(checkers.Dark); p != 12 || k != 0 {
		t.Fatalf("snapshot board shares state with the match: %d pawns", p)
	}
}

func TestActiveRemoveClose(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	a := createAmerican(t, m)
	b := createAmerican(t, m)

	active := m.Active(ctx)
	if len(active) != 2 || active[0].ID != a.ID || active[1].ID != b.ID {
		t.Fatalf("unexpected active order")
	}
	if err := m.Remove(ctx, a.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := m.Remove(ctx, a.ID); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := m.Snapshot(ctx, b.ID); !errors.Is(err, ErrManagerClosed) {
		t.Fatalf("expected ErrManagerClosed, got %v", err)
	}
	if _, err := m.CreateMatch(ctx, CreateRequest{Variant: checkers.American, LightName: "x", DarkName: "y"}); !errors.Is(err, ErrManagerClosed) {
		t.Fatalf("expected ErrManagerClosed, got %v", err)
	}
}
