package checkerspresenter

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/park285/justcheckers-go/internal/checkers"
	"github.com/park285/justcheckers-go/internal/domain"
	"github.com/park285/justcheckers-go/internal/match"
	"github.com/park285/justcheckers-go/internal/msgcat"
	"github.com/park285/justcheckers-go/pkg/checkersdto"
)

func newTestFormatter(t *testing.T) *Formatter {
	t.Helper()
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	return NewFormatter(cat)
}

func sampleState() *checkersdto.SessionState {
	b := checkers.NewBoard(8, false)
	b.SetupNewGame()
	return &checkersdto.SessionState{
		MatchID:    "m-1",
		Variant:    "american",
		LightName:  "alice",
		DarkName:   "bob",
		State:      "dark_move",
		ToMove:     "dark",
		BoardText:  b.String(),
		BoardSize:  8,
		Moves:      []string{"2,1-3,0", "5,2-4,3"},
		LegalMoves: []string{"2,3-3,2", "2,3-3,4"},
		Pieces:     checkersdto.PieceCount{LightPawns: 12, DarkPawns: 11, DarkKings: 1},
	}
}

func TestFormatterBoard(t *testing.T) {
	f := newTestFormatter(t)
	out := f.Board(sampleState())
	for _, want := range []string{
		"american | alice (light) vs bob (dark)",
		"Pieces: light 12, dark 12",
		"Last: 2,1-3,0 5,2-4,3",
		"bob (dark) to move.",
		" DP ",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("board output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatterChainAndOutcome(t *testing.T) {
	f := newTestFormatter(t)
	s := sampleState()
	s.Chain = "c5"
	if got := f.Turn(s); got != "bob must keep capturing with the piece on c5." {
		t.Fatalf("unexpected chain line: %q", got)
	}

	s.ToMove = ""
	s.Outcome = "light"
	s.OutcomeMethod = "resign"
	if got := f.Board(s); !strings.HasSuffix(got, "alice (light) wins by resign.") {
		t.Fatalf("unexpected outcome:\n%s", got)
	}
	s.Outcome, s.OutcomeMethod = "draw", "draw"
	if got := f.Outcome(s); got != "The game is drawn (draw)." {
		t.Fatalf("unexpected draw line: %q", got)
	}
}

func TestFormatterMove(t *testing.T) {
	f := newTestFormatter(t)
	s := sampleState()
	s.LegalMoves = []string{"4,3x2,1", "4,3x2,5"}

	rejected := ToDTOMoveSummary(s, checkers.Dark, checkers.MoveResult{Outcome: checkers.MoveRejected})
	got := f.Move(rejected, "a3", "b4")
	if got != "a3 to b4 is not a legal move. A capture is available and must be taken." {
		t.Fatalf("unexpected rejection: %q", got)
	}

	mv := checkers.Move{
		From:     checkers.Point{Row: 2, Col: 1},
		To:       checkers.Point{Row: 4, Col: 3},
		Kind:     checkers.Jump,
		Captured: checkers.Point{Row: 3, Col: 2},
	}
	summary := ToDTOMoveSummary(s, checkers.Dark, checkers.MoveResult{Outcome: checkers.TurnEnded, Move: mv, Promoted: true},
		&domain.Profile{Name: "bob", GamesPlayed: 3, Wins: 3, Streak: 3, StreakType: domain.ResultWin})
	if summary.Captured != "(3,2)" || summary.Result != "turn_ended" || !summary.Accepted {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	got = f.Move(summary, "c6", "e4")
	for _, want := range []string{"bob played 2,1x4,3.", "bob crowned a king on e4.", "Current streak: 3 win"} {
		if !strings.Contains(got, want) {
			t.Fatalf("move output missing %q:\n%s", want, got)
		}
	}
}

func TestFormatterProfileAndHistory(t *testing.T) {
	f := newTestFormatter(t)
	if got := f.Profile(nil, "carol"); got != "No games recorded for carol yet." {
		t.Fatalf("unexpected empty profile: %q", got)
	}
	p := ToDTOProfile(&domain.Profile{Name: "carol", GamesPlayed: 4, Wins: 2, Losses: 1, Draws: 1, Streak: 1, StreakType: domain.ResultDraw})
	if got := f.Profile(p, "carol"); got != "carol: 2 wins, 1 losses, 1 draws over 4 games" {
		t.Fatalf("unexpected profile: %q", got)
	}

	games := ToDTOGames([]*domain.GameRecord{
		{ID: 7, Variant: "pool", LightName: "carol", DarkName: "dave", Result: "draw", Method: "draw", Moves: []string{"a", "b"}},
		nil,
	})
	got := f.History("carol", games)
	if !strings.Contains(got, "#7 pool carol vs dave: draw by draw, 2 steps") {
		t.Fatalf("unexpected history:\n%s", got)
	}
	if got := f.History("carol", nil); got != "No finished games for carol." {
		t.Fatalf("unexpected empty history: %q", got)
	}
}

func TestFormatterErrors(t *testing.T) {
	f := newTestFormatter(t)
	notFound := ToDomainError(fmt.Errorf("%w: abc", match.ErrMatchNotFound))
	if notFound.Code != CodeNotFound || f.Error(notFound) != "No such match." {
		t.Fatalf("unexpected not-found mapping: %+v", notFound)
	}
	busy := ToDomainError(match.ErrTooManyMatches)
	if !busy.Retryable {
		t.Fatalf("too many matches should be retryable")
	}
	variant := f.Error(ToDomainError(checkers.ErrUnknownVariant))
	if !strings.Contains(variant, "american, international") {
		t.Fatalf("unexpected variant error: %q", variant)
	}
	internal := ToDomainError(errors.New("disk on fire"))
	if got := f.Error(internal); got != "Something went wrong: disk on fire" {
		t.Fatalf("unexpected internal error: %q", got)
	}
	if ToDomainError(nil) != nil {
		t.Fatalf("nil error should map to nil")
	}
}

func TestFormatterFallsBackWithoutCatalog(t *testing.T) {
	f := NewFormatter(nil)
	if got := f.Turn(sampleState()); got != "bob (dark) to move." {
		t.Fatalf("unexpected fallback: %q", got)
	}
	if got := f.BadInput("zz"); !strings.HasPrefix(got, "Could not read zz.") {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

func TestPresenterDelivers(t *testing.T) {
	var (
		messages []string
		images   int
	)
	p := NewPresenter(
		func(target, message string) error {
			messages = append(messages, target+":"+message)
			return nil
		},
		func(target string, png []byte) error {
			images++
			return nil
		},
	)
	s := sampleState()
	if err := p.Board("tty", "hello", s); err != nil {
		t.Fatalf("Board: %v", err)
	}
	s.BoardImage = []byte{1}
	if err := p.Board("tty", "  ", s); err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(messages) != 1 || messages[0] != "tty:hello" || images != 1 {
		t.Fatalf("unexpected deliveries: %v images=%d", messages, images)
	}

	failing := NewPresenter(func(string, string) error { return errors.New("closed") }, nil)
	if err := failing.Message("tty", "x"); err == nil {
		t.Fatalf("expected send error")
	}
}
