package checkerspresenter

import (
	"fmt"
	"strings"

	"github.com/park285/justcheckers-go/internal/checkers"
	"github.com/park285/justcheckers-go/internal/msgcat"
	"github.com/park285/justcheckers-go/pkg/checkersdto"
)

const (
	recentMovesLimit = 6
	historyLimit     = 10
)

// Formatter renders checkers DTOs into terminal text. Templates come from
// the message catalog; a missing or broken template falls back to built-in
// English text.
type Formatter struct {
	cat *msgcat.Catalog
}

func NewFormatter(cat *msgcat.Catalog) *Formatter {
	return &Formatter{cat: cat}
}

func (f *Formatter) render(key string, data map[string]any, fallback string) string {
	if f == nil || f.cat == nil {
		return fallback
	}
	out, err := f.cat.Render(key, data)
	if err != nil {
		return fallback
	}
	return out
}

func (f *Formatter) Created(state *checkersdto.SessionState) string {
	if state == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(f.render("match.created", map[string]any{
		"Variant": state.Variant,
		"ID":      state.MatchID,
		"Light":   state.LightName,
		"Dark":    state.DarkName,
	}, fmt.Sprintf("New %s match %s: %s vs %s.", state.Variant, state.MatchID, state.LightName, state.DarkName)))
	sb.WriteString("\n\n")
	sb.WriteString(f.Board(state))
	return sb.String()
}

// Board prints the header, the board dump, the piece count and the turn line.
func (f *Formatter) Board(state *checkersdto.SessionState) string {
	if state == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(f.render("match.header", map[string]any{
		"Variant": state.Variant,
		"Light":   state.LightName,
		"Dark":    state.DarkName,
	}, fmt.Sprintf("%s | %s vs %s", state.Variant, state.LightName, state.DarkName)))
	sb.WriteString("\n\n")
	sb.WriteString(strings.TrimRight(state.BoardText, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(f.Score(state.Pieces))
	if recent := formatRecentMoves(state.Moves); recent != "" {
		sb.WriteString("\nLast: ")
		sb.WriteString(recent)
	}
	sb.WriteString("\n")
	if state.Finished() {
		sb.WriteString(f.Outcome(state))
	} else {
		sb.WriteString(f.Turn(state))
	}
	return sb.String()
}

func (f *Formatter) Score(p checkersdto.PieceCount) string {
	return f.render("score.line", map[string]any{"Light": p.Light(), "Dark": p.Dark()},
		fmt.Sprintf("Pieces: light %d, dark %d", p.Light(), p.Dark()))
}

// Turn names the side to move, or the piece that must keep capturing.
func (f *Formatter) Turn(state *checkersdto.SessionState) string {
	if state == nil || state.ToMove == "" {
		return ""
	}
	name := nameFor(state, state.ToMove)
	if state.Chain != "" {
		return f.render("turn.chain", map[string]any{"Name": name, "From": state.Chain},
			fmt.Sprintf("%s must keep capturing with the piece on %s.", name, state.Chain))
	}
	return f.render("turn.to_move", map[string]any{"Name": name, "Side": state.ToMove},
		fmt.Sprintf("%s (%s) to move.", name, state.ToMove))
}

func (f *Formatter) Outcome(state *checkersdto.SessionState) string {
	if state == nil || state.Outcome == "" {
		return ""
	}
	method := state.OutcomeMethod
	switch state.Outcome {
	case "draw":
		return f.render("outcome.draw", map[string]any{"Method": method},
			fmt.Sprintf("The game is drawn (%s).", method))
	default:
		name := nameFor(state, state.Outcome)
		return f.render("outcome."+state.Outcome, map[string]any{"Name": name, "Method": method},
			fmt.Sprintf("%s (%s) wins by %s.", name, state.Outcome, method))
	}
}

// Move reports one step. Rejections carry the requested squares; accepted
// steps are followed by the board.
func (f *Formatter) Move(summary *checkersdto.MoveSummary, from, to string) string {
	if summary == nil || summary.State == nil {
		return ""
	}
	state := summary.State
	if !summary.Accepted {
		var sb strings.Builder
		sb.WriteString(f.render("move.rejected", map[string]any{"From": from, "To": to},
			fmt.Sprintf("%s to %s is not a legal move.", from, to)))
		if mustCapture(state.LegalMoves) && !state.Finished() {
			sb.WriteString(" ")
			sb.WriteString(f.render("turn.must_capture", nil, "A capture is available and must be taken."))
		}
		return sb.String()
	}

	name := nameFor(state, summary.Mover)
	var sb strings.Builder
	sb.WriteString(f.render("move.played", map[string]any{"Name": name, "Move": summary.Move},
		fmt.Sprintf("%s played %s.", name, summary.Move)))
	if summary.Promoted {
		sb.WriteString("\n")
		sb.WriteString(f.render("move.promoted", map[string]any{"Name": name, "At": to},
			fmt.Sprintf("%s crowned a king on %s.", name, to)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(f.Board(state))
	for _, p := range summary.Profiles {
		sb.WriteString("\n")
		sb.WriteString(f.Profile(p, p.Name))
	}
	return sb.String()
}

func (f *Formatter) BadInput(input string) string {
	return f.render("move.bad_input", map[string]any{"Input": input},
		fmt.Sprintf("Could not read %s. Use \"5,0 4,1\" or \"a3 b4\".", input))
}

// LegalMoves lists every move on offer, wrapped several to a line.
func (f *Formatter) LegalMoves(state *checkersdto.SessionState) string {
	if state == nil || len(state.LegalMoves) == 0 {
		return f.Turn(state)
	}
	var sb strings.Builder
	for i, mv := range state.LegalMoves {
		switch {
		case i == 0:
		case i%6 == 0:
			sb.WriteString("\n")
		default:
			sb.WriteString("  ")
		}
		sb.WriteString(mv)
	}
	return sb.String()
}

func (f *Formatter) Profile(p *checkersdto.Profile, name string) string {
	if p == nil || p.GamesPlayed == 0 {
		return f.render("profile.empty", map[string]any{"Name": name},
			fmt.Sprintf("No games recorded for %s yet.", name))
	}
	var sb strings.Builder
	sb.WriteString(f.render("profile.summary", map[string]any{
		"Name":   p.Name,
		"Wins":   p.Wins,
		"Losses": p.Losses,
		"Draws":  p.Draws,
		"Games":  p.GamesPlayed,
	}, fmt.Sprintf("%s: %d wins, %d losses, %d draws over %d games", p.Name, p.Wins, p.Losses, p.Draws, p.GamesPlayed)))
	if p.Streak > 1 {
		sb.WriteString("\n")
		sb.WriteString(f.render("profile.streak", map[string]any{"Streak": p.Streak, "Type": p.StreakType},
			fmt.Sprintf("Current streak: %d %s", p.Streak, p.StreakType)))
	}
	return sb.String()
}

func (f *Formatter) History(name string, games []*checkersdto.GameRecord) string {
	if len(games) == 0 {
		return f.render("history.empty", map[string]any{"Name": name},
			fmt.Sprintf("No finished games for %s.", name))
	}
	var sb strings.Builder
	sb.WriteString(f.render("history.header", map[string]any{"Name": name}, "Recent games for "+name))
	for i, g := range games {
		if i >= historyLimit {
			break
		}
		sb.WriteString("\n")
		sb.WriteString(f.render("history.line", map[string]any{
			"ID":      g.ID,
			"Variant": g.Variant,
			"Light":   g.LightName,
			"Dark":    g.DarkName,
			"Result":  g.Result,
			"Method":  g.Method,
			"Moves":   len(g.Moves),
		}, fmt.Sprintf("#%d %s %s vs %s: %s by %s, %d steps", g.ID, g.Variant, g.LightName, g.DarkName, g.Result, g.Method, len(g.Moves))))
	}
	return sb.String()
}

func (f *Formatter) Error(derr *checkersdto.DomainError) string {
	if derr == nil {
		return ""
	}
	names := make([]string, 0, len(checkers.Variants()))
	for _, v := range checkers.Variants() {
		names = append(names, v.String())
	}
	return f.render("error."+derr.Code, map[string]any{
		"Message":  derr.Message,
		"Variants": strings.Join(names, ", "),
	}, derr.Error())
}

func (f *Formatter) Help() string {
	return f.render("help.text", nil, "Type <from> <to> to move, or help, board, moves, resign, quit.")
}

func nameFor(state *checkersdto.SessionState, side string) string {
	switch side {
	case "light":
		return state.LightName
	case "dark":
		return state.DarkName
	default:
		return side
	}
}

// mustCapture reports whether every move on offer is a capture.
func mustCapture(legal []string) bool {
	for _, mv := range legal {
		if !strings.Contains(mv, "x") {
			return false
		}
	}
	return len(legal) > 0
}

func formatRecentMoves(moves []string) string {
	if len(moves) == 0 {
		return ""
	}
	start := 0
	if len(moves) > recentMovesLimit {
		start = len(moves) - recentMovesLimit
	}
	return strings.Join(moves[start:], " ")
}
