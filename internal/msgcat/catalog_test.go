package msgcat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedMessagesRender(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := c.Render("turn.to_move", map[string]any{"Name": "alice", "Side": "light"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "alice (light) to move." {
		t.Fatalf("unexpected render: %q", out)
	}
	if !c.Has("help.text") || c.Has("no.such.key") {
		t.Fatalf("Has reported wrong presence")
	}
	if _, err := c.Render("turn.to_move", map[string]any{"Name": "alice"}); err == nil {
		t.Fatalf("expected error for missing template data")
	}
	if _, err := c.Render("no.such.key", nil); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("a.yaml", "turn:\n  to_move: \"{{.Side}}: {{.Name}}\"\n")
	write("notes.txt", "ignored")

	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := c.Render("turn.to_move", map[string]any{"Name": "bob", "Side": "dark"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "dark: bob" {
		t.Fatalf("override not applied: %q", out)
	}
	// untouched keys keep the embedded text
	if out, _ := c.Render("score.line", map[string]any{"Light": 3, "Dark": 4}); !strings.Contains(out, "light 3") {
		t.Fatalf("embedded key lost: %q", out)
	}

	write("b.yml", "turn:\n  to_move: \"dup\"\n")
	if _, err := New(dir); err == nil || !strings.Contains(err.Error(), "duplicate override key") {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestRejectsNonStringLeaves(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("limits:\n  max: 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(dir); err == nil {
		t.Fatalf("expected error for numeric leaf")
	}
}
