package checkers

import (
	"fmt"
	"strconv"
	"strings"
)

// Algebraic labels a point the way the board is drawn: files a, b, c from
// the left and ranks counted from the bottom (light's home) row.
func (p Point) Algebraic(size int) string {
	if p.Col < 0 || p.Col >= 26 {
		return p.String()
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, size-p.Row)
}

// ParsePoint accepts either "row,col" (zero-based) or an algebraic label such
// as "b6" for a board of the given size. Range checks are left to the board.
func ParsePoint(s string, size int) (Point, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Point{}, fmt.Errorf("empty coordinate")
	}
	if row, col, ok := strings.Cut(s, ","); ok {
		r, err := strconv.Atoi(strings.TrimSpace(row))
		if err != nil {
			return Point{}, fmt.Errorf("bad row in %q: %w", s, err)
		}
		c, err := strconv.Atoi(strings.TrimSpace(col))
		if err != nil {
			return Point{}, fmt.Errorf("bad column in %q: %w", s, err)
		}
		return Point{Row: r, Col: c}, nil
	}
	file := s[0]
	if file < 'a' || file > 'z' {
		return Point{}, fmt.Errorf("bad coordinate %q", s)
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil {
		return Point{}, fmt.Errorf("bad rank in %q: %w", s, err)
	}
	return Point{Row: size - rank, Col: int(file - 'a')}, nil
}
