package checkers

import "fmt"

// MoveKind distinguishes slides from captures.
type MoveKind uint8

const (
	Slide MoveKind = iota + 1
	Jump
)

func (k MoveKind) String() string {
	switch k {
	case Slide:
		return "slide"
	case Jump:
		return "jump"
	default:
		return "none"
	}
}

// Move is one step by one piece. A chain capture is a sequence of Jump moves
// played by the same piece within one turn.
type Move struct {
	From     Point    `json:"from"`
	To       Point    `json:"to"`
	Kind     MoveKind `json:"kind"`
	Captured Point    `json:"captured"` // set for jumps only
}

func (m Move) IsJump() bool { return m.Kind == Jump }

func (m Move) String() string {
	sep := "-"
	if m.IsJump() {
		sep = "x"
	}
	return fmt.Sprintf("%d,%d%s%d,%d", m.From.Row, m.From.Col, sep, m.To.Row, m.To.Col)
}

var diagonals = [...]struct{ dr, dc int }{
	{dr: -1, dc: -1},
	{dr: -1, dc: 1},
	{dr: 1, dc: -1},
	{dr: 1, dc: 1},
}

// forward is the row direction a side's pawns advance in.
func forward(side Side) int {
	if side == Light {
		return -1
	}
	return 1
}

// crownRow is the far row on which a side's pawns become kings.
func crownRow(side Side, size int) int {
	if side == Light {
		return 0
	}
	return size - 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// diagonalStep returns the unit step and distance from one point to another,
// ok is false when they do not share a diagonal.
func diagonalStep(from, to Point) (dr, dc, dist int, ok bool) {
	rows := to.Row - from.Row
	cols := to.Col - from.Col
	if rows == 0 || abs(rows) != abs(cols) {
		return 0, 0, 0, false
	}
	return sign(rows), sign(cols), abs(rows), true
}

// slideFor validates a non-capturing step for the piece on from.
func slideFor(b *Board, r Rules, from, to Point) (Move, bool) {
	piece := b.at(from)
	side, ok := piece.Side()
	if !ok || b.at(to) != Empty {
		return Move{}, false
	}
	dr, dc, dist, ok := diagonalStep(from, to)
	if !ok {
		return Move{}, false
	}
	if piece.IsPawn() {
		if dist != 1 || dr != forward(side) {
			return Move{}, false
		}
		return Move{From: from, To: to, Kind: Slide}, true
	}
	if dist > 1 && !r.KingsFly {
		return Move{}, false
	}
	for step := 1; step < dist; step++ {
		if b.at(from.add(dr*step, dc*step)) != Empty {
			return Move{}, false
		}
	}
	return Move{From: from, To: to, Kind: Slide}, true
}

// jumpFor validates a capture by the piece on from that lands on to.
func jumpFor(b *Board, r Rules, from, to Point) (Move, bool) {
	piece := b.at(from)
	side, ok := piece.Side()
	if !ok || b.at(to) != Empty {
		return Move{}, false
	}
	dr, dc, dist, ok := diagonalStep(from, to)
	if !ok || dist < 2 {
		return Move{}, false
	}
	flying := piece.IsKing() && r.KingsFly
	if !flying && dist != 2 {
		return Move{}, false
	}
	if piece.IsPawn() && dr != forward(side) && !r.PawnsJumpBackward {
		return Move{}, false
	}

	var (
		captured Point
		found    bool
	)
	for step := 1; step < dist; step++ {
		p := from.add(dr*step, dc*step)
		sq := b.at(p)
		if sq == Empty {
			continue
		}
		owner, isPiece := sq.Side()
		if !isPiece || owner == side || found {
			return Move{}, false
		}
		captured = p
		found = true
	}
	if !found {
		return Move{}, false
	}
	if piece.IsPawn() && b.at(captured).IsKing() && !r.PawnsCaptureKings {
		return Move{}, false
	}
	return Move{From: from, To: to, Kind: Jump, Captured: captured}, true
}

// reach is how far along a diagonal the piece on from may travel.
func reach(b *Board, r Rules, from Point) int {
	if b.at(from).IsKing() && r.KingsFly {
		return b.Size()
	}
	return 2
}

func slidesFrom(b *Board, r Rules, from Point) []Move {
	var out []Move
	limit := reach(b, r, from) - 1
	if limit < 1 {
		limit = 1
	}
	for _, d := range diagonals {
		for step := 1; step <= limit; step++ {
			to := from.add(d.dr*step, d.dc*step)
			if !b.IsLegalPosition(to.Row, to.Col) {
				break
			}
			mv, ok := slideFor(b, r, from, to)
			if !ok {
				break
			}
			out = append(out, mv)
		}
	}
	return out
}

func jumpsFrom(b *Board, r Rules, from Point) []Move {
	var out []Move
	limit := reach(b, r, from)
	for _, d := range diagonals {
		for step := 2; step <= limit; step++ {
			to := from.add(d.dr*step, d.dc*step)
			if !b.IsInsideBoard(to.Row, to.Col) {
				break
			}
			if mv, ok := jumpFor(b, r, from, to); ok {
				out = append(out, mv)
			}
		}
	}
	return out
}

// applyStep plays mv on b and crowns a pawn that lands on its far row.
func applyStep(b *Board, mv Move) (promoted bool) {
	piece := b.at(mv.From)
	if mv.IsJump() {
		b.RemovePiece(mv.Captured.Row, mv.Captured.Col)
	}
	b.MovePiece(mv.From.Row, mv.From.Col, mv.To.Row, mv.To.Col)
	side, ok := piece.Side()
	if ok && piece.IsPawn() && mv.To.Row == crownRow(side, b.Size()) {
		b.Place(mv.To.Row, mv.To.Col, piece.Crowned())
		return true
	}
	return false
}

// chainMayContinue reports whether a piece that just captured may capture again.
func chainMayContinue(r Rules, promoted bool) bool {
	return !promoted || r.ContinueAfterPromotion
}

// captureDepth is the number of pieces taken by the longest chain that
// starts with mv.
func captureDepth(b *Board, r Rules, mv Move) int {
	next := b.Clone()
	promoted := applyStep(next, mv)
	best := 0
	if chainMayContinue(r, promoted) {
		for _, follow := range jumpsFrom(next, r, mv.To) {
			if d := captureDepth(next, r, follow); d > best {
				best = d
			}
		}
	}
	return 1 + best
}

// availableJumps lists the captures the side may play. During a chain only
// the chaining piece is considered. Variant capture filters are applied.
func availableJumps(b *Board, r Rules, side Side, chain *Point) []Move {
	var jumps []Move
	if chain != nil {
		jumps = jumpsFrom(b, r, *chain)
	} else {
		for _, p := range b.Pieces(side) {
			jumps = append(jumps, jumpsFrom(b, r, p)...)
		}
	}
	for _, filter := range captureFilters(r) {
		if len(jumps) == 0 {
			break
		}
		jumps = filter(b, r, jumps)
	}
	return jumps
}

func availableSlides(b *Board, r Rules, side Side) []Move {
	var slides []Move
	for _, p := range b.Pieces(side) {
		slides = append(slides, slidesFrom(b, r, p)...)
	}
	return slides
}

// legalMoves is every move the side may play from the given position.
func legalMoves(b *Board, r Rules, side Side, chain *Point) []Move {
	jumps := availableJumps(b, r, side, chain)
	if chain != nil {
		return jumps
	}
	if len(jumps) > 0 && r.ForceCapture {
		return jumps
	}
	return append(jumps, availableSlides(b, r, side)...)
}
