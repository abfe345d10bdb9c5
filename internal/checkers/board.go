package checkers

import (
	"strconv"
	"strings"
)

// Board is a square grid of cells. The playable pattern is fixed when the
// board is built and is restored by Clear.
//
// Board performs no rule checks beyond geometry: MovePiece and RemovePiece
// only refuse to touch off-board cells or overwrite an occupied square.
type Board struct {
	size     int
	mirrored bool
	cells    []Square
}

// NewBoard returns a cleared board of the given side length.
func NewBoard(size int, mirrored bool) *Board {
	if size < 0 {
		size = 0
	}
	b := &Board{
		size:     size,
		mirrored: mirrored,
		cells:    make([]Square, size*size),
	}
	b.Clear()
	return b
}

func (b *Board) Size() int { return b.size }

func (b *Board) Mirrored() bool { return b.mirrored }

func (b *Board) IsInsideBoard(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// playable reports whether (row, col) matches the board's dark-square parity.
func (b *Board) playable(row, col int) bool {
	odd := (row+col)%2 == 1
	return odd != b.mirrored
}

// IsLegalPosition reports whether (row, col) is inside the board and not an
// off-board cell.
func (b *Board) IsLegalPosition(row, col int) bool {
	return b.IsInsideBoard(row, col) && b.cells[row*b.size+col] != OffBoard
}

// At returns the cell state, or OffBoard for coordinates outside the board.
func (b *Board) At(row, col int) Square {
	if !b.IsInsideBoard(row, col) {
		return OffBoard
	}
	return b.cells[row*b.size+col]
}

func (b *Board) at(p Point) Square { return b.At(p.Row, p.Col) }

func (b *Board) IsEmpty(row, col int) bool { return b.At(row, col) == Empty }

func (b *Board) IsLight(row, col int) bool {
	side, ok := b.At(row, col).Side()
	return ok && side == Light
}

func (b *Board) IsDark(row, col int) bool {
	side, ok := b.At(row, col).Side()
	return ok && side == Dark
}

func (b *Board) IsKing(row, col int) bool { return b.At(row, col).IsKing() }

func (b *Board) IsPawn(row, col int) bool { return b.At(row, col).IsPawn() }

// MovePiece relocates the piece at the source to the destination. It is a
// no-op unless both are legal positions and the destination is empty.
func (b *Board) MovePiece(srcRow, srcCol, dstRow, dstCol int) {
	if !b.IsLegalPosition(srcRow, srcCol) || !b.IsLegalPosition(dstRow, dstCol) {
		return
	}
	if b.cells[dstRow*b.size+dstCol] != Empty {
		return
	}
	b.cells[dstRow*b.size+dstCol] = b.cells[srcRow*b.size+srcCol]
	b.cells[srcRow*b.size+srcCol] = Empty
}

// RemovePiece empties a legal position; illegal coordinates are ignored.
func (b *Board) RemovePiece(row, col int) {
	if b.IsLegalPosition(row, col) {
		b.cells[row*b.size+col] = Empty
	}
}

// Place puts sq on a legal position. Placing OffBoard is refused.
func (b *Board) Place(row, col int, sq Square) bool {
	if sq == OffBoard || !b.IsLegalPosition(row, col) {
		return false
	}
	b.cells[row*b.size+col] = sq
	return true
}

// Clear resets every cell to the empty/off-board pattern.
func (b *Board) Clear() {
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.playable(row, col) {
				b.cells[row*b.size+col] = Empty
			} else {
				b.cells[row*b.size+col] = OffBoard
			}
		}
	}
}

// StartingRows is the number of pawn rows per side for a board size:
// 3 on 8x8, 4 on 10x10, 5 on 12x12.
func StartingRows(size int) int {
	n := size/2 - 1
	if n < 0 {
		return 0
	}
	return n
}

// SetupNewGame clears the board and fills the starting pawns for its size.
func (b *Board) SetupNewGame() {
	b.setup(StartingRows(b.size))
}

// setup fills dark pawns on the top rows and light pawns on the bottom rows,
// leaving off-board cells untouched.
func (b *Board) setup(rows int) {
	b.Clear()
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			idx := row*b.size + col
			if b.cells[idx] != Empty {
				continue
			}
			switch {
			case row < rows:
				b.cells[idx] = DarkPawn
			case row >= b.size-rows:
				b.cells[idx] = LightPawn
			}
		}
	}
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	cp := &Board{
		size:     b.size,
		mirrored: b.mirrored,
		cells:    make([]Square, len(b.cells)),
	}
	copy(cp.cells, b.cells)
	return cp
}

// Equal reports whether two boards have identical geometry and contents.
func (b *Board) Equal(other *Board) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.size != other.size || b.mirrored != other.mirrored {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns a copy of the grid, row-major.
func (b *Board) Rows() [][]Square {
	rows := make([][]Square, b.size)
	for row := range rows {
		rows[row] = make([]Square, b.size)
		copy(rows[row], b.cells[row*b.size:(row+1)*b.size])
	}
	return rows
}

// Count returns the number of pawns and kings a side has on the board.
func (b *Board) Count(side Side) (pawns, kings int) {
	for _, sq := range b.cells {
		owner, ok := sq.Side()
		if !ok || owner != side {
			continue
		}
		if sq.IsKing() {
			kings++
		} else {
			pawns++
		}
	}
	return pawns, kings
}

// Pieces returns the coordinates of every piece of a side, row-major.
func (b *Board) Pieces(side Side) []Point {
	var out []Point
	for idx, sq := range b.cells {
		if owner, ok := sq.Side(); ok && owner == side {
			out = append(out, Point{Row: idx / b.size, Col: idx % b.size})
		}
	}
	return out
}

// String renders the board with 1-based row and column labels.
// Legend: ## off-board, __ empty, LP/LK light pawn/king, DP/DK dark pawn/king.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for col := 0; col < b.size; col++ {
		sb.WriteString(padLabel(col + 1))
	}
	sb.WriteString("\n\n")
	for row := 0; row < b.size; row++ {
		sb.WriteString(padLabel(row + 1))
		for col := 0; col < b.size; col++ {
			sb.WriteString(b.cells[row*b.size+col].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func padLabel(n int) string {
	s := strconv.Itoa(n)
	if n < 10 {
		return "  " + s
	}
	return " " + s
}
