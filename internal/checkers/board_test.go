package checkers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func pt(row, col int) Point { return Point{Row: row, Col: col} }

func TestBoardQueriesAreTotal(t *testing.T) {
	b := NewBoard(8, false)
	b.SetupNewGame()
	for row := -3; row < 12; row++ {
		for col := -3; col < 12; col++ {
			inside := row >= 0 && row < 8 && col >= 0 && col < 8
			require.Equal(t, inside, b.IsInsideBoard(row, col))
			if !inside {
				require.False(t, b.IsLegalPosition(row, col))
				require.False(t, b.IsEmpty(row, col))
				require.False(t, b.IsLight(row, col))
				require.False(t, b.IsDark(row, col))
				require.False(t, b.IsKing(row, col))
				require.False(t, b.IsPawn(row, col))
				require.Equal(t, OffBoard, b.At(row, col))
			}
		}
	}
	// must not panic
	b.MovePiece(-1, 0, 20, 20)
	b.RemovePiece(8, 8)
}

func TestBoardParity(t *testing.T) {
	plain := NewBoard(8, false)
	mirrored := NewBoard(8, true)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			odd := (row+col)%2 == 1
			require.Equal(t, odd, plain.IsLegalPosition(row, col), "plain %d,%d", row, col)
			require.Equal(t, !odd, mirrored.IsLegalPosition(row, col), "mirrored %d,%d", row, col)
		}
	}
}

func TestSetupNewGameEightByEight(t *testing.T) {
	b := NewBoard(8, false)
	b.SetupNewGame()

	lp, lk := b.Count(Light)
	dp, dk := b.Count(Dark)
	require.Equal(t, 12, lp)
	require.Equal(t, 12, dp)
	require.Zero(t, lk+dk)

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if !b.IsLegalPosition(row, col) {
				require.Equal(t, OffBoard, b.At(row, col))
				continue
			}
			switch {
			case row <= 2:
				require.Equal(t, DarkPawn, b.At(row, col))
			case row >= 5:
				require.Equal(t, LightPawn, b.At(row, col))
			default:
				require.True(t, b.IsEmpty(row, col))
			}
		}
	}
}

func TestSetupNewGameLargerBoards(t *testing.T) {
	tests := []struct {
		size   int
		pieces int
	}{
		{size: 10, pieces: 20},
		{size: 12, pieces: 30},
	}
	for _, tt := range tests {
		b := NewBoard(tt.size, false)
		b.SetupNewGame()
		lp, _ := b.Count(Light)
		dp, _ := b.Count(Dark)
		require.Equal(t, tt.pieces, lp, "size %d", tt.size)
		require.Equal(t, tt.pieces, dp, "size %d", tt.size)
	}
}

func TestMovePieceRefusals(t *testing.T) {
	b := NewBoard(8, false)
	require.True(t, b.Place(5, 0, LightPawn))
	require.True(t, b.Place(4, 1, DarkPawn))

	b.MovePiece(5, 0, 4, 1) // occupied
	require.Equal(t, LightPawn, b.At(5, 0))
	require.Equal(t, DarkPawn, b.At(4, 1))

	b.MovePiece(5, 0, 4, 0) // off-board destination
	require.Equal(t, LightPawn, b.At(5, 0))

	require.False(t, b.Place(0, 0, LightPawn))
	require.False(t, b.Place(1, 0, OffBoard))

	b.MovePiece(5, 0, 4, 3)
	require.True(t, b.IsEmpty(5, 0))
	require.Equal(t, LightPawn, b.At(4, 3))

	b.RemovePiece(4, 1)
	require.True(t, b.IsEmpty(4, 1))
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard(8, false)
	b.SetupNewGame()
	cp := b.Clone()
	require.True(t, b.Equal(cp))

	cp.RemovePiece(0, 1)
	require.False(t, b.Equal(cp))
	require.True(t, b.IsDark(0, 1))

	rows := b.Rows()
	rows[0][1] = Empty
	require.True(t, b.IsDark(0, 1))
}

func TestClearRestoresPattern(t *testing.T) {
	b := NewBoard(10, true)
	b.SetupNewGame()
	b.Clear()
	require.True(t, b.Equal(NewBoard(10, true)))
	require.Empty(t, b.Pieces(Light))
	require.Empty(t, b.Pieces(Dark))
}

func TestBoardString(t *testing.T) {
	b := NewBoard(8, false)
	b.SetupNewGame()
	out := b.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 10)
	require.Equal(t, "  1## DP ## DP ## DP ## DP ", lines[2])
	require.Equal(t, "  8LP ## LP ## LP ## LP ## ", lines[9])
	require.Contains(t, lines[5], "__")
}
