package checkers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlayerRecord(t *testing.T) {
	p := NewPlayer("ann")
	require.Equal(t, 0, p.TotalGamesPlayed())

	p.RecordWin()
	p.RecordWin()
	p.RecordLoss()
	p.RecordTie()

	require.Equal(t, 4, p.TotalGamesPlayed())
	require.Equal(t, "ann (2-1-1)", p.String())
}
