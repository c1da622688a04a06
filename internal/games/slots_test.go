package games

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bet = decimal.NewFromInt(5)

func row(symbols ...string) []string { return symbols }

func TestDrawGridShape(t *testing.T) {
	g := DrawGrid(NewRand(1), 3, 5)

	require.Len(t, g, 3)
	for _, r := range g {
		require.Len(t, r, 5)
		for _, s := range r {
			assert.Contains(t, Symbols, s)
		}
	}
}

func TestDrawGridDeterministic(t *testing.T) {
	a := DrawGrid(NewRand(99), 3, 5)
	b := DrawGrid(NewRand(99), 3, 5)
	assert.Equal(t, a, b)
}

func TestEvaluateLinesSingleRow(t *testing.T) {
	g := Grid{
		row("cherry", "cherry", "cherry"),
		row("lemon", "star", "grape"),
		row("melon", "seven", "lemon"),
	}

	payout, lines := EvaluateLines(g, bet)

	assert.Equal(t, 1, lines)
	// one line pays 2x the bet
	assert.True(t, payout.Equal(decimal.NewFromInt(10)), payout.String())
}

func TestEvaluateLinesDiagonal(t *testing.T) {
	g := Grid{
		row("seven", "cherry", "lemon"),
		row("grape", "seven", "melon"),
		row("star", "orange", "seven"),
	}

	payout, lines := EvaluateLines(g, bet)

	assert.Equal(t, 1, lines)
	assert.True(t, payout.Equal(decimal.NewFromInt(10)))
}

func TestEvaluateLinesFullGrid(t *testing.T) {
	g := Grid{
		row("star", "star", "star"),
		row("star", "star", "star"),
		row("star", "star", "star"),
	}

	payout, lines := EvaluateLines(g, bet)

	// three rows plus both diagonals
	assert.Equal(t, 5, lines)
	assert.True(t, payout.Equal(decimal.NewFromInt(50)))
}

func TestEvaluateLinesNoDiagonalsOnWideGrids(t *testing.T) {
	g := Grid{
		row("seven", "cherry", "lemon", "grape", "star"),
		row("grape", "seven", "melon", "star", "cherry"),
		row("star", "orange", "seven", "lemon", "melon"),
	}

	payout, lines := EvaluateLines(g, bet)

	assert.Equal(t, 0, lines)
	assert.True(t, payout.IsZero())
}

func TestEvaluateLinesJackpotOverride(t *testing.T) {
	g := Grid{
		row("cherry", "lemon", "orange", "grape", "melon"),
		row("money", "money", "money", "money", "money"),
		row("star", "seven", "cherry", "lemon", "orange"),
	}

	payout, lines := EvaluateLines(g, bet)

	assert.Equal(t, 1, lines)
	assert.True(t, payout.Equal(decimal.NewFromInt(500)), "jackpot pays 100x, got %s", payout)
}

func TestEvaluateRun(t *testing.T) {
	cases := []struct {
		name    string
		payline []string
		payout  int64
	}{
		{"no run", row("cherry", "lemon", "cherry", "lemon", "cherry"), 0},
		{"two is not enough", row("star", "star", "lemon", "grape", "seven"), 0},
		{"three cherries", row("cherry", "cherry", "cherry", "lemon", "star"), 5},
		{"three sevens mid-line", row("lemon", "seven", "seven", "seven", "cherry"), 30},
		{"four lemons", row("lemon", "lemon", "lemon", "lemon", "star"), 20},
		{"five stars", row("star", "star", "star", "star", "star"), 120},
		{"jackpot", row("money", "money", "money", "money", "money"), 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payout, _, _ := EvaluateRun(tc.payline, bet)
			assert.True(t, payout.Equal(decimal.NewFromInt(tc.payout)),
				"want %d, got %s", tc.payout, payout)
		})
	}
}

func TestEvaluateRunReportsSymbol(t *testing.T) {
	payout, symbol, run := EvaluateRun(row("grape", "grape", "grape", "grape", "cherry"), bet)

	assert.Equal(t, "grape", symbol)
	assert.Equal(t, 4, run)
	// rank 4, run 4: bet x 4 x 2
	assert.True(t, payout.Equal(decimal.NewFromInt(40)))
}
