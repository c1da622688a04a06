package games

import (
	"math/rand"
	"strings"

	"github.com/shopspring/decimal"
)

// Symbols is the reel alphabet, ordered by paytable rank (index+1).
var Symbols = []string{"cherry", "lemon", "orange", "grape", "melon", "seven", "money", "star"}

const JackpotSymbol = "money"

var (
	lineMultiplier    = decimal.NewFromInt(2)
	jackpotMultiplier = decimal.NewFromInt(100)
)

// Grid is a rows x cols slot outcome, grid[row][col].
type Grid [][]string

func DrawGrid(rng *rand.Rand, rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]string, cols)
		for c := range g[r] {
			g[r][c] = Symbols[rng.Intn(len(Symbols))]
		}
	}
	return g
}

// Payline returns the middle row.
func (g Grid) Payline() []string {
	return g[len(g)/2]
}

func (g Grid) String() string {
	rows := make([]string, len(g))
	for i, r := range g {
		rows[i] = strings.Join(r, ",")
	}
	return strings.Join(rows, "/")
}

func allEqual(cells []string) bool {
	for _, s := range cells[1:] {
		if s != cells[0] {
			return false
		}
	}
	return true
}

func (g Grid) isJackpot() bool {
	if len(g[0]) != 5 {
		return false
	}
	for _, s := range g.Payline() {
		if s != JackpotSymbol {
			return false
		}
	}
	return true
}

// EvaluateLines scores the multi-line variant: every full row with one symbol
// wins, plus both diagonals on square grids. Each line pays 2x the bet.
// Five jackpot symbols on the payline of a 5-reel grid pay 100x instead.
func EvaluateLines(g Grid, bet decimal.Decimal) (decimal.Decimal, int) {
	lines := 0

	for _, row := range g {
		if allEqual(row) {
			lines++
		}
	}

	if len(g) == len(g[0]) {
		n := len(g)
		diag, anti := make([]string, n), make([]string, n)
		for i := 0; i < n; i++ {
			diag[i] = g[i][i]
			anti[i] = g[i][n-1-i]
		}
		if allEqual(diag) {
			lines++
		}
		if allEqual(anti) {
			lines++
		}
	}

	if g.isJackpot() {
		return bet.Mul(jackpotMultiplier), lines
	}
	if lines == 0 {
		return decimal.Zero, 0
	}
	return bet.Mul(lineMultiplier).Mul(decimal.NewFromInt(int64(lines))), lines
}

func symbolRank(symbol string) int64 {
	for i, s := range Symbols {
		if s == symbol {
			return int64(i + 1)
		}
	}
	return 0
}

// EvaluateRun scores the classic single-payline paytable: the longest run of
// three or more equal symbols pays bet x rank x (runLength-2), where rank is
// the symbol's position in the paytable. Five jackpot symbols pay 100x.
func EvaluateRun(payline []string, bet decimal.Decimal) (decimal.Decimal, string, int) {
	current := payline[0]
	count := 1
	best := 1
	bestSymbol := current

	for _, s := range payline[1:] {
		if s == current {
			count++
			if count > best {
				best = count
				bestSymbol = current
			}
		} else {
			current = s
			count = 1
		}
	}

	if best < 3 {
		return decimal.Zero, "", 0
	}

	if best == 5 && bestSymbol == JackpotSymbol {
		return bet.Mul(jackpotMultiplier), bestSymbol, best
	}

	payout := bet.
		Mul(decimal.NewFromInt(symbolRank(bestSymbol))).
		Mul(decimal.NewFromInt(int64(best - 2)))

	return payout, bestSymbol, best
}
