package casino

import (
	"sync"

	"github.com/shopspring/decimal"
)

// RTPController tracks realized return-to-player. It only observes; payout
// schedules are fixed by the game rules and never adjusted.
type RTPController struct {
	mu          sync.Mutex
	totalBet    decimal.Decimal
	totalPayout decimal.Decimal
}

func NewRTP() *RTPController {
	return &RTPController{}
}

func (r *RTPController) Record(bet, payout decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.totalBet = r.totalBet.Add(bet)
	r.totalPayout = r.totalPayout.Add(payout)
}

func (r *RTPController) Totals() (decimal.Decimal, decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totalBet, r.totalPayout
}

// Realized is paid-out over wagered, zero before the first bet.
func (r *RTPController) Realized() decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.totalBet.IsZero() {
		return decimal.Zero
	}
	return r.totalPayout.Div(r.totalBet)
}
