package casino

import (
	"github.com/shopspring/decimal"

	"casino-platform/internal/games"
)

type SettleRequest struct {
	UID  int64
	Game string
	Bet  decimal.Decimal
	// Key is an optional idempotency key; replaying a settled key returns
	// the stored result without touching balance or ledger.
	Key string
}

type Settlement struct {
	Ref        string            `json:"ref"`
	UID        int64             `json:"uid"`
	Game       string            `json:"game"`
	Bet        decimal.Decimal   `json:"bet"`
	Payout     decimal.Decimal   `json:"payout"`
	NewBalance decimal.Decimal   `json:"new_balance"`
	Meta       map[string]string `json:"metadata,omitempty"`
	Replayed   bool              `json:"replayed,omitempty"`
	CreatedAt  int64             `json:"created_at"`
}

type SpinRequest struct {
	UID        int64
	Game       string
	Bet        decimal.Decimal
	ClientSeed string
	Key        string
}

type SpinResult struct {
	Settlement     *Settlement `json:"settlement"`
	Grid           games.Grid  `json:"grid,omitempty"`
	Lines          int         `json:"lines,omitempty"`
	Symbol         string      `json:"symbol,omitempty"`
	Run            int         `json:"run,omitempty"`
	Nonce          int64       `json:"nonce"`
	Proof          string      `json:"proof,omitempty"`
	ServerSeedHash string      `json:"server_seed_hash"`
}

type BlackjackView struct {
	State       games.TableState `json:"state"`
	Bet         decimal.Decimal  `json:"bet"`
	Player      []games.Card     `json:"player"`
	PlayerTotal int              `json:"player_total"`
	Dealer      []games.Card     `json:"dealer"`
	DealerTotal int              `json:"dealer_total"`
	Result      games.Result     `json:"result,omitempty"`
	Settlement  *Settlement      `json:"settlement,omitempty"`
}
