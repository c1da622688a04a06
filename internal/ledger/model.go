package ledger

import "github.com/shopspring/decimal"

const (
	KindDeposit    = "deposit"
	KindWithdrawal = "withdrawal"
	KindGameWin    = "game_win"
	KindGameLoss   = "game_loss"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
)

type Entry struct {
	ID        string            `json:"id"`
	UID       int64             `json:"uid"`
	Amount    decimal.Decimal   `json:"amount"`
	Kind      string            `json:"type"`
	Status    string            `json:"status"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt int64             `json:"created_at"`
	UpdatedAt int64             `json:"updated_at"`
}

type Filter struct {
	UID    int64
	Kind   string
	Status string
	Limit  int
}
