package casino

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidBet  = errors.New("casino: invalid bet amount")
	ErrMaxBet      = errors.New("casino: bet exceeds table maximum")
	ErrKeyConflict = errors.New("casino: idempotency key belongs to another account")
)

type RiskEngine struct {
	MaxBet decimal.Decimal
}

func NewRisk(maxBet decimal.Decimal) *RiskEngine {
	return &RiskEngine{MaxBet: maxBet}
}

func (r *RiskEngine) Validate(bet decimal.Decimal) error {
	if !bet.IsPositive() {
		return ErrInvalidBet
	}
	if bet.GreaterThan(r.MaxBet) {
		return ErrMaxBet
	}
	return nil
}
