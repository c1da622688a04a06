package payment

import (
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"casino-platform/internal/event"
	"casino-platform/internal/ledger"
	"casino-platform/internal/monitoring"
)

var (
	ErrInvalidAmount = errors.New("payment: invalid amount")
	ErrUnknownMethod = errors.New("payment: unknown payment method")
	ErrNotReviewable = errors.New("payment: transaction is not pending review")
)

type Wallet interface {
	Lock(uid int64) func()
	Credit(tx *sql.Tx, uid int64, amount decimal.Decimal) error
	Debit(tx *sql.Tx, uid int64, amount decimal.Decimal) error
	AddDeposited(tx *sql.Tx, uid int64, amount decimal.Decimal) error
	AddWithdrawn(tx *sql.Tx, uid int64, amount decimal.Decimal) error
}

// Service owns the deposit/withdrawal request-review workflow. Requests only
// append a pending ledger entry; the balance moves when an admin approves,
// and only then.
type Service struct {
	db     *sql.DB
	wallet Wallet
	ledger *ledger.Service
	bus    *event.Bus
}

func New(db *sql.DB, wallet Wallet, ledgerService *ledger.Service, bus *event.Bus) *Service {
	return &Service{
		db:     db,
		wallet: wallet,
		ledger: ledgerService,
		bus:    bus,
	}
}

type Request struct {
	UID         int64
	Amount      decimal.Decimal
	Method      string
	PhoneNumber string
	ProviderRef string
}

func (s *Service) request(req Request, kind string) (*ledger.Entry, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if _, ok := GetMethod(req.Method); !ok {
		return nil, ErrUnknownMethod
	}

	entry := &ledger.Entry{
		UID:    req.UID,
		Amount: req.Amount,
		Kind:   kind,
		Status: ledger.StatusPending,
		Metadata: map[string]string{
			"method":         req.Method,
			"phone_number":   req.PhoneNumber,
			"transaction_id": req.ProviderRef,
		},
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	if err := s.ledger.Record(tx, entry); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if kind == ledger.KindDeposit {
		s.bus.Publish(event.EventDepositRequested, entry)
	} else {
		s.bus.Publish(event.EventWithdrawRequested, entry)
	}
	return entry, nil
}

func (s *Service) RequestDeposit(req Request) (*ledger.Entry, error) {
	return s.request(req, ledger.KindDeposit)
}

func (s *Service) RequestWithdraw(req Request) (*ledger.Entry, error) {
	return s.request(req, ledger.KindWithdrawal)
}

// Review settles a pending deposit or withdrawal. Approving a deposit
// credits the balance and bumps total_deposited; approving a withdrawal
// debits (and fails whole if funds ran out); rejecting only flips status.
// Game records are never reviewable.
func (s *Service) Review(id string, approve bool) (*ledger.Entry, error) {
	peek, err := s.ledger.Get(id)
	if err != nil {
		return nil, err
	}
	if peek.Status != ledger.StatusPending ||
		(peek.Kind != ledger.KindDeposit && peek.Kind != ledger.KindWithdrawal) {
		return nil, ErrNotReviewable
	}

	unlock := s.wallet.Lock(peek.UID)
	defer unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	entry, err := s.ledger.GetTx(tx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if entry.Status != ledger.StatusPending {
		tx.Rollback()
		return nil, ErrNotReviewable
	}

	status := ledger.StatusRejected
	if approve {
		status = ledger.StatusCompleted

		switch entry.Kind {
		case ledger.KindDeposit:
			if err := s.wallet.Credit(tx, entry.UID, entry.Amount); err != nil {
				tx.Rollback()
				return nil, err
			}
			if err := s.wallet.AddDeposited(tx, entry.UID, entry.Amount); err != nil {
				tx.Rollback()
				return nil, err
			}
		case ledger.KindWithdrawal:
			if err := s.wallet.Debit(tx, entry.UID, entry.Amount); err != nil {
				tx.Rollback()
				return nil, err
			}
			if err := s.wallet.AddWithdrawn(tx, entry.UID, entry.Amount); err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := s.ledger.UpdateStatus(tx, id, status); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	entry.Status = status

	decision := "rejected"
	if approve {
		decision = "approved"
	}
	monitoring.PaymentReviews.WithLabelValues(entry.Kind, decision).Inc()
	s.bus.Publish(event.EventPaymentReviewed, entry)

	return entry, nil
}
