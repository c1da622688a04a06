package wallet

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("wallet: profile not found")
	ErrInsufficientFunds = errors.New("wallet: insufficient funds")
)

type Profile struct {
	UID            int64           `json:"uid"`
	Balance        decimal.Decimal `json:"balance"`
	TotalDeposited decimal.Decimal `json:"total_deposited"`
	TotalWithdrawn decimal.Decimal `json:"total_withdrawn"`
}

// Service owns account balances. Every mutation runs inside a caller-held
// *sql.Tx and the caller must hold the account's lock (see Lock) for the
// whole read-mutate-commit sequence.
type Service struct {
	db *sql.DB

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New(db *sql.DB) *Service {
	return &Service{
		db:    db,
		locks: make(map[int64]*sync.Mutex),
	}
}

// Lock acquires the account's exclusive critical section and returns the
// release func. Accounts are the unit of isolation: holders of different
// accounts' locks never contend.
func (s *Service) Lock(uid int64) func() {
	s.mu.Lock()
	lk, ok := s.locks[uid]
	if !ok {
		lk = &sync.Mutex{}
		s.locks[uid] = lk
	}
	s.mu.Unlock()

	lk.Lock()
	return lk.Unlock
}

func (s *Service) CreateProfile(uid int64) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO profiles(uid) VALUES (?)`, uid)
	return err
}

func (s *Service) GetProfile(uid int64) (*Profile, error) {
	var p Profile
	var balance, deposited, withdrawn string

	err := s.db.QueryRow(`
	SELECT uid,balance,total_deposited,total_withdrawn FROM profiles WHERE uid=?
	`, uid).Scan(&p.UID, &balance, &deposited, &withdrawn)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if p.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, err
	}
	if p.TotalDeposited, err = decimal.NewFromString(deposited); err != nil {
		return nil, err
	}
	if p.TotalWithdrawn, err = decimal.NewFromString(withdrawn); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) Balance(uid int64) (decimal.Decimal, error) {
	return readColumn(s.db.QueryRow(`SELECT balance FROM profiles WHERE uid=?`, uid))
}

func (s *Service) BalanceTx(tx *sql.Tx, uid int64) (decimal.Decimal, error) {
	return readColumn(tx.QueryRow(`SELECT balance FROM profiles WHERE uid=?`, uid))
}

func readColumn(row *sql.Row) (decimal.Decimal, error) {
	var raw string
	err := row.Scan(&raw)
	if err == sql.ErrNoRows {
		return decimal.Zero, ErrNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(raw)
}

func (s *Service) setBalance(tx *sql.Tx, uid int64, balance decimal.Decimal) error {
	_, err := tx.Exec(`UPDATE profiles SET balance=? WHERE uid=?`, balance.String(), uid)
	return err
}

func (s *Service) Credit(tx *sql.Tx, uid int64, amount decimal.Decimal) error {
	balance, err := s.BalanceTx(tx, uid)
	if err != nil {
		return err
	}
	return s.setBalance(tx, uid, balance.Add(amount))
}

func (s *Service) Debit(tx *sql.Tx, uid int64, amount decimal.Decimal) error {
	balance, err := s.BalanceTx(tx, uid)
	if err != nil {
		return err
	}
	if balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return s.setBalance(tx, uid, balance.Sub(amount))
}

func (s *Service) AddDeposited(tx *sql.Tx, uid int64, amount decimal.Decimal) error {
	total, err := readColumn(tx.QueryRow(`SELECT total_deposited FROM profiles WHERE uid=?`, uid))
	if err != nil {
		return err
	}
	_, err = tx.Exec(`UPDATE profiles SET total_deposited=? WHERE uid=?`, total.Add(amount).String(), uid)
	return err
}

func (s *Service) AddWithdrawn(tx *sql.Tx, uid int64, amount decimal.Decimal) error {
	total, err := readColumn(tx.QueryRow(`SELECT total_withdrawn FROM profiles WHERE uid=?`, uid))
	if err != nil {
		return err
	}
	_, err = tx.Exec(`UPDATE profiles SET total_withdrawn=? WHERE uid=?`, total.Add(amount).String(), uid)
	return err
}
