package casino

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"casino-platform/internal/event"
	"casino-platform/internal/ledger"
	"casino-platform/internal/logger"
	"casino-platform/internal/monitoring"
	"casino-platform/internal/wallet"
)

// Wallet is the balance contract the engine settles against. Mutations run
// inside the engine's transaction, under the account's lock.
type Wallet interface {
	Lock(uid int64) func()
	Balance(uid int64) (decimal.Decimal, error)
	BalanceTx(tx *sql.Tx, uid int64) (decimal.Decimal, error)
	Debit(tx *sql.Tx, uid int64, amount decimal.Decimal) error
	Credit(tx *sql.Tx, uid int64, amount decimal.Decimal) error
}

type Ledger interface {
	Record(tx *sql.Tx, e *ledger.Entry) error
}

// PlayFunc produces the round's payout and result metadata. It runs inside
// the settlement transaction, after the bet is debited.
type PlayFunc func() (decimal.Decimal, map[string]string)

// Engine settles wagers: debit the bet, run the game, credit the payout and
// append the ledger pair, all as one atomic unit per account.
type Engine struct {
	db     *sql.DB
	wallet Wallet
	ledger Ledger
	risk   *RiskEngine
	rtp    *RTPController
	bus    *event.Bus
}

func NewEngine(db *sql.DB, w Wallet, l Ledger, risk *RiskEngine, bus *event.Bus) *Engine {
	return &Engine{
		db:     db,
		wallet: w,
		ledger: l,
		risk:   risk,
		rtp:    NewRTP(),
		bus:    bus,
	}
}

func (e *Engine) RTP() *RTPController { return e.rtp }

// CheckFunds rejects a bet that is invalid or not covered by the current
// balance, without taking the account lock.
func (e *Engine) CheckFunds(uid int64, bet decimal.Decimal) error {
	if err := e.risk.Validate(bet); err != nil {
		return err
	}
	balance, err := e.wallet.Balance(uid)
	if err != nil {
		return err
	}
	if balance.LessThan(bet) {
		return wallet.ErrInsufficientFunds
	}
	return nil
}

// Settle runs one wager end-to-end. Order inside the transaction: debit the
// bet, run play, credit the payout, append game_loss and (iff payout > 0)
// game_win records. Any failure after the debit rolls everything back, so a
// reader never sees a debited bet without its ledger pair.
func (e *Engine) Settle(req SettleRequest, play PlayFunc) (*Settlement, error) {
	if err := e.risk.Validate(req.Bet); err != nil {
		return nil, err
	}

	unlock := e.wallet.Lock(req.UID)
	defer unlock()

	if req.Key != "" {
		prev, err := e.lookupKey(req.Key)
		if err != nil {
			return nil, err
		}
		if prev != nil {
			if prev.UID != req.UID {
				return nil, ErrKeyConflict
			}
			prev.Replayed = true
			return prev, nil
		}
	}

	tx, err := e.db.Begin()
	if err != nil {
		return nil, err
	}

	if err := e.wallet.Debit(tx, req.UID, req.Bet); err != nil {
		tx.Rollback()
		return nil, err
	}

	payout, meta := play()
	if meta == nil {
		meta = map[string]string{}
	}
	meta["game"] = req.Game

	ref := uuid.New().String()
	meta["settlement"] = ref

	if payout.IsPositive() {
		if err := e.wallet.Credit(tx, req.UID, payout); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	loss := &ledger.Entry{
		UID:      req.UID,
		Amount:   req.Bet,
		Kind:     ledger.KindGameLoss,
		Status:   ledger.StatusCompleted,
		Metadata: meta,
	}
	if err := e.ledger.Record(tx, loss); err != nil {
		tx.Rollback()
		return nil, err
	}

	if payout.IsPositive() {
		win := &ledger.Entry{
			UID:      req.UID,
			Amount:   payout,
			Kind:     ledger.KindGameWin,
			Status:   ledger.StatusCompleted,
			Metadata: meta,
		}
		if err := e.ledger.Record(tx, win); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	newBalance, err := e.wallet.BalanceTx(tx, req.UID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	st := &Settlement{
		Ref:        ref,
		UID:        req.UID,
		Game:       req.Game,
		Bet:        req.Bet,
		Payout:     payout,
		NewBalance: newBalance,
		Meta:       meta,
		CreatedAt:  time.Now().Unix(),
	}

	if err := e.insertSettlement(tx, st, req.Key); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	e.rtp.Record(req.Bet, payout)
	e.observe(st)
	e.bus.Publish(event.EventCasinoSettled, st)

	logger.Log.Info("wager settled",
		zap.Int64("uid", req.UID),
		zap.String("game", req.Game),
		zap.String("bet", req.Bet.String()),
		zap.String("payout", payout.String()),
	)

	return st, nil
}

func (e *Engine) observe(st *Settlement) {
	result := st.Meta["result"]
	if result == "" {
		if st.Payout.IsPositive() {
			result = "win"
		} else {
			result = "lose"
		}
	}
	monitoring.Settlements.WithLabelValues(st.Game, result).Inc()
	monitoring.AmountWagered.WithLabelValues(st.Game).Add(st.Bet.InexactFloat64())
	monitoring.AmountPaidOut.WithLabelValues(st.Game).Add(st.Payout.InexactFloat64())
}

func (e *Engine) lookupKey(key string) (*Settlement, error) {
	var st Settlement
	var bet, payout, balance string

	err := e.db.QueryRow(`
	SELECT ref,uid,game,bet,payout,new_balance,created_at FROM settlements WHERE idem_key=?
	`, key).Scan(&st.Ref, &st.UID, &st.Game, &bet, &payout, &balance, &st.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if st.Bet, err = decimal.NewFromString(bet); err != nil {
		return nil, err
	}
	if st.Payout, err = decimal.NewFromString(payout); err != nil {
		return nil, err
	}
	if st.NewBalance, err = decimal.NewFromString(balance); err != nil {
		return nil, err
	}
	return &st, nil
}

func (e *Engine) insertSettlement(tx *sql.Tx, st *Settlement, key string) error {
	var idemKey interface{}
	if key != "" {
		idemKey = key
	}

	_, err := tx.Exec(`
	INSERT INTO settlements(ref,idem_key,uid,game,bet,payout,new_balance,created_at)
	VALUES (?,?,?,?,?,?,?,?)
	`, st.Ref, idemKey, st.UID, st.Game, st.Bet.String(), st.Payout.String(), st.NewBalance.String(), st.CreatedAt)

	return err
}
