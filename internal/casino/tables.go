package casino

import (
	"errors"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"casino-platform/internal/games"
)

// ErrUnsettledRound blocks a new deal while a completed round still awaits
// settlement; the player retries stand to settle it.
var ErrUnsettledRound = errors.New("casino: completed round awaiting settlement")

// tableSession is one account's blackjack table. Its mutex serializes the
// deal/hit/stand flow; the balance itself is only touched by Settle at hand
// completion. unsettled marks a completed round whose settlement failed and
// must be retried before the table re-arms.
type tableSession struct {
	mu        sync.Mutex
	table     *games.Table
	key       string
	unsettled bool
}

func (s *Service) session(uid int64) *tableSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.tables[uid]
	if !ok {
		serverSeed, _ := s.seeds.Snapshot()
		seed, _ := games.DeriveSeed(serverSeed, "table:"+strconv.FormatInt(uid, 10), s.nonces[uid])
		sess = &tableSession{table: games.NewTable(games.NewRand(seed))}
		s.tables[uid] = sess
	}
	return sess
}

// Deal opens a round: funds are checked up front, but the bet is only
// debited when the hand settles.
func (s *Service) Deal(uid int64, bet decimal.Decimal, key string) (*BlackjackView, error) {
	sess := s.session(uid)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.unsettled {
		return nil, ErrUnsettledRound
	}
	if err := s.engine.CheckFunds(uid, bet); err != nil {
		return nil, err
	}
	if err := sess.table.Deal(bet); err != nil {
		return nil, err
	}
	sess.key = key

	return s.view(sess, nil), nil
}

func (s *Service) Hit(uid int64) (*BlackjackView, error) {
	sess := s.session(uid)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.table.Hit(); err != nil {
		return nil, err
	}
	return s.finish(uid, sess)
}

func (s *Service) Stand(uid int64) (*BlackjackView, error) {
	sess := s.session(uid)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	// a completed round whose settlement failed is retried here
	if sess.unsettled && sess.table.State() == games.StateComplete {
		return s.finish(uid, sess)
	}

	if err := sess.table.Stand(); err != nil {
		return nil, err
	}
	return s.finish(uid, sess)
}

func (s *Service) TableState(uid int64) *BlackjackView {
	sess := s.session(uid)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return s.view(sess, nil)
}

// finish settles the round if the table reached Complete.
func (s *Service) finish(uid int64, sess *tableSession) (*BlackjackView, error) {
	t := sess.table
	if t.State() != games.StateComplete {
		return s.view(sess, nil), nil
	}

	st, err := s.engine.Settle(SettleRequest{
		UID:  uid,
		Game: GameBlackjack,
		Bet:  t.Bet(),
		Key:  sess.key,
	}, func() (decimal.Decimal, map[string]string) {
		return t.Payout(), map[string]string{
			"result": string(t.Result()),
			"player": strconv.Itoa(games.HandTotal(t.PlayerHand())),
			"dealer": strconv.Itoa(games.HandTotal(t.DealerHand())),
		}
	})
	if err != nil {
		sess.unsettled = true
		return nil, err
	}
	sess.unsettled = false
	sess.key = ""

	return s.view(sess, st), nil
}

func (s *Service) view(sess *tableSession, st *Settlement) *BlackjackView {
	t := sess.table
	return &BlackjackView{
		State:       t.State(),
		Bet:         t.Bet(),
		Player:      t.PlayerHand(),
		PlayerTotal: games.HandTotal(t.PlayerHand()),
		Dealer:      t.DealerHand(),
		DealerTotal: games.HandTotal(t.DealerHand()),
		Result:      t.Result(),
		Settlement:  st,
	}
}
