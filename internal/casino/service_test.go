package casino

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casino-platform/internal/games"
	"casino-platform/internal/ledger"
	"casino-platform/internal/wallet"
)

func newTestService(t *testing.T) (*Service, *testEnv) {
	t.Helper()

	env := newTestEnv(t)
	return NewService(env.engine), env
}

func TestSpinSettlesAgainstBalance(t *testing.T) {
	svc, env := newTestService(t)
	env.seed(t, 1, "100")

	res, err := svc.Spin(SpinRequest{
		UID:        1,
		Game:       GameSlots,
		Bet:        decimal.NewFromInt(5),
		ClientSeed: "lucky",
	})
	require.NoError(t, err)

	require.Len(t, res.Grid, 3)
	require.Len(t, res.Grid[0], 5)
	assert.NotEmpty(t, res.Proof)
	assert.NotEmpty(t, res.ServerSeedHash)
	assert.Equal(t, int64(1), res.Nonce)

	want := decimal.NewFromInt(100).Sub(decimal.NewFromInt(5)).Add(res.Settlement.Payout)
	assert.True(t, res.Settlement.NewBalance.Equal(want))

	balance, err := env.wallet.Balance(1)
	require.NoError(t, err)
	assert.True(t, balance.Equal(want))

	losses, err := env.ledger.List(ledger.Filter{UID: 1, Kind: ledger.KindGameLoss})
	require.NoError(t, err)
	require.Len(t, losses, 1)
	assert.Equal(t, res.Grid.String(), losses[0].Metadata["grid"])
}

func TestSpinNonceAdvances(t *testing.T) {
	svc, env := newTestService(t)
	env.seed(t, 1, "100")

	first, err := svc.Spin(SpinRequest{UID: 1, Game: GameSlots, Bet: decimal.NewFromInt(1)})
	require.NoError(t, err)
	second, err := svc.Spin(SpinRequest{UID: 1, Game: GameSlots, Bet: decimal.NewFromInt(1)})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Nonce)
	assert.Equal(t, int64(2), second.Nonce)
	assert.NotEqual(t, first.Proof, second.Proof)
}

func TestSpinClassicLayout(t *testing.T) {
	svc, env := newTestService(t)
	env.seed(t, 1, "100")

	res, err := svc.Spin(SpinRequest{UID: 1, Game: GameClassic, Bet: decimal.NewFromInt(1)})
	require.NoError(t, err)

	require.Len(t, res.Grid, 3)
	assert.Len(t, res.Grid[0], 3)
	assert.Equal(t, GameClassic, res.Settlement.Game)
}

func TestSpinMegaslotsReportsRun(t *testing.T) {
	svc, env := newTestService(t)
	env.seed(t, 1, "100")

	res, err := svc.Spin(SpinRequest{UID: 1, Game: GameMegaslots, Bet: decimal.NewFromInt(1)})
	require.NoError(t, err)

	losses, err := env.ledger.List(ledger.Filter{UID: 1, Kind: ledger.KindGameLoss})
	require.NoError(t, err)
	require.Len(t, losses, 1)
	assert.Contains(t, losses[0].Metadata, "run")

	if res.Run >= 3 {
		assert.Contains(t, games.Symbols, res.Symbol)
		assert.True(t, res.Settlement.Payout.IsPositive())
	} else {
		assert.True(t, res.Settlement.Payout.IsZero())
	}
}

func TestSpinIdempotentReplay(t *testing.T) {
	svc, env := newTestService(t)
	env.seed(t, 1, "100")

	req := SpinRequest{UID: 1, Game: GameSlots, Bet: decimal.NewFromInt(5), Key: "once"}

	first, err := svc.Spin(req)
	require.NoError(t, err)
	require.False(t, first.Settlement.Replayed)

	second, err := svc.Spin(req)
	require.NoError(t, err)
	assert.True(t, second.Settlement.Replayed)
	assert.Equal(t, first.Settlement.Ref, second.Settlement.Ref)

	balance, err := env.wallet.Balance(1)
	require.NoError(t, err)
	assert.True(t, balance.Equal(first.Settlement.NewBalance))
}

func TestSpinInsufficientFunds(t *testing.T) {
	svc, env := newTestService(t)
	env.seed(t, 1, "2")

	_, err := svc.Spin(SpinRequest{UID: 1, Game: GameSlots, Bet: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, wallet.ErrInsufficientFunds)
}

func TestBlackjackRoundSettlesOnce(t *testing.T) {
	svc, env := newTestService(t)
	env.seed(t, 1, "50")

	bet := decimal.NewFromInt(10)
	view, err := svc.Deal(1, bet, "")
	require.NoError(t, err)
	assert.Equal(t, games.StatePlaying, view.State)
	assert.Len(t, view.Player, 2)
	assert.Len(t, view.Dealer, 1)

	// no money moves until the hand completes
	balance, err := env.wallet.Balance(1)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(50)))

	view, err = svc.Stand(1)
	require.NoError(t, err)
	require.Equal(t, games.StateComplete, view.State)
	require.NotNil(t, view.Settlement)

	var want decimal.Decimal
	switch view.Result {
	case games.ResultWin:
		want = decimal.NewFromInt(60)
	case games.ResultPush:
		want = decimal.NewFromInt(50)
	case games.ResultLose:
		want = decimal.NewFromInt(40)
	}
	assert.True(t, view.Settlement.NewBalance.Equal(want), view.Settlement.NewBalance.String())

	losses, err := env.ledger.List(ledger.Filter{UID: 1, Kind: ledger.KindGameLoss})
	require.NoError(t, err)
	require.Len(t, losses, 1)
	assert.Equal(t, string(view.Result), losses[0].Metadata["result"])
}

func TestBlackjackDealRequiresFunds(t *testing.T) {
	svc, env := newTestService(t)
	env.seed(t, 1, "5")

	_, err := svc.Deal(1, decimal.NewFromInt(10), "")
	assert.ErrorIs(t, err, wallet.ErrInsufficientFunds)

	view := svc.TableState(1)
	assert.Equal(t, games.StateBetting, view.State)
}

func TestBlackjackActionsRequireRound(t *testing.T) {
	svc, env := newTestService(t)
	env.seed(t, 1, "50")

	_, err := svc.Hit(1)
	assert.ErrorIs(t, err, games.ErrNoRound)
	_, err = svc.Stand(1)
	assert.ErrorIs(t, err, games.ErrNoRound)
}

func TestBlackjackFailedSettlementIsRetried(t *testing.T) {
	svc, env := newTestService(t)
	env.seed(t, 1, "10")

	bet := decimal.NewFromInt(10)
	_, err := svc.Deal(1, bet, "")
	require.NoError(t, err)

	// drain the balance while the hand is open
	tx, err := env.conn.Begin()
	require.NoError(t, err)
	require.NoError(t, env.wallet.Debit(tx, 1, decimal.NewFromInt(10)))
	require.NoError(t, tx.Commit())

	_, err = svc.Stand(1)
	assert.ErrorIs(t, err, wallet.ErrInsufficientFunds)

	// the round is complete but unsettled: no new deal, no ledger trace yet
	_, err = svc.Deal(1, bet, "")
	assert.ErrorIs(t, err, ErrUnsettledRound)

	entries, err := env.ledger.List(ledger.Filter{UID: 1})
	require.NoError(t, err)
	assert.Empty(t, entries)

	// refund and retry: stand settles the held round
	tx, err = env.conn.Begin()
	require.NoError(t, err)
	require.NoError(t, env.wallet.Credit(tx, 1, decimal.NewFromInt(10)))
	require.NoError(t, tx.Commit())

	view, err := svc.Stand(1)
	require.NoError(t, err)
	require.Equal(t, games.StateComplete, view.State)
	require.NotNil(t, view.Settlement)

	losses, err := env.ledger.List(ledger.Filter{UID: 1, Kind: ledger.KindGameLoss})
	require.NoError(t, err)
	assert.Len(t, losses, 1)

	// the table re-arms once settled
	_, err = svc.Deal(1, decimal.NewFromInt(1), "")
	if view.Settlement.NewBalance.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		assert.NoError(t, err)
	} else {
		assert.ErrorIs(t, err, wallet.ErrInsufficientFunds)
	}
}

func TestBlackjackTableRearmsAfterSettlement(t *testing.T) {
	svc, env := newTestService(t)
	env.seed(t, 1, "1000")

	for i := 0; i < 5; i++ {
		_, err := svc.Deal(1, decimal.NewFromInt(2), "")
		require.NoError(t, err)
		view, err := svc.Stand(1)
		require.NoError(t, err)
		require.Equal(t, games.StateComplete, view.State)
	}

	losses, err := env.ledger.List(ledger.Filter{UID: 1, Kind: ledger.KindGameLoss})
	require.NoError(t, err)
	assert.Len(t, losses, 5)
}
