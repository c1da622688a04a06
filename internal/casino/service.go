package casino

import (
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"casino-platform/internal/games"
)

const (
	GameSlots     = "slots"
	GameClassic   = "classic"
	GameMegaslots = "megaslots"
	GameBlackjack = "blackjack"
)

type slotLayout struct {
	rows, cols  int
	runPaytable bool
}

// getSlot resolves a requested slot variant; unknown names fall back to the
// five-reel multi-line game.
func getSlot(name string) (string, slotLayout) {
	switch name {
	case GameClassic:
		return GameClassic, slotLayout{rows: 3, cols: 3}
	case GameMegaslots:
		return GameMegaslots, slotLayout{rows: 3, cols: 5, runPaytable: true}
	default:
		return GameSlots, slotLayout{rows: 3, cols: 5}
	}
}

// Service fronts the settlement engine with per-game orchestration: slot
// spins are one-shot, blackjack rounds live on a per-account table until
// the hand completes.
type Service struct {
	engine *Engine
	seeds  *SeedManager

	mu     sync.Mutex
	nonces map[int64]int64
	tables map[int64]*tableSession
}

func NewService(engine *Engine) *Service {
	return &Service{
		engine: engine,
		seeds:  NewSeedManager(),
		nonces: make(map[int64]int64),
		tables: make(map[int64]*tableSession),
	}
}

func (s *Service) Engine() *Engine { return s.engine }

func (s *Service) nextNonce(uid int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nonces[uid]++
	return s.nonces[uid]
}

func (s *Service) Spin(req SpinRequest) (*SpinResult, error) {
	s.seeds.MaybeRotate()

	game, layout := getSlot(req.Game)
	nonce := s.nextNonce(req.UID)
	serverSeed, seedHash := s.seeds.Snapshot()
	seed, proof := games.DeriveSeed(serverSeed, req.ClientSeed, nonce)
	rng := games.NewRand(seed)

	var grid games.Grid
	var lines, run int
	var symbol string

	st, err := s.engine.Settle(SettleRequest{
		UID:  req.UID,
		Game: game,
		Bet:  req.Bet,
		Key:  req.Key,
	}, func() (decimal.Decimal, map[string]string) {
		grid = games.DrawGrid(rng, layout.rows, layout.cols)

		var payout decimal.Decimal
		meta := map[string]string{
			"grid":  grid.String(),
			"proof": proof,
			"nonce": strconv.FormatInt(nonce, 10),
		}

		if layout.runPaytable {
			payout, symbol, run = games.EvaluateRun(grid.Payline(), req.Bet)
			meta["symbol"] = symbol
			meta["run"] = strconv.Itoa(run)
		} else {
			payout, lines = games.EvaluateLines(grid, req.Bet)
			meta["lines"] = strconv.Itoa(lines)
		}
		return payout, meta
	})
	if err != nil {
		return nil, err
	}

	if st.Replayed {
		return &SpinResult{Settlement: st, Nonce: nonce, ServerSeedHash: seedHash}, nil
	}

	return &SpinResult{
		Settlement:     st,
		Grid:           grid,
		Lines:          lines,
		Symbol:         symbol,
		Run:            run,
		Nonce:          nonce,
		Proof:          proof,
		ServerSeedHash: seedHash,
	}, nil
}
