package games

import (
	"errors"
	"math/rand"

	"github.com/shopspring/decimal"
)

var (
	ErrRoundInProgress = errors.New("blackjack: round already in progress")
	ErrNoRound         = errors.New("blackjack: no round in progress")
	ErrRoundOver       = errors.New("blackjack: round is complete")
)

var (
	suits = []string{"spades", "hearts", "diamonds", "clubs"}
	ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
)

type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

func (c Card) Value() int {
	switch c.Rank {
	case "A":
		return 11
	case "J", "Q", "K":
		return 10
	case "10":
		return 10
	default:
		return int(c.Rank[0] - '0')
	}
}

func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range suits {
		for _, r := range ranks {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// HandTotal sums card values, counting aces as 11 and dropping them to 1
// one at a time while the total is over 21.
func HandTotal(hand []Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		if c.Rank == "A" {
			aces++
		}
		total += c.Value()
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// reshuffleThreshold is the shoe size below which the shoe is rebuilt
// between hands. It is large enough that one hand can never empty the shoe.
const reshuffleThreshold = 20

// Shoe is a shuffled 52-card deck; Draw pops from the end.
type Shoe struct {
	cards []Card
	rng   *rand.Rand
}

func NewShoe(rng *rand.Rand) *Shoe {
	s := &Shoe{rng: rng}
	s.rebuild()
	return s
}

func (s *Shoe) rebuild() {
	s.cards = NewDeck()
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

func (s *Shoe) Draw() Card {
	if len(s.cards) == 0 {
		// Prevented by RebuildIfLow between hands.
		panic("games: blackjack shoe exhausted mid-hand")
	}
	c := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return c
}

func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// RebuildIfLow reshuffles a fresh deck when the shoe is running low.
// Must only be called between hands.
func (s *Shoe) RebuildIfLow() {
	if len(s.cards) < reshuffleThreshold {
		s.rebuild()
	}
}

type TableState string

const (
	StateBetting    TableState = "betting"
	StatePlaying    TableState = "playing"
	StateDealerTurn TableState = "dealer-turn"
	StateComplete   TableState = "complete"
)

type Result string

const (
	ResultWin  Result = "win"
	ResultLose Result = "lose"
	ResultPush Result = "push"
)

// Table holds one player's blackjack round against the dealer.
type Table struct {
	shoe   *Shoe
	state  TableState
	bet    decimal.Decimal
	player []Card
	dealer []Card
	result Result
}

func NewTable(rng *rand.Rand) *Table {
	return &Table{
		shoe:  NewShoe(rng),
		state: StateBetting,
	}
}

func (t *Table) State() TableState    { return t.state }
func (t *Table) Bet() decimal.Decimal { return t.bet }
func (t *Table) PlayerHand() []Card   { return t.player }
func (t *Table) DealerHand() []Card   { return t.dealer }
func (t *Table) Result() Result       { return t.result }
func (t *Table) Shoe() *Shoe          { return t.shoe }

// Deal starts a new round: two cards to the player, one to the dealer.
// A complete round is re-armed; the shoe is reshuffled first if low.
func (t *Table) Deal(bet decimal.Decimal) error {
	if t.state == StatePlaying || t.state == StateDealerTurn {
		return ErrRoundInProgress
	}

	t.shoe.RebuildIfLow()
	t.bet = bet
	t.result = ""
	t.player = []Card{t.shoe.Draw(), t.shoe.Draw()}
	t.dealer = []Card{t.shoe.Draw()}
	t.state = StatePlaying
	return nil
}

// Hit draws one card for the player. Busting ends the round as a loss.
func (t *Table) Hit() error {
	if t.state == StateComplete {
		return ErrRoundOver
	}
	if t.state != StatePlaying {
		return ErrNoRound
	}

	t.player = append(t.player, t.shoe.Draw())
	if HandTotal(t.player) > 21 {
		t.state = StateComplete
		t.result = ResultLose
	}
	return nil
}

// Stand hands the round to the dealer, who draws to 17 and stands on
// all 17s, then compares totals.
func (t *Table) Stand() error {
	if t.state == StateComplete {
		return ErrRoundOver
	}
	if t.state != StatePlaying {
		return ErrNoRound
	}

	t.state = StateDealerTurn
	for HandTotal(t.dealer) < 17 {
		t.dealer = append(t.dealer, t.shoe.Draw())
	}

	dealerTotal := HandTotal(t.dealer)
	playerTotal := HandTotal(t.player)

	switch {
	case dealerTotal > 21 || playerTotal > dealerTotal:
		t.result = ResultWin
	case dealerTotal > playerTotal:
		t.result = ResultLose
	default:
		t.result = ResultPush
	}
	t.state = StateComplete
	return nil
}

// Payout is the amount returned to the player for the completed round:
// 2x the bet on a win, the bet back on a push, nothing on a loss.
func (t *Table) Payout() decimal.Decimal {
	if t.state != StateComplete {
		return decimal.Zero
	}
	switch t.result {
	case ResultWin:
		return t.bet.Mul(decimal.NewFromInt(2))
	case ResultPush:
		return t.bet
	default:
		return decimal.Zero
	}
}
