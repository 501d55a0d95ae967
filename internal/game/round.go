package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
)

// ErrOutOfTurn is returned when a round action is called in the wrong stage
var ErrOutOfTurn = errors.New("game: action not allowed at this stage of the round")

// Stage is where a round currently is
type Stage int

const (
	StageBetting Stage = iota
	StageDealing
	StagePlayerTurn
	StageDealerDone
	StageSettled
)

// String returns the string representation of a stage
func (s Stage) String() string {
	switch s {
	case StageBetting:
		return "betting"
	case StageDealing:
		return "dealing"
	case StagePlayerTurn:
		return "player-turn"
	case StageDealerDone:
		return "dealer-done"
	case StageSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Round owns one deck and both participants for a single hand of blackjack.
// It is not safe for concurrent use.
type Round struct {
	deck     *deck.Deck
	player   *Participant
	dealer   *Participant
	notifier Notifier
	logger   *log.Logger

	bet   int
	stage Stage
}

// NewRound wires a fresh deck and participants into a round
func NewRound(d *deck.Deck, player, dealer *Participant, n Notifier, logger *log.Logger) *Round {
	if n == nil {
		n = NopNotifier{}
	}
	return &Round{
		deck:     d,
		player:   player,
		dealer:   dealer,
		notifier: n,
		logger:   logger.WithPrefix("round"),
	}
}

// Player returns the player participant
func (r *Round) Player() *Participant { return r.player }

// Dealer returns the dealer participant
func (r *Round) Dealer() *Participant { return r.dealer }

// Bet returns the amount staked this round
func (r *Round) Bet() int { return r.bet }

// Stage returns the current stage
func (r *Round) Stage() Stage { return r.stage }

// CardsRemaining returns how many cards are left in the round's deck
func (r *Round) CardsRemaining() int { return r.deck.Remaining() }

// PlaceBet takes the stake from the player's balance
func (r *Round) PlaceBet(bet int) error {
	if r.stage != StageBetting {
		return ErrOutOfTurn
	}
	if err := r.player.PlaceBet(bet); err != nil {
		return err
	}
	r.bet = bet
	r.stage = StageDealing

	balance, _ := r.player.Tokens()
	r.logger.Debug("Bet placed", "player", r.player.Name, "bet", bet, "balance", balance)
	return nil
}

// Deal gives two cards each, alternating player then dealer. The dealer's
// first card is dealt face down.
func (r *Round) Deal() error {
	if r.stage != StageDealing {
		return ErrOutOfTurn
	}

	for i := 0; i < 2; i++ {
		for _, p := range []*Participant{r.player, r.dealer} {
			card, err := r.deck.Draw()
			if err != nil {
				return fmt.Errorf("initial deal: %w", err)
			}
			p.AddCard(card)
		}
	}
	r.stage = StagePlayerTurn

	r.notifier.HandShown(r.player.View())
	r.notifier.HandShown(r.dealer.View())
	r.logger.Debug("Dealt", "player", r.player.VisibleScore(), "dealerUp", r.dealer.VisibleScore())
	return nil
}

// Hit draws one card for the player and returns the new total
func (r *Round) Hit() (int, error) {
	if r.stage != StagePlayerTurn || IsBust(r.player.VisibleScore()) {
		return 0, ErrOutOfTurn
	}

	card, err := r.deck.Draw()
	if err != nil {
		return 0, fmt.Errorf("player hit: %w", err)
	}
	r.player.AddCard(card)
	r.notifier.HandShown(r.player.View())

	total := r.player.VisibleScore()
	r.logger.Debug("Player hits", "card", card, "total", total)
	return total, nil
}

// Stand ends the player's turn: the dealer reveals its hidden card and then
// draws to 17.
func (r *Round) Stand() error {
	if r.stage != StagePlayerTurn || IsBust(r.player.VisibleScore()) {
		return ErrOutOfTurn
	}

	if card, ok := r.dealer.Reveal(); ok {
		r.notifier.CardRevealed(r.dealer.Name, card)
	}
	r.notifier.HandShown(r.dealer.View())

	if err := PlayDealer(r.deck, r.dealer, r.notifier); err != nil {
		return err
	}
	r.stage = StageDealerDone

	r.logger.Debug("Dealer stands", "total", r.dealer.VisibleScore())
	return nil
}

// Settle compares the hands, pays the player and closes the round. It may
// be called after Stand, or during the player's turn once the player busts.
func (r *Round) Settle() (Settlement, error) {
	switch {
	case r.stage == StageDealerDone:
	case r.stage == StagePlayerTurn && IsBust(r.player.VisibleScore()):
	default:
		return Settlement{}, ErrOutOfTurn
	}

	s := Settle(r.player.VisibleScore(), r.dealer.VisibleScore(), r.bet)
	if err := r.player.Credit(s.Delta); err != nil {
		return Settlement{}, err
	}
	r.stage = StageSettled
	r.notifier.RoundSettled(s)

	balance, _ := r.player.Tokens()
	r.logger.Info("Round settled",
		"outcome", s.Outcome,
		"player", s.PlayerScore,
		"dealer", s.DealerScore,
		"bet", s.Bet,
		"delta", s.Delta,
		"balance", balance)
	return s, nil
}
