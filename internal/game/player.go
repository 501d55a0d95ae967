package game

import (
	"errors"
	"fmt"

	"github.com/lox/blackjack/internal/deck"
)

var (
	// ErrInvalidBet is returned for a bet that is not a positive amount
	ErrInvalidBet = errors.New("game: bet must be positive")
	// ErrInsufficientTokens is returned for a bet larger than the balance
	ErrInsufficientTokens = errors.New("game: bet exceeds token balance")
	// ErrNoTokens is returned when a participant has nothing left to bet
	ErrNoTokens = errors.New("game: no tokens left")
	// ErrNotPlayer is returned when a token operation targets the dealer
	ErrNotPlayer = errors.New("game: dealer does not hold tokens")
)

// Role distinguishes the human player from the automated dealer
type Role int

const (
	RolePlayer Role = iota
	RoleDealer
)

// String returns the string representation of a role
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleDealer:
		return "dealer"
	default:
		return "unknown"
	}
}

// HoleState tracks the dealer's hidden card through one round
type HoleState int

const (
	NoHiddenCard HoleState = iota
	HasHiddenCard
	Revealed
)

// String returns the string representation of a hole card state
func (s HoleState) String() string {
	switch s {
	case NoHiddenCard:
		return "no-hidden-card"
	case HasHiddenCard:
		return "has-hidden-card"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Participant is one side of a round: the player or the dealer.
// A participant lives for exactly one round.
type Participant struct {
	Name string

	role      Role
	hand      []deck.Card
	tokens    int
	hasTokens bool

	hole      deck.Card
	holeState HoleState
}

// NewPlayer creates the human side of a round with its carried-over balance
func NewPlayer(name string, tokens int) *Participant {
	return &Participant{
		Name:      name,
		role:      RolePlayer,
		tokens:    tokens,
		hasTokens: true,
	}
}

// NewDealer creates the dealer side of a round
func NewDealer(name string) *Participant {
	return &Participant{
		Name: name,
		role: RoleDealer,
	}
}

// Role returns whether this participant is the player or the dealer
func (p *Participant) Role() Role {
	return p.role
}

// IsDealer returns true for the dealer
func (p *Participant) IsDealer() bool {
	return p.role == RoleDealer
}

// HoleState returns the hidden card state
func (p *Participant) HoleState() HoleState {
	return p.holeState
}

// Hand returns a copy of the visible cards in deal order
func (p *Participant) Hand() []deck.Card {
	out := make([]deck.Card, len(p.hand))
	copy(out, p.hand)
	return out
}

// AddCard gives the participant a card. The dealer's first card of the
// round goes into the hidden slot; every other card is visible.
func (p *Participant) AddCard(card deck.Card) {
	if p.role == RoleDealer && p.holeState == NoHiddenCard {
		p.hole = card
		p.holeState = HasHiddenCard
		return
	}
	p.hand = append(p.hand, card)
}

// Reveal turns the hidden card face up and returns it. It is a no-op that
// returns false unless a card is currently hidden.
func (p *Participant) Reveal() (deck.Card, bool) {
	if p.holeState != HasHiddenCard {
		return deck.Card{}, false
	}

	card := p.hole
	p.hand = append(p.hand, card)
	p.hole = deck.Card{}
	p.holeState = Revealed
	return card, true
}

// HiddenCards returns how many cards are face down
func (p *Participant) HiddenCards() int {
	if p.holeState == HasHiddenCard {
		return 1
	}
	return 0
}

// VisibleScore scores the face-up cards only
func (p *Participant) VisibleScore() int {
	return Score(p.hand)
}

// Tokens returns the balance and whether this participant carries one
func (p *Participant) Tokens() (int, bool) {
	return p.tokens, p.hasTokens
}

// PlaceBet validates a bet against the balance and deducts it
func (p *Participant) PlaceBet(bet int) error {
	if !p.hasTokens {
		return ErrNotPlayer
	}
	if err := ValidateBet(bet, p.tokens); err != nil {
		return err
	}
	p.tokens -= bet
	return nil
}

// Credit adds a settlement delta to the balance
func (p *Participant) Credit(delta int) error {
	if !p.hasTokens {
		return ErrNotPlayer
	}
	p.tokens += delta
	return nil
}

// ValidateBet checks 0 < bet <= balance
func ValidateBet(bet, balance int) error {
	switch {
	case balance <= 0:
		return ErrNoTokens
	case bet <= 0:
		return ErrInvalidBet
	case bet > balance:
		return fmt.Errorf("%w: bet %d, balance %d", ErrInsufficientTokens, bet, balance)
	}
	return nil
}

// HandView is what a table display may show of a participant
type HandView struct {
	Name   string
	Cards  []deck.Card
	Hidden int
	Score  int
	Soft   bool
}

// View returns the face-up state of the hand
func (p *Participant) View() HandView {
	return HandView{
		Name:   p.Name,
		Cards:  p.Hand(),
		Hidden: p.HiddenCards(),
		Score:  p.VisibleScore(),
		Soft:   IsSoft(p.hand),
	}
}
