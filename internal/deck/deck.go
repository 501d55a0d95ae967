package deck

import "errors"

// Size is the number of cards in a full deck
const Size = len(Suits) * len(Ranks)

// ErrDeckExhausted is returned when drawing from an empty deck
var ErrDeckExhausted = errors.New("deck: exhausted")

// Source supplies uniformly distributed integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// Deck represents a deck of playing cards. The top of the deck is the end
// of the slice.
type Deck struct {
	cards []Card
	rng   Source
}

// New creates a standard 52-card deck in suit-major, rank-minor order.
// The deck is not shuffled.
func New(rng Source) *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}

	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}

	return d
}

// NewShuffled creates a standard deck and shuffles it once
func NewShuffled(rng Source) *Deck {
	d := New(rng)
	d.Shuffle()
	return d
}

// Stacked creates a deck holding exactly cards, dealt in the given order.
// It is used to replay known hands.
func Stacked(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d
}

// Shuffle permutes the remaining cards in place (Fisher-Yates, growing prefix)
func (d *Deck) Shuffle() {
	for i := range d.cards {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, error) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, ErrDeckExhausted
	}

	card := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return card, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards, bottom first
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
