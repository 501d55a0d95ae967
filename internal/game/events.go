package game

import "github.com/lox/blackjack/internal/deck"

// Notifier receives everything a round wants shown at the table.
// Rules code never writes to a terminal directly.
type Notifier interface {
	HandShown(view HandView)
	CardRevealed(owner string, card deck.Card)
	DealerHit(owner string, card deck.Card)
	RoundSettled(s Settlement)
}

// NopNotifier discards every event
type NopNotifier struct{}

func (NopNotifier) HandShown(HandView) {}
func (NopNotifier) CardRevealed(string, deck.Card) {}
func (NopNotifier) DealerHit(string, deck.Card) {}
func (NopNotifier) RoundSettled(Settlement) {}
