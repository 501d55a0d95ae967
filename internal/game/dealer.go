package game

import (
	"fmt"

	"github.com/lox/blackjack/internal/deck"
)

// DealerStandsOn is the total at which the dealer stops drawing
const DealerStandsOn = 17

// PlayDealer draws for the dealer while its visible total is below 17.
// A bust ends the loop because any bust total is already above 17.
func PlayDealer(d *deck.Deck, dealer *Participant, n Notifier) error {
	for dealer.VisibleScore() < DealerStandsOn {
		card, err := d.Draw()
		if err != nil {
			return fmt.Errorf("dealer hit: %w", err)
		}
		dealer.AddCard(card)
		n.DealerHit(dealer.Name, card)
		n.HandShown(dealer.View())
	}
	return nil
}
