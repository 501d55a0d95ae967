// Package game implements the blackjack rules: hand scoring, the dealer's
// hidden card and hit policy, and round settlement.
//
// The main type is Round, which owns one deck and both participants for a
// single hand. Score and Settle are pure functions and can be used on their
// own.
//
// # Basic Usage
//
//	d := deck.NewShuffled(randutil.New(seed))
//	r := game.NewRound(d, game.NewPlayer("Alice", 100), game.NewDealer("Dealer"), notifier, logger)
//	if err := r.PlaceBet(10); err != nil { ... }
//	if err := r.Deal(); err != nil { ... }
//	total, err := r.Hit()
//	// either the player busts, or:
//	err = r.Stand()
//	settlement, err := r.Settle()
//
// # Deterministic Testing
//
// deck.Stacked builds a deck that deals cards in a fixed order, and
// NewStackedRound wraps that for tests:
//
//	r := game.NewStackedRound("Ts 9h 7d 8c", 100, &game.RecordingNotifier{})
//
// # Display
//
// Rules code never prints. Everything a table would show goes through the
// Notifier passed to NewRound; HandView carries only face-up cards plus a
// count of hidden ones.
package game
