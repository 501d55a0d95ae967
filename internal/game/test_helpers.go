package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
)

// RecordingNotifier keeps every event as a short line, for assertions
type RecordingNotifier struct {
	Events      []string
	Views       []HandView
	Settlements []Settlement
}

func (r *RecordingNotifier) HandShown(v HandView) {
	r.Views = append(r.Views, v)
	r.Events = append(r.Events, fmt.Sprintf("hand %s %d hidden=%d", v.Name, v.Score, v.Hidden))
}

func (r *RecordingNotifier) CardRevealed(owner string, c deck.Card) {
	r.Events = append(r.Events, fmt.Sprintf("reveal %s %s", owner, c))
}

func (r *RecordingNotifier) DealerHit(owner string, c deck.Card) {
	r.Events = append(r.Events, fmt.Sprintf("hit %s %s", owner, c))
}

func (r *RecordingNotifier) RoundSettled(s Settlement) {
	r.Settlements = append(r.Settlements, s)
	r.Events = append(r.Events, fmt.Sprintf("settled %s %d", s.Outcome, s.Delta))
}

// QuietLogger returns a logger that drops everything below error
func QuietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// NewStackedRound builds a round whose deck deals cards in notation order:
// player, dealer (hidden), player, dealer, then any hits.
func NewStackedRound(cards string, tokens int, n Notifier) *Round {
	d := deck.Stacked(deck.MustParseCards(cards)...)
	return NewRound(d, NewPlayer("Alice", tokens), NewDealer("Dealer"), n, QuietLogger())
}
