package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// HiddenCardText stands in for a face-down card
const HiddenCardText = "[Hidden card]"

// Text writes events as lines of styled text
type Text struct {
	w      io.Writer
	styles Styles
}

var _ Display = (*Text)(nil)

// New creates a text display writing to w
func New(w io.Writer, color bool) *Text {
	return &Text{w: w, styles: NewStyles(w, color)}
}

func (t *Text) line(s string) {
	fmt.Fprintln(t.w, s)
}

// HandShown lists the face-up cards, one placeholder per hidden card and
// the visible total
func (t *Text) HandShown(v game.HandView) {
	t.line("")
	t.line(t.styles.HandName.Render(v.Name + "'s hand:"))
	for _, c := range v.Cards {
		t.line("  " + t.card(c))
	}
	for i := 0; i < v.Hidden; i++ {
		t.line("  " + t.styles.Hidden.Render(HiddenCardText))
	}
	t.line(t.styles.Total.Render(TotalText(v)))
}

// CardRevealed announces the dealer's hole card
func (t *Text) CardRevealed(owner string, c deck.Card) {
	t.line("")
	t.line(fmt.Sprintf("%s's hidden card revealed: %s", owner, t.card(c)))
}

// DealerHit announces a dealer draw; the new hand follows as HandShown
func (t *Text) DealerHit(owner string, _ deck.Card) {
	t.line("")
	t.line(t.styles.Info.Render(owner + " hits!"))
}

// RoundSettled prints the outcome and payout
func (t *Text) RoundSettled(s game.Settlement) {
	t.line("")
	switch s.Outcome {
	case game.PlayerWin, game.DealerBust:
		t.line(t.styles.Success.Render(OutcomeText(s)))
	case game.Push:
		t.line(t.styles.Info.Render(OutcomeText(s)))
	default:
		t.line(t.styles.Error.Render(OutcomeText(s)))
	}
}

func (t *Text) Title(text string) {
	t.line(t.styles.Title.Render(text))
	t.line("")
}

func (t *Text) Info(text string)    { t.line(t.styles.Info.Render(text)) }
func (t *Text) Success(text string) { t.line(t.styles.Success.Render(text)) }
func (t *Text) Warn(text string)    { t.line(t.styles.Warning.Render(text)) }
func (t *Text) Prompt(text string)  { t.line(t.styles.Prompt.Render(text)) }

func (t *Text) card(c deck.Card) string {
	if c.IsRed() {
		return t.styles.RedCard.Render(c.String())
	}
	return t.styles.BlackCard.Render(c.String())
}

// TotalText formats a hand total, marking soft totals
func TotalText(v game.HandView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %d", v.Score)
	if v.Soft && !game.IsBust(v.Score) {
		b.WriteString(" (soft)")
	}
	if v.Hidden > 0 {
		b.WriteString(" showing")
	}
	return b.String()
}

// OutcomeText is the closing line for a settled round
func OutcomeText(s game.Settlement) string {
	switch s.Outcome {
	case game.PlayerBust:
		return "You busted! Dealer wins!"
	case game.DealerBust:
		return fmt.Sprintf("Dealer busted! You win %d tokens.", s.Delta)
	case game.Push:
		return "It's a push! Your bet is returned."
	case game.PlayerWin:
		return fmt.Sprintf("You win! You gain %d tokens.", s.Delta)
	default:
		return "Dealer wins!"
	}
}
