package game

import "github.com/lox/blackjack/internal/deck"

// BlackjackTotal is the highest non-busting hand value
const BlackjackTotal = 21

// Score returns the best total for cards. Aces start at 11 and are softened
// to 1, one at a time, while the total is over 21. The result may still
// exceed 21; callers decide what a bust means.
func Score(cards []deck.Card) int {
	total, _ := score(cards)
	return total
}

// IsSoft reports whether the best total still counts an ace as 11
func IsSoft(cards []deck.Card) bool {
	_, softAces := score(cards)
	return softAces > 0
}

// IsBust reports whether a total is over 21
func IsBust(total int) bool {
	return total > BlackjackTotal
}

func score(cards []deck.Card) (total, softAces int) {
	for _, c := range cards {
		total += c.Rank.Points()
		if c.IsAce() {
			softAces++
		}
	}

	for total > BlackjackTotal && softAces > 0 {
		total -= 10
		softAces--
	}

	return total, softAces
}
