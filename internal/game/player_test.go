package game

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealerHidesFirstCardOnly(t *testing.T) {
	t.Parallel()

	cards := deck.MustParseCards("Ks7h5d")
	dealer := NewDealer("Dealer")
	require.Equal(t, NoHiddenCard, dealer.HoleState())

	dealer.AddCard(cards[0])
	dealer.AddCard(cards[1])

	assert.Equal(t, HasHiddenCard, dealer.HoleState())
	assert.Equal(t, 1, dealer.HiddenCards())
	assert.Equal(t, []deck.Card{cards[1]}, dealer.Hand())
	assert.Equal(t, 7, dealer.VisibleScore(), "hidden king must not count")

	revealed, ok := dealer.Reveal()
	require.True(t, ok)
	assert.Equal(t, cards[0], revealed)
	assert.Equal(t, Revealed, dealer.HoleState())
	assert.Equal(t, 0, dealer.HiddenCards())
	assert.Equal(t, []deck.Card{cards[1], cards[0]}, dealer.Hand())
	assert.Equal(t, 17, dealer.VisibleScore())

	_, ok = dealer.Reveal()
	assert.False(t, ok, "second reveal is a no-op")
	assert.Len(t, dealer.Hand(), 2)

	dealer.AddCard(cards[2])
	assert.Equal(t, Revealed, dealer.HoleState(), "nothing is hidden after a reveal")
	assert.Equal(t, 0, dealer.HiddenCards())
	assert.Equal(t, 22, dealer.VisibleScore())
}

func TestRevealWithoutHiddenCard(t *testing.T) {
	t.Parallel()

	dealer := NewDealer("Dealer")
	_, ok := dealer.Reveal()
	assert.False(t, ok)
	assert.Equal(t, NoHiddenCard, dealer.HoleState())
	assert.Empty(t, dealer.Hand())
}

func TestPlayerNeverHidesCards(t *testing.T) {
	t.Parallel()

	player := NewPlayer("Alice", 100)
	for _, c := range deck.MustParseCards("As9h") {
		player.AddCard(c)
	}

	assert.Equal(t, NoHiddenCard, player.HoleState())
	assert.Len(t, player.Hand(), 2)
	assert.Equal(t, 20, player.VisibleScore())

	_, ok := player.Reveal()
	assert.False(t, ok)
}

func TestHandViewShowsPlaceholderCount(t *testing.T) {
	t.Parallel()

	dealer := NewDealer("Dealer")
	for _, c := range deck.MustParseCards("As6h") {
		dealer.AddCard(c)
	}

	v := dealer.View()
	assert.Equal(t, "Dealer", v.Name)
	assert.Equal(t, 1, v.Hidden)
	assert.Equal(t, 6, v.Score)
	assert.False(t, v.Soft)

	dealer.Reveal()
	v = dealer.View()
	assert.Equal(t, 0, v.Hidden)
	assert.Equal(t, 17, v.Score)
	assert.True(t, v.Soft)
}

func TestHandReturnsCopy(t *testing.T) {
	t.Parallel()

	player := NewPlayer("Alice", 10)
	player.AddCard(deck.NewCard(deck.Spades, deck.Ten))

	hand := player.Hand()
	hand[0] = deck.NewCard(deck.Hearts, deck.Two)
	assert.Equal(t, 10, player.VisibleScore())
}

func TestPlaceBet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		balance int
		bet     int
		wantErr error
		left    int
	}{
		{"valid bet", 100, 10, nil, 90},
		{"whole balance", 25, 25, nil, 0},
		{"zero bet", 100, 0, ErrInvalidBet, 100},
		{"negative bet", 100, -5, ErrInvalidBet, 100},
		{"over balance", 20, 21, ErrInsufficientTokens, 20},
		{"broke", 0, 1, ErrNoTokens, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("Alice", tt.balance)
			err := p.PlaceBet(tt.bet)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			left, ok := p.Tokens()
			assert.True(t, ok)
			assert.Equal(t, tt.left, left)
		})
	}
}

func TestDealerHasNoTokens(t *testing.T) {
	t.Parallel()

	dealer := NewDealer("Dealer")
	_, ok := dealer.Tokens()
	assert.False(t, ok)
	assert.ErrorIs(t, dealer.PlaceBet(10), ErrNotPlayer)
	assert.ErrorIs(t, dealer.Credit(10), ErrNotPlayer)
	assert.True(t, dealer.IsDealer())
	assert.Equal(t, "dealer", dealer.Role().String())
}
