package game

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundStandPush(t *testing.T) {
	t.Parallel()

	rec := &RecordingNotifier{}
	r := NewStackedRound("Ts 9h 7d 8c", 100, rec)

	require.NoError(t, r.PlaceBet(10))
	tokens, _ := r.Player().Tokens()
	assert.Equal(t, 90, tokens)

	require.NoError(t, r.Deal())
	assert.Equal(t, StagePlayerTurn, r.Stage())
	assert.Equal(t, 17, r.Player().VisibleScore())
	assert.Equal(t, 8, r.Dealer().VisibleScore())
	assert.Equal(t, HasHiddenCard, r.Dealer().HoleState())

	require.NoError(t, r.Stand())
	s, err := r.Settle()
	require.NoError(t, err)

	assert.Equal(t, Push, s.Outcome)
	assert.Equal(t, 10, s.Delta)
	tokens, _ = r.Player().Tokens()
	assert.Equal(t, 100, tokens)
	assert.Equal(t, StageSettled, r.Stage())

	assert.Equal(t, []string{
		"hand Alice 17 hidden=0",
		"hand Dealer 8 hidden=1",
		"reveal Dealer 9 of Hearts",
		"hand Dealer 17 hidden=0",
		"settled push 10",
	}, rec.Events)
}

func TestRoundPlayerBustSkipsDealer(t *testing.T) {
	t.Parallel()

	rec := &RecordingNotifier{}
	r := NewStackedRound("Ts 9h 5d 8c Kh", 50, rec)

	require.NoError(t, r.PlaceBet(20))
	require.NoError(t, r.Deal())

	total, err := r.Hit()
	require.NoError(t, err)
	assert.Equal(t, 25, total)

	_, err = r.Hit()
	assert.ErrorIs(t, err, ErrOutOfTurn)
	assert.ErrorIs(t, r.Stand(), ErrOutOfTurn)

	s, err := r.Settle()
	require.NoError(t, err)
	assert.Equal(t, PlayerBust, s.Outcome)
	assert.Equal(t, 0, s.Delta)
	assert.Equal(t, HasHiddenCard, r.Dealer().HoleState(), "dealer never reveals when the player busts")

	tokens, _ := r.Player().Tokens()
	assert.Equal(t, 30, tokens)
}

func TestRoundDealerBust(t *testing.T) {
	t.Parallel()

	r := NewStackedRound("Ts 6h 9d Tc 8s", 100, nil)

	require.NoError(t, r.PlaceBet(10))
	require.NoError(t, r.Deal())
	require.NoError(t, r.Stand())
	assert.Equal(t, 24, r.Dealer().VisibleScore())

	s, err := r.Settle()
	require.NoError(t, err)
	assert.Equal(t, DealerBust, s.Outcome)
	assert.Equal(t, 20, s.Delta)
	assert.Equal(t, 10, s.Net())

	tokens, _ := r.Player().Tokens()
	assert.Equal(t, 110, tokens)
}

func TestRoundHitThenWin(t *testing.T) {
	t.Parallel()

	r := NewStackedRound("5s Th 6d 8c Ks", 100, nil)

	require.NoError(t, r.PlaceBet(10))
	require.NoError(t, r.Deal())
	total, err := r.Hit()
	require.NoError(t, err)
	assert.Equal(t, 21, total)

	require.NoError(t, r.Stand())
	s, err := r.Settle()
	require.NoError(t, err)
	assert.Equal(t, PlayerWin, s.Outcome)
	assert.Equal(t, 18, s.DealerScore)
}

func TestRoundOutOfTurn(t *testing.T) {
	t.Parallel()

	r := NewStackedRound("Ts 9h 7d 8c", 100, nil)

	assert.ErrorIs(t, r.Deal(), ErrOutOfTurn)
	_, err := r.Hit()
	assert.ErrorIs(t, err, ErrOutOfTurn)
	_, err = r.Settle()
	assert.ErrorIs(t, err, ErrOutOfTurn)

	assert.ErrorIs(t, r.PlaceBet(0), ErrInvalidBet)
	assert.Equal(t, StageBetting, r.Stage())
	require.NoError(t, r.PlaceBet(5))
	assert.ErrorIs(t, r.PlaceBet(5), ErrOutOfTurn)

	require.NoError(t, r.Deal())
	_, err = r.Settle()
	assert.ErrorIs(t, err, ErrOutOfTurn, "cannot settle before the dealer plays")
}

func TestRoundDealExhausted(t *testing.T) {
	t.Parallel()

	r := NewStackedRound("Ts 9h 7d", 100, nil)
	require.NoError(t, r.PlaceBet(10))

	err := r.Deal()
	assert.ErrorIs(t, err, deck.ErrDeckExhausted)
	assert.Equal(t, 0, r.CardsRemaining())
}
