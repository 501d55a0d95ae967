package statistics

import (
	"math"
	"testing"

	"github.com/lox/blackjack/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Zero(t, stats.Rate(game.Push))
	assert.Zero(t, stats.ReturnToPlayer())
	assert.Error(t, stats.Validate(), "empty statistics are not valid")
}

func TestStatistics_SingleValue(t *testing.T) {
	stats := New()
	stats.Add(RoundResult{
		Outcome:     game.PlayerWin,
		Bet:         10,
		Net:         10,
		Seed:        12345,
		PlayerCards: 3,
		DealerCards: 2,
	})

	assert.Equal(t, 1, stats.Rounds)
	assert.Equal(t, 1.0, stats.Mean())
	assert.Zero(t, stats.Variance(), "single value has no variance")
	assert.Equal(t, 1.0, stats.Median())
	assert.Equal(t, 5, stats.CardsDealt)
	assert.Equal(t, 1.0, stats.Rate(game.PlayerWin))
	assert.Equal(t, 2.0, stats.ReturnToPlayer())
	require.NoError(t, stats.Validate())
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := New()
	results := []RoundResult{
		{Outcome: game.PlayerWin, Bet: 10, Net: 10},
		{Outcome: game.DealerWin, Bet: 10, Net: -10},
		{Outcome: game.Push, Bet: 10, Net: 0},
		{Outcome: game.PlayerBust, Bet: 10, Net: -10},
		{Outcome: game.DealerBust, Bet: 20, Net: 20},
	}
	for _, r := range results {
		stats.Add(r)
	}

	// units: 1, -1, 0, -1, 1
	assert.Equal(t, 5, stats.Rounds)
	assert.InDelta(t, 0.0, stats.Mean(), 1e-9)
	assert.InDelta(t, 1.0, stats.Variance(), 1e-9)
	assert.InDelta(t, 1.0, stats.StdDev(), 1e-9)
	assert.InDelta(t, 1/math.Sqrt(5), stats.StdError(), 1e-9)
	assert.Equal(t, 0.0, stats.Median())
	assert.Equal(t, -1.0, stats.Percentile(0))
	assert.Equal(t, 1.0, stats.Percentile(1))

	low, high := stats.ConfidenceInterval95()
	assert.Less(t, low, stats.Mean())
	assert.Greater(t, high, stats.Mean())

	assert.Equal(t, 60, stats.TotalWagered)
	assert.Equal(t, 10, stats.TotalNet)
	assert.InDelta(t, 70.0/60.0, stats.ReturnToPlayer(), 1e-9)
	assert.InDelta(t, 0.2, stats.Rate(game.Push), 1e-9)
	require.NoError(t, stats.Validate())
}

func TestStatistics_Merge(t *testing.T) {
	a := New()
	a.Add(RoundResult{Outcome: game.PlayerWin, Bet: 10, Net: 10, PlayerCards: 2, DealerCards: 3})
	a.Add(RoundResult{Outcome: game.Push, Bet: 10, Net: 0, PlayerCards: 2, DealerCards: 2})

	b := New()
	b.Add(RoundResult{Outcome: game.PlayerBust, Bet: 5, Net: -5, PlayerCards: 4, DealerCards: 2})

	merged := &Statistics{}
	merged.Merge(a)
	merged.Merge(b)

	assert.Equal(t, 3, merged.Rounds)
	assert.Len(t, merged.Values, 3)
	assert.Equal(t, 25, merged.TotalWagered)
	assert.Equal(t, 5, merged.TotalNet)
	assert.Equal(t, 15, merged.CardsDealt)
	assert.Equal(t, map[game.Outcome]int{
		game.PlayerWin:  1,
		game.Push:       1,
		game.PlayerBust: 1,
	}, merged.Outcomes)
	assert.InDelta(t, a.SumNet+b.SumNet, merged.SumNet, 1e-9)
	require.NoError(t, merged.Validate())
}

func TestStatistics_PercentileInterpolates(t *testing.T) {
	stats := New()
	for _, net := range []int{-10, 0, 10, 10} {
		outcome := game.Push
		switch {
		case net > 0:
			outcome = game.PlayerWin
		case net < 0:
			outcome = game.DealerWin
		}
		stats.Add(RoundResult{Outcome: outcome, Bet: 10, Net: net})
	}

	// sorted units: -1, 0, 1, 1
	assert.InDelta(t, 0.5, stats.Median(), 1e-9)
	assert.InDelta(t, -0.25, stats.Percentile(0.25), 1e-9)
}

func TestStatistics_Validate(t *testing.T) {
	t.Run("values mismatch", func(t *testing.T) {
		stats := New()
		stats.Add(RoundResult{Outcome: game.Push, Bet: 10})
		stats.Values = nil
		assert.ErrorContains(t, stats.Validate(), "values array length")
	})

	t.Run("outcome mismatch", func(t *testing.T) {
		stats := New()
		stats.Add(RoundResult{Outcome: game.Push, Bet: 10})
		stats.Outcomes[game.DealerWin]++
		assert.ErrorContains(t, stats.Validate(), "outcome total")
	})

	t.Run("net outside wagered", func(t *testing.T) {
		stats := New()
		stats.Add(RoundResult{Outcome: game.PlayerWin, Bet: 10, Net: 30})
		assert.ErrorContains(t, stats.Validate(), "outside wagered range")
	})
}
