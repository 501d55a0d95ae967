package simulator

import (
	"bytes"
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimulator(t *testing.T, rounds, workers int) *Simulator {
	t.Helper()
	return New(Config{
		Rounds:  rounds,
		Workers: workers,
		Bet:     10,
		StandOn: 17,
		Seed:    12345,
		Logger:  game.QuietLogger(),
		Clock:   quartz.NewMock(t),
	})
}

func TestNewDefaults(t *testing.T) {
	s := New(Config{Rounds: 10, Bet: 5})
	assert.Equal(t, 1, s.config.Workers)
	assert.Equal(t, game.DealerStandsOn, s.config.StandOn)
	assert.NotNil(t, s.config.Clock)
	assert.NotNil(t, s.config.Logger)
}

func TestRun(t *testing.T) {
	stats, err := newSimulator(t, 500, 4).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 500, stats.Rounds)
	assert.Equal(t, 5000, stats.TotalWagered)
	require.NoError(t, stats.Validate())

	total := 0
	for _, o := range game.Outcomes {
		total += stats.Outcomes[o]
	}
	assert.Equal(t, 500, total)
	assert.GreaterOrEqual(t, float64(stats.CardsDealt)/float64(stats.Rounds), 4.0,
		"every round deals at least four cards")
	assert.GreaterOrEqual(t, stats.Mean(), -1.0)
	assert.LessOrEqual(t, stats.Mean(), 1.0)
}

func TestRunIndependentOfWorkers(t *testing.T) {
	one, err := newSimulator(t, 200, 1).Run(context.Background())
	require.NoError(t, err)
	many, err := newSimulator(t, 200, 8).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, one.Outcomes, many.Outcomes)
	assert.Equal(t, one.TotalNet, many.TotalNet)
	assert.Equal(t, one.CardsDealt, many.CardsDealt)
}

func TestRunStandOnLowNeverBustsPlayer(t *testing.T) {
	s := newSimulator(t, 200, 2)
	s.config.StandOn = 2

	stats, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Outcomes[game.PlayerBust], "standing on any two cards cannot bust")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newSimulator(t, 100, 2).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, err := newSimulator(t, 0, 1).Run(context.Background())
	assert.Error(t, err)

	s := newSimulator(t, 10, 1)
	s.config.Bet = 0
	_, err = s.Run(context.Background())
	assert.Error(t, err)
}

func TestRunResolvesSeedFromClock(t *testing.T) {
	s := newSimulator(t, 10, 1)
	s.config.Seed = 0

	_, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, s.Seed())
}

func TestPrintSummary(t *testing.T) {
	stats, err := newSimulator(t, 50, 2).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, stats, 17)

	out := buf.String()
	assert.Contains(t, out, "Rounds played: 50")
	assert.Contains(t, out, "player stands on 17")
	for _, o := range game.Outcomes {
		assert.Contains(t, out, o.String())
	}
}
