// Package statistics aggregates blackjack round results
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// RoundResult represents the outcome of a single simulated round
type RoundResult struct {
	Outcome     game.Outcome
	Bet         int
	Net         int   // tokens won or lost over the round
	Seed        int64 // RNG seed for this round (for replay)
	PlayerCards int
	DealerCards int
}

// Statistics tracks results in units of the bet
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // net/bet per round, kept for median and percentiles

	Outcomes     map[game.Outcome]int
	TotalWagered int
	TotalNet     int
	CardsDealt   int
}

// New returns empty statistics
func New() *Statistics {
	return &Statistics{Outcomes: make(map[game.Outcome]int)}
}

// Mean returns the average result per round in bets
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a round result
func (s *Statistics) Add(result RoundResult) {
	if s.Outcomes == nil {
		s.Outcomes = make(map[game.Outcome]int)
	}

	units := 0.0
	if result.Bet > 0 {
		units = float64(result.Net) / float64(result.Bet)
	}

	s.Rounds++
	s.SumNet += units
	s.SumNet2 += units * units
	s.Values = append(s.Values, units)

	s.Outcomes[result.Outcome]++
	s.TotalWagered += result.Bet
	s.TotalNet += result.Net
	s.CardsDealt += result.PlayerCards + result.DealerCards
}

// Merge folds other into s; used to combine per-worker results
func (s *Statistics) Merge(other *Statistics) {
	if s.Outcomes == nil {
		s.Outcomes = make(map[game.Outcome]int)
	}

	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	for o, n := range other.Outcomes {
		s.Outcomes[o] += n
	}
	s.TotalWagered += other.TotalWagered
	s.TotalNet += other.TotalNet
	s.CardsDealt += other.CardsDealt
}

// Rate returns the share of rounds that ended in outcome
func (s *Statistics) Rate(outcome game.Outcome) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Outcomes[outcome]) / float64(s.Rounds)
}

// ReturnToPlayer returns total tokens paid back per token wagered
func (s *Statistics) ReturnToPlayer() float64 {
	if s.TotalWagered == 0 {
		return 0
	}
	return float64(s.TotalWagered+s.TotalNet) / float64(s.TotalWagered)
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values array length (%d) does not match rounds count (%d)",
			len(s.Values), s.Rounds)
	}

	total := 0
	for _, n := range s.Outcomes {
		total += n
	}
	if total != s.Rounds {
		return fmt.Errorf("outcome total (%d) does not match rounds count (%d)", total, s.Rounds)
	}

	// A round can lose at most the bet and win at most the bet again.
	if s.TotalNet < -s.TotalWagered || s.TotalNet > s.TotalWagered {
		return fmt.Errorf("net %d outside wagered range ±%d", s.TotalNet, s.TotalWagered)
	}

	return nil
}
