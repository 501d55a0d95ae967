// Package simulator plays many automated blackjack rounds with a fixed
// player strategy and aggregates the results.
package simulator

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/runid"
	"github.com/lox/blackjack/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds  int
	Workers int
	Bet     int
	StandOn int // player hits while below this total
	Seed    int64
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Simulator runs blackjack round simulations
type Simulator struct {
	config Config
	runID  string
	start  time.Time
	end    time.Time
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.StandOn == 0 {
		config.StandOn = game.DealerStandsOn
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{
		config: config,
		runID:  runid.NewGenerator(config.Clock, nil).New(),
	}
}

// RunID identifies this run in logs and reports
func (s *Simulator) RunID() string {
	return s.runID
}

// Seed returns the base seed, resolved from the clock if none was set
func (s *Simulator) Seed() int64 {
	return s.config.Seed
}

// Run executes the simulation and returns results. Round i always uses the
// same derived seed, so totals do not depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}
	if s.config.Bet <= 0 {
		return nil, fmt.Errorf("bet must be positive, got %d", s.config.Bet)
	}

	s.config.Seed = randutil.Resolve(s.config.Seed, s.config.Clock)
	s.start = s.config.Clock.Now()
	s.config.Logger.Info("Starting simulation",
		"run", s.runID,
		"rounds", s.config.Rounds,
		"workers", s.config.Workers,
		"seed", s.config.Seed)

	var (
		mu    sync.Mutex
		stats = statistics.New()
	)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < s.config.Workers; w++ {
		g.Go(func() error {
			local := statistics.New()
			for i := w; i < s.config.Rounds; i += s.config.Workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				result, err := s.playRound(randutil.Derive(s.config.Seed, i))
				if err != nil {
					return fmt.Errorf("round %d: %w", i+1, err)
				}
				local.Add(result)
			}

			mu.Lock()
			stats.Merge(local)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Validate statistics before returning
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.end = s.config.Clock.Now()
	s.config.Logger.Info("Simulation complete",
		"run", s.runID,
		"rounds", stats.Rounds,
		"mean", fmt.Sprintf("%.4f", stats.Mean()),
		"elapsed", s.end.Sub(s.start))
	return stats, nil
}

// Report summarises a completed run for WriteReport
func (s *Simulator) Report(stats *statistics.Statistics) Report {
	return NewReport(s.runID, s.config, stats, s.start, s.end)
}

// playRound plays a single round against a fresh shuffled deck
func (s *Simulator) playRound(seed int64) (statistics.RoundResult, error) {
	d := deck.NewShuffled(randutil.New(seed))
	player := game.NewPlayer("Player", s.config.Bet)
	dealer := game.NewDealer("Dealer")
	round := game.NewRound(d, player, dealer, game.NopNotifier{}, s.config.Logger)

	if err := round.PlaceBet(s.config.Bet); err != nil {
		return statistics.RoundResult{}, err
	}
	if err := round.Deal(); err != nil {
		return statistics.RoundResult{}, err
	}

	for player.VisibleScore() < s.config.StandOn {
		if _, err := round.Hit(); err != nil {
			return statistics.RoundResult{}, err
		}
	}
	if !game.IsBust(player.VisibleScore()) {
		if err := round.Stand(); err != nil {
			return statistics.RoundResult{}, err
		}
	}

	settlement, err := round.Settle()
	if err != nil {
		return statistics.RoundResult{}, err
	}

	return statistics.RoundResult{
		Outcome:     settlement.Outcome,
		Bet:         settlement.Bet,
		Net:         settlement.Net(),
		Seed:        seed,
		PlayerCards: len(player.Hand()),
		DealerCards: len(dealer.Hand()),
	}, nil
}

// PrintSummary writes a summary of simulation results to w
func PrintSummary(w io.Writer, stats *statistics.Statistics, standOn int) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS (player stands on %d) ===\n", standOn)
	fmt.Fprintf(w, "Rounds played: %d\n", stats.Rounds)
	fmt.Fprintf(w, "Tokens wagered: %d\n", stats.TotalWagered)
	fmt.Fprintf(w, "Net tokens: %+d\n", stats.TotalNet)
	fmt.Fprintf(w, "Return to player: %.2f%%\n", stats.ReturnToPlayer()*100)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f bets/round\n", stats.Mean())
	fmt.Fprintf(w, "Std Dev: %.4f bets\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f bets\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bets/round\n", low, high)

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	for _, o := range game.Outcomes {
		fmt.Fprintf(w, "%-12s %8d (%.1f%%)\n", o, stats.Outcomes[o], stats.Rate(o)*100)
	}
	if stats.Rounds > 0 {
		fmt.Fprintf(w, "Average cards per round: %.2f\n", float64(stats.CardsDealt)/float64(stats.Rounds))
	}
}
