package simulator

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Report is the machine-readable summary of one simulation run
type Report struct {
	RunID    string         `json:"run_id"`
	Metadata ReportMetadata `json:"metadata"`
	Config   ReportConfig   `json:"configuration"`
	Results  ReportResults  `json:"results"`
}

// ReportMetadata describes when and how fast the run went
type ReportMetadata struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	RoundsPerSecond float64   `json:"rounds_per_second"`
}

// ReportConfig echoes the simulation settings
type ReportConfig struct {
	Rounds  int   `json:"rounds"`
	Workers int   `json:"workers"`
	Bet     int   `json:"bet"`
	StandOn int   `json:"stand_on"`
	Seed    int64 `json:"seed"`
}

// ReportResults holds the aggregated outcome of the run
type ReportResults struct {
	Rounds         int            `json:"rounds"`
	TotalWagered   int            `json:"total_wagered"`
	TotalNet       int            `json:"total_net"`
	ReturnToPlayer float64        `json:"return_to_player"`
	Mean           float64        `json:"mean_bets_per_round"`
	StdDev         float64        `json:"std_dev"`
	CI95Low        float64        `json:"ci_95_low"`
	CI95High       float64        `json:"ci_95_high"`
	Outcomes       map[string]int `json:"outcomes"`
}

// NewReport builds a report for a completed run
func NewReport(runID string, cfg Config, stats *statistics.Statistics, start, end time.Time) Report {
	low, high := stats.ConfidenceInterval95()
	duration := end.Sub(start)

	outcomes := make(map[string]int, len(stats.Outcomes))
	for o, n := range stats.Outcomes {
		outcomes[o.String()] = n
	}

	r := Report{
		RunID: runID,
		Metadata: ReportMetadata{
			StartTime:       start,
			EndTime:         end,
			DurationSeconds: duration.Seconds(),
		},
		Config: ReportConfig{
			Rounds:  cfg.Rounds,
			Workers: cfg.Workers,
			Bet:     cfg.Bet,
			StandOn: cfg.StandOn,
			Seed:    cfg.Seed,
		},
		Results: ReportResults{
			Rounds:         stats.Rounds,
			TotalWagered:   stats.TotalWagered,
			TotalNet:       stats.TotalNet,
			ReturnToPlayer: stats.ReturnToPlayer(),
			Mean:           stats.Mean(),
			StdDev:         stats.StdDev(),
			CI95Low:        low,
			CI95High:       high,
			Outcomes:       outcomes,
		},
	}
	if duration > 0 {
		r.Metadata.RoundsPerSecond = float64(stats.Rounds) / duration.Seconds()
	}
	return r
}

// WriteReport writes r as indented JSON, replacing path atomically
func WriteReport(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
