package simulator

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/blackjack/internal/runid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	sim := newSimulator(t, 100, 2)
	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReport(path, sim.Report(stats)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))

	assert.NoError(t, runid.Validate(got.RunID))
	assert.Equal(t, sim.RunID(), got.RunID)
	assert.Equal(t, 100, got.Config.Rounds)
	assert.Equal(t, int64(12345), got.Config.Seed)
	assert.Equal(t, 100, got.Results.Rounds)
	assert.Equal(t, stats.TotalNet, got.Results.TotalNet)

	total := 0
	for _, n := range got.Results.Outcomes {
		total += n
	}
	assert.Equal(t, 100, total)
}

func TestWriteReportBadPath(t *testing.T) {
	sim := newSimulator(t, 10, 1)
	stats, err := sim.Run(context.Background())
	require.NoError(t, err)

	err = WriteReport(filepath.Join(t.TempDir(), "missing", "report.json"), sim.Report(stats))
	assert.ErrorContains(t, err, "write report")
}
