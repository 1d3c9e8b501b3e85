package bench

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/textbench/internal/engine"
	"github.com/dshills/textbench/internal/trace"
)

// Direction distinguishes the two measurement kinds.
type Direction string

const (
	DirectionUpstream   Direction = "upstream"
	DirectionDownstream Direction = "downstream"
)

// Stats summarizes the timed trials of one measurement. Percentiles are
// nearest-rank over the sorted durations.
type Stats struct {
	Min  time.Duration `json:"minNs"`
	Max  time.Duration `json:"maxNs"`
	Mean time.Duration `json:"meanNs"`
	P50  time.Duration `json:"p50Ns"`
	P95  time.Duration `json:"p95Ns"`
}

// Result is the persisted record of one engine x trace measurement.
type Result struct {
	ID            string          `json:"id"`
	Timestamp     time.Time       `json:"timestamp"`
	Engine        string          `json:"engine"`
	Trace         string          `json:"trace"`
	Direction     Direction       `json:"direction"`
	Unit          string          `json:"unit"`
	Patches       int             `json:"patches"`
	Trials        []time.Duration `json:"trialsNs"`
	Stats         Stats           `json:"stats"`
	PatchesPerSec float64         `json:"patchesPerSec"`
}

func newResult(e engine.Engine, tr *trace.Trace, dir Direction, patches int, trials []time.Duration) *Result {
	stats := computeStats(trials)

	res := &Result{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Engine:    e.Name(),
		Trace:     tr.Name,
		Direction: dir,
		Unit:      engine.UnitOf(e),
		Patches:   patches,
		Trials:    trials,
		Stats:     stats,
	}
	if stats.Mean > 0 {
		res.PatchesPerSec = float64(patches) / stats.Mean.Seconds()
	}
	return res
}

func computeStats(trials []time.Duration) Stats {
	if len(trials) == 0 {
		return Stats{}
	}

	sorted := append([]time.Duration(nil), trials...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	return Stats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: total / time.Duration(len(sorted)),
		P50:  percentile(sorted, 50),
		P95:  percentile(sorted, 95),
	}
}

// percentile returns the nearest-rank percentile: the smallest element with
// at least p percent of the sample at or below it.
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}
