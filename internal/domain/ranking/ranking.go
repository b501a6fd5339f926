// Package ranking computes dense competition ranks over a scope of entries.
// It is pure: it only operates on the collection it is handed and never
// touches storage, so ranks are derived fresh on every read.
package ranking

import (
	"math"
	"sort"

	"github.com/Bearmun/vossenjacht/internal/domain/model"
)

type Order string

const (
	// DistanceFirst orders by (distance, duration); DurationFirst by
	// (duration, distance). Both ascending - shortest wins a hunt.
	DistanceFirst Order = "distance_first"
	DurationFirst Order = "duration_first"
)

// OrderFor derives the ordering policy from an event's scoring type. The
// mixed "both" type ranks distance first.
func OrderFor(t model.ScoringType) Order {
	if t == model.ScoringDuration {
		return DurationFirst
	}
	return DistanceFirst
}

// Row is one ranked entry. Podium marks ranks 1-3, the only ranks the
// presentation layer distinguishes.
type Row struct {
	Rank         int     `json:"rank"`
	Podium       bool    `json:"podium"`
	Participant  string  `json:"participant"`
	StartReading float64 `json:"start_reading"`
	EndReading   float64 `json:"end_reading"`
	ArrivalTime  string  `json:"arrival_time"`
	Distance     float64 `json:"distance"`
	Duration     int     `json:"duration_minutes"`
	EventName    string  `json:"event_name,omitempty"`
}

type Result struct {
	Rows []Row `json:"rows"`
	// TotalDistance sums every distance in scope. An empty scope totals
	// zero; it is never an error.
	TotalDistance float64 `json:"total_distance"`
}

// Rank stable-sorts the entries ascending by (primary, secondary) score and
// assigns dense competition ranks: entries with an identical score pair share
// a rank, and the next distinct pair advances the rank by exactly one, so
// ranks are contiguous from 1 with no gaps.
func Rank(entries []model.Entry, order Order) Result {
	sorted := make([]model.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, si := scorePair(sorted[i], order)
		pj, sj := scorePair(sorted[j], order)
		if pi != pj {
			return pi < pj
		}
		return si < sj
	})

	result := Result{Rows: make([]Row, 0, len(sorted))}
	rank := 0
	var lastPrimary, lastSecondary float64
	for i, entry := range sorted {
		primary, secondary := scorePair(entry, order)
		if i == 0 || primary != lastPrimary || secondary != lastSecondary {
			rank++
			lastPrimary, lastSecondary = primary, secondary
		}
		row := Row{
			Rank:         rank,
			Podium:       rank <= 3,
			Participant:  entry.Participant,
			StartReading: entry.StartReading,
			EndReading:   entry.EndReading,
			ArrivalTime:  entry.ArrivalTime,
			Distance:     entry.Distance,
			Duration:     entry.Duration,
		}
		if entry.EventName != nil {
			row.EventName = *entry.EventName
		}
		result.Rows = append(result.Rows, row)
		result.TotalDistance += entry.Distance
	}
	// Distances carry at most one decimal, keep the sum that way too.
	result.TotalDistance = math.Round(result.TotalDistance*10) / 10
	return result
}

func scorePair(e model.Entry, order Order) (primary, secondary float64) {
	if order == DurationFirst {
		return float64(e.Duration), e.Distance
	}
	return e.Distance, float64(e.Duration)
}
