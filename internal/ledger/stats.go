package ledger

import (
	"math"

	"github.com/gatherly/event-registration/internal/model"
)

// Stats is a read-only, point-in-time view of an event's capacity.  It
// carries no guarantee that a later reservation will succeed.
type Stats struct {
	Available  int     `json:"available"`      // confirmed slots still free
	FillRate   float64 `json:"fill_rate"`      // percent of capacity consumed, 1 decimal
	SoldOut    bool    `json:"is_sold_out"`    // no confirmed slots remain
	AlmostFull bool    `json:"is_almost_full"` // fill rate >= 90 but not sold out
}

// CalculateStats derives capacity metrics from an event snapshot.  It
// requires no locking; the counters are read as-is.  A zero-capacity
// event reports a fill rate of 0 and is considered sold out.
func CalculateStats(ev *model.Event) Stats {
	available := ev.Capacity - ev.RegisteredCount
	if available < 0 {
		available = 0
	}
	rate := 0.0
	if ev.Capacity > 0 {
		rate = float64(ev.RegisteredCount) / float64(ev.Capacity) * 100
		rate = math.Round(rate*10) / 10
	}
	soldOut := available == 0
	return Stats{
		Available:  available,
		FillRate:   rate,
		SoldOut:    soldOut,
		AlmostFull: rate >= 90 && !soldOut,
	}
}
