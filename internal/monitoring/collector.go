// Package monitoring aggregates report-store activity into point-in-time
// snapshots for the stats command and endpoint.
package monitoring

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/bidsight/bidsight/internal/model"
	"github.com/bidsight/bidsight/internal/store"
)

// Snapshot holds a point-in-time view of report activity.
type Snapshot struct {
	TotalReports int `json:"total_reports"`
	BidReports   int `json:"bid_reports"`
	PhotoReports int `json:"photo_reports"`

	Unlocked   int `json:"unlocked"`
	WithDetail int `json:"with_detail"`

	// Reports created within the lookback window.
	RecentReports int `json:"recent_reports"`

	// Unlocked / total, 0 when there are no reports. This is the
	// free-to-paid conversion proxy.
	UnlockRate float64 `json:"unlock_rate"`

	LookbackHours int       `json:"lookback_hours"`
	CollectedAt   time.Time `json:"collected_at"`
}

// Collector gathers snapshots from the report store.
type Collector struct {
	store store.Store
}

// NewCollector creates a metrics collector over the given store.
func NewCollector(st store.Store) *Collector {
	return &Collector{store: st}
}

// collectPageSize is the page size used to walk the full store. ListReports
// applies its own default limit when asked for everything, so the collector
// must page explicitly or it would only ever see the newest page.
const collectPageSize = 200

// Collect builds a snapshot over the given lookback window. lookbackHours <= 0
// defaults to 24.
func (c *Collector) Collect(ctx context.Context, lookbackHours int) (*Snapshot, error) {
	if lookbackHours <= 0 {
		lookbackHours = 24
	}

	now := time.Now().UTC()
	cutoff := now.Add(-time.Duration(lookbackHours) * time.Hour)

	snap := &Snapshot{
		LookbackHours: lookbackHours,
		CollectedAt:   now,
	}
	for offset := 0; ; offset += collectPageSize {
		entries, err := c.store.ListReports(ctx, store.Filter{
			Limit:  collectPageSize,
			Offset: offset,
		})
		if err != nil {
			return nil, eris.Wrap(err, "monitoring: list reports")
		}

		for _, e := range entries {
			snap.TotalReports++
			switch e.Report.Kind {
			case model.KindBid:
				snap.BidReports++
			case model.KindPhoto:
				snap.PhotoReports++
			}
			if e.Unlocked {
				snap.Unlocked++
			}
			if e.Detail != nil {
				snap.WithDetail++
			}
			if e.Report.CreatedAt.After(cutoff) {
				snap.RecentReports++
			}
		}

		if len(entries) < collectPageSize {
			break
		}
	}
	if snap.TotalReports > 0 {
		snap.UnlockRate = float64(snap.Unlocked) / float64(snap.TotalReports)
	}
	return snap, nil
}
