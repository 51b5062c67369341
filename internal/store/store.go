// Package store persists report history and paid-tier entitlements.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/bidsight/bidsight/internal/model"
)

// ErrDetailExists guards the append-only detail invariant: a report gets at
// most one paid-tier enrichment, set exactly once.
var ErrDetailExists = eris.New("store: detail already attached to report")

// ErrNotFound is returned when a report id has no row.
var ErrNotFound = eris.New("store: report not found")

// Entry is a persisted report plus its optional detail and entitlement flag.
type Entry struct {
	Report   model.Report  `json:"report"`
	Detail   *model.Detail `json:"detail,omitempty"`
	Unlocked bool          `json:"unlocked"`
}

// Filter narrows ListReports.
type Filter struct {
	Kind   model.ReportKind `json:"kind,omitempty"`
	Limit  int              `json:"limit,omitempty"`
	Offset int              `json:"offset,omitempty"`
}

// Store is the persistence interface for report history.
type Store interface {
	CreateReport(ctx context.Context, rep model.Report) error
	GetReport(ctx context.Context, id string) (*Entry, error)
	ListReports(ctx context.Context, filter Filter) ([]Entry, error)

	// AttachDetail sets the paid-tier detail. It fails with ErrDetailExists
	// if one is already present; reports are immutable apart from this
	// single append.
	AttachDetail(ctx context.Context, id string, detail model.Detail) error

	// SetUnlocked records the payment collaborator's entitlement signal.
	SetUnlocked(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Close() error
}
