// Package storage defines persistence contracts for HUD filter state.
package storage

import (
	"context"

	"github.com/louisbranch/actionhud/internal/services/hud/domain/filter"
)

// FilterPage stores one page of filter records.
type FilterPage struct {
	Records       []filter.Record
	NextPageToken string
}

// FilterStore persists filter configurations and lists them with an
// AIP-160 expression over consumer_id, category_id and mode.
type FilterStore interface {
	filter.Persister
	ListFilters(ctx context.Context, expression string, pageSize int, pageToken string) (FilterPage, error)
}
