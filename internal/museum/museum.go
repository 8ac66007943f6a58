package museum

import (
	"context"
	"errors"
	"time"
)

// Museum is the canonical record keyed by name. Latitude and longitude
// stay nil when the source text could not be parsed.
type Museum struct {
	ID            int64
	Name          string
	Address       string
	HomepageURL   string
	Latitude      *float64
	Longitude     *float64
	ReferenceDate string
	ExhibitionIDs []string
	LastUpdated   time.Time
}

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("museum not found")

type Repository interface {
	GetByName(ctx context.Context, name string) (Museum, error)
	Insert(ctx context.Context, m *Museum) error
	Update(ctx context.Context, m *Museum) error
	BulkUpsert(ctx context.Context, batch []Museum) (int64, error)
	List(ctx context.Context, limit, offset int) ([]Museum, int, error)
}

// MergeExhibitionIDs returns the set union of two exhibition ID lists,
// preserving the order of first appearance. The result never shrinks
// relative to existing.
func MergeExhibitionIDs(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, id := range existing {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		merged = append(merged, id)
	}
	for _, id := range incoming {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		merged = append(merged, id)
	}
	return merged
}
