// Package sequence hands out the numeric identifiers used for projects
// and services. All allocation goes through one counters document inside
// a store transaction, so two concurrent creates can never end up with
// the same id.
package sequence

import (
	"context"
	"fmt"

	"github.com/mauro-rocha/portfolio-backend/internal/store"
)

// CountersPath is the singleton document holding the last allocated id
// per sequence name. Nothing outside this package writes to it.
const CountersPath = "meta/counters"

// Sequence names in use.
const (
	Projects = "projects"
	Services = "services"
)

type Allocator struct {
	store store.Store
}

func New(st store.Store) *Allocator {
	return &Allocator{store: st}
}

// NextID allocates the next identifier for the named sequence. The read,
// increment and merge-write happen inside one transaction; the store
// serializes concurrent callers, so successful results are strictly
// increasing and pairwise distinct.
func (a *Allocator) NextID(ctx context.Context, name string) (int64, error) {
	if a == nil || a.store == nil {
		return 0, fmt.Errorf("sequence %s: store not configured", name)
	}

	var next int64
	err := a.store.RunTransaction(ctx, func(tx store.Tx) error {
		data, _, err := tx.Get(CountersPath)
		if err != nil {
			return err
		}

		next = counterValue(data, name) + 1
		return tx.Set(CountersPath, map[string]any{
			name:        next,
			"updatedAt": store.ServerTimestamp,
		}, true)
	})
	if err != nil {
		return 0, fmt.Errorf("sequence %s: %w", name, err)
	}
	return next, nil
}

// counterValue reads the current counter, treating an absent document or
// a non-numeric field as zero.
func counterValue(data map[string]any, name string) int64 {
	if data == nil {
		return 0
	}
	switch v := data[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}
