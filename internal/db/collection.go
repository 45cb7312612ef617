// Package db is the domain data-access layer. Each entity family gets a
// collection type backed by an injected kv.Store: the whole collection is
// loaded per read (seeding from fixtures if absent) and rewritten per
// mutation. Last-writer-wins at whole-collection granularity.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-ops/internal/kv"
)

// Storage keys. One key per entity collection plus the scalar session keys.
const (
	keyVehicles   = "fleettrack_vehicles"
	keyTelemetry  = "fleettrack_telemetry"
	keyAlerts     = "fleettrack_alerts"
	keyWorkOrders = "fleettrack_workorders"
	keyUsers      = "fleettrack_users"
	keyUser       = "fleettrack_user"
	keyToken      = "fleettrack_token"
	keyLanguage   = "om_lang"
	keyProjects   = "siteops_projects"
	keySites      = "siteops_sites"
	keyTeams      = "siteops_teams"
	keyShifts     = "siteops_shifts"
	keyTasks      = "siteops_tasks"
	keyUpdates    = "siteops_updates"
	keyInvoices   = "billing_invoices"
	keyTenders    = "tenders_list"
)

// collection is the shared core under every entity family: load-or-seed on
// read, full rewrite on mutation.
type collection[T any] struct {
	store kv.Store
	key   string
	kind  string
	seed  func() []T
	id    func(T) string
}

// load returns the stored collection, the fixture seed when the key has
// never been written, or an error when storage is unavailable or the stored
// value cannot be decoded. The seed is never persisted by a read.
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, kv.ErrNotFound) {
		return c.seed(), nil
	}
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", kv.ErrCorrupt, c.key, err)
	}
	return items, nil
}

// List is the read path: storage failures degrade to the fixture seed with
// a warning, matching the dashboard contract that reads never fail.
func (c *collection[T]) List(ctx context.Context) ([]T, error) {
	items, err := c.load(ctx)
	if err != nil {
		log.WithError(err).WithField("key", c.key).Warn("collection read failed, serving seed data")
		return c.seed(), nil
	}
	return items, nil
}

func (c *collection[T]) save(ctx context.Context, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.store.Set(ctx, c.key, raw)
}

// reset overwrites the collection with its fixture seed.
func (c *collection[T]) reset(ctx context.Context) error {
	return c.save(ctx, c.seed())
}

func (c *collection[T]) getByID(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := c.List(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if c.id(item) == id {
			return item, nil
		}
	}
	return zero, NotFoundError{Kind: c.kind, ID: id}
}

func (c *collection[T]) filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	items, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// append adds one item and rewrites the collection. Unlike reads, the write
// path is strict: a corrupt or unavailable store propagates rather than
// silently clobbering stored state with the seed.
func (c *collection[T]) append(ctx context.Context, item T) error {
	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	items = append(items, item)
	return c.save(ctx, items)
}

// patch applies fn to the record matching id and rewrites the collection,
// returning the mutated record. A missing id is a NotFoundError, never a
// silent no-op.
func (c *collection[T]) patch(ctx context.Context, id string, fn func(*T)) (T, error) {
	var zero T
	items, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for i := range items {
		if c.id(items[i]) == id {
			fn(&items[i])
			if err := c.save(ctx, items); err != nil {
				return zero, err
			}
			return items[i], nil
		}
	}
	return zero, NotFoundError{Kind: c.kind, ID: id}
}
