// Package store provides a backend-agnostic persistence layer. The same
// [Store] contract is implemented over PostgreSQL, the Supabase REST API
// and MongoDB, so the service layer never depends on which backend a
// deployment selected.
package store

import "context"

// Record is a single persisted row or document, keyed by column/field name.
// Values are restricted to JSON-representable types plus time.Time.
type Record = map[string]any

// Filter is an equality match over record fields. An empty filter matches
// every record in the table.
type Filter = map[string]any

// findOptions collects the optional knobs accepted by [Store.FindAll].
type findOptions struct {
	sortField      string
	sortDescending bool
	limit          int64
}

// FindOption customises a FindAll call.
type FindOption func(*findOptions)

// WithSort orders results by the given field. Pass descending=true for
// newest-first style orderings.
func WithSort(field string, descending bool) FindOption {
	return func(o *findOptions) {
		o.sortField = field
		o.sortDescending = descending
	}
}

// WithLimit caps the number of returned records. Zero or negative values
// leave the result set unbounded.
func WithLimit(n int64) FindOption {
	return func(o *findOptions) {
		o.limit = n
	}
}

func applyFindOptions(opts []FindOption) findOptions {
	var resolved findOptions
	for _, opt := range opts {
		opt(&resolved)
	}

	return resolved
}

// Store is the uniform persistence contract shared by all backends.
//
// UpdateOne and DeleteOne target a single matching record on the PostgreSQL
// and MongoDB backends. The Supabase backend cannot express "first match
// only" through PostgREST and applies the update to every matching record;
// callers that rely on single-record semantics must therefore filter on a
// unique field. Both methods report the number of affected records so that
// callers can implement conditional, compare-and-set style updates.
type Store interface {
	// InsertOne persists a new record. Returns [ErrConstraintViolation]
	// when a unique constraint rejects the write.
	InsertOne(ctx context.Context, table string, record Record) error

	// FindOne returns the first record matching the filter, or
	// [ErrNotFound] when nothing matches.
	FindOne(ctx context.Context, table string, filter Filter) (Record, error)

	// FindAll returns every record matching the filter, subject to the
	// provided options. An empty result is returned as a nil-free empty
	// slice, not an error.
	FindAll(ctx context.Context, table string, filter Filter, opts ...FindOption) ([]Record, error)

	// UpdateOne applies the update to a matching record and reports how
	// many records were affected (0 when nothing matched).
	UpdateOne(ctx context.Context, table string, filter Filter, update Record) (int64, error)

	// DeleteOne removes a matching record and reports how many records
	// were affected.
	DeleteOne(ctx context.Context, table string, filter Filter) (int64, error)

	// Count returns the number of records matching the filter.
	Count(ctx context.Context, table string, filter Filter) (int64, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close(ctx context.Context) error
}
