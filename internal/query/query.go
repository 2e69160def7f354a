// Package query implements the local query-builder client. It emulates the
// surface of a remote relational backend client against the local store:
// chained predicates, a single ordering rule, limiting, projection, a
// single-row mode and the insert/update/delete verbs, all evaluated
// synchronously at terminal calls.
package query

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/lowtide/localbase/internal/compare"
	"github.com/lowtide/localbase/internal/errs"
	"github.com/lowtide/localbase/internal/model"
	"github.com/lowtide/localbase/internal/storage"
)

// Client issues queries against named collections in a store. One Client is
// shared per process; each From call hands out an independent Builder.
type Client struct {
	cols   *storage.Collections
	logger *zap.Logger

	now   func() time.Time
	newID func() (string, error)
}

// NewClient constructs a query client over the given store wrapper.
func NewClient(cols *storage.Collections, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cols:   cols,
		logger: logger,
		now:    time.Now,
		newID: func() (string, error) {
			id, err := uuid.NewV4()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
	}
}

// From returns a fresh Builder bound to the named collection. Any name is
// accepted; unknown names read as empty collections.
func (c *Client) From(collection string) Builder {
	return Builder{client: c, collection: collection}
}

type filter struct {
	field string
	value any
}

// Builder is an immutable query descriptor. Every chain call returns a
// modified copy, so a Builder held across branches never aliases another
// chain's state. Nothing touches the store until a terminal call
// (Execute, ExecuteAsync, Single, Insert, Update, Delete).
type Builder struct {
	client     *Client
	collection string

	filters    []filter
	projection []string

	orderColumn string
	orderAsc    bool
	ordered     bool

	limit   int
	limited bool
}

// Result pairs the records of a terminal call with its error, mirroring the
// {data, error} shape of a networked backend client.
type Result struct {
	Data []model.Record
	Err  error
}

// Select records a column projection applied after filter/order/limit.
// Calling it with no columns (or "*") keeps whole records.
func (b Builder) Select(columns ...string) Builder {
	if len(columns) == 1 && columns[0] == "*" {
		b.projection = nil
		return b
	}
	b.projection = append([]string(nil), columns...)
	return b
}

// Eq adds an equality predicate. Multiple Eq calls AND together.
func (b Builder) Eq(field string, value any) Builder {
	fs := make([]filter, len(b.filters), len(b.filters)+1)
	copy(fs, b.filters)
	b.filters = append(fs, filter{field: field, value: value})
	return b
}

// Order sets the ordering rule. A later call overwrites an earlier one.
func (b Builder) Order(column string, ascending bool) Builder {
	b.orderColumn = column
	b.orderAsc = ascending
	b.ordered = true
	return b
}

// Limit caps the result size after filtering and ordering. Negative values
// are treated as zero.
func (b Builder) Limit(n int) Builder {
	if n < 0 {
		n = 0
	}
	b.limit = n
	b.limited = true
	return b
}

// Execute evaluates the descriptor: filter, then stable order, then limit,
// then projection. That order is fixed. The error is reserved for future
// failure modes; reads currently always succeed (absence is emptiness).
func (b Builder) Execute() ([]model.Record, error) {
	recs := b.matches()
	if b.ordered {
		col, asc := b.orderColumn, b.orderAsc
		sort.SliceStable(recs, func(i, j int) bool {
			return compare.Compare(recs[i][col], recs[j][col], asc) < 0
		})
	}
	if b.limited && b.limit < len(recs) {
		recs = recs[:b.limit]
	}
	if b.projection != nil {
		for i, r := range recs {
			recs[i] = project(r, b.projection)
		}
	}
	return recs, nil
}

// ExecuteAsync runs Execute on the calling goroutine and returns a channel
// already carrying the result, for callers written against an asynchronous
// client shape. The work is not deferred.
func (b Builder) ExecuteAsync(ctx context.Context) <-chan Result {
	ch := make(chan Result, 1)
	if err := ctx.Err(); err != nil {
		ch <- Result{Err: err}
	} else {
		data, err := b.Execute()
		ch <- Result{Data: data, Err: err}
	}
	close(ch)
	return ch
}

// Single evaluates the accumulated filters only (ordering and limit are
// ignored in this mode) and returns the first match, or errs.ErrNotFound.
func (b Builder) Single() (model.Record, error) {
	recs := b.matches()
	if len(recs) == 0 {
		return nil, errs.ErrNotFound
	}
	return recs[0], nil
}

// Insert assigns "id", "created_at" and "updated_at" to records missing
// them, appends them to the collection and persists it. The inserted
// records (with assigned fields) are returned.
func (b Builder) Insert(records []model.Record) ([]model.Record, error) {
	now := b.client.now().UTC().Format(time.RFC3339)
	inserted := make([]model.Record, 0, len(records))
	for _, r := range records {
		rec := r.Clone()
		if rec == nil {
			rec = model.Record{}
		}
		if rec.ID() == "" {
			id, err := b.client.newID()
			if err != nil {
				return nil, fmt.Errorf("assign id: %w", err)
			}
			rec[model.FieldID] = id
		}
		if _, ok := rec[model.FieldCreatedAt]; !ok {
			rec[model.FieldCreatedAt] = now
		}
		if _, ok := rec[model.FieldUpdatedAt]; !ok {
			rec[model.FieldUpdatedAt] = now
		}
		inserted = append(inserted, rec)
	}

	all := b.client.cols.Read(b.collection)
	all = append(all, inserted...)
	if err := b.client.cols.Write(b.collection, all); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", b.collection, err)
	}
	return inserted, nil
}

// Update merges patch plus a refreshed "updated_at" into every record
// matching the accumulated filters, persists the collection and returns the
// updated subset.
func (b Builder) Update(patch model.Record) ([]model.Record, error) {
	now := b.client.now().UTC().Format(time.RFC3339)
	all := b.client.cols.Read(b.collection)
	var updated []model.Record
	for i, rec := range all {
		if !b.matchesRecord(rec) {
			continue
		}
		merged := rec.Clone()
		for k, v := range patch {
			merged[k] = v
		}
		merged[model.FieldUpdatedAt] = now
		all[i] = merged
		updated = append(updated, merged)
	}
	if len(updated) == 0 {
		return []model.Record{}, nil
	}
	if err := b.client.cols.Write(b.collection, all); err != nil {
		return nil, fmt.Errorf("update %s: %w", b.collection, err)
	}
	return updated, nil
}

// Delete removes every record matching the accumulated filters, persists
// the collection and returns the removed subset.
func (b Builder) Delete() ([]model.Record, error) {
	all := b.client.cols.Read(b.collection)
	kept := all[:0:0]
	var removed []model.Record
	for _, rec := range all {
		if b.matchesRecord(rec) {
			removed = append(removed, rec)
		} else {
			kept = append(kept, rec)
		}
	}
	if len(removed) == 0 {
		return []model.Record{}, nil
	}
	if err := b.client.cols.Write(b.collection, kept); err != nil {
		return nil, fmt.Errorf("delete from %s: %w", b.collection, err)
	}
	return removed, nil
}

// matches reads the collection and returns the records passing all filters,
// preserving stored order.
func (b Builder) matches() []model.Record {
	all := b.client.cols.Read(b.collection)
	out := make([]model.Record, 0, len(all))
	for _, rec := range all {
		if b.matchesRecord(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// matchesRecord applies the conjunction of equality filters. A record
// missing a filtered field never matches, so filtering on an unknown field
// yields an empty result rather than an error.
func (b Builder) matchesRecord(rec model.Record) bool {
	for _, f := range b.filters {
		got, ok := rec[f.field]
		if !ok || !eqValue(got, f.value) {
			return false
		}
	}
	return true
}

// eqValue compares a stored value with a filter value. Stored numbers are
// float64 after the JSON round trip while callers pass ints, so numeric
// values are widened before comparison.
func eqValue(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	af, aok := numeric(a)
	bf, bok := numeric(b)
	return aok && bok && af == bf
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// project reduces a record to the requested columns. Columns absent from
// the record are omitted rather than materialized as nulls.
func project(rec model.Record, columns []string) model.Record {
	out := make(model.Record, len(columns))
	for _, col := range columns {
		if v, ok := rec[col]; ok {
			out[col] = v
		}
	}
	return out
}
