package admin

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Row is one record of a list snapshot. Key is the id when the record has
// one and a synthesized key otherwise, so id-less records still render.
type Row[T any] struct {
	Key   string
	Item  T
	ID    int64
	HasID bool
}

// LoadFunc fetches the whole collection for a list screen.
type LoadFunc[T any] func(ctx context.Context) ([]T, error)

// PageInfo describes one page of the filtered rows.
type PageInfo struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

const DefaultPerPage = 20

// ListView holds the last fetched snapshot of a collection and derives the
// filtered, sorted view from it on every read.
type ListView[T any] struct {
	mu     sync.Mutex
	name   string
	schema Schema[T]
	load   LoadFunc[T]
	fb     *Feedback

	all    []Row[T]
	filter Filter
	gen    uint64
	loaded bool
}

func NewListView[T any](name string, schema Schema[T], load LoadFunc[T], fb *Feedback) *ListView[T] {
	return &ListView[T]{name: name, schema: schema, load: load, fb: fb}
}

// Refresh replaces the snapshot. A result arriving after ctx is cancelled,
// or after a newer Refresh has started, is dropped. On failure the previous
// snapshot stays and the user is notified.
func (v *ListView[T]) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.mu.Unlock()

	items, err := v.load(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	v.mu.Lock()
	if gen != v.gen {
		v.mu.Unlock()
		return ErrStale
	}
	if err != nil {
		v.mu.Unlock()
		v.fb.Failure("Veriler yüklenemedi", err)
		return err
	}
	v.all = v.rows(items)
	v.loaded = true
	v.mu.Unlock()

	v.fb.logger.Debug().Str("list", v.name).Int("count", len(items)).Msg("list refreshed")
	return nil
}

func (v *ListView[T]) rows(items []T) []Row[T] {
	rows := make([]Row[T], len(items))
	for i, it := range items {
		r := Row[T]{Item: it}
		if v.schema.ID != nil {
			r.ID, r.HasID = v.schema.ID(it)
		}
		if r.HasID {
			r.Key = strconv.FormatInt(r.ID, 10)
		} else {
			r.Key = "tmp-" + uuid.NewString()
		}
		rows[i] = r
	}
	return rows
}

// Loaded reports whether at least one Refresh succeeded.
func (v *ListView[T]) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

func (v *ListView[T]) SetFilter(f Filter) {
	v.mu.Lock()
	v.filter = f
	v.mu.Unlock()
}

func (v *ListView[T]) Filter() Filter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// All returns the unfiltered snapshot.
func (v *ListView[T]) All() []Row[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.all)
}

// Rows returns the snapshot filtered and sorted by the current filter.
func (v *ListView[T]) Rows() []Row[T] {
	v.mu.Lock()
	all, f := v.all, v.filter
	v.mu.Unlock()

	out := make([]Row[T], 0, len(all))
	for _, r := range all {
		if v.schema.Match(r.Item, f) {
			out = append(out, r)
		}
	}
	if cmp := v.schema.comparator(f); cmp != nil {
		slices.SortFunc(out, func(a, b Row[T]) int { return cmp(a.Item, b.Item) })
	}
	return out
}

// Page returns one page of Rows. page is 1-indexed and clamped into range.
func (v *ListView[T]) Page(page, perPage int) ([]Row[T], PageInfo) {
	rows := v.Rows()
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	info := PageInfo{PerPage: perPage, Total: len(rows)}
	info.TotalPages = (len(rows) + perPage - 1) / perPage
	info.Page = min(max(page, 1), max(info.TotalPages, 1))

	start := (info.Page - 1) * perPage
	end := min(start+perPage, len(rows))
	if start >= end {
		return nil, info
	}
	return rows[start:end], info
}

// Find returns the row with the given key.
func (v *ListView[T]) Find(key string) (Row[T], bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, r := range v.all {
		if r.Key == key {
			return r, true
		}
	}
	return Row[T]{}, false
}

// RequireID returns the id an action needs. Rows without one produce an
// error notification instead.
func (v *ListView[T]) RequireID(r Row[T]) (int64, bool) {
	if !r.HasID {
		v.fb.Invalid("Bu kaydın kimliği yok; işlem yapılamaz.")
		return 0, false
	}
	return r.ID, true
}
