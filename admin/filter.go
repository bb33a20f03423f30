package admin

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// All is the categorical sentinel that switches a filter off. The empty
// string does the same.
const All = "all"

// Filter is the local filter state of a list screen. Zero values mean "no
// constraint" for every field.
type Filter struct {
	Search      string
	Status      string
	Type        string
	From        time.Time // inclusive
	To          time.Time // inclusive; a date without a clock covers the whole day
	MinQuantity int
	MaxQuantity int
	SortBy      string
	Descending  bool
}

// Schema tells the engine how to read a T. Nil accessors disable the
// matching filter.
type Schema[T any] struct {
	Text     func(T) []string
	Status   func(T) string
	Type     func(T) string
	Date     func(T) time.Time
	Quantity func(T) int
	ID       func(T) (int64, bool)
	Sorts    map[string]func(a, b T) int

	// ParseStatus normalises a status filter value. Nil upper-cases it.
	ParseStatus func(string) (string, error)
}

// SortKeys lists the fields a schema can sort on.
func (s Schema[T]) SortKeys() []string {
	keys := make([]string, 0, len(s.Sorts))
	for k := range s.Sorts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Validate normalises the status filter and rejects a status or sort field
// the schema does not know.
func (s Schema[T]) Validate(f Filter) (Filter, error) {
	if active(f.Status) {
		if s.ParseStatus == nil {
			f.Status = strings.ToUpper(strings.TrimSpace(f.Status))
		} else {
			st, err := s.ParseStatus(f.Status)
			if err != nil {
				return f, &ValidationError{Field: "status", Message: fmt.Sprintf("Geçersiz durum: %q", f.Status)}
			}
			f.Status = st
		}
	}
	if f.SortBy != "" {
		if _, ok := s.Sorts[f.SortBy]; !ok {
			return f, &ValidationError{
				Field:   "sort",
				Message: fmt.Sprintf("Geçersiz sıralama alanı: %q (%s)", f.SortBy, strings.Join(s.SortKeys(), ", ")),
			}
		}
	}
	return f, nil
}

// statusParser adapts a typed status parser to Schema.ParseStatus.
func statusParser[S ~string](parse func(string) (S, error)) func(string) (string, error) {
	return func(v string) (string, error) {
		st, err := parse(v)
		return string(st), err
	}
}

// Match reports whether item satisfies every active predicate.
func (s Schema[T]) Match(item T, f Filter) bool {
	if q := fold(f.Search); q != "" && s.Text != nil {
		found := false
		for _, field := range s.Text(item) {
			if strings.Contains(fold(field), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if active(f.Status) && s.Status != nil && !strings.EqualFold(s.Status(item), f.Status) {
		return false
	}
	if active(f.Type) && s.Type != nil && !strings.EqualFold(s.Type(item), f.Type) {
		return false
	}
	if (!f.From.IsZero() || !f.To.IsZero()) && s.Date != nil {
		d := s.Date(item)
		if d.IsZero() {
			return false
		}
		if !f.From.IsZero() && d.Before(f.From) {
			return false
		}
		if !f.To.IsZero() && d.After(endOfDay(f.To)) {
			return false
		}
	}
	if s.Quantity != nil {
		q := s.Quantity(item)
		if f.MinQuantity > 0 && q < f.MinQuantity {
			return false
		}
		if f.MaxQuantity > 0 && q > f.MaxQuantity {
			return false
		}
	}
	return true
}

// Apply returns the items matching f, sorted when f names a known sort
// field. The input slice is not modified. Order among equal keys is not
// guaranteed.
func Apply[T any](s Schema[T], items []T, f Filter) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if s.Match(it, f) {
			out = append(out, it)
		}
	}
	if cmp := s.comparator(f); cmp != nil {
		slices.SortFunc(out, cmp)
	}
	return out
}

func (s Schema[T]) comparator(f Filter) func(a, b T) int {
	cmp, ok := s.Sorts[f.SortBy]
	if !ok {
		return nil
	}
	if f.Descending {
		return func(a, b T) int { return cmp(b, a) }
	}
	return cmp
}

func active(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, All)
}

func endOfDay(t time.Time) time.Time {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t
}

// asciiFold lets "calikusu" find "Çalıkuşu".
var asciiFold = strings.NewReplacer("ı", "i", "ş", "s", "ğ", "g", "ü", "u", "ö", "o", "ç", "c", "â", "a", "î", "i", "û", "u")

// fold lower-cases with Turkish rules (İ→i, I→ı) and then drops the Turkish
// diacritics so searches work from any keyboard.
func fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return asciiFold.Replace(cases.Lower(language.Turkish).String(s))
}

// Compare helpers for Schema.Sorts.

func CompareStrings(a, b string) int { return strings.Compare(fold(a), fold(b)) }

func CompareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func CompareTimes(a, b time.Time) int { return a.Compare(b) }
