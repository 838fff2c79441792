// Package listing filters and paginates in-memory collections fetched from
// the content backend.
package listing

import "strings"

const DefaultPageSize = 10

type (
	Predicate[T any] func(T) bool

	Page[T any] struct {
		Items     []T `json:"items"`
		Page      int `json:"page"`
		PageSize  int `json:"page_size"`
		Total     int `json:"total"`
		PageCount int `json:"page_count"`
	}

	Params struct {
		Page     int
		PageSize int
	}
)

// Contains matches items where any field contains term, ignoring case.
// An empty term matches everything.
func Contains[T any](term string, fields ...func(T) string) Predicate[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	return func(item T) bool {
		if term == "" {
			return true
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(item)), term) {
				return true
			}
		}
		return false
	}
}

// Equals matches items whose field equals value, ignoring case. An empty
// value (or "all") matches everything.
func Equals[T any](value string, field func(T) string) Predicate[T] {
	value = strings.TrimSpace(value)
	return func(item T) bool {
		if value == "" || strings.EqualFold(value, "all") {
			return true
		}
		return strings.EqualFold(field(item), value)
	}
}

// Filter keeps the items satisfying every predicate, preserving order.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range preds {
			if p != nil && !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate returns one page of items. Pages below 1 clamp to the first page
// and pages past the end clamp to the last.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	count := PageCount(total, pageSize)

	if page < 1 {
		page = 1
	}
	if count > 0 && page > count {
		page = count
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	if start > total {
		start = total
	}

	return Page[T]{
		Items:     append(make([]T, 0, end-start), items[start:end]...),
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		PageCount: count,
	}
}

func Apply[T any](items []T, p Params, preds ...Predicate[T]) Page[T] {
	return Paginate(Filter(items, preds...), p.Page, p.PageSize)
}
