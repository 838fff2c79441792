package strapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	OpEq        = "$eq"
	OpNe        = "$ne"
	OpContainsi = "$containsi"
	OpIn        = "$in"

	// MaxPageSize is the largest page the content backend serves by default.
	MaxPageSize = 100
)

type Filter struct {
	Path  []string
	Op    string
	Value string
}

// Eq filters records whose field at path equals value.
func Eq(value string, path ...string) Filter {
	return Filter{Path: path, Op: OpEq, Value: value}
}

func Containsi(value string, path ...string) Filter {
	return Filter{Path: path, Op: OpContainsi, Value: value}
}

// Query is the typed form of the content backend's list query string.
type Query struct {
	Populate []string
	Filters  []Filter
	Sort     []string
	Page     int
	PageSize int
}

// PopulateAll expands every first-level relation.
func PopulateAll() Query {
	return Query{Populate: []string{"*"}}
}

func (q Query) Where(f ...Filter) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), f...)
	return q
}

func (q Query) SortBy(s ...string) Query {
	q.Sort = append(append([]string(nil), q.Sort...), s...)
	return q
}

func (q Query) Values() url.Values {
	v := url.Values{}

	switch {
	case len(q.Populate) == 1 && q.Populate[0] == "*":
		v.Set("populate", "*")
	default:
		for i, p := range q.Populate {
			v.Set(fmt.Sprintf("populate[%d]", i), p)
		}
	}

	for _, f := range q.Filters {
		if len(f.Path) == 0 {
			continue
		}
		op := f.Op
		if op == "" {
			op = OpEq
		}
		key := "filters[" + strings.Join(f.Path, "][") + "][" + op + "]"
		if op == OpIn {
			for i, item := range strings.Split(f.Value, ",") {
				v.Add(fmt.Sprintf("%s[%d]", key, i), item)
			}
			continue
		}
		v.Add(key, f.Value)
	}

	for i, s := range q.Sort {
		v.Set(fmt.Sprintf("sort[%d]", i), s)
	}

	if q.Page > 0 {
		v.Set("pagination[page]", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pagination[pageSize]", strconv.Itoa(q.PageSize))
	}
	return v
}
