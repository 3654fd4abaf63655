// Package query translates raw list-endpoint parameters (filter, select,
// sort, page, limit) into typed filter expressions and SQL fragments.
//
// Filters arrive as `field=value` (equality) or `field[op]=value` with op one
// of gt/gte/lt/lte/in. Every referenced field must appear in the collection's
// allow-list; arbitrary keys are rejected instead of silently accepted.
package query

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"campdir/pkg/apperr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
)

// Kind describes how a filterable field is typed in the store, which decides
// how raw query-string values are converted before binding.
type Kind int

const (
	Text Kind = iota
	Numeric
	Bool
	TextArray
)

// Field maps a public field name to its column.
type Field struct {
	Column string
	Kind   Kind
}

// Fields is the allow-list of filterable/sortable fields for one collection.
type Fields map[string]Field

type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

var bracketOps = map[string]Op{
	"gt":  OpGt,
	"gte": OpGte,
	"lt":  OpLt,
	"lte": OpLte,
	"in":  OpIn,
}

// Filter is one comparison in the typed filter tree.
type Filter struct {
	Field string
	Op    Op
	Value string
}

type SortKey struct {
	Field string
	Desc  bool
}

// Options is the parsed form of a list request.
type Options struct {
	Filters []Filter
	Select  []string
	Sort    []SortKey
	Page    int
	Limit   int
}

func (o *Options) Skip() int { return (o.Page - 1) * o.Limit }

var bracketKey = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)\[([A-Za-z]+)\]$`)

// Parse extracts Options from raw query parameters. Reserved keys (select,
// sort, page, limit) are never treated as entity-field filters. An unknown
// operator suffix degrades to a literal equality key, which then fails the
// field allow-list.
func Parse(values url.Values, fields Fields) (*Options, error) {
	opts := &Options{Page: DefaultPage, Limit: DefaultLimit}

	for key, vs := range values {
		if len(vs) == 0 {
			continue
		}
		v := vs[0]

		switch key {
		case "select":
			for _, f := range strings.Split(v, ",") {
				if f = strings.TrimSpace(f); f != "" {
					opts.Select = append(opts.Select, f)
				}
			}
			continue
		case "sort":
			for _, f := range strings.Split(v, ",") {
				f = strings.TrimSpace(f)
				if f == "" {
					continue
				}
				sk := SortKey{Field: f}
				if strings.HasPrefix(f, "-") {
					sk = SortKey{Field: f[1:], Desc: true}
				}
				if _, ok := fields[sk.Field]; !ok {
					return nil, apperr.New(apperr.Validation, "cannot sort by field %q", sk.Field)
				}
				opts.Sort = append(opts.Sort, sk)
			}
			continue
		case "page":
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, apperr.New(apperr.Validation, "page must be a positive integer")
			}
			opts.Page = n
			continue
		case "limit":
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, apperr.New(apperr.Validation, "limit must be a positive integer")
			}
			opts.Limit = n
			continue
		}

		f := Filter{Field: key, Op: OpEq, Value: v}
		if m := bracketKey.FindStringSubmatch(key); m != nil {
			if op, ok := bracketOps[m[2]]; ok {
				f = Filter{Field: m[1], Op: op, Value: v}
			}
		}
		if _, ok := fields[f.Field]; !ok {
			return nil, apperr.New(apperr.Validation, "cannot filter by field %q", f.Field)
		}
		opts.Filters = append(opts.Filters, f)
	}

	return opts, nil
}

// PageRef points at a neighboring result page.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries next/prev descriptors; each is present only when that
// page actually exists.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Paginate shapes the pagination block for a page against the total count.
// Returns nil when there is neither a previous nor a next page.
func Paginate(page, limit, total int) *Pagination {
	p := &Pagination{}
	if page*limit < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	if p.Next == nil && p.Prev == nil {
		return nil
	}
	return p
}
