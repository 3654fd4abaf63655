package query

import (
	"fmt"
	"strconv"
	"strings"

	"campdir/pkg/apperr"
)

var sqlOps = map[Op]string{
	OpEq:  "=",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// Where renders the filter tree to a SQL predicate with positional args.
// Returns an empty clause when no filters are present. argOffset is the
// number of placeholders the caller already consumed.
func Where(opts *Options, fields Fields, argOffset int) (string, []any, error) {
	if len(opts.Filters) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(opts.Filters))
	args := make([]any, 0, len(opts.Filters))

	for _, f := range opts.Filters {
		fld := fields[f.Field]
		n := argOffset + len(args) + 1

		if f.Op == OpIn {
			vals := splitList(f.Value)
			switch fld.Kind {
			case TextArray:
				// array column: match any overlap
				parts = append(parts, fmt.Sprintf("%s && $%d", fld.Column, n))
				args = append(args, vals)
			case Numeric:
				nums, err := toFloats(f.Field, vals)
				if err != nil {
					return "", nil, err
				}
				parts = append(parts, fmt.Sprintf("%s = ANY($%d)", fld.Column, n))
				args = append(args, nums)
			default:
				parts = append(parts, fmt.Sprintf("%s = ANY($%d)", fld.Column, n))
				args = append(args, vals)
			}
			continue
		}

		op, ok := sqlOps[f.Op]
		if !ok {
			return "", nil, apperr.New(apperr.Validation, "unsupported operator %q", f.Op)
		}

		if fld.Kind == TextArray {
			// equality on an array column means membership
			parts = append(parts, fmt.Sprintf("$%d = ANY(%s)", n, fld.Column))
			args = append(args, f.Value)
			continue
		}

		arg, err := convert(f.Field, fld.Kind, f.Value)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, fmt.Sprintf("%s %s $%d", fld.Column, op, n))
		args = append(args, arg)
	}

	return strings.Join(parts, " AND "), args, nil
}

// OrderBy renders the sort keys; default is newest first.
func OrderBy(opts *Options, fields Fields) string {
	if len(opts.Sort) == 0 {
		return "ORDER BY created_at DESC"
	}
	parts := make([]string, 0, len(opts.Sort))
	for _, sk := range opts.Sort {
		dir := "ASC"
		if sk.Desc {
			dir = "DESC"
		}
		parts = append(parts, fields[sk.Field].Column+" "+dir)
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

// LimitOffset renders the paging clause. Page and limit were validated at
// parse time, so plain formatting is injection-safe.
func LimitOffset(opts *Options) string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", opts.Limit, opts.Skip())
}

func convert(field string, kind Kind, raw string) (any, error) {
	switch kind {
	case Numeric:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "field %q expects a number", field)
		}
		return f, nil
	case Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "field %q expects a boolean", field)
		}
		return b, nil
	default:
		return raw, nil
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func toFloats(field string, vals []string) ([]float64, error) {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "field %q expects numbers", field)
		}
		out = append(out, f)
	}
	return out, nil
}
