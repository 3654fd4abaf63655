package query

import "encoding/json"

// ApplySelect projects serialized records down to the requested fields.
// Identifiers are always retained. With no selection the input is returned
// untouched. Works on a single record or a slice.
func ApplySelect(v any, fields []string) any {
	if len(fields) == 0 {
		return v
	}

	keep := make(map[string]struct{}, len(fields)+1)
	keep["id"] = struct{}{}
	for _, f := range fields {
		keep[f] = struct{}{}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return v
	}

	var list []map[string]any
	if err := json.Unmarshal(b, &list); err == nil {
		for _, rec := range list {
			project(rec, keep)
		}
		return list
	}

	var rec map[string]any
	if err := json.Unmarshal(b, &rec); err == nil {
		project(rec, keep)
		return rec
	}
	return v
}

func project(rec map[string]any, keep map[string]struct{}) {
	for k := range rec {
		if _, ok := keep[k]; !ok {
			delete(rec, k)
		}
	}
}
