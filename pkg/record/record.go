// Package record provides the flat, sparse representation of everything
// fetched from remote data sources. A Record is created once from a raw
// response by Normalize and read uniformly afterwards.
package record

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ListSeparator joins list values (for example synonyms) into one field.
const ListSeparator = "; "

// Record is a flat mapping from a field name to a non-empty scalar value.
// Absent fields mean the source did not provide a value.
type Record map[string]string

// Get returns the value of a field and reports if the field is present.
func (r Record) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}

// Value returns the value of a field or an empty string.
func (r Record) Value(field string) string {
	return r[field]
}

// Has reports if a field is present.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Set adds a field if the value is not empty after trimming.
func (r Record) Set(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	r[field] = value
}

// Normalize converts a raw decoded response into a Record.
// Nil values, booleans, empty strings, empty lists and nested objects
// are dropped. Numbers lose trailing zeros, lists of scalars are joined
// with ListSeparator.
func Normalize(raw map[string]any) Record {
	res := make(Record, len(raw))
	for k, v := range raw {
		if s, ok := scalar(v); ok {
			res[k] = s
		}
	}
	return res
}

// Fields returns the sorted union of field names of the records.
func Fields(recs []Record) []string {
	set := make(map[string]struct{})
	for _, r := range recs {
		for k := range r {
			set[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

func scalar(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case nil, bool:
		return "", false
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case []string:
		s = joinList(t)
	case []any:
		var ss []string
		for _, e := range t {
			if es, ok := scalar(e); ok {
				ss = append(ss, es)
			}
		}
		s = joinList(ss)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func joinList(ss []string) string {
	var res []string
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s != "" {
			res = append(res, s)
		}
	}
	return strings.Join(res, ListSeparator)
}
