package store

import (
	"reflect"
	"sort"
	"strings"
)

// Condition is one column comparison. A nil Value with = or != renders as
// IS NULL / IS NOT NULL.
type Condition struct {
	Column string
	Op     string
	Value  any
}

// Eq is shorthand for an equality condition.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Op: "=", Value: value}
}

// Where builds a condition with an explicit operator.
func Where(column, op string, value any) Condition {
	return Condition{Column: column, Op: op, Value: value}
}

// Search matches Term as a case-insensitive substring of any of Columns.
type Search struct {
	Term    string
	Columns []string
}

// Query describes a filtered, ordered and paged read. Conditions are ANDed
// in slice order. A zero Limit means no limit.
type Query struct {
	Conditions []Condition
	Search     *Search
	OrderBy    string
	Limit      int
	Offset     int
}

var allowedOps = map[string]struct{}{
	"=":        {},
	"!=":       {},
	"<>":       {},
	"<":        {},
	"<=":       {},
	">":        {},
	">=":       {},
	"LIKE":     {},
	"NOT LIKE": {},
}

// Fields is a partial record keyed by column. Nil values, including nil
// pointers, mean "not supplied" and are skipped.
type Fields map[string]any

// Set drops nil values and returns the remaining columns sorted by name
// together with their dereferenced values.
func (f Fields) Set() ([]string, []any) {
	cols := make([]string, 0, len(f))
	for k, v := range f {
		if isNil(v) {
			continue
		}
		cols = append(cols, k)
	}
	sort.Strings(cols)

	vals := make([]any, len(cols))
	for i, c := range cols {
		vals[i] = deref(f[c])
	}
	return cols, vals
}

// Empty reports whether no field would be written.
func (f Fields) Empty() bool {
	cols, _ := f.Set()
	return len(cols) == 0
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		return rv.Elem().Interface()
	}
	return v
}

func normalizeOp(op string) string {
	return strings.Join(strings.Fields(strings.ToUpper(op)), " ")
}
