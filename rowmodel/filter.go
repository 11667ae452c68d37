package rowmodel

import (
	"fmt"
	"strconv"
	"strings"
)

// Matches reports whether a row satisfies a filter. Unrecognized operator
// strings return false, excluding the row; they never error. Comparisons
// against missing values match only the emptiness operators.
func Matches(row *Row, f Filter) bool {
	value := row.Value(f.Column)

	switch f.Op {
	case OpEmpty:
		return isEmpty(value)
	case OpNotEmpty:
		return !isEmpty(value)
	case OpEquals:
		return looseEqual(value, f.Value)
	case OpNotEquals:
		return !looseEqual(value, f.Value)
	case OpContains:
		return strings.Contains(foldString(value), foldString(f.Value))
	case OpStartsWith:
		return strings.HasPrefix(foldString(value), foldString(f.Value))
	case OpGreaterThan:
		a, b, ok := numericPair(value, f.Value)
		return ok && a > b
	case OpGreaterOrEqual:
		a, b, ok := numericPair(value, f.Value)
		return ok && a >= b
	case OpLessThan:
		a, b, ok := numericPair(value, f.Value)
		return ok && a < b
	case OpLessOrEqual:
		a, b, ok := numericPair(value, f.Value)
		return ok && a <= b
	}

	// Fail closed on unknown operators.
	return false
}

// MatchesAll reports whether a row satisfies every filter.
func MatchesAll(row *Row, filters []Filter) bool {
	for _, f := range filters {
		if !Matches(row, f) {
			return false
		}
	}
	return true
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}

// looseEqual compares values the way a filter UI expects: numbers compare
// numerically regardless of concrete type, everything else by its string
// form, case-insensitively.
func looseEqual(a, b any) bool {
	if fa, fb, ok := numericPair(a, b); ok {
		return fa == fb
	}
	return foldString(a) == foldString(b)
}

func foldString(value any) string {
	if value == nil {
		return ""
	}
	return strings.ToLower(fmt.Sprint(value))
}

func numericPair(a, b any) (float64, float64, bool) {
	fa, aok := asFloat(a)
	fb, bok := asFloat(b)
	return fa, fb, aok && bok
}

func asFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
