package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrNotInteger = errors.New("not an integer")

// ParseInt converts a decoded JSON value into an int. Numbers with a
// fractional part are truncated toward zero; strings must hold a decimal
// integer. nil and booleans are rejected; true is not read as 1.
func ParseInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, ErrNotInteger
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, fmt.Errorf("%w: %v", ErrNotInteger, n)
		}
		return int(n), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotInteger, n.String())
		}
		return ParseInt(f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotInteger, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotInteger, v)
	}
}

// ParseID is ParseInt for row identifiers.
func ParseID(v any) (int64, error) {
	i, err := ParseInt(v)
	if err != nil {
		return 0, err
	}
	return int64(i), nil
}
