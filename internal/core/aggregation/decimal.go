package aggregation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// ErrMalformedResult is returned when a result column cannot be interpreted.
var ErrMalformedResult = errors.New("malformed query result")

// ParseNumeric converts an aggregate column value into a decimal.
// NULL (nil) maps to zero, as does an empty string.
// Drivers return NUMERIC as text ([]byte) and double precision as float64;
// both are accepted. NaN, infinities and any other type are a malformed result.
func ParseNumeric(v any) (decimal.Decimal, error) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, fmt.Errorf("%w: non-finite numeric %v", ErrMalformedResult, val)
		}
		return decimal.NewFromFloat(val), nil
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return decimal.Zero, fmt.Errorf("%w: non-finite numeric %v", ErrMalformedResult, val)
		}
		return decimal.NewFromFloat32(val), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case int32:
		return decimal.NewFromInt32(val), nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case decimal.Decimal:
		return val, nil
	case []byte:
		return parseNumericString(string(val))
	case string:
		return parseNumericString(val)
	}
	return decimal.Zero, fmt.Errorf("%w: unexpected numeric type %T", ErrMalformedResult, v)
}

func parseNumericString(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: numeric %q: %v", ErrMalformedResult, s, err)
	}
	return d, nil
}

// NormalizeDay converts a date column value into a YYYY-MM-DD key.
// Accepts a native time.Time or text starting with a YYYY-MM-DD date
// (e.g. "2026-01-10" or "2026-01-10T00:00:00Z").
func NormalizeDay(v any) (string, error) {
	switch val := v.(type) {
	case time.Time:
		return val.Format(DayLayout), nil
	case []byte:
		return normalizeDayString(string(val))
	case string:
		return normalizeDayString(val)
	}
	return "", fmt.Errorf("%w: unexpected date type %T", ErrMalformedResult, v)
}

func normalizeDayString(s string) (string, error) {
	if len(s) < len(DayLayout) {
		return "", fmt.Errorf("%w: date %q", ErrMalformedResult, s)
	}
	d, err := time.Parse(DayLayout, s[:len(DayLayout)])
	if err != nil {
		return "", fmt.Errorf("%w: date %q: %v", ErrMalformedResult, s, err)
	}
	return d.Format(DayLayout), nil
}
