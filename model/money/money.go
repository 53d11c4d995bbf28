// Package money provides an exact monetary amount expressed in integer minor
// units (e.g. cents). Amounts never pass through floating point on the
// comparison path, so threshold checks such as circuit breakers are immune to
// rounding artefacts.
package money

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Scale is the number of decimal digits carried by an Amount. All amounts use
// two minor-unit digits regardless of currency.
const Scale = 2

// Amount is a monetary value in minor units.
type Amount int64

// FromMinorUnits wraps a raw minor-unit value.
func FromMinorUnits(v int64) Amount { return Amount(v) }

// MinorUnits returns the raw minor-unit value.
func (a Amount) MinorUnits() int64 { return int64(a) }

// GreaterThan reports whether a exceeds o.
func (a Amount) GreaterThan(o Amount) bool { return a > o }

// String renders the amount as a decimal, e.g. 1234 -> "12.34".
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON encodes the amount as a decimal string to avoid any float64
// round-trip on the wire.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either a decimal string or a JSON number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := ParseDecimal(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalYAML renders the amount as a decimal string.
func (a Amount) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// UnmarshalYAML accepts a decimal scalar.
func (a *Amount) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseDecimal(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseDecimal converts a decimal literal such as "12.34" or "-5" into an
// Amount. More than Scale fraction digits is an error rather than a silent
// truncation.
func ParseDecimal(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("money: empty amount")
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	whole, frac := s, ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole, frac = s[:idx], s[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > Scale {
		return 0, fmt.Errorf("money: %q has more than %d fraction digits", s, Scale)
	}
	for len(frac) < Scale {
		frac += "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}
	v := units*100 + cents
	if neg {
		v = -v
	}
	return Amount(v), nil
}

// FromValue extracts an Amount from an arbitrary payload value. It accepts
// Amount, integer types, json.Number, decimal strings and float64 values that
// carry no more than Scale fraction digits (floats are re-rendered through
// their shortest decimal representation so an exact "600" or "12.34" survives
// JSON decoding intact). The second return value reports presence: (0, false,
// nil) means no amount was supplied.
func FromValue(v interface{}) (Amount, bool, error) {
	switch actual := v.(type) {
	case nil:
		return 0, false, nil
	case Amount:
		return actual, true, nil
	case int:
		return Amount(int64(actual) * 100), true, nil
	case int64:
		return Amount(actual * 100), true, nil
	case json.Number:
		a, err := ParseDecimal(actual.String())
		return a, err == nil, err
	case string:
		a, err := ParseDecimal(actual)
		return a, err == nil, err
	case float64:
		a, err := ParseDecimal(strconv.FormatFloat(actual, 'f', -1, 64))
		return a, err == nil, err
	default:
		return 0, false, fmt.Errorf("money: unsupported amount type %T", v)
	}
}
