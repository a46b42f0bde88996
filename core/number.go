package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is an integer stat that tolerates the loose encodings scrapers
// produce: JSON numbers, floats (truncated) and numeric strings such as
// "1,200" or " 160 ". It always marshals as a plain JSON integer.
type Number int

// NewNumber returns a pointer to n, for building optional stat fields.
func NewNumber(n int) *Number {
	v := Number(n)
	return &v
}

// Int returns n as an int.
func (n Number) Int() int {
	return int(n)
}

func (n Number) String() string {
	return strconv.Itoa(int(n))
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParseNumber(s)
		if err != nil {
			return err
		}
		*n = v
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidNumber, data)
	}
	*n = Number(math.Trunc(f))
	return nil
}

// ParseNumber parses a human-formatted integer. Thousands separators and a
// trailing percent sign are ignored.
func ParseNumber(s string) (Number, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimSuffix(clean, "%")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, "_", "")
	f, err := strconv.ParseFloat(strings.TrimSpace(clean), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return Number(math.Trunc(f)), nil
}
