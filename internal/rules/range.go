package rules

import (
	"strconv"
	"strings"
)

// DefaultIntervalDays is substituted for any missing or malformed range.
const DefaultIntervalDays = 7

// DefaultRange is used when a pot/substrate pair has no entry.
const DefaultRange = "7-7"

// Range is a parsed inclusive "<min>-<max>" day range.
type Range struct {
	Min int
	Max int
}

// ParseRange parses s as "<min>-<max>". ok is false for anything other than
// exactly two positive integers separated by a single hyphen. Inverted bounds
// are accepted and swapped so Min is always the smaller bound.
func ParseRange(s string) (r Range, ok bool) {
	lo, hi, ok := parseBounds(s)
	if !ok {
		return Range{}, false
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return Range{Min: lo, Max: hi}, true
}

// parseBounds returns both bounds in the order written.
func parseBounds(s string) (lo, hi int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	if lo < 1 || hi < 1 {
		return 0, 0, false
	}
	return lo, hi, true
}

func (r Range) String() string {
	return strconv.Itoa(r.Min) + "-" + strconv.Itoa(r.Max)
}
