package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Levels are numbered 1..4. The original deployment exposed them under the
// legacy spelling year3..year6, which is still accepted everywhere a level
// is read from a request. Output always uses the numeric form.

const (
	MinLevel = 1
	MaxLevel = 4
)

// ParseLevel accepts "1".."4" or "year3".."year6" and returns the numeric
// tier. The second return value is false for anything else.
func ParseLevel(raw string) (uint8, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	if strings.HasPrefix(s, "year") {
		n, err := strconv.Atoi(strings.TrimPrefix(s, "year"))
		if err != nil || n < MinLevel+2 || n > MaxLevel+2 {
			return 0, false
		}
		return uint8(n - 2), true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < MinLevel || n > MaxLevel {
		return 0, false
	}
	return uint8(n), true
}

// YearCode returns the legacy alias for a tier, e.g. 1 -> "year3". Tiers
// outside 1..4 produce an empty string.
func YearCode(level uint8) string {
	if level < MinLevel || level > MaxLevel {
		return ""
	}
	return fmt.Sprintf("year%d", int(level)+2)
}
