// Package timeutil parses calendar spans such as "2w" or "1w3d".
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultSpan is the agenda length used when none is given.
const DefaultSpan = "1w"

var (
	spanPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitDays    = map[string]int{
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
	}
)

// ParseSpan reads a span of whole days and weeks and returns the number of days
// with a compact label. Empty input means DefaultSpan.
func ParseSpan(input string) (int, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		remaining = DefaultSpan
	}

	total := 0
	for len(remaining) > 0 {
		m := spanPattern.FindStringSubmatch(remaining)
		if len(m) != 3 {
			return 0, "", fmt.Errorf("invalid span segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, "", fmt.Errorf("invalid span value %q: %w", m[1], err)
		}
		per, ok := unitDays[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported span unit %q, use d or w", m[2])
		}
		total += n * per
		remaining = remaining[len(m[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("span must be at least one day")
	}
	return total, FormatSpan(total), nil
}

// FormatSpan renders days as weeks and days, for example 10 as "1w3d".
func FormatSpan(days int) string {
	if days <= 0 {
		return "0d"
	}
	var b strings.Builder
	if w := days / 7; w > 0 {
		fmt.Fprintf(&b, "%dw", w)
	}
	if d := days % 7; d > 0 {
		fmt.Fprintf(&b, "%dd", d)
	}
	return b.String()
}
