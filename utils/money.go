package utils

import (
	"strconv"
	"strings"
)

// FormatINR formats a whole-rupee amount as a string like "₹1,25,000".
// Uses the Indian grouping system: the last three digits, then pairs.
func FormatINR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	if len(s) <= 3 {
		if neg {
			return "-₹" + s
		}
		return "₹" + s
	}

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + symbol.
	b.Grow(len(s) + len(s)/2 + 4)
	if neg {
		b.WriteString("-₹")
	} else {
		b.WriteString("₹")
	}

	// Head carries everything before the final three digits, grouped
	// in pairs from the left.
	head := s[:len(s)-3]
	rem := len(head) % 2
	if rem == 0 {
		rem = 2
	}
	b.WriteString(head[:rem])
	for i := rem; i < len(head); i += 2 {
		b.WriteByte(',')
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(s[len(s)-3:])

	return b.String()
}
