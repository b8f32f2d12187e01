package utils

import (
	"strconv"
	"strings"
)

// FormatINR formats a whole-rupee amount the Indian way, e.g. "₹1,50,000".
// The last three digits form one group and every group to the left has two.
func FormatINR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	var b strings.Builder
	b.Grow(len(s) + len(s)/2 + 5)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("₹")

	if len(s) <= 3 {
		b.WriteString(s)
		return b.String()
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
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
	b.WriteString(tail)

	return b.String()
}
