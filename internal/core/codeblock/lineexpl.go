package codeblock

import (
	"strconv"
	"strings"
)

// FormatLineExplanations serializes annotations as "n:text" lines in
// ascending line order, the format used by the edit forms.
func FormatLineExplanations(le LineExplanations) string {
	if len(le) == 0 {
		return ""
	}

	var b strings.Builder
	for i, n := range le.Lines() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(n))
		b.WriteByte(':')
		b.WriteString(le[n])
	}
	return b.String()
}

// ParseLineExplanations parses "n:text" lines. Only the first colon splits;
// both sides are trimmed. Lines without a leading positive integer are
// skipped. A later line for the same number wins.
func ParseLineExplanations(s string) LineExplanations {
	out := LineExplanations{}
	for _, line := range strings.Split(s, "\n") {
		key, text, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		n, ok := leadingInt(strings.TrimSpace(key))
		if !ok || n < 1 {
			continue
		}
		out[n] = strings.TrimSpace(text)
	}
	return out
}

// leadingInt parses the optional sign and digits at the start of s,
// ignoring anything after them ("12abc" is 12).
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
