package codeblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLineExplanations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  LineExplanations
	}{
		{name: "empty", input: "", want: LineExplanations{}},
		{name: "single", input: "1:prints hi", want: LineExplanations{1: "prints hi"}},
		{name: "first colon splits", input: "3:a:b", want: LineExplanations{3: "a:b"}},
		{name: "non-integer key dropped", input: "abc:hello", want: LineExplanations{}},
		{name: "trims both sides", input: "  2 :   spaced out  ", want: LineExplanations{2: "spaced out"}},
		{name: "leading integer", input: "4th:fourth", want: LineExplanations{4: "fourth"}},
		{name: "no colon skipped", input: "5 missing colon", want: LineExplanations{}},
		{name: "zero and negative skipped", input: "0:zero\n-1:neg", want: LineExplanations{}},
		{name: "blank lines skipped", input: "1:a\n\n\n2:b\r\n", want: LineExplanations{1: "a", 2: "b"}},
		{name: "later duplicate wins", input: "1:a\n1:b", want: LineExplanations{1: "b"}},
		{
			name:  "mixed",
			input: "1:first\nabc:hello\n10:ten: with colon",
			want:  LineExplanations{1: "first", 10: "ten: with colon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLineExplanations(tt.input))
		})
	}
}

func TestFormatLineExplanations(t *testing.T) {
	assert.Empty(t, FormatLineExplanations(nil))
	assert.Equal(t, "1:a\n2:b\n10:c", FormatLineExplanations(LineExplanations{10: "c", 2: "b", 1: "a"}))
}

func TestLineExplanations_RoundTrip(t *testing.T) {
	mappings := []LineExplanations{
		{},
		{1: "prints hi"},
		{1: "a:b:c", 7: "url http://x", 300: ""},
		{2: "tab\tinside", 3: "unicode ✓"},
	}

	for _, m := range mappings {
		assert.Equal(t, m, ParseLineExplanations(FormatLineExplanations(m)))
	}
}
