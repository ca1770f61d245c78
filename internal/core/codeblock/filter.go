package codeblock

import "strings"

// Matches reports whether b is visible for the given search text and
// category. The search matches title or category case-insensitively; an
// empty category matches every block.
func Matches(b CodeBlock, search, category string) bool {
	if category != "" && b.Category != category {
		return false
	}
	if search == "" {
		return true
	}

	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.Category), needle)
}

// Filter returns the blocks visible for search and category, preserving order.
func Filter(blocks []CodeBlock, search, category string) []CodeBlock {
	out := make([]CodeBlock, 0, len(blocks))
	for _, b := range blocks {
		if Matches(b, search, category) {
			out = append(out, b)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func Categories(blocks []CodeBlock) []string {
	seen := make(map[string]struct{}, len(blocks))
	var out []string
	for _, b := range blocks {
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		out = append(out, b.Category)
	}
	return out
}

// Find returns the block with the given id.
func Find(blocks []CodeBlock, id int) (CodeBlock, bool) {
	for _, b := range blocks {
		if b.ID == id {
			return b, true
		}
	}
	return CodeBlock{}, false
}
