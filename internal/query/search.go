package query

import "strings"

// Terms lowercases the query and splits it on whitespace. Empty terms are dropped.
func Terms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Match reports whether every term of query occurs somewhere in the combined fields.
// Empty fields are skipped before the haystack is built. A blank query matches everything.
func Match(query string, fields ...string) bool {
	terms := Terms(query)
	if len(terms) == 0 {
		return true
	}

	var builder strings.Builder
	for _, field := range fields {
		if field == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(field)
	}
	haystack := strings.ToLower(builder.String())

	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}
