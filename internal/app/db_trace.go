package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	postgresBindVarRegex = regexp.MustCompile(`\$\d+`)
	bindVarListRegex     = regexp.MustCompile(`\?(?:, \?)+`)
)

// formatDBQueryForTrace renders a statement the same way under both
// dialects. Postgres $N bind vars become "?" and runs of more than four
// bind vars collapse to "?, ...".
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = postgresBindVarRegex.ReplaceAllString(normalized, "?")
	normalized = bindVarListRegex.ReplaceAllStringFunc(normalized, func(list string) string {
		if strings.Count(list, "?") <= 4 {
			return list
		}
		return "?, ..."
	})
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
