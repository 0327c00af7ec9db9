package utils

import (
	"strings"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// JoinWithOr joins a slice of strings with OR operator
func JoinWithOr(clauses []string) string {
	return strings.Join(clauses, " OR ")
}

// ContainsPattern build pattern '%term%' cho ILIKE, escape metacharacter của LIKE
// (dùng với ESCAPE mặc định '\')
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
