package repositories

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// contains builds a LIKE pattern matching s literally anywhere in a lower-cased column.
// Pair it with ESCAPE '\'.
func contains(s string) string {
	return "%" + likeEscaper.Replace(lower(s)) + "%"
}
