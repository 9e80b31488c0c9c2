package helper

import "strings"

// IsUniqueViolation reports whether err looks like a unique-constraint hit.
// Matched on the message so it works for both postgres and the sqlite
// driver used in tests.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint")
}
