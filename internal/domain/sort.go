package domain

import "strings"

// ValidSortField returns sort unchanged when its field name, with any leading
// "-" removed, is one of fields. Otherwise it returns "".
func ValidSortField(sort string, fields []string) string {
	name := strings.TrimPrefix(sort, "-")
	if name == "" {
		return ""
	}
	for _, f := range fields {
		if f == name {
			return sort
		}
	}
	return ""
}
