package model

import (
	"strconv"
	"strings"
)

// ParseWholeNumber parses an integer column value. It accepts plain integers
// and the "42.0" form spreadsheet exports emit.
func ParseWholeNumber(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".0")
	return strconv.ParseInt(s, 10, 64)
}
