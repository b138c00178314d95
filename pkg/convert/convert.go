// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides lenient conversions for query-string values.

Malformed input falls back to a caller-supplied default instead of producing
an error, which suits optional list parameters such as page and limit.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD parses str as an int, returning def when str is empty or malformed.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}

	if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
		return v
	}

	return def
}

// ToBoolOK parses the literal words "true" and "false" (case-insensitive).
// ok is false for any other input, including "1" and "0".
func ToBoolOK(str string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
