// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns free text into lowercase, hyphen-separated identifiers.
//
// Diacritics are stripped first so "Camiseta Básica" becomes "camiseta-basica".
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var separators = regexp.MustCompile(`[^a-z0-9]+`)

// From converts s into a slug. The result may be empty when s has no letters or digits.
func From(s string) string {
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripper, s)
	if err != nil {
		folded = s
	}

	result := separators.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(result, "-")
}
