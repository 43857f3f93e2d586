// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug turns arbitrary Unicode text into lowercase ASCII slugs.
//
// Uploaded file names go through [From] before touching the disk, so a
// client-supplied name can never carry path separators or control bytes.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is returned when the input has no usable characters.
const Fallback = "file"

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	accents         = transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
)

// From converts s into a slug such as "chest-x-ray-scan".
//
// Accents are stripped after NFD decomposition ("é" becomes "e"), every run
// of other characters collapses to a single hyphen, and edge hyphens are
// trimmed. An empty result becomes [Fallback].
func From(s string) string {
	stripped, _, err := transform.String(accents, s)
	if err != nil {
		stripped = s
	}

	result := nonAlphanumeric.ReplaceAllString(strings.ToLower(stripped), "-")
	result = strings.Trim(result, "-")

	if result == "" {
		return Fallback
	}
	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
