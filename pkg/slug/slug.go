// Copyright (c) 2026 Scribe. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// Article titles become slugs such as "hello-world". Letters without an ASCII
// decomposition are dropped, so the result may be empty.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// From lowercases s, strips accents and joins the remaining ASCII
// alphanumeric runs with single hyphens.
func From(s string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	plain, _, err := transform.String(stripAccents, s)
	if err != nil {
		plain = s
	}

	var builder strings.Builder
	builder.Grow(len(plain))
	separate := false

	for _, r := range strings.ToLower(plain) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			if separate && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			separate = false
			continue
		}
		separate = true
	}

	return builder.String()
}
