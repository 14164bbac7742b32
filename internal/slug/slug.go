// Package slug builds URL-safe identifiers from display names.
package slug

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// Fallback is used when a name has no characters a slug can keep.
const Fallback = "item"

// MaxLength bounds the base slug so a numeric suffix still fits the column.
const MaxLength = 160

var (
	disallowed      = regexp.MustCompile(`[^a-z0-9\s\p{Zs}-]`)
	whitespaceRuns  = regexp.MustCompile(`[\s\p{Zs}]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// ExistsFunc reports whether a slug is already taken.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Generate lowercases s, drops everything but letters, digits, whitespace
// and hyphens, and joins the words with single hyphens.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(s)
	result = disallowed.ReplaceAllString(result, "")
	result = whitespaceRuns.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}
	return result
}

// Unique returns the base slug of name, or the first of base-1, base-2, ...
// for which exists reports false.
func Unique(ctx context.Context, name string, exists ExistsFunc) (string, error) {
	base := Generate(name)
	if base == "" {
		base = Fallback
	}

	candidate := base
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}
