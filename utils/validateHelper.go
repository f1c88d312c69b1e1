package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs go-playground struct-tag validation. Returns the
// library's error as-is; callers only need pass/fail plus a message.
func ValidateStruct(input any) error {
	return validate.Struct(input)
}

// TruncateRunes bounds free text embedded into notification summaries.
// Rune-safe so multibyte notes are not cut mid-character.
func TruncateRunes(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}

// UniqueSlice keeps the first occurrence of each element, preserving order.
func UniqueSlice[T comparable](in []T) []T {
	seen := make(map[T]bool, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
