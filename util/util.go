package util

import (
	"fmt"
	"strings"
)

// IndentExpand repeats the indent string growth times
func IndentExpand(indent string, growth int) string {
	if growth <= 0 {
		return ""
	}
	return strings.Repeat(indent, growth)
}

// FormatFloats renders each value with a single fmt verb, e.g. %.4f
func FormatFloats(arr []float64, format string) []string {
	out := make([]string, len(arr))
	for i, v := range arr {
		out[i] = fmt.Sprintf(format, v)
	}
	return out
}
