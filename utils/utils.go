package utils

import (
	"fmt"
	"runtime"
	"unicode/utf8"
)

func ErrorWithTrace(e error) error {
	_, file, line, _ := runtime.Caller(1)
	return fmt.Errorf("%s:%d\n\t%w", file, line, e)
}

// Chunk splits items into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = max(len(items), 1)
	}
	chunks := [][]T{}
	for len(items) > 0 {
		n := min(size, len(items))
		chunks = append(chunks, items[:n])
		items = items[n:]
	}
	return chunks
}

// Truncate cuts s to at most n bytes, marking the cut with "...". The cut
// never splits a multi-byte rune.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:runeBoundary(s, max(n, 0))]
	}
	return s[:runeBoundary(s, n-3)] + "..."
}

// runeBoundary backs i off to the start of the rune it falls inside.
func runeBoundary(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
