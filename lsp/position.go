// Copyright © 2024 The ELPS authors

package lsp

import "strings"

// wordAtPosition returns the contiguous run of non-delimiter characters
// that touches (line, col), extending both before and after it (0-indexed, UTF-16-code-unit columns as LSP
// specifies — content here is assumed ASCII-compatible for simplicity).
func wordAtPosition(content string, line, col int) string {
	lines := strings.Split(content, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	text := lines[line]
	if col > len(text) {
		col = len(text)
	}
	start := col
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	end := col
	for end < len(text) && isWordByte(text[end]) {
		end++
	}
	return text[start:end]
}

func isWordByte(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '(', ')', '\'', '`', ',', '"', ';':
		return false
	}
	return true
}
