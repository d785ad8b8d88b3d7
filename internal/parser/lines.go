package parser

import "strings"

// SegmentLines splits raw extracted text into trimmed, non-empty lines.
// Both CRLF and LF line endings are accepted. Pure and idempotent: feeding
// the joined output back in yields the same lines.
func SegmentLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
