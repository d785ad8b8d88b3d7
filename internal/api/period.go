package api

import (
	"strings"

	"github.com/fintrackr/statement-extractor/internal/parser"
)

// SplitStatementPeriod decomposes a raw statement period of the form
// "DD/MM/YYYY - DD/MM/YYYY" into ISO start and end dates for storage.
// A part that does not parse yields an empty string for its side; the
// raw period string is stored alongside either way.
func SplitStatementPeriod(period string) (start, end string) {
	parts := strings.Split(period, " - ")
	if len(parts) != 2 {
		return "", ""
	}
	return parser.NormalizeDate(parts[0]), parser.NormalizeDate(parts[1])
}
