package extractor

import (
	"strings"
	"unicode"
)

// statementWords appear in virtually every credit-card statement. If the
// extracted text contains none of these, it is likely garbage from an
// identity-encoded font.
var statementWords = []string{
	"credit", "card", "statement", "payment", "limit", "due",
	"date", "amount", "total", "transaction", "balance", "name",
}

// IsReadableText checks that the text is long enough, mostly printable
// ASCII, and contains at least one word expected on a statement. An
// extraction strategy only succeeds when its output passes this gate.
func IsReadableText(text string) bool {
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	if textQuality(text) <= 0.6 {
		return false
	}
	return containsStatementWord(text)
}

// textQuality returns the ratio of basic ASCII readable characters to
// total characters. A strict ASCII check is used on purpose:
// unicode.IsLetter is too broad and matches the accented garbage that
// identity-encoded fonts produce.
func textQuality(text string) float64 {
	total := 0
	readable := 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			r == '.' || r == ',' || r == '-' || r == '/' || r == ':' ||
			r == ';' || r == '(' || r == ')' || r == '\'' || r == '"' ||
			r == '*' || r == '%' || r == '&' || r == '@' || r == '#' ||
			r == '!' || r == '?' || r == '+' || r == '=' || r == '\t' {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func containsStatementWord(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range statementWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
