package parser

import (
	"regexp"
	"strings"

	"github.com/fintrackr/statement-extractor/internal/models"
)

// cardProductMarker closes the line naming the card product,
// e.g. "PLATINUM REWARDS Credit Card Statement".
const cardProductMarker = "Credit Card Statement"

// Header field patterns. Amounts require exactly two decimal places with
// optional thousands separators; dates are DD/MM/YYYY.
var (
	holderNamePattern = regexp.MustCompile(`^([A-Z][A-Z ]*)`)

	creditLimitPattern     = regexp.MustCompile(`Credit Limit[^0-9]*?([\d,]+\.\d{2})\b`)
	availableCreditPattern = regexp.MustCompile(`Available Credit Limit[^0-9]*?([\d,]+\.\d{2})\b`)
	availableCashPattern   = regexp.MustCompile(`Available Cash Limit[^0-9]*?([\d,]+\.\d{2})\b`)
	totalDuePattern        = regexp.MustCompile(`Total Payment Due[^0-9]*?([\d,]+\.\d{2})\b`)
	minDuePattern          = regexp.MustCompile(`Minimum Payment Due[^0-9]*?([\d,]+\.\d{2})\b`)

	paymentDueDatePattern = regexp.MustCompile(`Payment Due Date\s*:?\s*(\d{2}/\d{2}/\d{4})`)
	statementDatePattern  = regexp.MustCompile(`Statement Date\s*:?\s*(\d{2}/\d{2}/\d{4})`)
	periodPattern         = regexp.MustCompile(`Statement Period\s*:?\s*(\d{2}/\d{2}/\d{4} - \d{2}/\d{2}/\d{4})`)

	cardNumberPattern = regexp.MustCompile(`(?i)card (?:number|no\.?)\s*:?\s*([\dXx*]{4}[\dXx* ]{4,}\d{4})`)
)

// ExtractHeader pulls the scalar statement fields from the extracted
// text. Every field is independent and optional: a pattern miss leaves
// the field empty, and the first match always wins.
func ExtractHeader(raw string, lines []string) models.StatementHeader {
	var h models.StatementHeader

	h.HolderName, h.Address = extractHolderAndAddress(lines)
	h.CardProductName = extractCardProductName(lines)
	h.MaskedCardNumber = submatch(cardNumberPattern, raw)

	// "Credit Limit" also occurs inside "Available Credit Limit"; the
	// plain limit is taken from the first line that carries the label
	// without the qualifier.
	h.CreditLimit = firstLineMatch(lines, creditLimitPattern, "Available")
	h.AvailableCreditLimit = submatch(availableCreditPattern, raw)
	h.AvailableCashLimit = submatch(availableCashPattern, raw)
	h.TotalPaymentDue = submatch(totalDuePattern, raw)
	h.MinPaymentDue = submatch(minDuePattern, raw)

	h.PaymentDueDate = submatch(paymentDueDatePattern, raw)
	h.StatementDate = submatch(statementDatePattern, raw)
	h.StatementPeriod = submatch(periodPattern, raw)

	return h
}

// extractHolderAndAddress reads the statement holder's name as the
// leading run of uppercase letters and spaces on the first line. When the
// run consumes the whole line the address comes from the next line,
// otherwise from the remainder of the first.
func extractHolderAndAddress(lines []string) (name, address string) {
	if len(lines) == 0 {
		return "", ""
	}
	first := lines[0]
	m := holderNamePattern.FindString(first)
	if m == "" {
		return "", ""
	}
	name = strings.TrimSpace(m)
	address = strings.TrimSpace(first[len(m):])
	if address == "" && len(lines) > 1 {
		address = lines[1]
	}
	return name, address
}

// extractCardProductName returns the first line ending with the card
// product marker phrase, or "".
func extractCardProductName(lines []string) string {
	for _, line := range lines {
		if strings.HasSuffix(line, cardProductMarker) {
			return line
		}
	}
	return ""
}

// submatch returns the first capture group of the first match in the raw
// text, or "".
func submatch(re *regexp.Regexp, raw string) string {
	if m := re.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return ""
}

// firstLineMatch scans lines in order and returns the first capture of
// the pattern, skipping lines containing the exclude marker.
func firstLineMatch(lines []string, re *regexp.Regexp, exclude string) string {
	for _, line := range lines {
		if exclude != "" && strings.Contains(line, exclude) {
			continue
		}
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}
