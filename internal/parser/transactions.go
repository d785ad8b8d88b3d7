package parser

import (
	"regexp"
	"strings"

	"github.com/fintrackr/statement-extractor/internal/models"
)

// Markers delimiting the three blocks a flattened statement renders its
// transaction table into when the structured row layout is lost.
const (
	dateBlockHeader   = "DATE"
	nameBlockPrefix   = "Name "
	amountBlockHeader = "AMOUNT (Rs.)"
	endOfStatement    = "End of Statement"
)

var (
	// Structured transaction row:
	// DATE  DETAILS  NAME  CATEGORY  AMOUNT
	// e.g. "15/03/2024 Swiggy order SWIGGY BANGALORE DINING 450.00"
	txnRowPattern = regexp.MustCompile(
		`^(\d{2}[/-]\d{2}[/-]\d{4})\s+(.+?)\s+([A-Z]+(?: [A-Z]+)*)\s+([A-Z]+(?: [A-Z]+)*)\s+([\d,]+\.\d{2})$`)

	dateTokenPattern  = regexp.MustCompile(`^\d{2}[/-]\d{2}[/-]\d{4}$`)
	datePrefixPattern = regexp.MustCompile(`^\d{2}[/-]\d{2}[/-]\d{4}`)
	drAmountPattern   = regexp.MustCompile(`([\d,]+\.\d{2})\s*Dr`)
)

// ParseTransactions extracts the transaction table. The per-line
// structured match runs first; the block-alignment fallback runs only
// when it yields nothing. Results from the two strategies are never
// merged, and an empty list is a valid outcome.
func ParseTransactions(raw string, lines []string, holderName string) []models.TransactionRecord {
	if txns := tryStructuredRows(lines); len(txns) > 0 {
		return txns
	}
	return tryBlockAlignment(lines, holderName)
}

// tryStructuredRows applies the row regex to each line independently.
// A line either fully matches and yields one record or contributes
// nothing; source order is preserved.
func tryStructuredRows(lines []string) []models.TransactionRecord {
	var txns []models.TransactionRecord
	for _, line := range lines {
		m := txnRowPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		txns = append(txns, models.TransactionRecord{
			Date:     m[1],
			Details:  strings.TrimSpace(m[2]),
			Name:     m[3],
			Category: m[4],
			Amount:   m[5],
		})
	}
	return txns
}

// tryBlockAlignment reconstructs rows from a statement whose three
// visual columns flattened into three separate text blocks: a dates
// block, a details/category block, and an amounts block. The blocks are
// located independently and zipped positionally up to the shortest; a
// missing block therefore produces an empty result. The columnar layout
// carries no per-row payee, so every synthesized record gets the
// statement holder's name.
func tryBlockAlignment(lines []string, holderName string) []models.TransactionRecord {
	dates := collectDates(lines)
	details, categories := collectDetails(lines)
	amounts := collectAmounts(lines)

	n := len(dates)
	for _, l := range []int{len(details), len(categories), len(amounts)} {
		if l < n {
			n = l
		}
	}

	var txns []models.TransactionRecord
	for i := 0; i < n; i++ {
		txns = append(txns, models.TransactionRecord{
			Date:     dates[i],
			Details:  details[i],
			Name:     holderName,
			Category: categories[i],
			Amount:   amounts[i],
		})
	}
	return txns
}

// collectDates gathers whitespace-delimited date tokens from the lines
// following the "DATE" header, stopping at the first line that does not
// begin with a date.
func collectDates(lines []string) []string {
	start := indexOfExact(lines, dateBlockHeader)
	if start < 0 {
		return nil
	}
	var dates []string
	for _, line := range lines[start+1:] {
		if !datePrefixPattern.MatchString(line) {
			break
		}
		for _, field := range strings.Fields(line) {
			if dateTokenPattern.MatchString(field) {
				dates = append(dates, field)
			}
		}
	}
	return dates
}

// collectDetails gathers the lines following the "Name " header pairwise:
// odd entries are transaction details, even entries are categories.
// Collection stops at the end-of-statement marker or the amount header.
func collectDetails(lines []string) (details, categories []string) {
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, nameBlockPrefix) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, nil
	}
	for i, line := range lines[start+1:] {
		if strings.Contains(line, endOfStatement) || line == amountBlockHeader {
			break
		}
		if i%2 == 0 {
			details = append(details, line)
		} else {
			categories = append(categories, line)
		}
	}
	return details, categories
}

// collectAmounts gathers debit amounts ("1,234.56 Dr") from the lines
// following the "AMOUNT (Rs.)" header, stopping at the first line with no
// amount token. The Dr suffix and thousands separators are stripped.
func collectAmounts(lines []string) []string {
	start := indexOfExact(lines, amountBlockHeader)
	if start < 0 {
		return nil
	}
	var amounts []string
	for _, line := range lines[start+1:] {
		matches := drAmountPattern.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			break
		}
		for _, m := range matches {
			amounts = append(amounts, strings.ReplaceAll(m[1], ",", ""))
		}
	}
	return amounts
}

func indexOfExact(lines []string, marker string) int {
	for i, line := range lines {
		if line == marker {
			return i
		}
	}
	return -1
}
