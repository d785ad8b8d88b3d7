package parser

import (
	"strings"
	"time"

	"github.com/fintrackr/statement-extractor/internal/models"
)

// AssembleStatement merges the extracted header and transaction list into
// the final result and performs the persistence-handoff normalization:
// thousands separators are stripped from currency fields and DD/MM/YYYY
// dates become ISO calendar dates. A date that does not parse as a valid
// calendar date becomes absent rather than an error.
func AssembleStatement(header models.StatementHeader, txns []models.TransactionRecord) models.StatementResult {
	header.CreditLimit = cleanAmount(header.CreditLimit)
	header.AvailableCreditLimit = cleanAmount(header.AvailableCreditLimit)
	header.AvailableCashLimit = cleanAmount(header.AvailableCashLimit)
	header.TotalPaymentDue = cleanAmount(header.TotalPaymentDue)
	header.MinPaymentDue = cleanAmount(header.MinPaymentDue)

	header.PaymentDueDate = NormalizeDate(header.PaymentDueDate)
	header.StatementDate = NormalizeDate(header.StatementDate)

	for i := range txns {
		txns[i].Amount = cleanAmount(txns[i].Amount)
		txns[i].Date = NormalizeDate(txns[i].Date)
	}
	if txns == nil {
		// An empty table is a valid outcome and must marshal to [], not null.
		txns = []models.TransactionRecord{}
	}

	return models.StatementResult{
		StatementHeader: header,
		Transactions:    txns,
	}
}

// cleanAmount strips thousands separators from a currency string.
func cleanAmount(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// NormalizeDate converts a DD/MM/YYYY (or DD-MM-YYYY) date to YYYY-MM-DD.
// Invalid or empty input yields "".
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range []string{"02/01/2006", "02-01-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
