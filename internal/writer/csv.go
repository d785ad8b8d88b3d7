package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/fintrackr/statement-extractor/internal/models"
)

// CSVWriter renders an extracted statement as CSV.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the statement to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, res *models.StatementResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, res)
}

// Write writes the statement in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, res *models.StatementResult) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	// Statement metadata as comment rows
	if w.IncludeHeader {
		meta := [][2]string{
			{"# Card Holder", res.HolderName},
			{"# Card", res.CardProductName},
			{"# Card Number", res.MaskedCardNumber},
			{"# Statement Period", res.StatementPeriod},
			{"# Payment Due Date", res.PaymentDueDate},
			{"# Total Payment Due", res.TotalPaymentDue},
			{"# Minimum Payment Due", res.MinPaymentDue},
		}
		for _, m := range meta {
			if m[1] != "" {
				cw.Write([]string{m[0], m[1]})
			}
		}
	}

	header := []string{"Date", "Details", "Name", "Category", "Amount"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range res.Transactions {
		row := []string{txn.Date, txn.Details, txn.Name, txn.Category, txn.Amount}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}
