package writer

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/fintrackr/statement-extractor/internal/models"
)

func sampleResult() *models.StatementResult {
	return &models.StatementResult{
		StatementHeader: models.StatementHeader{
			HolderName:      "JOHN A DOE",
			CardProductName: "PLATINUM REWARDS Credit Card Statement",
			StatementPeriod: "01/02/2024 - 29/02/2024",
		},
		Transactions: []models.TransactionRecord{
			{Date: "2024-02-15", Details: "Swiggy order", Name: "SWIGGY BANGALORE", Category: "DINING", Amount: "450.00"},
			{Date: "2024-02-16", Details: "Amazon purchase", Name: "AMAZON RETAIL", Category: "SHOPPING", Amount: "1299.00"},
		},
	}
}

func TestWriteWithHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "# Card Holder,JOHN A DOE") {
		t.Errorf("missing holder metadata row:\n%s", out)
	}

	r := csv.NewReader(strings.NewReader(out))
	r.FieldsPerRecord = -1 // metadata rows are shorter than transaction rows
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	// 3 metadata rows + column header + 2 transactions
	if len(records) != 6 {
		t.Errorf("expected 6 rows, got %d:\n%s", len(records), out)
	}

	last := records[len(records)-1]
	if last[0] != "2024-02-16" || last[4] != "1299.00" {
		t.Errorf("unexpected last row: %v", last)
	}
}

func TestWriteWithoutHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: false}
	if err := w.Write(&buf, sampleResult()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected column header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "Date" || records[0][4] != "Amount" {
		t.Errorf("unexpected column header: %v", records[0])
	}
}

func TestWriteEmptyStatement(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	res := &models.StatementResult{Transactions: []models.TransactionRecord{}}
	if err := w.Write(&buf, res); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	// No metadata rows (all fields empty), just the column header.
	if len(records) != 1 {
		t.Errorf("expected only the column header, got %d rows", len(records))
	}
}
