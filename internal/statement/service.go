package statement

import (
	"context"
	"strings"

	"github.com/fintrackr/statement-extractor/internal/models"
	"github.com/fintrackr/statement-extractor/internal/parser"
)

// TextExtractor yields raw text for a document, or a terminal error.
type TextExtractor interface {
	ExtractText(ctx context.Context, doc []byte, password string) (string, error)
}

// Service runs the full extraction pipeline: decrypt/extract text,
// segment it into lines, parse header fields and the transaction table,
// and assemble the normalized result. Invocations share no mutable
// state, so one Service handles concurrent requests.
type Service struct {
	Extractor TextExtractor
}

// Extract processes one uploaded statement. The password is trimmed here
// before any strategy sees it. The returned error is either
// models.ErrEmptyDocument or a *models.ExtractionError; heuristic parse
// misses are reported as a successful result with absent fields.
func (s *Service) Extract(ctx context.Context, doc []byte, password string) (models.StatementResult, error) {
	text, err := s.Extractor.ExtractText(ctx, doc, strings.TrimSpace(password))
	if err != nil {
		return models.StatementResult{}, err
	}

	lines := parser.SegmentLines(text)
	header := parser.ExtractHeader(text, lines)
	txns := parser.ParseTransactions(text, lines, header.HolderName)

	return parser.AssembleStatement(header, txns), nil
}
