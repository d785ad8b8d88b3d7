package extractor

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractWithLibrary extracts text without a password using the pure-Go
// PDF library. It tries row-based extraction first (best layout
// preservation for the columnar parsers), then whole-document plain text.
func extractWithLibrary(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(path)
	if openErr != nil {
		return "", openErr
	}
	defer f.Close()

	if r.NumPage() == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	if rowText := extractByRow(r); IsReadableText(rowText) {
		return rowText, nil
	}

	if plain := extractPlainText(r); IsReadableText(plain) {
		return plain, nil
	}

	return "", fmt.Errorf("no readable text could be extracted; the document may be image-based or password-protected")
}

// extractByRow reconstructs lines from row-grouped text fragments.
func extractByRow(r *pdf.Reader) string {
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return strings.Join(pages, "\n")
}

// extractPlainText is the whole-document extraction path.
func extractPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
