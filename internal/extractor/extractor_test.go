package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fintrackr/statement-extractor/internal/models"
)

func TestBuildAttemptsOrder(t *testing.T) {
	withPw := buildAttempts("secret")
	if len(withPw) != 3 {
		t.Fatalf("expected 3 attempts with a password, got %d", len(withPw))
	}
	wantOrder := []string{"user-password", "owner-password", "user+owner-password"}
	for i, name := range wantOrder {
		if withPw[i].name != name {
			t.Errorf("attempt %d: got %q, want %q", i, withPw[i].name, name)
		}
	}
	if got := strings.Join(withPw[0].args, " "); got != "-upw secret" {
		t.Errorf("user-password args: got %q", got)
	}
	if got := strings.Join(withPw[1].args, " "); got != "-opw secret" {
		t.Errorf("owner-password args: got %q", got)
	}

	withoutPw := buildAttempts("")
	if len(withoutPw) != 1 || withoutPw[0].name != "no-password" || len(withoutPw[0].args) != 0 {
		t.Errorf("expected a single plain attempt without a password, got %v", withoutPw)
	}
}

func TestExtractTextEmptyDocument(t *testing.T) {
	tmp := t.TempDir()
	e := &Extractor{TempDir: tmp}

	_, err := e.ExtractText(context.Background(), nil, "pw")
	if !errors.Is(err, models.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}

	// No temp file may be created for rejected input.
	entries, readErr := os.ReadDir(tmp)
	if readErr != nil {
		t.Fatalf("failed to read temp dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("expected no temp files, found %d", len(entries))
	}
}

func TestExtractTextExhaustedReportsBothFailures(t *testing.T) {
	tmp := t.TempDir()
	e := &Extractor{
		// Force every external attempt to fail regardless of environment.
		PdftotextPath: filepath.Join(tmp, "missing-binary"),
		Timeout:       5 * time.Second,
		TempDir:       tmp,
	}

	_, err := e.ExtractText(context.Background(), []byte("definitely not a pdf"), "secret")
	if err == nil {
		t.Fatal("expected terminal extraction error")
	}

	var extErr *models.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected *models.ExtractionError, got %T: %v", err, err)
	}
	if !strings.Contains(extErr.Details, "user-password") {
		t.Errorf("details missing primary attempt diagnostics: %q", extErr.Details)
	}
	if !strings.Contains(extErr.Details, "library fallback failed") {
		t.Errorf("details missing fallback diagnostics: %q", extErr.Details)
	}
	if len(extErr.Suggestions) == 0 {
		t.Error("expected at least one remediation suggestion")
	}

	// Every temp artifact must be cleaned up on the failure path.
	entries, readErr := os.ReadDir(tmp)
	if readErr != nil {
		t.Fatalf("failed to read temp dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("expected temp dir to be empty after failure, found %d entries", len(entries))
	}
}

func TestExtractTextCancelledContextCleansUp(t *testing.T) {
	tmp := t.TempDir()
	e := &Extractor{
		PdftotextPath: filepath.Join(tmp, "missing-binary"),
		TempDir:       tmp,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.ExtractText(ctx, []byte("definitely not a pdf"), ""); err == nil {
		t.Fatal("expected error for cancelled request")
	}

	entries, readErr := os.ReadDir(tmp)
	if readErr != nil {
		t.Fatalf("failed to read temp dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("expected temp dir to be empty after cancellation, found %d entries", len(entries))
	}
}

func TestIsReadableText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			"real statement text",
			"PLATINUM REWARDS Credit Card Statement\nPayment Due Date : 18/03/2024\nTotal Payment Due : 67,654.50",
			true,
		},
		{"too short", "Credit Card", false},
		{
			"binary garbage",
			strings.Repeat("\x8f\xe2\x01\xab\xcd", 40),
			false,
		},
		{
			"readable but unrecognizable",
			strings.Repeat("lorem ipsum dolor sit amet consectetur ", 5),
			false,
		},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReadableText(tt.input); got != tt.expected {
				t.Errorf("IsReadableText: got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTextQuality(t *testing.T) {
	if q := textQuality("plain ascii text 123"); q != 1.0 {
		t.Errorf("expected quality 1.0 for clean text, got %f", q)
	}
	if q := textQuality(""); q != 0 {
		t.Errorf("expected quality 0 for empty text, got %f", q)
	}
	if q := textQuality(strings.Repeat("\x8f\xe2", 50)); q > 0.5 {
		t.Errorf("expected low quality for binary garbage, got %f", q)
	}
}
