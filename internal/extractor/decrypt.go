package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackr/statement-extractor/internal/logger"
	"github.com/fintrackr/statement-extractor/internal/models"
)

// Extractor turns uploaded statement bytes into raw text. It runs an
// ordered list of external pdftotext invocations (password variants first
// when a password is supplied) and falls back to a password-less library
// extraction. Attempts run strictly in order, never in parallel, and the
// first readable result wins.
type Extractor struct {
	// PdftotextPath is the external text-extraction binary.
	// Defaults to "pdftotext" on PATH when empty.
	PdftotextPath string
	// Timeout bounds each external tool invocation. A timeout counts as
	// an ordinary attempt failure. Zero means no per-attempt timeout.
	Timeout time.Duration
	// TempDir overrides os.TempDir() for scratch files.
	TempDir string
}

// attempt is one entry in the ordered extraction chain: a name for
// diagnostics plus the pdftotext password flags it adds.
type attempt struct {
	name string
	args []string
}

// buildAttempts returns the ordered external extraction attempts.
// With a password: user-password mode, owner-password mode, then both.
// Without a password: a single plain attempt.
func buildAttempts(password string) []attempt {
	if password == "" {
		return []attempt{{name: "no-password"}}
	}
	return []attempt{
		{name: "user-password", args: []string{"-upw", password}},
		{name: "owner-password", args: []string{"-opw", password}},
		{name: "user+owner-password", args: []string{"-upw", password, "-opw", password}},
	}
}

// ExtractText extracts raw text from the document. The password, when
// present, must already be trimmed by the caller. Returns
// models.ErrEmptyDocument for empty input (before any temp file is
// created) and *models.ExtractionError when every attempt and the
// fallback fail.
func (e *Extractor) ExtractText(ctx context.Context, doc []byte, password string) (string, error) {
	if len(doc) == 0 {
		return "", models.ErrEmptyDocument
	}

	dir := e.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	// Collision-safe temp names: the host may process uploads concurrently.
	token := uuid.NewString()
	inPath := filepath.Join(dir, "statement-"+token+".pdf")
	outPath := filepath.Join(dir, "statement-"+token+".txt")

	if err := os.WriteFile(inPath, doc, 0o600); err != nil {
		return "", fmt.Errorf("failed to stage uploaded document: %w", err)
	}
	defer removeQuiet(inPath)
	defer removeQuiet(outPath)

	if password != "" {
		// Access probe: confirms the password opens the document.
		// A probe failure never stops the attempt chain.
		if err := probeAccess(inPath, password); err != nil {
			logger.L.Warn("password access probe failed, continuing with extraction attempts", "error", err)
		}
	}

	var diags []string
	for _, a := range buildAttempts(password) {
		text, err := e.runPdftotext(ctx, a, inPath, outPath)
		if err == nil {
			return text, nil
		}
		// A failed attempt must not leave a stale artifact for the next one.
		removeQuiet(outPath)
		diags = append(diags, fmt.Sprintf("%s: %v", a.name, err))
	}

	// Last resort: library extraction. It never receives the password, so
	// it only helps with unprotected documents when pdftotext is missing
	// or failed for environmental reasons.
	text, libErr := extractWithLibrary(inPath)
	if libErr == nil {
		return text, nil
	}

	return "", &models.ExtractionError{
		Message: "could not extract text from the statement document",
		Details: fmt.Sprintf("extraction attempts failed (%s); library fallback failed (%v)",
			strings.Join(diags, "; "), libErr),
		Suggestions: []string{
			"verify the statement password is correct",
			"verify the uploaded file is a complete, uncorrupted PDF",
			"ensure pdftotext (poppler-utils) is installed on the server",
		},
	}
}

func (e *Extractor) runPdftotext(ctx context.Context, a attempt, inPath, outPath string) (string, error) {
	bin := e.PdftotextPath
	if bin == "" {
		bin = "pdftotext"
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, a.args...), "-layout", inPath, outPath)
	cmd := exec.CommandContext(ctx, bin, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return "", fmt.Errorf("%v (output: %s)", err, msg)
		}
		return "", err
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("tool exited cleanly but produced no output file: %v", err)
	}
	text := string(data)
	if !IsReadableText(text) {
		return "", errors.New("tool produced unreadable output")
	}
	return text, nil
}

// removeQuiet deletes a temp file. Cleanup failures are logged, never
// surfaced to the caller.
func removeQuiet(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.L.Warn("failed to remove temp file", "path", path, "error", err)
	}
}
