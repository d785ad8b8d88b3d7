package api

import (
	"bytes"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fintrackr/statement-extractor/internal/logger"
	"github.com/fintrackr/statement-extractor/internal/models"
	"github.com/fintrackr/statement-extractor/internal/statement"
	"github.com/fintrackr/statement-extractor/internal/store"
	"github.com/fintrackr/statement-extractor/internal/writer"
)

const version = "1.0.0"

// ExtractResponse is the JSON envelope for the extraction endpoint.
type ExtractResponse struct {
	Success     bool                    `json:"success"`
	Error       string                  `json:"error,omitempty"`
	Details     string                  `json:"details,omitempty"`
	Suggestions []string                `json:"suggestions,omitempty"`
	Statement   *models.StatementResult `json:"statement,omitempty"`
	Count       int                     `json:"count"`
	ID          int64                   `json:"id,omitempty"`
	CSV         string                  `json:"csv,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Service *statement.Service
	// Store is optional; when nil, persistence requests are rejected.
	Store          *store.Store
	MaxUploadBytes int64
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/statements/extract", h.HandleExtract)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleExtract accepts a multipart upload with a required "file" field
// and optional "password", "userId" (persist and return the generated
// statement id) and "format=csv" (include a CSV rendering) fields.
func (h *Handler) HandleExtract(c *fiber.Ctx) error {
	reqLog := logger.L.With("requestId", uuid.NewString())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest,
			"no file uploaded", "use form field 'file'", nil)
	}
	if h.MaxUploadBytes > 0 && fileHeader.Size > h.MaxUploadBytes {
		return writeError(c, fiber.StatusBadRequest,
			"uploaded file is too large", "", nil)
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest,
			"only PDF statements are supported", "", nil)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError,
			"failed to read uploaded file", err.Error(), nil)
	}
	var buf bytes.Buffer
	_, copyErr := buf.ReadFrom(f)
	f.Close()
	if copyErr != nil {
		return writeError(c, fiber.StatusInternalServerError,
			"failed to read uploaded file", copyErr.Error(), nil)
	}

	password := c.FormValue("password")
	reqLog.Info("extraction request received",
		"filename", fileHeader.Filename, "size", fileHeader.Size, "hasPassword", password != "")

	res, err := h.Service.Extract(c.Context(), buf.Bytes(), password)
	if err != nil {
		var extErr *models.ExtractionError
		switch {
		case errors.Is(err, models.ErrEmptyDocument):
			return writeError(c, fiber.StatusBadRequest,
				"uploaded file is empty", "", nil)
		case errors.As(err, &extErr):
			reqLog.Warn("extraction failed", "details", extErr.Details)
			return writeError(c, fiber.StatusUnprocessableEntity,
				extErr.Message, extErr.Details, extErr.Suggestions)
		default:
			reqLog.Error("extraction failed unexpectedly", "error", err)
			return writeError(c, fiber.StatusInternalServerError,
				"extraction failed", err.Error(), nil)
		}
	}

	resp := ExtractResponse{
		Success:   true,
		Statement: &res,
		Count:     len(res.Transactions),
	}

	if userID := c.FormValue("userId"); userID != "" {
		if h.Store == nil {
			return writeError(c, fiber.StatusServiceUnavailable,
				"persistence is not configured", "", nil)
		}
		start, end := SplitStatementPeriod(res.StatementPeriod)
		id, saveErr := h.Store.SaveStatement(c.Context(), userID, res, start, end)
		if saveErr != nil {
			reqLog.Error("failed to persist statement", "userId", userID, "error", saveErr)
			return writeError(c, fiber.StatusInternalServerError,
				"failed to persist statement", saveErr.Error(), nil)
		}
		resp.ID = id
		reqLog.Info("statement persisted", "userId", userID, "statementId", id, "transactions", resp.Count)
	}

	if c.FormValue("format") == "csv" {
		var csvBuf bytes.Buffer
		w := &writer.CSVWriter{IncludeHeader: true}
		if err := w.Write(&csvBuf, &res); err == nil {
			resp.CSV = csvBuf.String()
		} else {
			reqLog.Warn("CSV rendering failed", "error", err)
		}
	}

	return c.JSON(resp)
}

func writeError(c *fiber.Ctx, status int, msg, details string, suggestions []string) error {
	return c.Status(status).JSON(ExtractResponse{
		Success:     false,
		Error:       msg,
		Details:     details,
		Suggestions: suggestions,
	})
}
