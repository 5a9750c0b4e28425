package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"studyaid-backend/internal/models"
	"studyaid-backend/internal/services"
)

type generator interface {
	Generate(ctx context.Context, sessionID uuid.UUID, req models.GenerationRequest) (models.GenerationResult, error)
}

type GenerationHandler struct {
	generator generator
	maxBody   int64
}

func NewGenerationHandler(g *services.GenerationService, maxBody int64) *GenerationHandler {
	return &GenerationHandler{generator: g, maxBody: maxBody}
}

// Generate accepts {type, text, files:[{name, mimeType, data}]} with base64
// file payloads.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	var req models.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "Request body exceeds the upload limit", r))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	h.respond(w, r, req, nil)
}

// Upload is the multipart form of Generate: fields "type" and "text", and
// any number of "files" parts carrying raw bytes.
func (h *GenerationHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxBody {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "Request body exceeds the upload limit", r))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid multipart form", r))
		return
	}

	var uploads []models.UploadedFile
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["files"] {
			f, err := header.Open()
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Failed to read uploaded file", r))
				return
			}
			raw, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Failed to read uploaded file", r))
				return
			}

			declared := header.Header.Get("Content-Type")
			if declared == "application/octet-stream" {
				// Browsers send this when they do not know the type.
				declared = ""
			}
			uploads = append(uploads, models.UploadedFile{Name: header.Filename, MimeType: declared, Raw: raw})
		}
	}

	encoded, diags := services.EncodeAll(r.Context(), uploads)
	req := models.GenerationRequest{
		Type:  models.ContentType(r.FormValue("type")),
		Text:  r.FormValue("text"),
		Files: encoded,
	}
	h.respond(w, r, req, diags)
}

func (h *GenerationHandler) respond(w http.ResponseWriter, r *http.Request, req models.GenerationRequest, diags []models.Diagnostic) {
	sessionID, _ := uuid.Parse(r.Header.Get("X-Session-ID"))

	result, err := h.generator.Generate(r.Context(), sessionID, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if len(diags) > 0 {
		result.Diagnostics = append(diags, result.Diagnostics...)
	}

	status := http.StatusOK
	if result.Malformed() {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, result)
}
