package handlers

import (
	"net/http"

	"studyaid-backend/internal/services"
)

var formatDescriptions = map[string]struct{ extension, description string }{
	"application/pdf": {".pdf", "PDF Document"},
	"text/csv":        {".csv", "CSV Spreadsheet"},
	"image/jpeg":      {".jpeg", "JPEG Image"},
	"image/jpg":       {".jpg", "JPEG Image"},
	"image/png":       {".png", "PNG Image"},
}

// SupportedFormats lists the upload types that are forwarded to a backend.
func SupportedFormats(w http.ResponseWriter, r *http.Request) {
	formats := make([]map[string]string, 0, len(services.AcceptedMimeTypes))
	for _, mt := range services.AcceptedMimeTypes {
		d := formatDescriptions[mt]
		formats = append(formats, map[string]string{
			"extension":   d.extension,
			"mime_type":   mt,
			"description": d.description,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"formats": formats,
	})
}
