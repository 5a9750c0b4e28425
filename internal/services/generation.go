package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"studyaid-backend/internal/models"
)

type textExtractor interface {
	ExtractPrefix(ctx context.Context, data []byte) (string, error)
}

// RunRecorder stores run metadata. Implementations must not store content.
type RunRecorder interface {
	Create(ctx context.Context, run *models.GenerationRun) error
}

// GenerationService prepares a request (encoding checks, type filtering,
// PDF text extraction), dispatches it once and reports progress.
type GenerationService struct {
	dispatcher Dispatcher
	extractor  textExtractor
	publisher  ProgressPublisher
	runs       RunRecorder
}

// NewGenerationService wires the pipeline. publisher and runs may be nil.
func NewGenerationService(dispatcher Dispatcher, extractor *FileExtractService, publisher ProgressPublisher, runs RunRecorder) *GenerationService {
	s := &GenerationService{dispatcher: dispatcher, publisher: publisher, runs: runs}
	if extractor != nil {
		s.extractor = extractor
	}
	if s.publisher == nil {
		s.publisher = noopPublisher{}
	}
	return s
}

// Generate serves one request. Per-file problems are returned as
// diagnostics on the result; only request-level failures are errors.
// sessionID may be uuid.Nil, in which case no progress is published.
func (s *GenerationService) Generate(ctx context.Context, sessionID uuid.UUID, req models.GenerationRequest) (models.GenerationResult, error) {
	start := time.Now()
	run := &models.GenerationRun{
		ID:        uuid.New(),
		Type:      req.Type,
		Backend:   s.dispatcher.Name(),
		FileCount: len(req.Files),
	}

	t, ok := models.ParseContentType(string(req.Type))
	if !ok {
		return models.GenerationResult{}, invalidInput("Invalid type")
	}
	if strings.TrimSpace(req.Text) == "" && len(req.Files) == 0 {
		return models.GenerationResult{}, invalidInput("No input provided")
	}

	s.status(ctx, sessionID, run.ID, 1, "Preparing files")
	files, diags := NormalizeAll(ctx, req.Files)
	files, dropped := filterAccepted(files)
	diags = append(diags, dropped...)

	text := req.Text
	accepts := s.dispatcher.AcceptsAttachments()
	if !accepts {
		s.status(ctx, sessionID, run.ID, 2, "Extracting document text")
		var extracted []string
		var extractDiags []models.Diagnostic
		files, extracted, extractDiags = s.extractDocuments(ctx, files)
		diags = append(diags, extractDiags...)
		text = appendExtracted(text, extracted)
		for _, f := range files {
			diags = append(diags, models.Diagnostic{
				File:    f.Name,
				Code:    "ATTACHMENT_NOT_SENT",
				Message: "this backend does not accept attachments; the file was not sent",
			})
		}
	}
	run.DroppedFiles = len(diags)

	if strings.TrimSpace(text) == "" && (!accepts || len(files) == 0) {
		return models.GenerationResult{}, invalidInput("No usable input after preparing files")
	}

	s.status(ctx, sessionID, run.ID, 3, "Generating")
	result, err := s.dispatcher.Dispatch(ctx, models.GenerationRequest{Type: t, Text: text, Files: files})
	run.DurationMillis = time.Since(start).Milliseconds()
	if err != nil {
		log.Printf("generate %s via %s failed: %v", t, s.dispatcher.Name(), err)
		code := string(KindOf(err))
		run.Status = models.RunStatusFailed
		run.ErrorCode = &code
		s.record(ctx, run)
		s.publish(ctx, sessionID, models.WSMessage{
			Type:    "error",
			Payload: models.ErrorEvent{RunID: run.ID, ErrorCode: code, ErrorMessage: MessageOf(err)},
		})
		return models.GenerationResult{}, err
	}

	if t == models.ContentQuizzes && !result.Malformed() {
		diags = append(diags, QuizDiagnostics(result.Quizzes)...)
	}
	result.Diagnostics = append(result.Diagnostics, diags...)

	run.Status = models.RunStatusCompleted
	if result.Malformed() {
		run.Status = models.RunStatusMalformed
		code := string(KindMalformedOutput)
		run.ErrorCode = &code
	}
	run.ItemCount = result.ItemCount()
	s.record(ctx, run)

	s.publish(ctx, sessionID, models.WSMessage{
		Type: "completed",
		Payload: models.CompletedEvent{
			RunID:      run.ID,
			ResultType: t,
			ItemCount:  run.ItemCount,
			Malformed:  result.Malformed(),
		},
	})
	return result, nil
}

func (s *GenerationService) status(ctx context.Context, sessionID, runID uuid.UUID, step int, name string) {
	s.publish(ctx, sessionID, models.WSMessage{
		Type:    "status_update",
		Payload: models.StatusUpdate{RunID: runID, Step: step, StepName: name},
	})
}

func (s *GenerationService) publish(ctx context.Context, sessionID uuid.UUID, msg models.WSMessage) {
	if sessionID == uuid.Nil {
		return
	}
	s.publisher.Publish(ctx, sessionID, msg)
}

func (s *GenerationService) record(ctx context.Context, run *models.GenerationRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Create(ctx, run); err != nil {
		log.Printf("failed to record generation run %s: %v", run.ID, err)
	}
}

// extractDocuments pulls text out of every PDF concurrently. PDFs are removed
// from the returned file list whether or not extraction worked; other files
// are kept in order. Extracted text is returned in file order.
func (s *GenerationService) extractDocuments(ctx context.Context, files []models.EncodedFile) ([]models.EncodedFile, []string, []models.Diagnostic) {
	texts := make([]string, len(files))
	errs := make([]error, len(files))
	rest := make([]models.EncodedFile, 0, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		if f.MimeType != pdfMimeType {
			rest = append(rest, f)
			continue
		}
		if s.extractor == nil {
			errs[i] = extractionFailure(nil, "no document extractor configured")
			continue
		}
		i, f := i, f
		g.Go(func() error {
			data, err := DecodeFile(f)
			if err != nil {
				errs[i] = err
				return nil
			}
			texts[i], errs[i] = s.extractor.ExtractPrefix(gctx, data)
			return nil
		})
	}
	_ = g.Wait()

	var extracted []string
	var diags []models.Diagnostic
	for i, f := range files {
		if f.MimeType != pdfMimeType {
			continue
		}
		if errs[i] != nil {
			log.Printf("extract %s: %v", f.Name, errs[i])
			diags = append(diags, diagnosticFor(f.Name, KindExtractionFailure, errs[i]))
			continue
		}
		extracted = append(extracted, texts[i])
	}
	return rest, extracted, diags
}

func appendExtracted(text string, extracted []string) string {
	if len(extracted) == 0 {
		return text
	}
	parts := make([]string, 0, len(extracted)+1)
	if strings.TrimSpace(text) != "" {
		parts = append(parts, text)
	}
	parts = append(parts, extracted...)
	return strings.Join(parts, "\n\n")
}

func filterAccepted(files []models.EncodedFile) ([]models.EncodedFile, []models.Diagnostic) {
	kept := make([]models.EncodedFile, 0, len(files))
	var diags []models.Diagnostic
	for _, f := range files {
		if !IsAcceptedMimeType(f.MimeType) {
			diags = append(diags, models.Diagnostic{
				File:    f.Name,
				Code:    "UNSUPPORTED_TYPE",
				Message: "file type " + f.MimeType + " is not supported",
			})
			continue
		}
		kept = append(kept, f)
	}
	return kept, diags
}
