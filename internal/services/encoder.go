package services

import (
	"context"
	"encoding/base64"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"studyaid-backend/internal/models"
)

const (
	octetStream = "application/octet-stream"
	pdfMimeType = "application/pdf"
)

var mimeByExtension = map[string]string{
	"pdf":  pdfMimeType,
	"txt":  "text/plain",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"mp4":  "video/mp4",
}

// AcceptedMimeTypes are the upload types forwarded to a backend. Anything
// else is dropped before dispatch.
var AcceptedMimeTypes = []string{
	pdfMimeType,
	"text/csv",
	"image/jpeg",
	"image/jpg",
	"image/png",
}

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)

// IsValidBase64 is a shape check, not a full decode: non-empty, standard
// alphabet with at most two trailing '=', and a length that is not 1 mod 4.
func IsValidBase64(s string) bool {
	if s == "" || len(s)%4 == 1 {
		return false
	}
	return base64Pattern.MatchString(s)
}

// InferMimeType maps a filename's extension to a MIME type.
func InferMimeType(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if mt, ok := mimeByExtension[ext]; ok {
		return mt
	}
	return octetStream
}

// ResolveMimeType trusts a declared type over the filename. Parameters such
// as "; charset=binary" are dropped.
func ResolveMimeType(declared, filename string) string {
	if d := mediaType(declared); d != "" {
		return d
	}
	return InferMimeType(filename)
}

func mediaType(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(s); err == nil {
		return mt
	}
	if semi := strings.IndexByte(s, ';'); semi >= 0 {
		s = s[:semi]
	}
	return strings.ToLower(strings.TrimSpace(s))
}

func IsAcceptedMimeType(mt string) bool {
	mt = mediaType(mt)
	for _, a := range AcceptedMimeTypes {
		if mt == a {
			return true
		}
	}
	return false
}

// EncodeFile turns raw upload bytes into a bare base64 payload.
func EncodeFile(f models.UploadedFile) (models.EncodedFile, error) {
	if len(f.Raw) == 0 {
		return models.EncodedFile{}, invalidEncoding("%s: file is empty", f.Name)
	}
	return finishEncoding(f.Name, f.MimeType, base64.StdEncoding.EncodeToString(f.Raw))
}

// NormalizeEncodedFile validates a payload that arrived already encoded,
// stripping a data-URL header and whitespace when present.
func NormalizeEncodedFile(f models.EncodedFile) (models.EncodedFile, error) {
	return finishEncoding(f.Name, f.MimeType, f.Data)
}

func finishEncoding(name, declared, data string) (models.EncodedFile, error) {
	payload, hint := splitDataURL(data)
	payload = stripWhitespace(payload)
	if payload == "" {
		return models.EncodedFile{}, invalidEncoding("%s: no payload could be extracted", name)
	}
	if !IsValidBase64(payload) {
		return models.EncodedFile{}, invalidEncoding("%s: payload is not valid base64", name)
	}
	if strings.TrimSpace(declared) == "" {
		declared = hint
	}
	return models.EncodedFile{
		Name:     name,
		MimeType: ResolveMimeType(declared, name),
		Data:     payload,
	}, nil
}

// splitDataURL returns the payload after a "data:<mime>;base64," header and
// the MIME type named in it.
func splitDataURL(s string) (payload, mimeHint string) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(strings.ToLower(s), "data:") {
		return s, ""
	}
	comma := strings.IndexByte(s, ',')
	if comma < 0 {
		return "", ""
	}
	header := s[len("data:"):comma]
	if semi := strings.IndexByte(header, ';'); semi >= 0 {
		mimeHint = header[:semi]
	} else {
		mimeHint = header
	}
	return s[comma+1:], strings.TrimSpace(mimeHint)
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// DecodeFile returns the bytes of an encoded file. Padding is optional.
func DecodeFile(f models.EncodedFile) ([]byte, error) {
	b, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(f.Data, "="))
	if err != nil {
		return nil, invalidEncoding("%s: payload could not be decoded", f.Name)
	}
	return b, nil
}

// EncodeAll encodes files concurrently. The output keeps input order; a file
// that fails is left out and reported as a diagnostic.
func EncodeAll(ctx context.Context, files []models.UploadedFile) ([]models.EncodedFile, []models.Diagnostic) {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return fanOut(ctx, names, func(i int) (models.EncodedFile, error) {
		return EncodeFile(files[i])
	})
}

// NormalizeAll is EncodeAll for payloads that are already base64.
func NormalizeAll(ctx context.Context, files []models.EncodedFile) ([]models.EncodedFile, []models.Diagnostic) {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return fanOut(ctx, names, func(i int) (models.EncodedFile, error) {
		return NormalizeEncodedFile(files[i])
	})
}

func fanOut(ctx context.Context, names []string, fn func(i int) (models.EncodedFile, error)) ([]models.EncodedFile, []models.Diagnostic) {
	files := make([]models.EncodedFile, len(names))
	errs := make([]error, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i := range names {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			files[i], errs[i] = fn(i)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.EncodedFile, 0, len(names))
	var diags []models.Diagnostic
	for i, err := range errs {
		if err != nil {
			diags = append(diags, diagnosticFor(names[i], KindInvalidEncoding, err))
			continue
		}
		out = append(out, files[i])
	}
	return out, diags
}

func diagnosticFor(file string, fallback ErrorKind, err error) models.Diagnostic {
	kind := KindOf(err)
	if kind == "" {
		kind = fallback
	}
	return models.Diagnostic{File: file, Code: string(kind), Message: MessageOf(err)}
}
