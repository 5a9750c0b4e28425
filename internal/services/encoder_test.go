package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"studyaid-backend/internal/models"
)

func TestIsValidBase64(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"padded", "aGVsbG8=", true},
		{"double padded", "aGk=", true},
		{"unpadded length 2 mod 4", "aGVsbG8", true},
		{"no padding needed", "aGVsbG8h", true},
		{"plus and slash", "ab+/", true},
		{"empty", "", false},
		{"length 1 mod 4", "aGVsb", false},
		{"three pads", "aG===", false},
		{"padding in the middle", "aG=s", false},
		{"url alphabet", "ab-_", false},
		{"whitespace", "aGVs bG8=", false},
		{"only padding", "====", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidBase64(tc.in); got != tc.want {
				t.Errorf("IsValidBase64(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsValidBase64_AcceptsStdEncodings(t *testing.T) {
	for n := 1; n < 64; n++ {
		raw := bytes.Repeat([]byte{byte(n), 0xfe, 0x01}, n)[:n]
		s := base64.StdEncoding.EncodeToString(raw)
		if !IsValidBase64(s) {
			t.Fatalf("expected std encoding of %d bytes to be valid: %q", n, s)
		}
	}
}

func TestInferMimeType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"notes.pdf", "application/pdf"},
		{"NOTES.PDF", "application/pdf"},
		{"readme.txt", "text/plain"},
		{"essay.doc", "application/msword"},
		{"essay.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"diagram.png", "image/png"},
		{"anim.gif", "image/gif"},
		{"pic.webp", "image/webp"},
		{"lecture.mp3", "audio/mpeg"},
		{"lecture.wav", "audio/wav"},
		{"lecture.mp4", "video/mp4"},
		{"data.xyz", "application/octet-stream"},
		{"no-extension", "application/octet-stream"},
		{"archive.tar.gz", "application/octet-stream"},
	}

	for _, tc := range tests {
		t.Run(tc.filename, func(t *testing.T) {
			if got := InferMimeType(tc.filename); got != tc.want {
				t.Errorf("InferMimeType(%q) = %q, want %q", tc.filename, got, tc.want)
			}
		})
	}
}

func TestResolveMimeType_DeclaredWins(t *testing.T) {
	if got := ResolveMimeType("text/csv", "scores.pdf"); got != "text/csv" {
		t.Fatalf("expected declared type, got %q", got)
	}
	if got := ResolveMimeType("  ", "scores.pdf"); got != "application/pdf" {
		t.Fatalf("expected inferred type, got %q", got)
	}
}

func TestEncodeFile_RoundTrip(t *testing.T) {
	raw := []byte("%PDF-1.4 lecture notes \x00\xff")
	enc, err := EncodeFile(models.UploadedFile{Name: "notes.pdf", Raw: raw})
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	if enc.MimeType != "application/pdf" {
		t.Fatalf("expected inferred pdf type, got %q", enc.MimeType)
	}

	decoded, err := DecodeFile(enc)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if !bytes.Equal(decoded, raw) {
		t.Fatalf("round trip mismatch: got %q", decoded)
	}
}

func TestEncodeFile_EmptyIsInvalidEncoding(t *testing.T) {
	_, err := EncodeFile(models.UploadedFile{Name: "empty.pdf"})
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestNormalizeEncodedFile_StripsDataURL(t *testing.T) {
	in := models.EncodedFile{
		Name: "scan",
		Data: "data:image/png;base64,iVBO\nRw0K",
	}
	out, err := NormalizeEncodedFile(in)
	if err != nil {
		t.Fatalf("NormalizeEncodedFile: %v", err)
	}
	if out.Data != "iVBORw0K" {
		t.Fatalf("expected bare payload, got %q", out.Data)
	}
	if out.MimeType != "image/png" {
		t.Fatalf("expected mime from data URL header, got %q", out.MimeType)
	}
}

func TestNormalizeEncodedFile_DeclaredBeatsDataURL(t *testing.T) {
	out, err := NormalizeEncodedFile(models.EncodedFile{
		Name:     "scan.png",
		MimeType: "image/jpeg",
		Data:     "data:image/png;base64,iVBORw0K",
	})
	if err != nil {
		t.Fatalf("NormalizeEncodedFile: %v", err)
	}
	if out.MimeType != "image/jpeg" {
		t.Fatalf("expected declared type, got %q", out.MimeType)
	}
}

func TestNormalizeEncodedFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"header only", "data:application/pdf;base64,"},
		{"header without comma", "data:application/pdf;base64"},
		{"bad characters", "not*base64!"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeEncodedFile(models.EncodedFile{Name: "f.pdf", Data: tc.data})
			if !errors.Is(err, ErrInvalidEncoding) {
				t.Fatalf("expected ErrInvalidEncoding, got %v", err)
			}
		})
	}
}

func TestEncodeAll_KeepsOrderAndIsolatesFailures(t *testing.T) {
	files := []models.UploadedFile{
		{Name: "a.pdf", Raw: []byte("first")},
		{Name: "broken.pdf"},
		{Name: "c.png", Raw: []byte("third")},
		{Name: "d.txt", Raw: []byte("fourth")},
	}

	out, diags := EncodeAll(context.Background(), files)

	if len(out) != 3 {
		t.Fatalf("expected 3 encoded files, got %d", len(out))
	}
	for i, want := range []string{"a.pdf", "c.png", "d.txt"} {
		if out[i].Name != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, out[i].Name)
		}
	}
	if len(diags) != 1 || diags[0].File != "broken.pdf" || diags[0].Code != string(KindInvalidEncoding) {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
}

func TestIsAcceptedMimeType(t *testing.T) {
	for _, mt := range []string{"application/pdf", "text/csv", "image/jpeg", "image/jpg", "IMAGE/PNG"} {
		if !IsAcceptedMimeType(mt) {
			t.Errorf("expected %q to be accepted", mt)
		}
	}
	for _, mt := range []string{"text/plain", "audio/mpeg", "application/octet-stream", ""} {
		if IsAcceptedMimeType(mt) {
			t.Errorf("expected %q to be rejected", mt)
		}
	}
}

func TestResolveMimeType_DropsParameters(t *testing.T) {
	cases := map[string]string{
		"application/pdf; charset=binary": "application/pdf",
		"Image/PNG ; name=x.png":          "image/png",
		"text/csv;":                       "text/csv",
	}
	for declared, want := range cases {
		if got := ResolveMimeType(declared, "upload.bin"); got != want {
			t.Errorf("ResolveMimeType(%q) = %q, want %q", declared, got, want)
		}
	}

	f, err := NormalizeEncodedFile(models.EncodedFile{
		Name:     "notes.pdf",
		MimeType: "application/pdf; charset=binary",
		Data:     base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsAcceptedMimeType(f.MimeType) {
		t.Fatalf("expected %q to be accepted", f.MimeType)
	}
}
