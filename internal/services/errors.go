package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies generation failures. The HTTP layer maps each kind to
// a status code.
type ErrorKind string

const (
	KindInvalidInput       ErrorKind = "INVALID_INPUT"
	KindInvalidEncoding    ErrorKind = "INVALID_ENCODING"
	KindExtractionFailure  ErrorKind = "EXTRACTION_FAILURE"
	KindBackendUnavailable ErrorKind = "BACKEND_UNAVAILABLE"
	KindMalformedOutput    ErrorKind = "MALFORMED_OUTPUT"
	KindTransportFailure   ErrorKind = "TRANSPORT_FAILURE"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidEncoding    = errors.New("invalid encoding")
	ErrExtractionFailure  = errors.New("extraction failure")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrMalformedOutput    = errors.New("malformed output")
	ErrTransportFailure   = errors.New("transport failure")
)

var sentinelByKind = map[ErrorKind]error{
	KindInvalidInput:       ErrInvalidInput,
	KindInvalidEncoding:    ErrInvalidEncoding,
	KindExtractionFailure:  ErrExtractionFailure,
	KindBackendUnavailable: ErrBackendUnavailable,
	KindMalformedOutput:    ErrMalformedOutput,
	KindTransportFailure:   ErrTransportFailure,
}

type GenerationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is lets errors.Is match a GenerationError against its kind's sentinel.
func (e *GenerationError) Is(target error) bool {
	return sentinelByKind[e.Kind] == target
}

func newGenerationError(kind ErrorKind, err error, format string, args ...interface{}) *GenerationError {
	return &GenerationError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func invalidInput(format string, args ...interface{}) error {
	return newGenerationError(KindInvalidInput, nil, format, args...)
}

func invalidEncoding(format string, args ...interface{}) error {
	return newGenerationError(KindInvalidEncoding, nil, format, args...)
}

func extractionFailure(err error, format string, args ...interface{}) error {
	return newGenerationError(KindExtractionFailure, err, format, args...)
}

func backendUnavailable(format string, args ...interface{}) error {
	return newGenerationError(KindBackendUnavailable, nil, format, args...)
}

func transportFailure(err error, format string, args ...interface{}) error {
	return newGenerationError(KindTransportFailure, err, format, args...)
}

// KindOf returns the kind of err, or "" when err is not a generation error.
func KindOf(err error) ErrorKind {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	for kind, sentinel := range sentinelByKind {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return ""
}

// MessageOf returns the user-facing message of a generation error.
func MessageOf(err error) string {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Message
	}
	return err.Error()
}
