// Package errortypes defines the error kinds surfaced by the summarization core
// and its collaborators.
package errortypes

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindEncoding
	KindGeneration
	KindGenerationTimeout
	KindReductionDidNotConverge
	KindMediaToolUnavailable
	KindExtraction
	KindTranscriptionBackendUnavailable
	KindTranscription
)

var kindNames = map[Kind]string{
	KindUnknown:                         "unknown",
	KindConfiguration:                   "configuration",
	KindEncoding:                        "encoding",
	KindGeneration:                      "generation",
	KindGenerationTimeout:               "generation timeout",
	KindReductionDidNotConverge:         "reduction did not converge",
	KindMediaToolUnavailable:            "media tool unavailable",
	KindExtraction:                      "extraction",
	KindTranscriptionBackendUnavailable: "transcription backend unavailable",
	KindTranscription:                   "transcription",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error carries a kind, a message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
}

// Unwrap supports errors.Is and errors.As on the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error without a cause.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around err. A nil err still yields an Error.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Configuration(format string, args ...interface{}) *Error {
	return New(KindConfiguration, format, args...)
}

func Encoding(err error, message string) *Error {
	return Wrap(KindEncoding, err, message)
}

func Generation(err error, message string) *Error {
	return Wrap(KindGeneration, err, message)
}

func GenerationTimeout(err error, message string) *Error {
	return Wrap(KindGenerationTimeout, err, message)
}

func NotConverged(format string, args ...interface{}) *Error {
	return New(KindReductionDidNotConverge, format, args...)
}

func MediaToolUnavailable(err error, message string) *Error {
	return Wrap(KindMediaToolUnavailable, err, message)
}

func Extraction(err error, message string) *Error {
	return Wrap(KindExtraction, err, message)
}

func TranscriptionBackendUnavailable(err error, message string) *Error {
	return Wrap(KindTranscriptionBackendUnavailable, err, message)
}

func Transcription(err error, message string) *Error {
	return Wrap(KindTranscription, err, message)
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err's chain contains an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
