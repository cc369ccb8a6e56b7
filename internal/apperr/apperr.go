// Package apperr defines the error kinds shared by every pipeline stage.
//
// Each stage returns an [*Error] whose Kind is one of the sentinels below, so
// callers can branch with errors.Is(err, apperr.ErrEncode) while still
// reaching the underlying cause (e.g. fs.ErrNotExist or context.Canceled).
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. All are terminal for a run.
var (
	ErrNotFound   = errors.New("input not found")
	ErrDecode     = errors.New("cannot decode image")
	ErrExtraction = errors.New("frame extraction failed")
	ErrTranscode  = errors.New("frame transcode failed")
	ErrEncode     = errors.New("encode failed")
	ErrReport     = errors.New("report write failed")
)

// Error is a stage failure. Format is set only for ErrEncode (gif, webp, mp4).
type Error struct {
	Kind   error
	Op     string
	Format string
	Path   string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Format != "" {
		msg = e.Format + " " + msg
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New builds an *Error of the given kind.
func New(kind error, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// Encode builds an ErrEncode for one output format.
func Encode(format, path string, err error) *Error {
	return &Error{Kind: ErrEncode, Op: "encode", Format: format, Path: path, Err: err}
}

// Encodef is Encode with a formatted cause.
func Encodef(format, path, msg string, args ...interface{}) *Error {
	return Encode(format, path, fmt.Errorf(msg, args...))
}

// KindOf returns the sentinel kind carried by err, or nil.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
