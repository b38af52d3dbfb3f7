package qoi

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorKind classifies a failure produced while reading or writing a QOI stream.
type ErrorKind uint8

const (
	// InsufficientData means fewer bytes were available than the format requires.
	InsufficientData ErrorKind = iota
	// BadMagic means the stream did not start with "qoif".
	BadMagic
	// BadMetadata means a header field violates the format constraints.
	BadMetadata
	// TooMuchData means more bytes were supplied than the format allows.
	TooMuchData
	// BadEndMark means the stream did not end with the 8-byte end marker.
	BadEndMark
	// IOError means an underlying read or write failed.
	IOError
)

var kindLabels = [...]string{
	InsufficientData: "insufficient data",
	BadMagic:         "bad magic value",
	BadMetadata:      "bad metadata",
	TooMuchData:      "too much data",
	BadEndMark:       "bad end mark",
	IOError:          "I/O error",
}

// Kinds returns every error kind in declaration order.
func Kinds() []ErrorKind {
	return []ErrorKind{InsufficientData, BadMagic, BadMetadata, TooMuchData, BadEndMark, IOError}
}

// String returns the fixed label of the kind.
func (k ErrorKind) String() string {
	if int(k) < len(kindLabels) {
		return kindLabels[k]
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// Retryable reports whether repeating the operation could succeed.
// Only I/O failures qualify; every other kind describes malformed input.
func (k ErrorKind) Retryable() bool {
	return k == IOError
}

// DefaultDescription is used when an error is built without a description.
const DefaultDescription = "no description provided"

// CodecError pairs an ErrorKind with a human-readable description.
//
// CodecError is an immutable value and is comparable with ==: two errors
// are equal when both Kind and description match.
type CodecError struct {
	Kind ErrorKind

	desc string
}

// New returns an error of the given kind with DefaultDescription.
func New(kind ErrorKind) CodecError {
	return NewWithDescription(kind, DefaultDescription)
}

// NewWithDescription returns an error of the given kind carrying desc verbatim.
func NewWithDescription(kind ErrorKind, desc string) CodecError {
	return CodecError{Kind: kind, desc: desc}
}

// FromIOError converts any I/O failure into an IOError with DefaultDescription.
// The message of err is not kept; use FromIOErrorMessage to preserve it.
func FromIOError(err error) CodecError {
	return New(IOError)
}

// FromIOErrorMessage converts an I/O failure into an IOError whose
// description is err's message. The readers in this package use it so the
// underlying cause reaches the user.
func FromIOErrorMessage(err error) CodecError {
	if err == nil {
		return New(IOError)
	}
	return NewWithDescription(IOError, err.Error())
}

// Description returns the additional information attached to the error.
func (e CodecError) Description() string {
	return e.desc
}

// Error formats the error as
//
//	CodecError of type "<kind>", additional info: <description>
func (e CodecError) Error() string {
	return `CodecError of type "` + e.Kind.String() + `", additional info: ` + e.desc
}

// KindOf returns the kind of the first CodecError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ce CodecError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

// IsKind reports whether err's chain contains a CodecError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func errorf(kind ErrorKind, format string, args ...interface{}) CodecError {
	return NewWithDescription(kind, fmt.Sprintf(format, args...))
}
