package etlerrors

import (
	stdErrors "errors"
	"fmt"
)

// Code classifies ETL failures by the recovery policy applied to them.
type Code string

const (
	// CodeRowValue covers unparseable per-row values coerced to a default.
	CodeRowValue Code = "ROW_VALUE"
	// CodeSourceMissing covers absent or empty source files.
	CodeSourceMissing Code = "SOURCE_MISSING"
	// CodeSourceRead covers source files that could not be decoded at all.
	CodeSourceRead Code = "SOURCE_READ"
	// CodeCollectionWrite covers a failed write to one sink collection.
	CodeCollectionWrite Code = "COLLECTION_WRITE"
	// CodeSinkUnavailable covers a sink that cannot be reached at all.
	CodeSinkUnavailable Code = "SINK_UNAVAILABLE"
	// CodeInternal is the fallback for anything unclassified.
	CodeInternal Code = "INTERNAL"
)

// Scope names the blast radius of a failure class.
type Scope string

const (
	ScopeRow        Scope = "row"
	ScopeFile       Scope = "file"
	ScopeCollection Scope = "collection"
	ScopeRun        Scope = "run"
)

type Metadata struct {
	Scope Scope
	// Fatal failures abort the whole run; everything else degrades in place.
	Fatal     bool
	Retryable bool
}

var metadataByCode = map[Code]Metadata{
	CodeRowValue: {
		Scope: ScopeRow,
	},
	CodeSourceMissing: {
		Scope: ScopeFile,
	},
	CodeSourceRead: {
		Scope: ScopeFile,
	},
	CodeCollectionWrite: {
		Scope:     ScopeCollection,
		Retryable: true,
	},
	CodeSinkUnavailable: {
		Scope:     ScopeRun,
		Fatal:     true,
		Retryable: true,
	},
	CodeInternal: {
		Scope: ScopeRun,
		Fatal: true,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// IsFatal reports whether err (or anything it wraps) should abort the run.
func IsFatal(err error) bool {
	typed := As(err)
	if typed == nil {
		return false
	}
	return MetadataFor(typed.Code()).Fatal
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
