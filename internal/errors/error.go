package errors

import (
	"fmt"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryParse    Category = "parse"
	CategoryNode     Category = "node"
	CategoryDocument Category = "document"
	CategoryConfig   Category = "config"
	CategoryPublish  Category = "publish"
	CategoryCLI      Category = "cli"
)

// kindError is a category sentinel usable with errors.Is.
type kindError string

func (k kindError) Error() string { return string(k) }

const (
	// ErrParse matches every malformed tag spec error.
	ErrParse kindError = "tag spec parse error"

	// ErrInvalidNode matches every error about a value that cannot be rendered.
	ErrInvalidNode kindError = "invalid node"
)

// Error is a structured error with a code, diagnostics and a fix suggestion.
type Error struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (parse, node, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Spec is the tag spec being parsed, for parse errors.
	Spec string

	// Trail holds the tokens consumed before the failure.
	Trail []string

	// Remainder is the unparsed rest of the tag spec.
	Remainder string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Spec != "" || len(e.Trail) > 0 || e.Remainder != "" {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Trail, "|"))
		b.WriteString("|HERE>")
		b.WriteString(e.Remainder)
		b.WriteString(")")
	} else if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Wrapped != nil {
		b.WriteString(": ")
		b.WriteString(e.Wrapped.Error())
	}
	return b.String()
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is the sentinel of this error's category.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrParse:
		return e.Category == CategoryParse
	case ErrInvalidNode:
		return e.Category == CategoryNode
	}
	return false
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with a format string.
func (e *Error) WithDetailf(format string, args ...any) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithTrail records where in a tag spec parsing stopped.
func (e *Error) WithTrail(spec string, trail []string, remainder string) *Error {
	e.Spec = spec
	e.Trail = append([]string(nil), trail...)
	e.Remainder = remainder
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// Column returns the 1-based column of the remainder inside Spec, or 0.
func (e *Error) Column() int {
	if e.Spec == "" {
		return 0
	}
	idx := len(e.Spec) - len(e.Remainder)
	if idx < 0 || !strings.HasSuffix(e.Spec, e.Remainder) {
		return 0
	}
	return idx + 1
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new Error with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	if he, ok := err.(*Error); ok {
		return he
	}
	return New(code).Wrap(err)
}

// CategoryOf returns the category of err, or "" if err carries none.
func CategoryOf(err error) Category {
	for err != nil {
		if he, ok := err.(*Error); ok {
			return he.Category
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
