package upload

import "errors"

// Validation failures detected before any byte reaches a storage backend.
// Each maps to its own client-facing message so UIs can give specific
// guidance (wrong type vs. too large vs. too many).
var (
	ErrMissingFile     = errors.New("no file uploaded")
	ErrUnsupportedType = errors.New("only image files are allowed")
	ErrFileTooLarge    = errors.New("file too large")
	ErrTooManyFiles    = errors.New("too many files")
	ErrUnexpectedField = errors.New("unexpected file field")
)
