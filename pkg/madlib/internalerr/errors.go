package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrEmptyCorpus    = errors.New("corpus has no rows")
	ErrMissingColumn  = errors.New("corpus column missing")
	ErrMalformedRow   = errors.New("malformed corpus row")
	ErrAnnotator      = errors.New("annotator failure")
	ErrNoBlanks       = errors.New("no blanks selected")
	ErrInvalidMatches = errors.New("matches out of order or range")
	ErrInputClosed    = errors.New("input closed")
)
