package service

import "errors"

var (
	ErrNoSession     = errors.New("no active session")
	ErrEntryNotFound = errors.New("entry not found")
	ErrEmptyMessage  = errors.New("message is empty")
	// ErrReportTooShort blocks report submission client-side before any
	// network call.
	ErrReportTooShort = errors.New("report content must be at least 10 characters")
	ErrNoSchool       = errors.New("school id unavailable")
)
