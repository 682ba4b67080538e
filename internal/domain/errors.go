package domain

import "errors"

// ErrInvalidURL indicates a URL that is not a recognized YouTube URL.
var ErrInvalidURL = errors.New("invalid URL")

// ErrUnsupportedFormat indicates a format outside mp3/wav.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Per-job failure classes. Extraction errors wrap one of these so callers
// can tell a download problem from a conversion or filesystem one.
var (
	ErrDownload   = errors.New("download failed")
	ErrConversion = errors.New("conversion failed")
	ErrFilesystem = errors.New("filesystem failure")
)

// ErrSkipped marks a job that was never dispatched because the batch halted
// after an earlier failure.
var ErrSkipped = errors.New("not attempted: batch halted after earlier failure")

// ErrCanceled marks a job that was never dispatched because the invocation
// was canceled.
var ErrCanceled = errors.New("not attempted: canceled")

// IsSkipped reports whether the error marks an undispatched job.
func IsSkipped(err error) bool {
	return errors.Is(err, ErrSkipped) || errors.Is(err, ErrCanceled)
}
