package errs

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBatch  = errors.New("batch has no items")
	ErrBatchActive = errors.New("a batch is already running")
	ErrNoURLs      = errors.New("no URLs provided")
	ErrInvalidURL  = errors.New("invalid URL (must be http:// or https:// with a host)")
)

// ResolutionError reports that metadata for one URL could not be fetched.
type ResolutionError struct {
	URL string
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.URL, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// DownloadError reports that one item failed to download or transcode.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
