package errs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolutionError(t *testing.T) {
	err := error(&ResolutionError{URL: "https://example.com/v", Err: ErrInvalidURL})

	assert.True(t, errors.Is(err, ErrInvalidURL))
	assert.Contains(t, err.Error(), "https://example.com/v")

	var re *ResolutionError
	assert.True(t, errors.As(err, &re))
	assert.Equal(t, "https://example.com/v", re.URL)
}

func TestDownloadError(t *testing.T) {
	err := error(&DownloadError{URL: "https://example.com/v", Err: context.DeadlineExceeded})

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, "download https://example.com/v: context deadline exceeded", err.Error())
}
