package download

import (
	"context"

	"github.com/ytget/yt-batch/internal/catalog"
	"github.com/ytget/yt-batch/internal/model"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go

// Request describes one item to fetch
type Request struct {
	URL            string
	DestinationDir string
	Quality        catalog.Quality
	Format         catalog.Format
	SpeedLimit     int64 // bytes/sec, 0 = unlimited
}

// ProgressSink receives incremental progress for the request being fetched
type ProgressSink func(model.Progress)

// Fetcher defines the download capability. Fetch blocks until the media is
// written (and transcoded where needed) or fails.
type Fetcher interface {
	Fetch(ctx context.Context, req Request, sink ProgressSink) error
}
