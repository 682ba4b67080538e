package domain

import "context"

// Downloader is the driven port for fetching a URL's best audio stream into
// a directory. It returns the video title for filename derivation.
type Downloader interface {
	Download(ctx context.Context, url, dir string, verbose bool) (title string, err error)
}

// Converter is the driven port for transcoding a downloaded stream into the
// requested format at dst.
type Converter interface {
	Convert(ctx context.Context, src, dst string, format Format, verbose bool) error
}

// Journal is the driven port for the extraction history.
type Journal interface {
	Record(ctx context.Context, res Result) error
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)
	Close() error
}
