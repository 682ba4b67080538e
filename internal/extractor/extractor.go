package extractor

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/domain"
)

// intermediateExts is the probing order for the file yt-dlp leaves behind.
var intermediateExts = []string{".mp4", ".webm", ".m4a", ".mp3", ".ogg"}

// Extractor turns one URL into one audio file on disk.
type Extractor struct {
	downloader domain.Downloader
	converter  domain.Converter
}

// New creates an Extractor over the given download and conversion ports.
func New(d domain.Downloader, c domain.Converter) *Extractor {
	return &Extractor{downloader: d, converter: c}
}

// Extract downloads the job's URL into a temp directory, transcodes the
// result into <output-dir>/<sanitized-title>.<ext>, and returns the output
// path. The temp directory is removed regardless of outcome.
func (e *Extractor) Extract(ctx context.Context, job domain.Job) (string, error) {
	if err := os.MkdirAll(job.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("%w: create output dir: %v", domain.ErrFilesystem, err)
	}

	tempDir, err := os.MkdirTemp("", fmt.Sprintf("vvc-job-%s-*", job.ID))
	if err != nil {
		return "", fmt.Errorf("%w: create temp dir: %v", domain.ErrFilesystem, err)
	}
	defer os.RemoveAll(tempDir)

	if job.Verbose {
		log.Printf("job %s: downloading %s into %s", job.ID, job.URL, tempDir)
	}

	title, err := e.downloader.Download(ctx, job.URL, tempDir, job.Verbose)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDownload, err)
	}

	src, err := findIntermediate(tempDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDownload, err)
	}

	dst := filepath.Join(job.OutputDir, SanitizeTitle(title)+"."+job.Format.Ext())

	if job.Verbose {
		log.Printf("job %s: converting %s -> %s", job.ID, src, dst)
	}

	if err := e.converter.Convert(ctx, src, dst, job.Format, job.Verbose); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrConversion, err)
	}

	if _, err := os.Stat(dst); err != nil {
		return "", fmt.Errorf("%w: output file was not created", domain.ErrConversion)
	}

	return dst, nil
}

// findIntermediate locates the downloaded audio file in dir.
func findIntermediate(dir string) (string, error) {
	for _, ext := range intermediateExts {
		candidate := filepath.Join(dir, "temp_audio"+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("downloaded file not found: the video may be unavailable")
}
