package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/domain"
)

// fakeDownloader implements domain.Downloader, dropping a temp_audio file
// into the download dir.
type fakeDownloader struct {
	title string
	exts  []string
	err   error
	dirs  []string
}

func (f *fakeDownloader) Download(ctx context.Context, url, dir string, verbose bool) (string, error) {
	f.dirs = append(f.dirs, dir)
	if f.err != nil {
		return "", f.err
	}
	for _, ext := range f.exts {
		path := filepath.Join(dir, "temp_audio"+ext)
		if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
			return "", err
		}
	}
	return f.title, nil
}

// fakeConverter implements domain.Converter, writing dst unless told to fail.
type fakeConverter struct {
	err      error
	skipFile bool
	lastSrc  string
	lastDst  string
}

func (f *fakeConverter) Convert(ctx context.Context, src, dst string, format domain.Format, verbose bool) error {
	f.lastSrc = src
	f.lastDst = dst
	if f.err != nil {
		return f.err
	}
	if f.skipFile {
		return nil
	}
	return os.WriteFile(dst, []byte("converted"), 0644)
}

func testJob(t *testing.T, format domain.Format) domain.Job {
	t.Helper()
	return domain.NewJob(0, "https://youtu.be/abc", t.TempDir(), format, false)
}

func TestExtractor_Extract(t *testing.T) {
	dl := &fakeDownloader{title: "My Song", exts: []string{".m4a"}}
	conv := &fakeConverter{}
	e := New(dl, conv)

	job := testJob(t, domain.FormatMP3)
	path, err := e.Extract(context.Background(), job)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := filepath.Join(job.OutputDir, "My Song.mp3")
	if path != want {
		t.Errorf("Extract() path = %q, want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
	if !strings.HasSuffix(conv.lastSrc, "temp_audio.m4a") {
		t.Errorf("converter src = %q, want temp_audio.m4a", conv.lastSrc)
	}
}

func TestExtractor_CreatesOutputDir(t *testing.T) {
	dl := &fakeDownloader{title: "x", exts: []string{".webm"}}
	e := New(dl, &fakeConverter{})

	outDir := filepath.Join(t.TempDir(), "nested", "out")
	job := domain.NewJob(0, "https://youtu.be/abc", outDir, domain.FormatWAV, false)

	if _, err := e.Extract(context.Background(), job); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if _, err := os.Stat(outDir); err != nil {
		t.Errorf("output dir not created: %v", err)
	}
}

func TestExtractor_DownloadFailureClassified(t *testing.T) {
	dl := &fakeDownloader{err: errors.New("yt-dlp failed: exit status 1")}
	e := New(dl, &fakeConverter{})

	_, err := e.Extract(context.Background(), testJob(t, domain.FormatWAV))
	if !errors.Is(err, domain.ErrDownload) {
		t.Errorf("Extract() error = %v, want wrapped ErrDownload", err)
	}
}

func TestExtractor_MissingIntermediateIsDownloadFailure(t *testing.T) {
	// Downloader succeeds but leaves no file behind.
	dl := &fakeDownloader{title: "x"}
	e := New(dl, &fakeConverter{})

	_, err := e.Extract(context.Background(), testJob(t, domain.FormatWAV))
	if !errors.Is(err, domain.ErrDownload) {
		t.Fatalf("Extract() error = %v, want wrapped ErrDownload", err)
	}
	if !strings.Contains(err.Error(), "unavailable") {
		t.Errorf("Extract() error = %q, want mention of unavailability", err)
	}
}

func TestExtractor_ConversionFailureClassified(t *testing.T) {
	dl := &fakeDownloader{title: "x", exts: []string{".mp4"}}
	conv := &fakeConverter{err: errors.New("ffmpeg failed: exit status 1")}
	e := New(dl, conv)

	_, err := e.Extract(context.Background(), testJob(t, domain.FormatMP3))
	if !errors.Is(err, domain.ErrConversion) {
		t.Errorf("Extract() error = %v, want wrapped ErrConversion", err)
	}
}

func TestExtractor_MissingOutputIsConversionFailure(t *testing.T) {
	dl := &fakeDownloader{title: "x", exts: []string{".m4a"}}
	conv := &fakeConverter{skipFile: true}
	e := New(dl, conv)

	_, err := e.Extract(context.Background(), testJob(t, domain.FormatWAV))
	if !errors.Is(err, domain.ErrConversion) {
		t.Errorf("Extract() error = %v, want wrapped ErrConversion", err)
	}
}

func TestExtractor_CleansUpTempDir(t *testing.T) {
	dl := &fakeDownloader{title: "x", exts: []string{".m4a"}}
	e := New(dl, &fakeConverter{})

	if _, err := e.Extract(context.Background(), testJob(t, domain.FormatWAV)); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(dl.dirs) != 1 {
		t.Fatalf("downloader called %d times, want 1", len(dl.dirs))
	}
	if _, err := os.Stat(dl.dirs[0]); !os.IsNotExist(err) {
		t.Errorf("temp dir %s still exists after success", dl.dirs[0])
	}

	// Same on failure.
	dl2 := &fakeDownloader{err: errors.New("boom")}
	e2 := New(dl2, &fakeConverter{})
	e2.Extract(context.Background(), testJob(t, domain.FormatWAV))
	if len(dl2.dirs) == 1 {
		if _, err := os.Stat(dl2.dirs[0]); !os.IsNotExist(err) {
			t.Errorf("temp dir %s still exists after failure", dl2.dirs[0])
		}
	}
}

func TestExtractor_IntermediateProbingOrder(t *testing.T) {
	// When several candidates exist, .mp4 wins (probing order).
	dl := &fakeDownloader{title: "x", exts: []string{".m4a", ".mp4"}}
	conv := &fakeConverter{}
	e := New(dl, conv)

	job := testJob(t, domain.FormatWAV)
	if _, err := e.Extract(context.Background(), job); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.HasSuffix(conv.lastSrc, ".mp4") {
		t.Errorf("converter src = %q, want .mp4 candidate", conv.lastSrc)
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"plain", "My Song", "My Song"},
		{"punctuation", "AC/DC: Back in Black!", "AC_DC_ Back in Black_"},
		{"kept chars", "snake_case-title 2", "snake_case-title 2"},
		{"unicode letters", "Händel Sarabande", "Händel Sarabande"},
		{"empty", "", "audio"},
		{"only punctuation", "///", "___"},
		{"whitespace", "   ", "audio"},
		{"long title", strings.Repeat("a", 80), strings.Repeat("a", 50)},
		{"trimmed", "  spaced  ", "spaced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTitle(tt.title); got != tt.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
