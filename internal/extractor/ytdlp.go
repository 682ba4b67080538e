package extractor

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"strings"
)

// Best-available audio, preferring m4a to keep the ffmpeg step cheap.
const audioFormat = "bestaudio[ext=m4a]/bestaudio/best"

// YTDLP downloads audio streams by invoking the yt-dlp binary.
type YTDLP struct {
	binary string
}

// NewYTDLP creates a downloader using yt-dlp from PATH.
func NewYTDLP() *YTDLP {
	return &YTDLP{binary: "yt-dlp"}
}

// Download fetches the URL's audio stream into dir as temp_audio.<ext> and
// returns the video title.
func (y *YTDLP) Download(ctx context.Context, url, dir string, verbose bool) (string, error) {
	args := []string{
		"-f", audioFormat,
		"-o", filepath.Join(dir, "temp_audio.%(ext)s"),
		// after_move fires once the download is fully finished, so the
		// title lands after any progress output on stdout.
		"--print", "after_move:%(title)s",
		"--no-simulate",
		"--extractor-retries", "3",
		"--fragment-retries", "3",
		"--no-check-certificates",
	}
	if !verbose {
		args = append(args, "--quiet", "--no-warnings")
	}
	args = append(args, url)

	if verbose {
		log.Printf("running %s %s", y.binary, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, y.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	// Printing at the after_move stage makes the title the last non-empty
	// line of stdout, even with progress lines ahead of it.
	title := ""
	for _, line := range strings.Split(stdout.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			title = line
		}
	}
	return title, nil
}
