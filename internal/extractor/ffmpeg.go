package extractor

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"

	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/domain"
)

// FFmpeg transcodes audio by invoking the ffmpeg binary.
type FFmpeg struct {
	binary string
}

// NewFFmpeg creates a converter using ffmpeg from PATH.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{binary: "ffmpeg"}
}

// Convert transcodes src into dst in the requested format.
func (f *FFmpeg) Convert(ctx context.Context, src, dst string, format domain.Format, verbose bool) error {
	args := []string{"-y", "-i", src}

	switch format {
	case domain.FormatMP3:
		args = append(args, "-codec:a", "libmp3lame", "-q:a", "2")
	default: // wav
		args = append(args, "-codec:a", "pcm_s16le", "-ar", "44100", "-ac", "2")
	}

	if !verbose {
		args = append(args, "-loglevel", "quiet")
	}
	args = append(args, dst)

	if verbose {
		log.Printf("running %s %s", f.binary, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, f.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
