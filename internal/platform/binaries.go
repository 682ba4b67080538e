package platform

import (
	"fmt"
	"os/exec"
)

// RequiredBinaries lists the external tools every extraction needs.
var RequiredBinaries = []string{"yt-dlp", "ffmpeg"}

var installHints = map[string]string{
	"yt-dlp": "pip install yt-dlp (or see https://github.com/yt-dlp/yt-dlp)",
	"ffmpeg": "brew install ffmpeg (macOS) or sudo apt install ffmpeg (Ubuntu)",
}

// ValidateDependencies checks that all required binaries are on PATH. Run
// once per invocation, before any job starts.
func ValidateDependencies() error {
	for _, bin := range RequiredBinaries {
		if _, err := exec.LookPath(bin); err != nil {
			if hint, ok := installHints[bin]; ok {
				return fmt.Errorf("%s not found in PATH. Please install: %s", bin, hint)
			}
			return fmt.Errorf("%s not found in PATH", bin)
		}
	}
	return nil
}
