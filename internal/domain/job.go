package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/segmentio/ksuid"
)

// Format is the target audio format.
type Format string

const (
	FormatWAV Format = "wav"
	FormatMP3 Format = "mp3"
)

// ParseFormat normalizes a user-supplied format string. A leading dot and
// mixed case are tolerated.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "wav":
		return FormatWAV, nil
	case "mp3":
		return FormatMP3, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: mp3, wav)", ErrUnsupportedFormat, s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Any youtube.com subdomain counts (www, m, music).
var youtubePattern = regexp.MustCompile(`^https?://([\w-]+\.)*(youtube\.com/(watch|shorts/|live/)|youtu\.be/)`)

// ValidateURL checks that the URL points at a supported YouTube resource.
func ValidateURL(url string) error {
	if url == "" {
		return fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}
	if !youtubePattern.MatchString(url) {
		return fmt.Errorf("%w: %s (supported: youtube.com/watch?v=..., youtu.be/..., youtube.com/shorts/...)", ErrInvalidURL, url)
	}
	return nil
}

// Job is one requested extraction. Immutable once created.
type Job struct {
	ID        string
	Index     int
	URL       string
	OutputDir string
	Format    Format
	Verbose   bool
}

// NewJob creates a Job for the URL at the given input position.
func NewJob(index int, url, outputDir string, format Format, verbose bool) Job {
	return Job{
		ID:        ksuid.New().String(),
		Index:     index,
		URL:       url,
		OutputDir: outputDir,
		Format:    format,
		Verbose:   verbose,
	}
}

// Status represents the recorded outcome of a job.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Result is the outcome of one Job.
type Result struct {
	Job        Job
	OutputPath string
	Err        error
	Duration   time.Duration
}

// Failed reports whether the job did not produce an output file. Skipped
// jobs count as failed for exit-status purposes.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Status classifies the result for reporting and the history journal.
func (r Result) Status() Status {
	switch {
	case r.Err == nil:
		return StatusCompleted
	case IsSkipped(r.Err):
		return StatusSkipped
	default:
		return StatusFailed
	}
}

// Summary is the ordered collection of all Results for one invocation,
// one per input URL, in input order.
type Summary struct {
	Results []Result
}

// Succeeded returns the number of jobs that produced an output file.
func (s *Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if !r.Failed() {
			n++
		}
	}
	return n
}

// Failed returns the number of jobs that failed, excluding skipped ones.
func (s *Summary) Failed() int {
	n := 0
	for _, r := range s.Results {
		if r.Failed() && !IsSkipped(r.Err) {
			n++
		}
	}
	return n
}

// Skipped returns the number of jobs that never ran, whether the batch
// halted after an earlier failure or was canceled.
func (s *Summary) Skipped() int {
	n := 0
	for _, r := range s.Results {
		if IsSkipped(r.Err) {
			n++
		}
	}
	return n
}

// AnyFailed reports whether the invocation should exit non-zero.
func (s *Summary) AnyFailed() bool {
	return s.Succeeded() < len(s.Results)
}

// HistoryEntry is one recorded extraction in the journal.
type HistoryEntry struct {
	ID         string
	URL        string
	Format     Format
	Status     Status
	OutputPath string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}
