package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/config"
	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/domain"
	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/extractor"
	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/history"
	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/platform"
	"github.com/aquadee4433/VIdeoVoiceCapturer/internal/scheduler"
)

// Exit codes.
const (
	ExitSuccess    = 0
	ExitJobFailure = 1
	ExitUsage      = 2
)

// errJobsFailed signals a non-zero exit after the summary has been printed.
var errJobsFailed = errors.New("one or more jobs failed")

// usageError marks argument problems detected before any job starts.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type options struct {
	outputDir       string
	format          string
	verbose         bool
	jobs            int
	continueOnError bool
	noHistory       bool
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errJobsFailed) {
		fmt.Fprintf(os.Stderr, "✗ Error: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitJobFailure
}

// NewRootCmd builds the vvc command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "vvc URL [URL ...]",
		Short: "Extract audio from YouTube videos",
		Long: `Extract audio from YouTube videos.

Downloads the audio track of each URL with yt-dlp and converts it to
WAV or MP3 with ffmpeg.

Example:

  vvc "https://youtube.com/watch?v=..." -o ./output -f mp3`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return &usageError{errors.New("requires at least one URL")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVarP(&opts.outputDir, "output", "o", "", "output directory for audio files")
	root.Flags().StringVarP(&opts.format, "format", "f", "", "output audio format (mp3 or wav)")
	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	root.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "number of URLs to process in parallel")
	root.Flags().BoolVar(&opts.continueOnError, "continue-on-error", false, "keep processing remaining URLs after a failure")
	root.Flags().BoolVar(&opts.noHistory, "no-history", false, "do not record results in the extraction history")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})

	root.AddCommand(newHistoryCmd())
	return root
}

func run(cmd *cobra.Command, urls []string, opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return &usageError{err}
	}

	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	outputDir = config.ExpandPath(outputDir)

	formatArg := opts.format
	if formatArg == "" {
		formatArg = cfg.Format
	}
	format, err := domain.ParseFormat(formatArg)
	if err != nil {
		return &usageError{err}
	}

	workers := opts.jobs
	if !cmd.Flags().Changed("jobs") {
		workers = cfg.Jobs
	}
	if workers < 1 {
		return &usageError{fmt.Errorf("jobs must be a positive integer, got %d", workers)}
	}

	continueOnError := opts.continueOnError
	if !cmd.Flags().Changed("continue-on-error") {
		continueOnError = cfg.ContinueOnError
	}

	for _, url := range urls {
		if err := domain.ValidateURL(url); err != nil {
			return &usageError{err}
		}
	}

	if !opts.verbose {
		log.SetOutput(io.Discard)
	}

	if err := platform.ValidateDependencies(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	ctx := cmd.Context()

	var journal domain.Journal
	if cfg.HistoryEnabled() && !opts.noHistory {
		repo, err := history.New(config.DefaultHistoryPath())
		if err != nil {
			// A broken journal never blocks extraction.
			fmt.Fprintf(errOut, "warning: history disabled: %v\n", err)
		} else {
			journal = repo
			defer repo.Close()
		}
	}

	jobs := make([]domain.Job, len(urls))
	for i, url := range urls {
		jobs[i] = domain.NewJob(i, url, outputDir, format, opts.verbose)
		if opts.verbose {
			log.Printf("job %s: queued %s", jobs[i].ID, url)
		}
	}

	ext := extractor.New(extractor.NewYTDLP(), extractor.NewFFmpeg())
	sched := scheduler.New(ext, workers, continueOnError)
	sched.OnResult(func(res domain.Result) {
		switch res.Status() {
		case domain.StatusCompleted:
			fmt.Fprintf(out, "✓ Saved: %s\n", res.OutputPath)
		case domain.StatusSkipped:
			fmt.Fprintf(errOut, "- Skipped: %s\n", res.Job.URL)
		default:
			fmt.Fprintf(errOut, "✗ Error: %s: %v\n", res.Job.URL, res.Err)
		}
		if journal != nil {
			if err := journal.Record(ctx, res); err != nil {
				fmt.Fprintf(errOut, "warning: failed to record history: %v\n", err)
			}
		}
	})

	summary := sched.Run(ctx, jobs)

	if skipped := summary.Skipped(); skipped > 0 {
		fmt.Fprintf(out, "Done: %d succeeded, %d failed, %d skipped\n",
			summary.Succeeded(), summary.Failed(), skipped)
	} else {
		fmt.Fprintf(out, "Done: %d succeeded, %d failed\n",
			summary.Succeeded(), summary.Failed())
	}

	if summary.AnyFailed() {
		return errJobsFailed
	}
	return nil
}
