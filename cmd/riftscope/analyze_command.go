package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"riftscope/internal/frame"
	"riftscope/internal/pipeline"
)

// fileSource serves frames from local image files, treating the job URL as
// a path. It stands in for a stream downloader, which lives outside this
// tool.
type fileSource struct{}

func (fileSource) Frame(_ context.Context, url string, _ time.Duration) ([]byte, error) {
	return fileSource{}.read(url)
}

func (fileSource) read(path string) ([]byte, error) {
	data, err := os.ReadFile(strings.TrimPrefix(path, "file://"))
	if err != nil {
		return nil, fmt.Errorf("read frame file: %w", err)
	}
	return data, nil
}

var _ frame.Source = fileSource{}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var overlayPath, scoreboardPath, framesFlag, timesFlag string

	cmd := &cobra.Command{
		Use:   "analyze <title>",
		Short: "Run the analysis pipeline over a list of frame files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			jobs, err := buildJobs(args[0], framesFlag, timesFlag)
			if err != nil {
				return err
			}

			overlay, err := ctx.loadTemplate(overlayPath, overlayTemplate)
			if err != nil {
				return err
			}
			scoreboard, err := ctx.loadTemplate(scoreboardPath, scoreboardTemplate)
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}

			manager, err := pipeline.NewManager(cfg, store, fileSource{}, overlay, scoreboard, ctx.ensureLogger())
			if err != nil {
				return err
			}
			if err := manager.Start(cmd.Context()); err != nil {
				return err
			}
			defer manager.Stop()

			for _, job := range jobs {
				if err := manager.Enqueue(cmd.Context(), job); err != nil {
					return err
				}
			}
			if err := waitForDrain(cmd.Context(), manager, len(jobs)); err != nil {
				return err
			}

			st := manager.Status()
			fmt.Fprintf(cmd.OutOrStdout(), "Processed %d frames, %d failed\n", st.Processed, st.Failed)
			if st.Failed > 0 && st.LastError != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Last error: %s\n", st.LastError)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&overlayPath, "overlay-template", "", "Resource bar ROI template file")
	cmd.Flags().StringVar(&scoreboardPath, "hud-template", "", "Scoreboard ROI template file")
	cmd.Flags().StringVar(&framesFlag, "frames", "", "Comma separated frame image files")
	cmd.Flags().StringVar(&timesFlag, "times", "", "Comma separated match timestamps in seconds (parallel to --frames)")
	cmd.MarkFlagRequired("frames")
	return cmd
}

func buildJobs(match, framesFlag, timesFlag string) ([]pipeline.Job, error) {
	frames := splitList(framesFlag)
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frame files given")
	}
	times := splitList(timesFlag)
	if len(times) > 0 && len(times) != len(frames) {
		return nil, fmt.Errorf("--times lists %d entries for %d frames", len(times), len(frames))
	}

	jobs := make([]pipeline.Job, len(frames))
	for i, path := range frames {
		job := pipeline.Job{Match: match, URL: path}
		if len(times) > 0 {
			seconds, err := strconv.Atoi(times[i])
			if err != nil {
				return nil, fmt.Errorf("invalid timestamp %q: %w", times[i], err)
			}
			job.Timestamp = time.Duration(seconds) * time.Second
		}
		jobs[i] = job
	}
	return jobs, nil
}

func waitForDrain(ctx context.Context, manager *pipeline.Manager, total int) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if st := manager.Status(); st.Processed+st.Failed >= total {
				return nil
			}
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
