package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"riftscope/internal/timeline"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Match timeline operations",
	}

	matchCmd.AddCommand(newMatchStartCommand(ctx))
	matchCmd.AddCommand(newMatchSnapshotCommand(ctx))
	matchCmd.AddCommand(newMatchEndCommand(ctx))
	matchCmd.AddCommand(newMatchShowCommand(ctx))
	matchCmd.AddCommand(newMatchListCommand(ctx))

	return matchCmd
}

func newMatchStartCommand(ctx *commandContext) *cobra.Command {
	var blueName, redName, blueChamps, redChamps string

	cmd := &cobra.Command{
		Use:   "start <title>",
		Short: "Create (or reset) a match timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}

			blue, err := parseChampions(blueChamps)
			if err != nil {
				return fmt.Errorf("blue champions: %w", err)
			}
			red, err := parseChampions(redChamps)
			if err != nil {
				return fmt.Errorf("red champions: %w", err)
			}

			if err := store.Start(cmd.Context(), args[0], blueName, blue, redName, red); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started match %q (slug %s)\n", args[0], timeline.Slugify(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&blueName, "blue-name", "", "Blue side team name")
	cmd.Flags().StringVar(&redName, "red-name", "", "Red side team name")
	cmd.Flags().StringVar(&blueChamps, "blue", "", "Blue champions, top to support (comma separated)")
	cmd.Flags().StringVar(&redChamps, "red", "", "Red champions, top to support (comma separated)")
	return cmd
}

func newMatchSnapshotCommand(ctx *commandContext) *cobra.Command {
	var timer, fragmentPath string

	cmd := &cobra.Command{
		Use:   "snapshot <title>",
		Short: "Merge a snapshot fragment into a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}

			fragment, err := readFragment(cmd, fragmentPath)
			if err != nil {
				return err
			}
			if err := store.MergeSnapshot(cmd.Context(), args[0], timer, fragment); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Merged snapshot at %s\n", timeline.NormalizeTimer(timer))
			return nil
		},
	}

	cmd.Flags().StringVar(&timer, "timer", "", "Match clock (MM:SS or raw seconds)")
	cmd.Flags().StringVarP(&fragmentPath, "file", "f", "", "Fragment JSON file (- for stdin)")
	cmd.MarkFlagRequired("timer")
	return cmd
}

func newMatchEndCommand(ctx *commandContext) *cobra.Command {
	var winner string

	cmd := &cobra.Command{
		Use:   "end <title>",
		Short: "Freeze a match and record the winner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}

			var color timeline.TeamColor
			switch strings.ToUpper(strings.TrimSpace(winner)) {
			case string(timeline.TeamBlue):
				color = timeline.TeamBlue
			case string(timeline.TeamRed):
				color = timeline.TeamRed
			default:
				return fmt.Errorf("winner must be BLUE or RED, got %q", winner)
			}

			if err := store.End(cmd.Context(), args[0], color); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Match ended, winner %s\n", color)
			return nil
		},
	}

	cmd.Flags().StringVar(&winner, "winner", "", "Winning side (BLUE or RED)")
	cmd.MarkFlagRequired("winner")
	return cmd
}

func newMatchShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <title>",
		Short: "Print a match timeline as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			tl, err := store.Read(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, tl)
		},
	}
}

func newMatchListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			all, err := store.ReadAll(cmd.Context())
			if err != nil {
				return err
			}

			slugs := make([]string, 0, len(all))
			for slug := range all {
				slugs = append(slugs, slug)
			}
			sort.Strings(slugs)

			rows := make([][]string, 0, len(slugs))
			for _, slug := range slugs {
				tl := all[slug]
				winner := string(tl.Winner)
				if winner == "" {
					winner = "-"
				}
				rows = append(rows, []string{
					slug,
					tl.StaticGameInfo.Blue.TeamName,
					tl.StaticGameInfo.Red.TeamName,
					strconv.Itoa(snapshotCount(tl)),
					winner,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Match", "Blue", "Red", "Snapshots", "Winner"}, rows, 3))
			return nil
		},
	}
}

// snapshotCount counts clock-keyed snapshots, excluding the markers.
func snapshotCount(tl *timeline.Timeline) int {
	n := 0
	for key := range tl.LiveGameInfo {
		if key == timeline.KeyStartGame || key == timeline.KeyEndGame {
			continue
		}
		n++
	}
	return n
}

// parseChampions reads a comma separated champion list in role order. A
// short list leaves the remaining roles empty.
func parseChampions(list string) (map[timeline.Role]string, error) {
	out := make(map[timeline.Role]string, len(timeline.Roles))
	if strings.TrimSpace(list) == "" {
		return out, nil
	}
	parts := strings.Split(list, ",")
	if len(parts) > len(timeline.Roles) {
		return nil, fmt.Errorf("at most %d champions, got %d", len(timeline.Roles), len(parts))
	}
	for i, part := range parts {
		out[timeline.Roles[i]] = strings.TrimSpace(part)
	}
	return out, nil
}

func readFragment(cmd *cobra.Command, path string) (timeline.Fragment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return timeline.Fragment{}, nil
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read fragment: %w", err)
	}

	fragment := timeline.Fragment{}
	if err := json.Unmarshal(data, &fragment); err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	return fragment, nil
}
