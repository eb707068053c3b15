package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hookscript/internal/script"
)

func newSegmentCommand(ctx *commandContext) *cobra.Command {
	var showTable bool
	var maxWords int
	var minHook int

	cmd := &cobra.Command{
		Use:   "segment [file|-]",
		Short: "Format a plain transcript into hook and backend blocks",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			transcript, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			segCfg := cfg.SegmentConfig()
			if cmd.Flags().Changed("max-words") {
				if maxWords <= 0 {
					return fmt.Errorf("--max-words must be positive, got %d", maxWords)
				}
				segCfg.MaxBackendWords = maxWords
			}
			if cmd.Flags().Changed("min-hook-words") {
				if minHook <= 0 {
					return fmt.Errorf("--min-hook-words must be positive (1 never extends the hook), got %d", minHook)
				}
				segCfg.MinHookWords = minHook
			}

			s, ok := script.Segment(transcript, segCfg)
			if !ok {
				fmt.Fprintln(cmd.ErrOrStderr(), "No sentences found in transcript")
				return nil
			}
			out := cmd.OutOrStdout()
			if showTable {
				fmt.Fprintln(out, segmentTable(s))
				return nil
			}
			fmt.Fprint(out, s.Render(segCfg))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showTable, "table", false, "Show block word counts instead of the rendered script")
	cmd.Flags().IntVar(&maxWords, "max-words", 0, "Override script.max_backend_words")
	cmd.Flags().IntVar(&minHook, "min-hook-words", 0, "Override script.min_hook_words")
	return cmd
}

func segmentTable(s script.Script) string {
	rows := make([][]string, 0, len(s.Backend)+1)
	rows = append(rows, []string{"Hook", strconv.Itoa(script.WordCount(s.Hook)), ellipsize(s.Hook, 60)})
	for i, chunk := range s.Chunks() {
		rows = append(rows, []string{
			fmt.Sprintf("Backend %d", i+1),
			strconv.Itoa(script.WordCount(chunk)),
			ellipsize(chunk, 60),
		})
	}
	return renderTable([]string{"Block", "Words", "Text"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft})
}
