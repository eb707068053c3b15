package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hookscript/internal/discordbot"
	"hookscript/internal/services"
)

func newFormatCommand(ctx *commandContext) *cobra.Command {
	var showTranscript bool

	cmd := &cobra.Command{
		Use:   "format <url>",
		Short: "Download, transcribe, and format the script for a video URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.cliLogger()
			p, err := buildPipeline(cfg, logger)
			if err != nil {
				return err
			}

			runCtx := services.WithCommand(cmd.Context(), "format")
			if cfg.JobTimeout() > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(runCtx, cfg.JobTimeout())
				defer cancel()
			}

			result, err := p.Run(runCtx, args[0])
			out := cmd.OutOrStdout()
			if services.Classify(err) == services.OutcomeNoSpeech {
				fmt.Fprintln(cmd.ErrOrStderr(), discordbot.NoSpeechMessage)
				return nil
			}
			if err != nil {
				return err
			}
			if result.Empty() {
				fmt.Fprintln(cmd.ErrOrStderr(), discordbot.NoSpeechMessage)
				return nil
			}
			if showTranscript {
				fmt.Fprintf(out, "Speaker %s transcript:\n%s\n\n", result.Speaker, result.Transcript)
			}
			fmt.Fprint(out, result.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showTranscript, "transcript", false, "Print the resolved transcript before the script")
	return cmd
}
