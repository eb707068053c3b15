package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"hookscript/internal/discordbot"
	"hookscript/internal/script"
	"hookscript/internal/services"
	"hookscript/internal/services/deepgram"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var asScript bool

	cmd := &cobra.Command{
		Use:   "resolve <deepgram.json>",
		Short: "Pick the dominant speaker from a saved Deepgram response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open response: %w", err)
			}
			defer file.Close()

			resp, err := deepgram.DecodeResponse(file)
			if err != nil {
				return err
			}
			utterances, err := resp.Utterances()
			if err == nil {
				var res script.Resolution
				res, err = script.ResolveMainSpeakerDetail(utterances)
				if err == nil {
					return printResolution(cmd, res, asScript, cfg.SegmentConfig())
				}
			}
			if services.Classify(err) == services.OutcomeNoSpeech {
				fmt.Fprintln(cmd.ErrOrStderr(), discordbot.NoSpeechMessage)
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&asScript, "script", false, "Print the formatted script instead of the transcript")
	return cmd
}

func printResolution(cmd *cobra.Command, res script.Resolution, asScript bool, segCfg script.SegmentConfig) error {
	out := cmd.OutOrStdout()
	if asScript {
		fmt.Fprint(out, script.Format(res.Transcript, segCfg))
		return nil
	}

	rows := make([][]string, 0, res.Tally.Len())
	for _, spk := range res.Tally.Speakers() {
		marker := ""
		if spk == res.Speaker {
			marker = "*"
		}
		rows = append(rows, []string{string(spk), strconv.Itoa(res.Tally.Count(spk)), marker})
	}
	fmt.Fprintln(out, renderTable([]string{"Speaker", "Words", "Dominant"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
	fmt.Fprintln(out)
	fmt.Fprintln(out, res.Transcript)
	return nil
}
