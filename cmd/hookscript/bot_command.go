package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hookscript/internal/deps"
	"hookscript/internal/discordbot"
	"hookscript/internal/logging"
	"hookscript/internal/notifications"
)

func newBotCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Serve the /format slash command on Discord",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireDiscord(); err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			lock, err := discordbot.AcquireInstanceLock(cfg.Paths.LockPath)
			if err != nil {
				return err
			}
			defer lock.Release() //nolint:errcheck

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			for _, status := range deps.Missing(deps.Check(signalCtx, deps.Requirements(cfg))) {
				logger.Warn("dependency unavailable",
					logging.String("dependency", status.Name),
					logging.String("detail", status.Detail),
				)
			}

			p, err := buildPipeline(cfg, logger)
			if err != nil {
				return err
			}
			bot := discordbot.New(cfg, p, notifications.NewService(cfg), logger)
			logger.Info("starting bot",
				logging.String("backend", cfg.Transcription.Backend),
				logging.String("lock", lock.Path()),
			)
			return bot.Run(signalCtx)
		},
	}
}
