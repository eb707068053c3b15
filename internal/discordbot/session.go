package discordbot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"hookscript/internal/logging"
	"hookscript/internal/services"
)

const readyTimeout = 30 * time.Second

type sessionResponder struct {
	session *discordgo.Session
}

func (r sessionResponder) Defer(i *discordgo.Interaction) error {
	return r.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func (r sessionResponder) Followup(i *discordgo.Interaction, params *discordgo.WebhookParams) error {
	_, err := r.session.FollowupMessageCreate(i, true, params)
	return err
}

// Run connects to the gateway, registers the slash command, and serves
// interactions until ctx is cancelled. Requests accepted before then run to
// completion and are answered before the session closes.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.cfg.RequireDiscord(); err != nil {
		return services.Wrap(services.ErrConfiguration, "bot", "discord", "", err)
	}

	session, err := discordgo.New("Bot " + b.cfg.Discord.Token)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "bot", "discord", "create session", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	ready := make(chan *discordgo.Ready, 1)
	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		select {
		case ready <- r:
		default:
		}
	})
	removeHandler := session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		b.HandleInteraction(ctx, sessionResponder{session: s}, ic.Interaction)
	})

	if err := session.Open(); err != nil {
		return services.Wrap(services.ErrExternalTool, "bot", "discord", "open gateway", err)
	}
	defer session.Close()

	var r *discordgo.Ready
	select {
	case r = <-ready:
	case <-time.After(readyTimeout):
		return services.Wrap(services.ErrTimeout, "bot", "discord", "waiting for ready event", nil)
	case <-ctx.Done():
		removeHandler()
		b.Shutdown()
		return nil
	}

	appID := b.cfg.Discord.ApplicationID
	if appID == "" {
		switch {
		case r.Application != nil && r.Application.ID != "":
			appID = r.Application.ID
		case r.User != nil:
			appID = r.User.ID
		}
	}
	cmd, err := session.ApplicationCommandCreate(appID, b.cfg.Discord.GuildID, b.Command())
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "bot", "discord", fmt.Sprintf("register /%s", b.commandName), err)
	}

	user := ""
	if r.User != nil {
		user = r.User.Username
	}
	b.logger.Info("bot ready",
		logging.String("user", user),
		logging.String("command", cmd.Name),
		logging.String("guild", b.cfg.Discord.GuildID),
		logging.Int("max_concurrent_jobs", cap(b.sem)),
	)

	<-ctx.Done()
	removeHandler()
	b.logger.Info("shutting down; waiting for in-flight requests")
	b.Shutdown()
	return nil
}
