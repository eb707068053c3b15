package discordbot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"hookscript/internal/config"
	"hookscript/internal/logging"
	"hookscript/internal/notifications"
	"hookscript/internal/pipeline"
	"hookscript/internal/services"
)

// Runner produces a script for a URL.
type Runner interface {
	Run(ctx context.Context, url string) (pipeline.Result, error)
}

// Responder is the slice of the Discord session the handler uses.
type Responder interface {
	Defer(i *discordgo.Interaction) error
	Followup(i *discordgo.Interaction, params *discordgo.WebhookParams) error
}

// Bot handles /format interactions.
type Bot struct {
	cfg         *config.Config
	runner      Runner
	notifier    notifications.Service
	logger      *slog.Logger
	commandName string
	jobTimeout  time.Duration
	sem         chan struct{}

	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
}

// New constructs a Bot. A nil notifier disables notifications.
func New(cfg *config.Config, runner Runner, notifier notifications.Service, logger *slog.Logger) *Bot {
	if notifier == nil {
		notifier = notifications.NewService(nil)
	}
	limit := cfg.Bot.MaxConcurrentJobs
	if limit <= 0 {
		limit = 1
	}
	return &Bot{
		cfg:         cfg,
		runner:      runner,
		notifier:    notifier,
		logger:      logging.NewComponentLogger(logger, "bot"),
		commandName: cfg.Discord.CommandName,
		jobTimeout:  cfg.JobTimeout(),
		sem:         make(chan struct{}, limit),
	}
}

// Command describes the slash command registered with Discord.
func (b *Bot) Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        b.commandName,
		Description: "Formats a narration script from a short video URL.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "url",
				Description: "The full video URL.",
				Required:    true,
			},
		},
	}
}

// ShutdownMessage answers interactions that arrive after Shutdown started.
const ShutdownMessage = "The bot is restarting. Please try again in a minute."

// HandleInteraction defers a matching command interaction and processes it
// in the background. Other interactions are ignored. Jobs keep running when
// ctx is cancelled and are bounded only by the job timeout.
func (b *Bot) HandleInteraction(ctx context.Context, r Responder, i *discordgo.Interaction) {
	if i == nil || i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != b.commandName {
		return
	}
	url := optionString(data.Options, "url")

	ctx = services.WithRequestID(context.WithoutCancel(ctx), uuid.NewString())
	ctx = services.WithCommand(ctx, data.Name)
	ctx = services.WithSourceURL(ctx, url)
	logger := logging.WithContext(ctx, b.logger)
	logger.Info("command received", logging.String("user", interactionUser(i)))

	b.mu.Lock()
	if b.closing {
		b.mu.Unlock()
		logger.Warn("rejecting command during shutdown")
		if err := r.Defer(i); err == nil {
			b.reply(logger, r, i, &discordgo.WebhookParams{Content: ShutdownMessage})
		}
		return
	}
	b.wg.Add(1)
	b.mu.Unlock()

	if err := r.Defer(i); err != nil {
		logger.Error("defer interaction failed", logging.Error(err))
		b.wg.Done()
		return
	}

	go func() {
		defer b.wg.Done()
		b.process(ctx, r, i, url)
	}()
}

// Wait blocks until every accepted request has been answered.
func (b *Bot) Wait() {
	b.wg.Wait()
}

// Shutdown stops accepting new commands and waits for accepted ones to be
// answered.
func (b *Bot) Shutdown() {
	b.mu.Lock()
	b.closing = true
	b.mu.Unlock()
	b.wg.Wait()
}

func (b *Bot) process(ctx context.Context, r Responder, i *discordgo.Interaction, url string) {
	logger := logging.WithContext(ctx, b.logger)

	b.sem <- struct{}{}
	defer func() { <-b.sem }()

	jobCtx := ctx
	if b.jobTimeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, b.jobTimeout)
		defer cancel()
	}

	result, err := b.runner.Run(jobCtx, url)
	switch services.Classify(err) {
	case services.OutcomeNoSpeech:
		b.reply(logger, r, i, &discordgo.WebhookParams{Content: NoSpeechMessage})
		return
	case services.OutcomeFailed:
		logger.Error("format request failed", logging.Error(err))
		if nerr := b.notifier.NotifyError(ctx, err, b.commandName+" "+url); nerr != nil {
			logger.Warn("error notification failed", logging.Error(nerr))
		}
		b.reply(logger, r, i, &discordgo.WebhookParams{Embeds: []*discordgo.MessageEmbed{ErrorEmbed(err)}})
		return
	}

	if result.Empty() {
		b.reply(logger, r, i, &discordgo.WebhookParams{Content: NoSpeechMessage})
		return
	}

	for idx, msg := range ScriptMessages(result.Text) {
		params := &discordgo.WebhookParams{Content: msg}
		if idx == 0 {
			params.Embeds = []*discordgo.MessageEmbed{ScriptEmbed(url)}
		}
		if !b.reply(logger, r, i, params) {
			return
		}
	}
	if nerr := b.notifier.NotifyScriptReady(ctx, url, string(result.Speaker), len(result.Script.Chunks())); nerr != nil {
		logger.Warn("script notification failed", logging.Error(nerr))
	}
}

func (b *Bot) reply(logger *slog.Logger, r Responder, i *discordgo.Interaction, params *discordgo.WebhookParams) bool {
	if err := r.Followup(i, params); err != nil {
		logger.Error("send followup failed", logging.Error(err))
		return false
	}
	return true
}

func optionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt == nil || opt.Name != name || opt.Type != discordgo.ApplicationCommandOptionString {
			continue
		}
		return opt.StringValue()
	}
	return ""
}

func interactionUser(i *discordgo.Interaction) string {
	switch {
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.Username
	case i.User != nil:
		return i.User.Username
	default:
		return ""
	}
}
