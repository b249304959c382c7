package bot

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"infinite-experiment/logbook/internal/logging"

	"github.com/bwmarrin/discordgo"
)

// Discord drops interactions that are not acknowledged within three seconds
const interactionTimeout = 2500 * time.Millisecond

// Bot owns the gateway session
type Bot struct {
	session   *discordgo.Session
	router    *Router
	guildID   string
	connected atomic.Bool
	baseCtx   context.Context
}

// New creates a session authenticated with token. guildID scopes command
// registration to one guild; leave it empty to register globally.
func New(token, guildID string, router *Router) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	b := &Bot{
		session: session,
		router:  router,
		guildID: guildID,
		baseCtx: context.Background(),
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onResumed)
	session.AddHandler(b.onDisconnect)
	session.AddHandler(b.onInteraction)

	return b, nil
}

// Run opens the gateway and blocks until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	b.baseCtx = ctx

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}
	logging.Info("Discord gateway opened")

	<-ctx.Done()

	b.connected.Store(false)
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord gateway: %w", err)
	}
	logging.Info("Discord gateway closed")
	return nil
}

// Connected reports whether the gateway session is ready
func (b *Bot) Connected() bool {
	return b.connected.Load()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.connected.Store(true)
	logging.Info("Logged in", "user", r.User.String(), "guilds", len(r.Guilds))

	registered, err := s.ApplicationCommandBulkOverwrite(r.User.ID, b.guildID, Commands())
	if err != nil {
		logging.Error("Failed to register slash commands", "error", err.Error())
		return
	}
	logging.Info("Slash commands registered", "count", len(registered), "guild_id", b.guildID)
}

func (b *Bot) onResumed(_ *discordgo.Session, _ *discordgo.Resumed) {
	b.connected.Store(true)
}

func (b *Bot) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	b.connected.Store(false)
	logging.Warn("Discord gateway disconnected")
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	req := requestFromInteraction(i.Interaction)

	ctx, cancel := context.WithTimeout(b.baseCtx, interactionTimeout)
	defer cancel()

	data := b.router.Dispatch(ctx, req)

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		logging.Error("Failed to respond to interaction",
			"interaction_id", req.InteractionID,
			"command", req.Command,
			"error", err.Error(),
		)
	}
}

func requestFromInteraction(i *discordgo.Interaction) Request {
	data := i.ApplicationCommandData()

	user := i.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
	}

	return Request{
		InteractionID: i.ID,
		GuildID:       i.GuildID,
		Command:       data.Name,
		User:          user,
		Options:       data.Options,
	}
}
