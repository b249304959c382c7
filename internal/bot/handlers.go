package bot

import (
	"context"
	"errors"

	"infinite-experiment/logbook/internal/constants"
	"infinite-experiment/logbook/internal/services"

	"github.com/bwmarrin/discordgo"
)

// Request is a slash command invocation stripped of gateway plumbing
type Request struct {
	InteractionID string
	GuildID       string
	Command       string
	User          *discordgo.User
	Options       []*discordgo.ApplicationCommandInteractionDataOption
}

// HandlerFunc answers a single command
type HandlerFunc func(ctx context.Context, req Request) (*discordgo.InteractionResponseData, error)

// Handlers holds the services every command needs
type Handlers struct {
	flightLog *services.FlightLogService
	stats     *services.PilotStatsService
}

func NewHandlers(flightLog *services.FlightLogService, stats *services.PilotStatsService) *Handlers {
	return &Handlers{flightLog: flightLog, stats: stats}
}

func embeds(e ...*discordgo.MessageEmbed) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{Embeds: e}
}

// LogFlight handles /logflight
func (h *Handlers) LogFlight(ctx context.Context, req Request) (*discordgo.InteractionResponseData, error) {
	entry, err := ParseLogFlight(req.User, req.Options)
	if err != nil {
		return nil, err
	}

	res, err := h.flightLog.LogFlight(ctx, entry)
	if err != nil {
		return nil, err
	}

	out := []*discordgo.MessageEmbed{flightLoggedEmbed(res.Flight)}
	if res.Rank != nil && res.Rank.Promoted {
		out = append(out, promotionEmbed(entry.PIC, res.Rank))
	}
	return embeds(out...), nil
}

// MyStats handles /mystats
func (h *Handlers) MyStats(ctx context.Context, req Request) (*discordgo.InteractionResponseData, error) {
	stats, err := h.stats.GetStats(ctx, req.User.ID)
	if err != nil {
		return nil, err
	}
	return embeds(statsEmbed(req.User.Mention(), stats)), nil
}

// LastFlight handles /lastflight
func (h *Handlers) LastFlight(ctx context.Context, req Request) (*discordgo.InteractionResponseData, error) {
	flight, err := h.stats.GetLastFlight(ctx, req.User.ID)
	if errors.Is(err, services.ErrNoFlights) {
		return &discordgo.InteractionResponseData{Content: constants.MsgNoFlights}, nil
	}
	if err != nil {
		return nil, err
	}
	return embeds(lastFlightEmbed(flight)), nil
}

// RankCheck handles /rankcheck
func (h *Handlers) RankCheck(ctx context.Context, req Request) (*discordgo.InteractionResponseData, error) {
	report, err := h.stats.CheckRank(ctx, req.User.ID)
	if err != nil {
		return nil, err
	}
	return embeds(rankEmbed(req.User.Mention(), report)), nil
}
