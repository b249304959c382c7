package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/constants"
	"infinite-experiment/logbook/internal/logging"
	"infinite-experiment/logbook/internal/metrics"
	"infinite-experiment/logbook/internal/services"

	"github.com/bwmarrin/discordgo"
)

// Router dispatches commands to handlers and turns failures into user-facing replies
type Router struct {
	handlers map[string]HandlerFunc
	limiter  *common.KeyedLimiter
	metrics  *metrics.MetricsRegistry
}

func NewRouter(h *Handlers, limiter *common.KeyedLimiter, metricsReg *metrics.MetricsRegistry) *Router {
	return &Router{
		handlers: map[string]HandlerFunc{
			CmdLogFlight:  h.LogFlight,
			CmdMyStats:    h.MyStats,
			CmdLastFlight: h.LastFlight,
			CmdRankCheck:  h.RankCheck,
		},
		limiter: limiter,
		metrics: metricsReg,
	}
}

// Dispatch always returns something to send back to the user
func (r *Router) Dispatch(ctx context.Context, req Request) *discordgo.InteractionResponseData {
	userID := ""
	if req.User != nil {
		userID = req.User.ID
	}
	logger := logging.WithInteraction(req.InteractionID, req.GuildID, userID, req.Command)

	handler, ok := r.handlers[req.Command]
	if !ok {
		r.metrics.CommandsTotal.WithLabelValues("unknown", constants.ErrCodeUnknownCommand).Inc()
		logger.Warnw("Unknown command")
		return ephemeral(constants.MsgUnknownCommand)
	}

	if req.User == nil {
		r.metrics.CommandsTotal.WithLabelValues(req.Command, constants.ErrCodeInvalidArgument).Inc()
		logger.Warnw("Interaction without user")
		return ephemeral(constants.MsgGenericFailure)
	}

	if !r.limiter.Allow(userID) {
		r.metrics.CommandsTotal.WithLabelValues(req.Command, constants.ErrCodeRateLimited).Inc()
		logger.Infow("Command rate limited")
		return ephemeral(constants.MsgRateLimited)
	}

	start := time.Now()
	data, err := handler(ctx, req)
	r.metrics.CommandDuration.WithLabelValues(req.Command).Observe(time.Since(start).Seconds())

	if err != nil {
		code := services.ErrorCode(err)
		r.metrics.CommandsTotal.WithLabelValues(req.Command, code).Inc()

		if errors.Is(err, services.ErrInvalidArgument) {
			logger.Infow("Command rejected", "error", err.Error())
			return ephemeral(constants.MsgInvalidArguments + ": " + userMessage(err))
		}

		logger.Errorw("Command failed", "error_code", code, "error", err.Error())
		return ephemeral(constants.GetErrorMessage(code))
	}

	r.metrics.CommandsTotal.WithLabelValues(req.Command, "ok").Inc()
	logger.Infow("Command handled", "duration_ms", time.Since(start).Milliseconds())
	return data
}

func ephemeral(content string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

// userMessage strips the sentinel prefix from a wrapped ErrInvalidArgument
func userMessage(err error) string {
	return strings.TrimPrefix(err.Error(), services.ErrInvalidArgument.Error()+": ")
}
