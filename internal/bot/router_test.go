package bot

import (
	"context"
	"testing"
	"time"

	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/constants"
	"infinite-experiment/logbook/internal/db"
	"infinite-experiment/logbook/internal/db/repositories"
	"infinite-experiment/logbook/internal/metrics"
	"infinite-experiment/logbook/internal/services"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, limiter *common.KeyedLimiter) (*Router, *metrics.MetricsRegistry) {
	t.Helper()

	store, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { store.Close() })

	metricsReg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	cache := common.NewCacheService(time.Minute, time.Minute)
	flights := repositories.NewFlightRepository(store.ORM, store.SQL)
	ranks := repositories.NewPilotRankRepository(store.ORM)
	locks := services.NewPilotLocks()
	keeper := services.NewRankKeeper(flights, ranks, locks, metricsReg)

	handlers := NewHandlers(
		services.NewFlightLogService(flights, keeper, locks, cache, metricsReg),
		services.NewPilotStatsService(flights, keeper, locks, cache, metricsReg),
	)
	return NewRouter(handlers, limiter, metricsReg), metricsReg
}

func request(command string, opts ...*discordgo.ApplicationCommandInteractionDataOption) Request {
	return Request{
		InteractionID: "interaction-1",
		GuildID:       "guild-1",
		Command:       command,
		User:          testUser,
		Options:       opts,
	}
}

func fieldValue(embed *discordgo.MessageEmbed, name string) string {
	for _, f := range embed.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func TestRouter_LogFlightThenQueries(t *testing.T) {
	router, metricsReg := setupRouter(t, common.NewKeyedLimiter(1000, 100))
	ctx := context.Background()

	resp := router.Dispatch(ctx, request(CmdLogFlight, logFlightOptions(420)...))
	require.Len(t, resp.Embeds, 1)
	logged := resp.Embeds[0]
	assert.Equal(t, "✈️ Flight Logged Successfully", logged.Title)
	assert.Equal(t, "OTHH → EGLL", fieldValue(logged, "Route"))
	assert.Equal(t, "420 mins", fieldValue(logged, "Flight Time"))
	assert.Equal(t, "<@123456789>", fieldValue(logged, "Pilot-in-Command"))
	assert.Equal(t, constants.DefaultFirstOfficer, fieldValue(logged, "First Officer"))
	assert.Equal(t, constants.DefaultRemarks, fieldValue(logged, "Remarks"))
	assert.Contains(t, logged.Footer.Text, "Logged on ")

	resp = router.Dispatch(ctx, request(CmdMyStats))
	require.Len(t, resp.Embeds, 1)
	assert.Equal(t, "1", fieldValue(resp.Embeds[0], "Total Flights"))
	assert.Equal(t, "420 mins", fieldValue(resp.Embeds[0], "Total Flight Time"))

	resp = router.Dispatch(ctx, request(CmdLastFlight))
	require.Len(t, resp.Embeds, 1)
	assert.Equal(t, "QR007", fieldValue(resp.Embeds[0], "Flight"))

	resp = router.Dispatch(ctx, request(CmdRankCheck))
	require.Len(t, resp.Embeds, 1)
	assert.Equal(t, "Co-Pilot", fieldValue(resp.Embeds[0], "Current Rank"))
	assert.Equal(t, "Elite Co-Pilot", fieldValue(resp.Embeds[0], "Next Rank"))

	assert.Equal(t, 1.0, testutil.ToFloat64(metricsReg.CommandsTotal.WithLabelValues(CmdLogFlight, "ok")))
}

func TestRouter_NoFlights(t *testing.T) {
	router, _ := setupRouter(t, common.NewKeyedLimiter(1000, 100))
	ctx := context.Background()

	resp := router.Dispatch(ctx, request(CmdLastFlight))
	assert.Equal(t, constants.MsgNoFlights, resp.Content)
	assert.Empty(t, resp.Embeds)

	resp = router.Dispatch(ctx, request(CmdMyStats))
	require.Len(t, resp.Embeds, 1)
	assert.Equal(t, "0", fieldValue(resp.Embeds[0], "Total Flights"))
	assert.Equal(t, "0 mins", fieldValue(resp.Embeds[0], "Total Flight Time"))
	assert.Equal(t, constants.MsgNoFlights, resp.Embeds[0].Description)

	router.Dispatch(ctx, request(CmdLogFlight, logFlightOptions(30)...))
	resp = router.Dispatch(ctx, request(CmdMyStats))
	require.Len(t, resp.Embeds, 1)
	assert.Empty(t, resp.Embeds[0].Description)
}

func TestRouter_PromotionEmbed(t *testing.T) {
	router, _ := setupRouter(t, common.NewKeyedLimiter(1000, 100))
	ctx := context.Background()

	for i := 0; i < 14; i++ {
		resp := router.Dispatch(ctx, request(CmdLogFlight, logFlightOptions(10)...))
		require.Len(t, resp.Embeds, 1)
	}

	resp := router.Dispatch(ctx, request(CmdLogFlight, logFlightOptions(10)...))
	require.Len(t, resp.Embeds, 2)
	assert.Equal(t, "🎉 Promotion!", resp.Embeds[1].Title)
	assert.Contains(t, resp.Embeds[1].Description, "Elite Co-Pilot")
}

func TestRouter_InvalidArguments(t *testing.T) {
	router, metricsReg := setupRouter(t, common.NewKeyedLimiter(1000, 100))

	resp := router.Dispatch(context.Background(), request(CmdLogFlight, logFlightOptions(-10)...))

	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Flags)
	assert.Contains(t, resp.Content, constants.MsgInvalidArguments)
	assert.Contains(t, resp.Content, "flight_time")
	assert.Equal(t, 1.0, testutil.ToFloat64(metricsReg.CommandsTotal.WithLabelValues(CmdLogFlight, constants.ErrCodeInvalidArgument)))
}

func TestRouter_UnknownCommand(t *testing.T) {
	router, _ := setupRouter(t, common.NewKeyedLimiter(1000, 100))

	resp := router.Dispatch(context.Background(), request("takeoff"))
	assert.Equal(t, constants.MsgUnknownCommand, resp.Content)
}

func TestRouter_RateLimited(t *testing.T) {
	router, _ := setupRouter(t, common.NewKeyedLimiter(0.001, 1))
	ctx := context.Background()

	first := router.Dispatch(ctx, request(CmdMyStats))
	require.Len(t, first.Embeds, 1)

	second := router.Dispatch(ctx, request(CmdMyStats))
	assert.Equal(t, constants.MsgRateLimited, second.Content)
}

func TestRequestFromInteraction(t *testing.T) {
	member := &discordgo.User{ID: "member-1"}
	i := &discordgo.Interaction{
		ID:      "interaction-9",
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: "guild-9",
		Member:  &discordgo.Member{User: member},
		Data: discordgo.ApplicationCommandInteractionData{
			Name:    CmdLogFlight,
			Options: logFlightOptions(30),
		},
	}

	req := requestFromInteraction(i)
	assert.Equal(t, "interaction-9", req.InteractionID)
	assert.Equal(t, "guild-9", req.GuildID)
	assert.Equal(t, CmdLogFlight, req.Command)
	assert.Equal(t, member, req.User)
	assert.Len(t, req.Options, 7)

	// Direct messages carry the user outside of a member
	i.Member = nil
	i.User = &discordgo.User{ID: "dm-user"}
	assert.Equal(t, "dm-user", requestFromInteraction(i).User.ID)
}
