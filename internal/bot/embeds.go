package bot

import (
	"fmt"
	"strconv"

	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/constants"
	gormModels "infinite-experiment/logbook/internal/models/gorm"
	"infinite-experiment/logbook/internal/services"

	"github.com/bwmarrin/discordgo"
)

func field(name, value string, inline bool) *discordgo.MessageEmbedField {
	if value == "" {
		value = "-"
	}
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline}
}

func route(dep, arr string) string {
	return fmt.Sprintf("%s → %s", dep, arr)
}

func mins(n int) string {
	return fmt.Sprintf("%d mins", n)
}

func flightLoggedEmbed(f *gormModels.Flight) *discordgo.MessageEmbed {
	ts := common.FormatTimestamp(f.Timestamp)
	return &discordgo.MessageEmbed{
		Title: "✈️ Flight Logged Successfully",
		Color: constants.ColorFlightLogged,
		Fields: []*discordgo.MessageEmbedField{
			field("Flight Number", f.FlightNumber, true),
			field("Aircraft", f.Aircraft, true),
			field("Route", route(f.Dep, f.Arr), false),
			field("Gate", f.Gate, true),
			field("Cruise Altitude", f.Altitude, true),
			field("Flight Time", mins(f.FlightTime), true),
			field("Pilot-in-Command", f.PIC, false),
			field("First Officer", f.FO, false),
			field("Cabin Crew", f.Crew, false),
			field("ATC", f.ATC, false),
			field("Status", f.Status, true),
			field("Remarks", f.Remarks, true),
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Logged on " + ts},
	}
}

func promotionEmbed(mention string, report *services.RankReport) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎉 Promotion!",
		Description: fmt.Sprintf("%s has been promoted from **%s** to **%s**.", mention, report.Previous, report.Result.Current),
		Color:       constants.ColorPromotion,
	}
}

func statsEmbed(mention string, stats *services.PilotStats) *discordgo.MessageEmbed {
	description := ""
	if stats.Totals.Flights == 0 {
		description = constants.MsgNoFlights
	}
	return &discordgo.MessageEmbed{
		Title:       "👨‍✈️ Pilot Statistics",
		Description: description,
		Color:       constants.ColorStats,
		Fields: []*discordgo.MessageEmbedField{
			field("Pilot", mention, true),
			field("Total Flights", strconv.Itoa(stats.Totals.Flights), true),
			field("Total Flight Time", mins(stats.Totals.Minutes), true),
			field("Rank", stats.Rank.Current.String(), true),
		},
	}
}

func lastFlightEmbed(f *gormModels.Flight) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🕒 Last Flight",
		Color: constants.ColorLastFlight,
		Fields: []*discordgo.MessageEmbedField{
			field("Flight", f.FlightNumber, true),
			field("Aircraft", f.Aircraft, true),
			field("Route", route(f.Dep, f.Arr), true),
			field("Flight Time", mins(f.FlightTime), true),
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Logged on " + common.FormatTimestamp(f.Timestamp)},
	}
}

func rankEmbed(mention string, report *services.RankReport) *discordgo.MessageEmbed {
	res := report.Result
	embed := &discordgo.MessageEmbed{
		Title:       "🎖️ Rank Check",
		Description: res.Message(),
		Color:       constants.ColorRank,
		Fields: []*discordgo.MessageEmbedField{
			field("Pilot", mention, true),
			field("Current Rank", res.Current.String(), true),
		},
	}

	if res.Next != nil {
		embed.Fields = append(embed.Fields,
			field("Next Rank", res.Next.Rank.String(), true),
			field("Flights", fmt.Sprintf("%d / %d", report.Totals.Flights, res.Next.Flights), true),
			field("Flight Time", fmt.Sprintf("%d / %d mins", report.Totals.Minutes, res.Next.Minutes), true),
		)
	} else {
		embed.Fields = append(embed.Fields,
			field("Flights", strconv.Itoa(report.Totals.Flights), true),
			field("Flight Time", mins(report.Totals.Minutes), true),
		)
	}

	if report.State != nil {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: "Rank held since " + common.FormatTimestamp(report.State.LastPromotion),
		}
	}
	return embed
}
