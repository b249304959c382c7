package bot

import "github.com/bwmarrin/discordgo"

// Slash command names
const (
	CmdLogFlight  = "logflight"
	CmdMyStats    = "mystats"
	CmdLastFlight = "lastflight"
	CmdRankCheck  = "rankcheck"
)

// logflight option names
const (
	OptFlightNumber = "flight_number"
	OptAircraft     = "aircraft"
	OptDep          = "dep"
	OptArr          = "arr"
	OptGate         = "gate"
	OptAltitude     = "altitude"
	OptFlightTime   = "flight_time"
	OptFO           = "fo"
	OptCrew         = "crew"
	OptATC          = "atc"
	OptStatus       = "status"
	OptRemarks      = "remarks"
)

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

// Commands returns the slash commands registered with Discord.
// Required options must precede optional ones.
func Commands() []*discordgo.ApplicationCommand {
	minFlightTime := 0.0

	return []*discordgo.ApplicationCommand{
		{
			Name:        CmdLogFlight,
			Description: "Log a flight",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption(OptFlightNumber, "Flight number, e.g. QR007", true),
				stringOption(OptAircraft, "Aircraft type", true),
				stringOption(OptDep, "Departure airport", true),
				stringOption(OptArr, "Arrival airport", true),
				stringOption(OptGate, "Departure gate", true),
				stringOption(OptAltitude, "Cruise altitude", true),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        OptFlightTime,
					Description: "Flight time in minutes",
					Required:    true,
					MinValue:    &minFlightTime,
				},
				stringOption(OptFO, "First officer", false),
				stringOption(OptCrew, "Cabin crew", false),
				stringOption(OptATC, "ATC", false),
				stringOption(OptStatus, "Flight status", false),
				stringOption(OptRemarks, "Remarks", false),
			},
		},
		{
			Name:        CmdMyStats,
			Description: "View your pilot stats",
		},
		{
			Name:        CmdLastFlight,
			Description: "View your last logged flight",
		},
		{
			Name:        CmdRankCheck,
			Description: "Check your rank and progress to the next one",
		},
	}
}
