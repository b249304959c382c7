package bot

import (
	"fmt"
	"math"
	"strings"

	"infinite-experiment/logbook/internal/services"

	"github.com/bwmarrin/discordgo"
)

type optionSet map[string]*discordgo.ApplicationCommandInteractionDataOption

func newOptionSet(opts []*discordgo.ApplicationCommandInteractionDataOption) optionSet {
	set := make(optionSet, len(opts))
	for _, opt := range opts {
		if opt != nil {
			set[opt.Name] = opt
		}
	}
	return set
}

func (s optionSet) str(name string, required bool) (string, error) {
	opt, ok := s[name]
	if !ok || opt.Value == nil {
		if required {
			return "", fmt.Errorf("%w: %s is required", services.ErrInvalidArgument, name)
		}
		return "", nil
	}

	v, ok := opt.Value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be text", services.ErrInvalidArgument, name)
	}
	v = strings.TrimSpace(v)
	if required && v == "" {
		return "", fmt.Errorf("%w: %s must not be blank", services.ErrInvalidArgument, name)
	}
	return v, nil
}

func (s optionSet) minutes(name string) (int, error) {
	opt, ok := s[name]
	if !ok || opt.Value == nil {
		return 0, fmt.Errorf("%w: %s is required", services.ErrInvalidArgument, name)
	}

	var n float64
	switch v := opt.Value.(type) {
	case float64: // JSON numbers as delivered by the gateway
		n = v
	case int64:
		n = float64(v)
	case int:
		n = float64(v)
	default:
		return 0, fmt.Errorf("%w: %s must be a whole number", services.ErrInvalidArgument, name)
	}

	if n != math.Trunc(n) {
		return 0, fmt.Errorf("%w: %s must be a whole number", services.ErrInvalidArgument, name)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", services.ErrInvalidArgument, name)
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s is too large", services.ErrInvalidArgument, name)
	}
	return int(n), nil
}

// ParseLogFlight turns /logflight options into a FlightEntry for user
func ParseLogFlight(user *discordgo.User, opts []*discordgo.ApplicationCommandInteractionDataOption) (services.FlightEntry, error) {
	if user == nil || user.ID == "" {
		return services.FlightEntry{}, fmt.Errorf("%w: interaction has no user", services.ErrInvalidArgument)
	}

	set := newOptionSet(opts)
	entry := services.FlightEntry{
		PilotID: user.ID,
		PIC:     user.Mention(),
	}

	required := []struct {
		name string
		dst  *string
	}{
		{OptFlightNumber, &entry.FlightNumber},
		{OptAircraft, &entry.Aircraft},
		{OptDep, &entry.Dep},
		{OptArr, &entry.Arr},
		{OptGate, &entry.Gate},
		{OptAltitude, &entry.Altitude},
	}
	for _, field := range required {
		v, err := set.str(field.name, true)
		if err != nil {
			return services.FlightEntry{}, err
		}
		*field.dst = v
	}

	minutes, err := set.minutes(OptFlightTime)
	if err != nil {
		return services.FlightEntry{}, err
	}
	entry.FlightTime = minutes

	optional := []struct {
		name string
		dst  *string
	}{
		{OptFO, &entry.FO},
		{OptCrew, &entry.Crew},
		{OptATC, &entry.ATC},
		{OptStatus, &entry.Status},
		{OptRemarks, &entry.Remarks},
	}
	for _, field := range optional {
		v, err := set.str(field.name, false)
		if err != nil {
			return services.FlightEntry{}, err
		}
		*field.dst = v
	}

	return entry, nil
}
