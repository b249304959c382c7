package constants

// Error codes attached to command and API failures
const (
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrCodeNoFlights       = "NO_FLIGHTS"
	ErrCodeStorage         = "STORAGE_ERROR"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeUnknownCommand  = "UNKNOWN_COMMAND"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
)

// User-facing messages
const (
	MsgNoFlights        = "❌ No flights logged yet."
	MsgGenericFailure   = "⚠️ Something went wrong while talking to the logbook. Please try again."
	MsgRateLimited      = "⏳ Slow down! You're sending commands too quickly."
	MsgUnknownCommand   = "❓ Unknown command."
	MsgInvalidArguments = "❌ Invalid flight details"
)

var errorMessages = map[string]string{
	ErrCodeInvalidArgument: MsgInvalidArguments,
	ErrCodeNoFlights:       MsgNoFlights,
	ErrCodeStorage:         MsgGenericFailure,
	ErrCodeRateLimited:     MsgRateLimited,
	ErrCodeUnknownCommand:  MsgUnknownCommand,
	ErrCodeUnauthorized:    "Unauthorized",
}

// GetErrorMessage returns the user-facing message for an error code
func GetErrorMessage(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return MsgGenericFailure
}
