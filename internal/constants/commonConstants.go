package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixPilotTotals CachePrefix = "PILOT_TOTALS_"
)

// Defaults for optional logflight fields
const (
	DefaultFirstOfficer = "N/A"
	DefaultCrew         = "N/A"
	DefaultATC          = "N/A"
	DefaultStatus       = "Completed"
	DefaultRemarks      = "Smooth"
)

// TimestampLayout is how flight timestamps are rendered to users
const TimestampLayout = "02 Jan 2006 | 15:04 UTC"

// Embed colours
const (
	ColorFlightLogged = 0x6a0dad
	ColorStats        = 0x1abc9c
	ColorLastFlight   = 0xf39c12
	ColorRank         = 0x3498db
	ColorPromotion    = 0xf1c40f
)
