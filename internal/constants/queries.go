package constants

// Raw SQL used through sqlx. Placeholders are written as ? and rebound per driver.
const (
	PilotFlightTotals = `
	SELECT COUNT(*) AS flights, COALESCE(SUM(flight_time), 0) AS minutes
	FROM flights WHERE pilot_id = ?
	`

	DistinctFlightPilots = `
	SELECT DISTINCT pilot_id FROM flights ORDER BY pilot_id
	`
)
