// Package rank maps a pilot's cumulative flight count and flight minutes to a
// progression tier.
package rank

import "fmt"

// Rank is a pilot progression tier.
type Rank string

const (
	CoPilot      Rank = "Co-Pilot"
	EliteCoPilot Rank = "Elite Co-Pilot"
	Captain      Rank = "Captain"
	EliteCaptain Rank = "Elite Captain"
)

// Near-promotion kicks in at nearPromoNum/nearPromoDen (80%) of the next threshold.
const (
	nearPromoNum = 4
	nearPromoDen = 5
)

func (r Rank) String() string { return string(r) }

// Threshold is the minimum flight count and minutes needed to hold a rank.
type Threshold struct {
	Rank    Rank
	Flights int
	Minutes int
}

// Thresholds is ordered ascending; the first entry has no requirements.
var Thresholds = []Threshold{
	{Rank: CoPilot, Flights: 0, Minutes: 0},
	{Rank: EliteCoPilot, Flights: 15, Minutes: 150},
	{Rank: Captain, Flights: 35, Minutes: 500},
	{Rank: EliteCaptain, Flights: 60, Minutes: 1000},
}

// Result is the outcome of evaluating a pilot's totals.
type Result struct {
	Current       Rank
	Next          *Threshold
	NearPromotion bool
	FlightsToNext int
	MinutesToNext int
}

// HasNext reports whether a higher rank exists.
func (r Result) HasNext() bool { return r.Next != nil }

// Message returns a one-line progress summary for display.
func (r Result) Message() string {
	if r.Next == nil {
		return fmt.Sprintf("🏆 You hold the highest rank: %s.", r.Current)
	}
	if r.NearPromotion {
		return fmt.Sprintf("🔥 Almost there! %d more flights and %d more minutes to %s.",
			r.FlightsToNext, r.MinutesToNext, r.Next.Rank)
	}
	return fmt.Sprintf("%d more flights and %d more minutes to %s.",
		r.FlightsToNext, r.MinutesToNext, r.Next.Rank)
}

// Evaluate returns the rank held with the given totals. Negative inputs count as zero.
func Evaluate(flights, minutes int) Result {
	flights = max(flights, 0)
	minutes = max(minutes, 0)

	idx := 0
	for i, t := range Thresholds {
		if flights >= t.Flights && minutes >= t.Minutes {
			idx = i
		}
	}

	res := Result{Current: Thresholds[idx].Rank}
	if idx+1 >= len(Thresholds) {
		return res
	}

	next := Thresholds[idx+1]
	res.Next = &next
	res.FlightsToNext = max(next.Flights-flights, 0)
	res.MinutesToNext = max(next.Minutes-minutes, 0)
	res.NearPromotion = nearPromoDen*flights >= nearPromoNum*next.Flights &&
		nearPromoDen*minutes >= nearPromoNum*next.Minutes
	return res
}

// Index returns the position of r in Thresholds, or -1 if r is unknown.
func Index(r Rank) int {
	for i, t := range Thresholds {
		if t.Rank == r {
			return i
		}
	}
	return -1
}

// Valid reports whether r is one of the known ranks.
func Valid(r Rank) bool { return Index(r) >= 0 }
