// Package sim implements the classroom transmission simulation core: the
// occupant state machine, the pairwise exposure sweep, and the day-by-day
// simulation loop driven by recorded location traces.
package sim

// Status is an occupant's infection state. The integer values are the wire
// codes written to snapshot records.
type Status int8

const (
	StatusVaccinated Status = -1
	StatusHealthy    Status = 0
	StatusInfected   Status = 1
	StatusRecovered  Status = 2
)

// String returns the status name for logs.
func (s Status) String() string {
	switch s {
	case StatusVaccinated:
		return "vaccinated"
	case StatusHealthy:
		return "healthy"
	case StatusInfected:
		return "infected"
	case StatusRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}
