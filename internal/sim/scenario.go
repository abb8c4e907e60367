package sim

import (
	"fmt"
	"math/rand"

	"github.com/talgya/classroomsim/internal/disease"
	"github.com/talgya/classroomsim/internal/trace"
)

// Sink consumes the snapshot stream of one run. The header carries the
// participating occupant indices; each snapshot carries one status code per
// roster entry in the same order.
type Sink interface {
	WriteHeader(roster []int) error
	WriteSnapshot(tSeconds int, statuses []Status) error
}

// Outcome is the terminal state of one run.
type Outcome uint8

const (
	// OutcomeExtinct means no occupant held Infected status at a snapshot
	// checkpoint; the run stopped early.
	OutcomeExtinct Outcome = iota
	// OutcomeHorizon means the configured simulation days elapsed with the
	// epidemic still alive.
	OutcomeHorizon
)

// String returns the outcome name for logs and the results store.
func (o Outcome) String() string {
	if o == OutcomeExtinct {
		return "extinct"
	}
	return "horizon"
}

// Scenario describes one simulation setup: the disease, the recorded class
// trace, the occupancy counts, and the run constants. A Scenario value is
// immutable and shared read-only across tasks; all mutable run state lives
// in the State each Run call owns.
type Scenario struct {
	Disease disease.Disease
	Trace   *trace.Trace
	Info    trace.Info

	MaxSimulationDays   int
	OutputInterval      int // seconds between snapshots
	HalfClass           bool
	VaccineEfficacyRate float64
}

// NumSimKids returns how many kids participate in a run.
func (sc *Scenario) NumSimKids() int {
	if sc.HalfClass {
		return (sc.Info.Kids + 1) / 2
	}
	return sc.Info.Kids
}

// NumSimTeachers returns how many teachers participate in a run.
func (sc *Scenario) NumSimTeachers() int {
	if sc.HalfClass {
		if sc.Info.Teachers < 1 {
			return sc.Info.Teachers
		}
		return 1
	}
	return sc.Info.Teachers
}

// Run seeds the initial roster around the given zero patient, writes the
// roster header, and drives the simulation loop to a terminal outcome. All
// randomness comes from rng, so a run is reproducible given its seed.
func (sc *Scenario) Run(zeroPatient int, rng *rand.Rand, sink Sink) (Outcome, error) {
	st := sc.initState(zeroPatient, rng)
	if err := sink.WriteHeader(st.Roster()); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	return sc.loop(st, rng, sink)
}

// initState builds the initial status assignment: the zero patient is
// Infected; the remaining kid participants are drawn without replacement as
// Healthy; each participating teacher is independently Vaccinated with the
// configured efficacy, else Healthy.
func (sc *Scenario) initState(zeroPatient int, rng *rand.Rand) *State {
	st := NewState(sc.Info.Total())
	st.Join(zeroPatient, StatusInfected)

	kids := sc.Info.KidIndices()
	others := make([]int, 0, len(kids))
	for _, k := range kids {
		if k != zeroPatient {
			others = append(others, k)
		}
	}
	for _, k := range sampleWithoutReplacement(rng, others, sc.NumSimKids()-1) {
		st.Join(k, StatusHealthy)
	}

	for _, teacher := range sampleWithoutReplacement(rng, sc.Info.TeacherIndices(), sc.NumSimTeachers()) {
		if rng.Float64() > sc.VaccineEfficacyRate {
			st.Join(teacher, StatusHealthy)
		} else {
			st.Join(teacher, StatusVaccinated)
		}
	}
	st.seal()

	// Every participant draws a timeline up front, so the number of draws
	// is fixed by the roster. Only infected occupants ever read theirs; the
	// zero patient needs the hour-zero draw.
	for _, id := range st.Roster() {
		st.timelines[id] = sc.Disease.SampleTimeline(rng, 0)
	}
	return st
}

// sampleWithoutReplacement returns n elements of xs drawn without
// replacement. n is clamped to len(xs).
func sampleWithoutReplacement(rng *rand.Rand, xs []int, n int) []int {
	if n > len(xs) {
		n = len(xs)
	}
	if n <= 0 {
		return nil
	}
	out := make([]int, 0, n)
	for _, i := range rng.Perm(len(xs))[:n] {
		out = append(out, xs[i])
	}
	return out
}
