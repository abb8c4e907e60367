package sim

import (
	"fmt"
	"math/rand"
)

const secondsPerDay = 24 * 3600

// loop advances one run's clock to a terminal outcome. Each simulated day
// replays the recorded class trace one frame per second, running the
// pairwise exposure sweep; the remainder of the day passes second-by-second
// with no interaction. Every 5th day the off-class gap stretches to cover
// the weekend. At exact multiples of the output interval the loop resolves
// due recoveries, emits a snapshot, and stops early on extinction.
func (sc *Scenario) loop(st *State, rng *rand.Rand, sink Sink) (Outcome, error) {
	t := 0
	buf := make([]Status, len(st.Roster()))
	classSeconds := sc.Trace.ClassSeconds()

	for day := 1; day < sc.MaxSimulationDays; day++ {
		for _, frame := range sc.Trace.Frames {
			if t%sc.OutputInterval == 0 {
				extinct, err := sc.checkpoint(st, t, sink, buf)
				if err != nil {
					return 0, err
				}
				if extinct {
					return OutcomeExtinct, nil
				}
			}
			sc.resolveExposures(st, rng, t, frame)
			t++
		}

		gap := secondsPerDay - classSeconds
		if day%5 == 0 {
			gap = 3*secondsPerDay - classSeconds
		}
		for i := 0; i < gap; i++ {
			if t%sc.OutputInterval == 0 {
				extinct, err := sc.checkpoint(st, t, sink, buf)
				if err != nil {
					return 0, err
				}
				if extinct {
					return OutcomeExtinct, nil
				}
			}
			t++
		}
	}
	return OutcomeHorizon, nil
}

// checkpoint resolves due recoveries, emits one snapshot, and reports
// whether the epidemic has gone extinct.
func (sc *Scenario) checkpoint(st *State, tSeconds int, sink Sink, buf []Status) (bool, error) {
	st.resolveRecoveries(tSeconds)
	if err := sink.WriteSnapshot(tSeconds, st.Snapshot(buf)); err != nil {
		return false, fmt.Errorf("write snapshot at t=%d: %w", tSeconds, err)
	}
	return !st.AnyInfected(), nil
}
