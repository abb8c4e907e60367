package sim

import (
	"math/rand"

	"github.com/talgya/classroomsim/internal/disease"
	"github.com/talgya/classroomsim/internal/geom"
	"github.com/talgya/classroomsim/internal/trace"
)

// transmissionRate returns the directional hazard pair for occupants a and
// b. Only the healthy side of a healthy/infected pair accumulates exposure,
// and only while the current hour falls inside the infected side's
// infectious window. Every other status combination contributes nothing.
func transmissionRate(d disease.Disease, tSeconds int, sa, sb Status, boxA, boxB geom.Box, tlA, tlB disease.Timeline) (betaA, betaB float64) {
	hour := disease.HourOf(tSeconds)
	switch {
	case sa == StatusHealthy && sb == StatusInfected:
		if tlB.Infectious(hour) {
			return d.Beta(boxA, boxB), 0
		}
	case sa == StatusInfected && sb == StatusHealthy:
		if tlA.Infectious(hour) {
			return 0, d.Beta(boxA, boxB)
		}
	}
	return 0, 0
}

// resolveExposures runs the pairwise hazard sweep over the occupants present
// in one recorded frame, then infects each healthy occupant whose
// accumulated hazard beats a fresh uniform draw. Sums above 1 simply
// guarantee infection; no clamping is applied. Newly infected occupants draw
// their progression timeline at the current instant. This is the hot path.
func (sc *Scenario) resolveExposures(st *State, rng *rand.Rand, tSeconds int, frame trace.Frame) {
	roster := st.roster
	sums := st.hazard
	for _, id := range roster {
		sums[id] = 0
	}

	for i := 0; i < len(roster); i++ {
		a := roster[i]
		boxA, okA := frame[a]
		if !okA {
			continue
		}
		for j := i + 1; j < len(roster); j++ {
			b := roster[j]
			boxB, okB := frame[b]
			if !okB {
				continue
			}
			betaA, betaB := transmissionRate(
				sc.Disease, tSeconds,
				st.statuses[a], st.statuses[b],
				boxA, boxB,
				st.timelines[a], st.timelines[b],
			)
			sums[a] += betaA
			sums[b] += betaB
		}
	}

	// One draw per healthy occupant, present or not, so a run's random
	// sequence depends only on its seed and roster.
	for _, id := range roster {
		if st.statuses[id] != StatusHealthy {
			continue
		}
		if rng.Float64() <= sums[id] {
			st.statuses[id] = StatusInfected
			st.timelines[id] = sc.Disease.SampleTimeline(rng, tSeconds)
		}
	}
}
