package sim

import (
	"sort"

	"github.com/talgya/classroomsim/internal/disease"
)

// State holds one run's occupant statuses and progression timelines in
// fixed-size arrays indexed by occupant id, plus the sorted participant
// roster. It is owned by exactly one run and never shared across tasks.
type State struct {
	statuses     []Status
	timelines    []disease.Timeline
	participates []bool
	roster       []int

	hazard []float64 // reusable exposure accumulator
}

// NewState allocates state for a classroom of total tracked occupants.
func NewState(total int) *State {
	return &State{
		statuses:     make([]Status, total),
		timelines:    make([]disease.Timeline, total),
		participates: make([]bool, total),
		hazard:       make([]float64, total),
	}
}

// Join marks an occupant as participating in this run with its initial
// status.
func (st *State) Join(id int, s Status) {
	if st.participates[id] {
		return
	}
	st.participates[id] = true
	st.statuses[id] = s
	st.roster = append(st.roster, id)
}

// seal fixes the roster in ascending occupant-index order. Snapshots and
// sweeps iterate in this order, keeping output deterministic.
func (st *State) seal() {
	sort.Ints(st.roster)
}

// Roster returns the participating occupant ids in ascending order.
func (st *State) Roster() []int {
	return st.roster
}

// Status returns the occupant's current status.
func (st *State) Status(id int) Status {
	return st.statuses[id]
}

// Timeline returns the occupant's progression timeline.
func (st *State) Timeline(id int) disease.Timeline {
	return st.timelines[id]
}

// Snapshot fills buf with the roster's statuses in roster order and returns
// it. buf must be at least roster-sized.
func (st *State) Snapshot(buf []Status) []Status {
	buf = buf[:len(st.roster)]
	for i, id := range st.roster {
		buf[i] = st.statuses[id]
	}
	return buf
}

// AnyInfected reports whether the epidemic is still alive.
func (st *State) AnyInfected() bool {
	for _, id := range st.roster {
		if st.statuses[id] == StatusInfected {
			return true
		}
	}
	return false
}

// resolveRecoveries moves infected occupants whose recovery hour has elapsed
// to Recovered. Recovered is terminal.
func (st *State) resolveRecoveries(tSeconds int) {
	for _, id := range st.roster {
		if st.statuses[id] == StatusInfected &&
			float64(st.timelines[id].Recovery) <= float64(tSeconds)/3600.0 {
			st.statuses[id] = StatusRecovered
		}
	}
}
