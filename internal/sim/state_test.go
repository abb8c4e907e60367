package sim

import (
	"testing"

	"github.com/talgya/classroomsim/internal/disease"
)

func TestStateRosterSortedAndDeduplicated(t *testing.T) {
	st := NewState(6)
	st.Join(4, StatusHealthy)
	st.Join(1, StatusInfected)
	st.Join(4, StatusHealthy) // duplicate join is a no-op
	st.Join(0, StatusVaccinated)
	st.seal()

	want := []int{0, 1, 4}
	got := st.Roster()
	if len(got) != len(want) {
		t.Fatalf("roster = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("roster = %v, want %v", got, want)
		}
	}
}

func TestStateSnapshotOrder(t *testing.T) {
	st := NewState(5)
	st.Join(3, StatusHealthy)
	st.Join(0, StatusInfected)
	st.Join(2, StatusVaccinated)
	st.seal()

	buf := make([]Status, 3)
	snap := st.Snapshot(buf)

	want := []Status{StatusInfected, StatusVaccinated, StatusHealthy}
	for i := range want {
		if snap[i] != want[i] {
			t.Fatalf("snapshot = %v, want %v", snap, want)
		}
	}
}

func TestStateAnyInfected(t *testing.T) {
	st := NewState(3)
	st.Join(0, StatusHealthy)
	st.Join(1, StatusRecovered)
	st.seal()

	if st.AnyInfected() {
		t.Error("AnyInfected() = true with no infected occupant")
	}

	st.statuses[0] = StatusInfected
	if !st.AnyInfected() {
		t.Error("AnyInfected() = false with an infected occupant")
	}
}

func TestResolveRecoveries(t *testing.T) {
	st := NewState(3)
	st.Join(0, StatusInfected)
	st.Join(1, StatusInfected)
	st.Join(2, StatusHealthy)
	st.seal()

	st.timelines[0] = disease.Timeline{Recovery: 10}
	st.timelines[1] = disease.Timeline{Recovery: 50}

	st.resolveRecoveries(10 * 3600)
	if st.Status(0) != StatusRecovered {
		t.Errorf("occupant 0 = %v, want recovered at its recovery hour", st.Status(0))
	}
	if st.Status(1) != StatusInfected {
		t.Errorf("occupant 1 = %v, want still infected", st.Status(1))
	}
	if st.Status(2) != StatusHealthy {
		t.Errorf("occupant 2 = %v, want untouched", st.Status(2))
	}

	// Recovered is terminal.
	st.resolveRecoveries(100 * 3600)
	if st.Status(0) != StatusRecovered {
		t.Errorf("occupant 0 = %v after second sweep, want recovered", st.Status(0))
	}
	if st.Status(1) != StatusRecovered {
		t.Errorf("occupant 1 = %v, want recovered past hour 50", st.Status(1))
	}
}
