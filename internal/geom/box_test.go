package geom

import (
	"math"
	"testing"
)

func TestCenterAndHalfExtent(t *testing.T) {
	b := Box{LeftX: 2, LeftY: 4, RightX: 4, RightY: 0}

	cx, cy := b.Center()
	if cx != 3 || cy != 2 {
		t.Errorf("Center() = (%v, %v), want (3, 2)", cx, cy)
	}

	dx, dy := b.HalfExtent()
	if dx != -1 || dy != 2 {
		t.Errorf("HalfExtent() = (%v, %v), want (-1, 2)", dx, dy)
	}
}

func TestCenterDist(t *testing.T) {
	a := Box{LeftX: 0, LeftY: 0, RightX: 0, RightY: 0}
	b := Box{LeftX: 3, LeftY: 4, RightX: 3, RightY: 4}

	if got := CenterDist(a, b); math.Abs(got-5) > 1e-12 {
		t.Errorf("CenterDist = %v, want 5", got)
	}
	if got := CenterDist(a, a); got != 0 {
		t.Errorf("CenterDist(a, a) = %v, want 0", got)
	}
}

func TestIsAbsent(t *testing.T) {
	cases := []struct {
		name string
		box  Box
		want bool
	}{
		{"sentinel", Absent, true},
		{"partial sentinel", Box{LeftX: -1, LeftY: 2, RightX: 3, RightY: 4}, true},
		{"tracked", Box{LeftX: 1, LeftY: 2, RightX: 3, RightY: 4}, false},
		{"origin", Box{}, false},
	}
	for _, tc := range cases {
		if got := tc.box.IsAbsent(); got != tc.want {
			t.Errorf("%s: IsAbsent() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// faceToFace returns a pair of boxes separated by r along the x axis whose
// half-extents are perpendicular to the separation vector, oriented so both
// facing angles come out exactly zero.
func faceToFace(r float64) (Box, Box) {
	a := Box{LeftX: 0, LeftY: 0.5, RightX: 0, RightY: -0.5}
	b := Box{LeftX: r, LeftY: -0.5, RightX: r, RightY: 0.5}
	return a, b
}

func TestFacingAnglesFaceToFace(t *testing.T) {
	for _, r := range []float64{0.5, 1, 2, 10} {
		a, b := faceToFace(r)
		thetaA, thetaB := FacingAngles(a, b)
		if thetaA != 0 || thetaB != 0 {
			t.Errorf("r=%v: FacingAngles = (%v, %v), want (0, 0)", r, thetaA, thetaB)
		}
	}
}

func TestFacingAnglesSwapSymmetry(t *testing.T) {
	a := Box{LeftX: 0, LeftY: 1, RightX: 1, RightY: 0}
	b := Box{LeftX: 4, LeftY: 2, RightX: 5, RightY: 3}

	thetaA, thetaB := FacingAngles(a, b)
	gotB, gotA := FacingAngles(b, a)

	if math.Abs(thetaA-gotA) > 1e-12 || math.Abs(thetaB-gotB) > 1e-12 {
		t.Errorf("FacingAngles not stable under swap: (%v, %v) vs (%v, %v)",
			thetaA, thetaB, gotA, gotB)
	}
}
