// Package geom provides the oriented bounding-box math behind the
// transmission hazard model: centers, half-extents, distances, and
// directional facing angles between tracked occupants.
package geom

import "math"

// Box is the oriented rectangle recorded for one occupant at one sample
// instant, stored as its two tracked corner points.
type Box struct {
	LeftX  float64
	LeftY  float64
	RightX float64
	RightY float64
}

// Absent is the sentinel box marking an occupant as untracked for one
// sample instant.
var Absent = Box{LeftX: -1, LeftY: -1, RightX: -1, RightY: -1}

// IsAbsent reports whether any coordinate carries the -1 sentinel.
// Trackers emit -1 per lost coordinate, so a single -1 already means the
// sample is unusable.
func (b Box) IsAbsent() bool {
	return b.LeftX == -1 || b.LeftY == -1 || b.RightX == -1 || b.RightY == -1
}

// Center returns the midpoint of the box.
func (b Box) Center() (x, y float64) {
	return (b.LeftX + b.RightX) / 2, (b.LeftY + b.RightY) / 2
}

// HalfExtent returns the vector from the center to the left corner. Its
// direction encodes the occupant's orientation.
func (b Box) HalfExtent() (dx, dy float64) {
	return (b.LeftX - b.RightX) / 2, (b.LeftY - b.RightY) / 2
}

// CenterDist returns the Euclidean distance between two box centers.
func CenterDist(a, b Box) float64 {
	ax, ay := a.Center()
	bx, by := b.Center()
	return math.Hypot(ax-bx, ay-by)
}

func dot(ax, ay, bx, by float64) float64 {
	return ax*bx + ay*by
}

// FacingAngles returns each occupant's facing angle relative to the other.
// Each half-extent is projected onto the center-to-center vector and its
// perpendicular, and the projections are combined with atan2. The signs
// differ between the two sides because the center vector points from a to b.
func FacingAngles(a, b Box) (thetaA, thetaB float64) {
	acx, acy := a.Center()
	bcx, bcy := b.Center()
	dabX, dabY := bcx-acx, bcy-acy
	perpX, perpY := -dabY, dabX

	dax, day := a.HalfExtent()
	dbx, dby := b.HalfExtent()

	dx, dy := dot(dabX, dabY, dax, day), dot(perpX, perpY, dax, day)
	thetaA = math.Atan2(-dx, dy)

	dx, dy = dot(dabX, dabY, dbx, dby), dot(perpX, perpY, dbx, dby)
	thetaB = math.Atan2(dx, -dy)

	return thetaA, thetaB
}
