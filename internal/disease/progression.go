package disease

import (
	"math"
	"math/rand"
)

// Timeline holds the hour offsets of one infection's course, measured from
// the start of the simulation clock.
type Timeline struct {
	StartInfectious int // first hour the occupant can transmit
	StopInfectious  int // last hour the occupant can transmit
	Recovery        int // hour the occupant turns Recovered
}

// Infectious reports whether hour falls inside the transmissible window.
func (tl Timeline) Infectious(hour int) bool {
	return hour >= tl.StartInfectious && hour <= tl.StopInfectious
}

// SampleTimeline draws the progression timeline for an infection occurring
// at tSeconds. A single uniform draw feeds both exponential waiting times,
// so StopInfectious and Recovery are correlated; Recovery is not guaranteed
// to follow StopInfectious.
func (d Disease) SampleTimeline(rng *rand.Rand, tSeconds int) Timeline {
	hour := HourOf(tSeconds)

	p := rng.Float64()
	for p == 0 {
		p = rng.Float64()
	}

	return Timeline{
		StartInfectious: hour + d.ConservativeTime,
		StopInfectious:  hour + int(math.RoundToEven(-math.Log(p)/(d.NoInfectious*3600))),
		Recovery:        hour + int(math.RoundToEven(-math.Log(p)/(d.Gamma*3600))),
	}
}

// HourOf converts a simulation clock value in seconds to the nearest hour,
// rounding exact half hours to the even hour.
func HourOf(tSeconds int) int {
	return int(math.RoundToEven(float64(tSeconds) / 3600.0))
}
