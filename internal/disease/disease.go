// Package disease implements the parametrized transmission hazard model and
// the stochastic infection progression sampler.
package disease

import (
	"math"

	"github.com/talgya/classroomsim/internal/geom"
)

// Constants parametrize one epidemic disease. Rates are per second; times
// are integer hours.
type Constants struct {
	SigmaR           float64 // spatial decay of infectiousness
	SigmaTheta       float64 // angular decay of infectiousness, radians
	ConservativeTime int     // hours from infection until infectious
	NoInfectious     float64 // decay rate of the infectious period
	Gamma            float64 // recovery rate
	R0               float64 // basic reproduction number
	Nc               float64 // daily close-contact count
	PDaily           float64 // daily contact probability
}

// Disease carries the constants plus the rates derived from them.
type Disease struct {
	Constants

	Beta0    float64 // gamma * R0
	RhoDaily float64 // nc / 4pi * p_daily, contacts over the field-of-view area
	BetaMax  float64 // peak transmission rate at zero distance and angle
}

// New derives the peak transmission rate from epidemiological constants:
// beta_max = (gamma * R0) / (rho_daily * sigma_r^2 * sigma_theta^2).
func New(c Constants) Disease {
	beta0 := c.Gamma * c.R0
	rho := c.Nc / (math.Pi * 4) * c.PDaily
	return Disease{
		Constants: c,
		Beta0:     beta0,
		RhoDaily:  rho,
		BetaMax:   beta0 / (rho * c.SigmaR * c.SigmaR * c.SigmaTheta * c.SigmaTheta),
	}
}

// Beta returns the instantaneous transmission rate between two tracked
// occupants. The rate peaks at BetaMax for coincident, mutually facing boxes
// and decays exponentially with center distance and both facing angles.
// Pure and deterministic.
func (d Disease) Beta(a, b geom.Box) float64 {
	thetaA, thetaB := geom.FacingAngles(a, b)
	r := geom.CenterDist(a, b)
	return d.BetaMax * math.Exp(
		-(r*r)/(2*d.SigmaR*d.SigmaR)-
			(thetaA*thetaA+thetaB*thetaB)/(2*d.SigmaTheta*d.SigmaTheta))
}
