package phenotype

import "math"

// Plateau shape constants for HealthDecay.
const (
	lowCoef   = 3.0
	lowSlope  = -0.05
	lowScale  = 0.96
	highCoef  = 1.1
	highSlope = 0.22
	highScale = 0.79
	rampPower = 1.5
)

// HealthDecay moves health toward the level signalled by receptors without
// snapping to it. The curve has plateaus at signal 0, at signal == health and
// at signal 1, so HealthDecay(h, h) == h. Signals above 1 behave as 1.
func HealthDecay(signal, health float64) float64 {
	b := clamp01(health)
	a := math.Min(signal, 1)

	root := math.Sqrt(b)
	low := math.Max(0, lowCoef*root*lowSlope+lowScale*b)
	high := math.Min(1, highCoef*root*highSlope+highScale*b)

	if a <= b {
		t := 0.0
		if b > 0 {
			t = math.Pow(smoothstep(a/b), rampPower)
		}
		return low*(1-t) + b*t
	}
	t := 0.0
	if b < 1 {
		t = math.Pow(smoothstep((a-b)/(1-b)), rampPower)
	}
	return b*(1-t) + high*t
}

func smoothstep(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return 3*x*x - 2*x*x*x
}
