package phenotype

import (
	"math"
	"testing"
)

func TestHealthDecayFixedPoints(t *testing.T) {
	for _, b := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if got := HealthDecay(b, b); math.Abs(got-b) > 1e-12 {
			t.Fatalf("HealthDecay(%v, %v)=%v want=%v", b, b, got, b)
		}
	}
}

func TestHealthDecaySignalAboveOneActsAsOne(t *testing.T) {
	for _, b := range []float64{0.1, 0.5, 0.9} {
		if HealthDecay(3, b) != HealthDecay(1, b) {
			t.Fatalf("health %v: signal 3 and signal 1 differ", b)
		}
	}
}

func TestHealthDecayStaysInRangeAndMovesTowardSignal(t *testing.T) {
	for b := 0.0; b <= 1; b += 0.1 {
		for a := 0.0; a <= 1; a += 0.1 {
			got := HealthDecay(a, b)
			if got < 0 || got > 1 {
				t.Fatalf("HealthDecay(%v, %v)=%v out of range", a, b, got)
			}
		}
	}
	if got := HealthDecay(0, 0.8); got >= 0.8 {
		t.Fatalf("zero signal must lower health, got %v", got)
	}
	if got := HealthDecay(1, 0.2); got <= 0.2 {
		t.Fatalf("full signal must raise health, got %v", got)
	}
	if got := HealthDecay(0, 0.8); got <= 0 {
		t.Fatalf("one step must not snap health to the signal, got %v", got)
	}
}

func TestHealthDecayClampsHealth(t *testing.T) {
	if got := HealthDecay(2, 2); got != 1 {
		t.Fatalf("HealthDecay(2, 2)=%v want=1", got)
	}
	if got := HealthDecay(0, -1); got != 0 {
		t.Fatalf("HealthDecay(0, -1)=%v want=0", got)
	}
}
