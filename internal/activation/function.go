// Package activation holds the response curves genes use to turn a
// monitored signal into an output magnitude.
package activation

import (
	"fmt"
	"math"
)

type Kind int

const (
	Linear Kind = iota
	InverseLinear
	Exponential
	InverseExponential
	Radical
	InverseRadical
	Sigmoid
	InverseSigmoid
	DecayingPower
)

var kindNames = [...]string{
	Linear:             "linear",
	InverseLinear:      "inverse linear",
	Exponential:        "exponential",
	InverseExponential: "inverse exponential",
	Radical:            "radical",
	InverseRadical:     "inverse radical",
	Sigmoid:            "sigmoid",
	InverseSigmoid:     "inverse sigmoid",
	DecayingPower:      "decaying power",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Function is a parameterised response curve. Only the fields used by Kind
// are set; two Functions built from the same selector and raw fields compare
// equal with ==.
type Function struct {
	Kind        Kind
	Exponent    float64
	Radicand    float64
	Coefficient float64
	Mean        float64
	Base        float64
}

func (f Function) Name() string {
	return f.Kind.String()
}

func (f Function) Evaluate(x float64) float64 {
	switch f.Kind {
	case Linear:
		return x
	case InverseLinear:
		return 1 - x
	case Exponential:
		return math.Pow(x, f.Exponent)
	case InverseExponential:
		return 1 - math.Pow(x, f.Exponent)
	case Radical:
		return math.Pow(x, 1/f.Radicand)
	case InverseRadical:
		return 1 - math.Pow(x, 1/f.Radicand)
	case Sigmoid:
		return logistic(x, f.Coefficient, f.Mean)
	case InverseSigmoid:
		return 1 - logistic(x, f.Coefficient, f.Mean)
	case DecayingPower:
		return math.Sqrt(math.Pow(f.Base, -f.Coefficient*x))
	default:
		return 0
	}
}

// logistic has its inflection point at mean; coefficient is the steepness.
func logistic(x, coefficient, mean float64) float64 {
	return 1 / (1 + math.Exp(-coefficient*(x-mean)))
}

func (f Function) String() string {
	switch f.Kind {
	case Exponential, InverseExponential:
		return fmt.Sprintf("%s(exponent=%g)", f.Kind, f.Exponent)
	case Radical, InverseRadical:
		return fmt.Sprintf("%s(radicand=%g)", f.Kind, f.Radicand)
	case Sigmoid, InverseSigmoid:
		return fmt.Sprintf("%s(coefficient=%g, mean=%.4g)", f.Kind, f.Coefficient, f.Mean)
	case DecayingPower:
		return fmt.Sprintf("%s(base=%g, coefficient=%g)", f.Kind, f.Base, f.Coefficient)
	default:
		return f.Kind.String()
	}
}
