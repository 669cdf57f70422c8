package phenotype

import (
	"fmt"

	"github.com/appengine-ltd/organa/internal/names"
)

// Parameter names one of an organ's dynamic scalar attributes. Genes hold a
// Parameter and go through the organ's accessors; they never touch the
// fields directly.
type Parameter int

const (
	Health Parameter = iota
	ActivationRate
	ReactionRate
)

const parameterCount = 3

var parameterNames = [parameterCount]string{
	Health:         "health",
	ActivationRate: "activation rate",
	ReactionRate:   "reaction rate",
}

var parameterRegistry = func() *names.Registry {
	r := names.NewRegistry()
	r.Register(parameterNames[Health], "hp")
	r.Register(parameterNames[ActivationRate], "act rate")
	r.Register(parameterNames[ReactionRate], "react rate")
	return r
}()

func (p Parameter) String() string {
	if p < 0 || int(p) >= parameterCount {
		return fmt.Sprintf("parameter(%d)", int(p))
	}
	return parameterNames[p]
}

// Parameters lists the registry in selector order.
func Parameters() []Parameter {
	return []Parameter{Health, ActivationRate, ReactionRate}
}

func ParameterByName(name string) (Parameter, bool) {
	m, ok := parameterRegistry.Resolve(name)
	if !ok {
		return 0, false
	}
	for i, n := range parameterNames {
		if n == m.Canonical {
			return Parameter(i), true
		}
	}
	return 0, false
}
