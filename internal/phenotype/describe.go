package phenotype

import (
	"fmt"
	"strings"
)

var sampleInputs = [...]float64{0.1, 0.5, 0.9}

// Describe renders every organ and gene with its monitored input, activation
// function and three sample input/output pairs.
func Describe(org *Organism) string {
	if org == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Organism %s: %d organs, %d genes\n", org.ID(), len(org.organs), org.GeneCount())
	for i, organ := range org.organs {
		fmt.Fprintf(&b, "  Organ %d (%s): health=%.3f activation rate=%.3f reaction rate=%.3f\n",
			i, organ.ID(), organ.health, organ.activationRate, organ.reactionRate)
		for j, gene := range organ.genes {
			describeGene(&b, j, gene)
		}
	}
	return b.String()
}

func describeGene(b *strings.Builder, idx int, gene Gene) {
	fmt.Fprintf(b, "    Gene %d (%s, %s):\n", idx, gene.Kind(), gene.ID())
	switch g := gene.(type) {
	case *Receptor:
		fmt.Fprintf(b, "      monitors chemical %d and adjusts %s\n", g.chemical, g.target)
		fmt.Fprintf(b, "      activation function: %s\n", g.function)
		samples := make([]string, 0, len(sampleInputs))
		for _, x := range sampleInputs {
			samples = append(samples, fmt.Sprintf("concentration %.1f -> %.4f", x, g.function.Evaluate(x)*g.sign))
		}
		fmt.Fprintf(b, "      examples: %s\n", strings.Join(samples, ", "))
	case *Emitter:
		fmt.Fprintf(b, "      monitors %s and releases chemical %d at rate %.3f\n", g.monitor, g.chemical, g.rate)
		fmt.Fprintf(b, "      activation function: %s\n", g.function)
		samples := make([]string, 0, len(sampleInputs))
		for _, x := range sampleInputs {
			samples = append(samples, fmt.Sprintf("%s %.1f -> %.4f units", g.monitor, x, g.function.Evaluate(x)*g.rate))
		}
		fmt.Fprintf(b, "      examples: %s\n", strings.Join(samples, ", "))
	case *Reaction:
		fmt.Fprintf(b, "      equation: %s\n", equation(g))
	}
}

func equation(r *Reaction) string {
	side := func(terms []Term) string {
		if len(terms) == 0 {
			return "nothing"
		}
		parts := make([]string, 0, len(terms))
		for _, t := range terms {
			parts = append(parts, fmt.Sprintf("%g(chemical %d)", t.Quantity, t.Chemical))
		}
		return strings.Join(parts, " + ")
	}
	return side(r.Reactants()) + " = " + side(r.Products())
}

// Status renders the chemical store and every organ's current attributes.
func Status(org *Organism) string {
	if org == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Organism %s:\n", org.ID())
	for _, id := range org.chemicals.IDs() {
		q := org.chemicals.Quantity(id)
		if q == 0 {
			continue
		}
		fmt.Fprintf(&b, "  chemical %d: units=%.4f concentration=%.4f\n", id, q, org.chemicals.Concentration(id))
	}
	for i, organ := range org.organs {
		fmt.Fprintf(&b, "  organ %d: health=%.4f activation rate=%.4f reaction rate=%.4f\n",
			i, organ.health, organ.activationRate, organ.reactionRate)
	}
	return b.String()
}
