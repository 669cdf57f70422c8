package phenotype

import (
	"fmt"

	"github.com/appengine-ltd/organa/internal/activation"
)

type GeneKind int

const (
	KindReceptor GeneKind = iota
	KindEmitter
	KindReaction
)

// GeneKinds is the modulus applied to the genome's gene type field.
const GeneKinds = 3

func (k GeneKind) String() string {
	switch k {
	case KindReceptor:
		return "receptor"
	case KindEmitter:
		return "emitter"
	case KindReaction:
		return "reaction"
	default:
		return fmt.Sprintf("gene kind(%d)", int(k))
	}
}

// Gene is implemented by *Receptor, *Emitter and *Reaction only.
type Gene interface {
	ID() string
	Kind() GeneKind
	Organ() *Organ
	Segment() int
	isGene()
}

type geneBase struct {
	id      string
	organ   *Organ
	segment int
}

func (g geneBase) ID() string    { return g.id }
func (g geneBase) Organ() *Organ { return g.organ }
func (g geneBase) Segment() int  { return g.segment }
func (geneBase) isGene()         {}

// Receptor watches one chemical's concentration and queues a signal for one
// organ parameter.
type Receptor struct {
	geneBase
	chemical ChemicalID
	function activation.Function
	target   Parameter
	sign     float64
}

func NewReceptor(id string, organ *Organ, segment int, fn activation.Function, target Parameter, chemical ChemicalID) *Receptor {
	return &Receptor{
		geneBase: geneBase{id: id, organ: organ, segment: segment},
		chemical: chemical,
		function: fn,
		target:   target,
		sign:     1,
	}
}

func (r *Receptor) Kind() GeneKind                { return KindReceptor }
func (r *Receptor) Chemical() ChemicalID          { return r.chemical }
func (r *Receptor) Function() activation.Function { return r.function }
func (r *Receptor) Target() Parameter             { return r.target }
func (r *Receptor) Sign() float64                 { return r.sign }

// SetNegative makes the receptor's signal subtractive.
func (r *Receptor) SetNegative(negative bool) {
	if negative {
		r.sign = -1
		return
	}
	r.sign = 1
}

func (r *Receptor) ReadInput() float64 {
	return r.organ.Concentration(r.chemical)
}

func (r *Receptor) Output() float64 {
	return r.function.Evaluate(r.ReadInput()) * r.sign
}

func (r *Receptor) AdjustParameter() {
	r.organ.Accumulate(r.target, r.Output())
}

// Emitter reads one organ parameter and releases a chemical into the organism
// straight away, scaled by rate and organ health.
type Emitter struct {
	geneBase
	monitor  Parameter
	function activation.Function
	rate     float64
	chemical ChemicalID
}

func NewEmitter(id string, organ *Organ, segment int, rate float64, fn activation.Function, monitor Parameter, chemical ChemicalID) *Emitter {
	return &Emitter{
		geneBase: geneBase{id: id, organ: organ, segment: segment},
		monitor:  monitor,
		function: fn,
		rate:     rate,
		chemical: chemical,
	}
}

func (e *Emitter) Kind() GeneKind                { return KindEmitter }
func (e *Emitter) Monitor() Parameter            { return e.monitor }
func (e *Emitter) Function() activation.Function { return e.function }
func (e *Emitter) Rate() float64                 { return e.rate }
func (e *Emitter) Chemical() ChemicalID          { return e.chemical }

func (e *Emitter) ReadParam() float64 {
	return e.organ.Get(e.monitor)
}

// OutputAmount is the release before health scaling.
func (e *Emitter) OutputAmount() float64 {
	return e.function.Evaluate(e.ReadParam()) * e.rate
}

func (e *Emitter) Release() {
	e.organ.ReleaseChemical(e.chemical, e.OutputAmount())
}

// Term is one side of a reaction equation: Quantity units of Chemical.
type Term struct {
	Quantity float64
	Chemical ChemicalID
}

// Reaction converts its first left terms (reactants) into the rest
// (products), all or nothing.
type Reaction struct {
	geneBase
	left  int
	terms []Term
}

func NewReaction(id string, organ *Organ, segment int, left int, terms []Term) *Reaction {
	if left < 0 {
		left = 0
	}
	if left > len(terms) {
		left = len(terms)
	}
	return &Reaction{
		geneBase: geneBase{id: id, organ: organ, segment: segment},
		left:     left,
		terms:    append([]Term(nil), terms...),
	}
}

func (r *Reaction) Kind() GeneKind { return KindReaction }

func (r *Reaction) Reactants() []Term {
	return append([]Term(nil), r.terms[:r.left]...)
}

func (r *Reaction) Products() []Term {
	return append([]Term(nil), r.terms[r.left:]...)
}

// Ready reports whether every reactant chemical is present in at least the
// summed quantity of its terms.
func (r *Reaction) Ready() bool {
	need := make(map[ChemicalID]float64, r.left)
	for _, t := range r.terms[:r.left] {
		need[t.Chemical] += t.Quantity
	}
	for chem, q := range need {
		if r.organ.Quantity(chem) < q {
			return false
		}
	}
	return true
}

// React consumes reactants and releases products when Ready, otherwise it
// leaves every quantity alone. It reports whether the reaction ran.
func (r *Reaction) React() bool {
	if !r.Ready() {
		return false
	}
	owner := r.organ.Owner()
	if owner == nil {
		return false
	}
	for _, t := range r.terms[:r.left] {
		owner.RemoveChemical(t.Chemical, t.Quantity)
	}
	for _, t := range r.terms[r.left:] {
		owner.AddChemical(t.Chemical, t.Quantity)
	}
	return true
}
