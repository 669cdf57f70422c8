// Package phenotype is the runtime form of a decoded genome: an organism,
// its organs and genes, and the chemical store they share.
package phenotype

import "github.com/appengine-ltd/organa/internal/segment"

// Roller draws uniform samples in [0, 1). *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
}

// Organism owns its organs and chemical store. Everything runs on the
// caller's goroutine; nothing here locks.
type Organism struct {
	id        string
	chemicals *Store
	organs    []*Organ
	genome    *segment.Chain
}

func NewOrganism(id string, genome *segment.Chain) *Organism {
	if genome == nil {
		genome = segment.NewChain()
	}
	return &Organism{
		id:        id,
		chemicals: NewStore(defaultChemicals()...),
		genome:    genome,
	}
}

func (o *Organism) ID() string {
	return o.id
}

// Genome is the segment chain the organism was decoded from.
func (o *Organism) Genome() *segment.Chain {
	return o.genome
}

// HeadSegment holds the noncoding bits before the first organ.
func (o *Organism) HeadSegment() *segment.Node {
	return o.genome.Node(segment.Head)
}

func (o *Organism) Chemicals() *Store {
	return o.chemicals
}

func (o *Organism) AddOrgan(organ *Organ) {
	if organ == nil {
		return
	}
	o.organs = append(o.organs, organ)
}

func (o *Organism) Organs() []*Organ {
	return append([]*Organ(nil), o.organs...)
}

func (o *Organism) GeneCount() int {
	n := 0
	for _, organ := range o.organs {
		n += len(organ.genes)
	}
	return n
}

func (o *Organism) AddChemical(chemical ChemicalID, amount float64) {
	o.chemicals.Add(chemical, amount)
}

func (o *Organism) RemoveChemical(chemical ChemicalID, amount float64) {
	o.chemicals.Remove(chemical, amount)
}

func (o *Organism) Quantity(chemical ChemicalID) float64 {
	return o.chemicals.Quantity(chemical)
}

func (o *Organism) Concentration(chemical ChemicalID) float64 {
	return o.chemicals.Concentration(chemical)
}

func (o *Organism) CalcConcentrations() {
	o.chemicals.Normalize()
}

// Tick rolls once per organ in order; an organ whose roll is at or below its
// activation rate runs its genes. Concentrations are recomputed at the end.
// It returns how many organs activated.
func (o *Organism) Tick(rng Roller) int {
	activated := 0
	for _, organ := range o.organs {
		if rng.Float64() <= organ.ActivationRate() {
			organ.Activate()
			activated++
		}
	}
	o.CalcConcentrations()
	return activated
}
