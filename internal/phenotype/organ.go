package phenotype

// Organ is a container of genes with three dynamic attributes. Receptor
// output is queued per parameter and only applied by Settle.
type Organ struct {
	id      string
	owner   *Organism
	segment int

	health         float64
	activationRate float64
	reactionRate   float64

	genes   []Gene
	pending [parameterCount][]float64
}

func NewOrgan(id string, owner *Organism, segment int) *Organ {
	return &Organ{
		id:      id,
		owner:   owner,
		segment: segment,
		health:  1,
	}
}

func (o *Organ) ID() string {
	return o.id
}

func (o *Organ) Owner() *Organism {
	return o.owner
}

// Segment is the index of the genome node this organ was decoded from.
func (o *Organ) Segment() int {
	return o.segment
}

func (o *Organ) Health() float64 {
	return o.health
}

func (o *Organ) ActivationRate() float64 {
	return o.activationRate
}

func (o *Organ) ReactionRate() float64 {
	return o.reactionRate
}

func (o *Organ) Genes() []Gene {
	return append([]Gene(nil), o.genes...)
}

func (o *Organ) AddGene(g Gene) {
	if g == nil {
		return
	}
	o.genes = append(o.genes, g)
}

// Parameters lists the organ's parameters in selector order.
func (o *Organ) Parameters() []Parameter {
	return Parameters()
}

func (o *Organ) ParameterCount() int {
	return parameterCount
}

// ParameterAt reduces i modulo the registry size.
func (o *Organ) ParameterAt(i int) Parameter {
	if i < 0 {
		i = -i
	}
	return Parameter(i % parameterCount)
}

func (o *Organ) Get(p Parameter) float64 {
	switch p {
	case Health:
		return o.health
	case ActivationRate:
		return o.activationRate
	case ReactionRate:
		return o.reactionRate
	default:
		return 0
	}
}

// Set clamps v into [0, 1].
func (o *Organ) Set(p Parameter, v float64) {
	v = clamp01(v)
	switch p {
	case Health:
		o.health = v
	case ActivationRate:
		o.activationRate = v
	case ReactionRate:
		o.reactionRate = v
	}
}

// Value reads a parameter by (loosely spelled) name.
func (o *Organ) Value(name string) (float64, bool) {
	p, ok := ParameterByName(name)
	if !ok {
		return 0, false
	}
	return o.Get(p), true
}

func (o *Organ) SetValue(name string, v float64) bool {
	p, ok := ParameterByName(name)
	if !ok {
		return false
	}
	o.Set(p, v)
	return true
}

// Accumulate queues a receptor signal for p until the next Settle.
func (o *Organ) Accumulate(p Parameter, signal float64) {
	if p < 0 || int(p) >= parameterCount {
		return
	}
	o.pending[p] = append(o.pending[p], signal)
}

func (o *Organ) Pending(p Parameter) []float64 {
	if p < 0 || int(p) >= parameterCount {
		return nil
	}
	return append([]float64(nil), o.pending[p]...)
}

// Activate runs every gene once in order and then settles the organ.
func (o *Organ) Activate() {
	for _, gene := range o.genes {
		switch g := gene.(type) {
		case *Receptor:
			g.AdjustParameter()
		case *Emitter:
			g.Release()
		case *Reaction:
			g.React()
		}
	}
	o.Settle()
}

// Settle replaces activation and reaction rate with the mean of their queued
// signals (unchanged when nothing was queued), moves health through
// HealthDecay with the mean health signal, and clears the queues.
func (o *Organ) Settle() {
	if avg, ok := mean(o.pending[ActivationRate]); ok {
		o.Set(ActivationRate, avg)
	}
	if avg, ok := mean(o.pending[ReactionRate]); ok {
		o.Set(ReactionRate, avg)
	}
	signal, _ := mean(o.pending[Health])
	o.Set(Health, HealthDecay(signal, o.health))
	for i := range o.pending {
		o.pending[i] = o.pending[i][:0]
	}
}

func (o *Organ) Concentration(chemical ChemicalID) float64 {
	if o.owner == nil {
		return 0
	}
	return o.owner.Concentration(chemical)
}

func (o *Organ) Quantity(chemical ChemicalID) float64 {
	if o.owner == nil {
		return 0
	}
	return o.owner.Quantity(chemical)
}

// ReleaseChemical adds amount scaled by the organ's health.
func (o *Organ) ReleaseChemical(chemical ChemicalID, amount float64) {
	if o.owner == nil {
		return
	}
	o.owner.AddChemical(chemical, amount*o.health)
}

func (o *Organ) ConsumeChemical(chemical ChemicalID, amount float64) {
	if o.owner == nil {
		return
	}
	o.owner.RemoveChemical(chemical, amount)
}

func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
