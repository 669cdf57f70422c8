// Package genome turns bit sequences into organisms and back. The decoder
// is a single pass state machine over the bits: it recognises organ and gene
// opcodes, reads their fields, and records every consumed span in the
// organism's segment chain.
package genome

import (
	"log/slog"

	"github.com/appengine-ltd/organa/internal/activation"
	"github.com/appengine-ltd/organa/internal/bits"
	"github.com/appengine-ltd/organa/internal/ids"
	"github.com/appengine-ltd/organa/internal/phenotype"
	"github.com/appengine-ltd/organa/internal/segment"
)

type Option func(*Decoder)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func WithIDGenerator(gen ids.Generator) Option {
	return func(d *Decoder) {
		if gen != nil {
			d.ids = gen
		}
	}
}

func WithLibrary(lib *activation.Library) Option {
	return func(d *Decoder) {
		if lib != nil && lib.Len() > 0 {
			d.lib = lib
		}
	}
}

// Decoder is not safe for concurrent use. Decode resets it before and after
// each genome, so one decoder can be reused sequentially.
type Decoder struct {
	cfg    Config
	lib    *activation.Library
	ids    ids.Generator
	logger *slog.Logger

	genome    bits.Sequence
	cursor    int
	exhausted bool
	organism  *phenotype.Organism
	chain     *segment.Chain
	organ     *phenotype.Organ
	node      int
	params    bits.Builder
	noncoding bits.Builder
}

func NewDecoder(cfg Config, opts ...Option) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Decoder{
		cfg:    cfg,
		lib:    activation.Default(),
		ids:    ids.UUID{},
		logger: slog.Default().With(slog.String("component", "decoder")),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Reset()
	return d, nil
}

func (d *Decoder) Config() Config {
	return d.cfg
}

func (d *Decoder) Library() *activation.Library {
	return d.lib
}

// Reset drops any half-built organism and rewinds the cursor.
func (d *Decoder) Reset() {
	d.genome = bits.Sequence{}
	d.cursor = 1
	d.exhausted = false
	d.organism = nil
	d.chain = nil
	d.organ = nil
	d.node = segment.Head
	d.params.Reset()
	d.noncoding.Reset()
}

// DecodeString parses a 0/1 string and decodes it.
func (d *Decoder) DecodeString(raw string) (*phenotype.Organism, error) {
	g, err := bits.Parse(raw)
	if err != nil {
		return nil, err
	}
	return d.Decode(g), nil
}

// Decode always returns an organism, possibly with no organs. The genome is
// given without its sentinel; Decode prepends it and starts reading after it.
func (d *Decoder) Decode(g bits.Sequence) *phenotype.Organism {
	d.Reset()
	d.genome = g.WithSentinel()
	d.chain = segment.NewChain()
	d.organism = phenotype.NewOrganism(d.ids.NewID(), d.chain)

	limit := d.genome.Len() - d.cfg.SafetyMargin
	for !d.exhausted && d.cursor < limit {
		code, n := d.genome.Read(d.cursor, d.cfg.OpcodeBits)
		if n == 0 {
			break
		}
		start := d.genome.Slice(d.cursor, d.cursor+n)
		at := d.cursor
		d.cursor += n

		switch {
		case d.cfg.isOrganCode(code):
			d.startNode(start)
			d.readOrgan()
		case d.cfg.isGeneCode(code) && d.organ != nil:
			d.startNode(start)
			d.readGene()
		default:
			if d.cfg.isGeneCode(code) {
				d.logger.Debug("gene start before any organ, kept as noncoding", slog.Int("offset", at-1))
			}
			d.noncoding.AppendSequence(start)
		}
	}
	return d.finish()
}

// finish flushes the unread tail into the last node so the chain covers the
// whole genome, closes the open organ and resets the decoder.
func (d *Decoder) finish() *phenotype.Organism {
	if d.cursor < d.genome.Len() {
		d.noncoding.AppendSequence(d.genome.Slice(d.cursor, d.genome.Len()))
		d.cursor = d.genome.Len()
	}
	d.closeNode()
	if d.organ != nil {
		d.organism.AddOrgan(d.organ)
	}
	org := d.organism
	d.logger.Debug("decoded organism",
		slog.String("id", org.ID()),
		slog.Int("bits", d.genome.Len()-1),
		slog.Int("organs", len(org.Organs())),
		slog.Int("genes", org.GeneCount()),
		slog.Int("segments", d.chain.Len()),
	)
	d.Reset()
	return org
}

func (d *Decoder) closeNode() {
	n := d.chain.Node(d.node)
	n.Params = d.params.Sequence()
	n.Noncoding = d.noncoding.Sequence()
	d.params.Reset()
	d.noncoding.Reset()
}

func (d *Decoder) startNode(start bits.Sequence) {
	d.closeNode()
	d.node = d.chain.Append()
	d.chain.Node(d.node).Start = start
}

// field reads width bits at the cursor and records them as parameter bits.
// The first read past the end exhausts the genome: it and every later field
// read 0, and the unread bits are left for finish to flush as noncoding.
func (d *Decoder) field(width int) uint64 {
	if d.exhausted {
		return 0
	}
	v, n := d.genome.Read(d.cursor, width)
	if n == 0 {
		d.exhausted = true
		return 0
	}
	d.cursor += n
	d.params.AppendUint(v, n)
	return v
}

// readOrgan puts the first field into the activation rate and the second into
// the reaction rate. That order is chosen on purpose so an emitter monitoring
// activation rate reads the first field.
func (d *Decoder) readOrgan() {
	if d.organ != nil {
		d.organism.AddOrgan(d.organ)
	}
	d.organ = phenotype.NewOrgan(d.ids.NewID(), d.organism, d.node)
	act := d.field(d.cfg.OrganFieldBits)
	react := d.field(d.cfg.OrganFieldBits)
	d.organ.Set(phenotype.ActivationRate, float64(act)/d.cfg.RateScale)
	d.organ.Set(phenotype.ReactionRate, float64(react)/d.cfg.RateScale)
	d.logger.Debug("organ",
		slog.Int("segment", d.node),
		slog.Float64("activation_rate", d.organ.ActivationRate()),
		slog.Float64("reaction_rate", d.organ.ReactionRate()),
	)
}

func (d *Decoder) readGene() {
	kind := phenotype.GeneKind(d.field(d.cfg.GeneTypeBits) % phenotype.GeneKinds)
	var gene phenotype.Gene
	switch kind {
	case phenotype.KindReaction:
		gene = d.readReaction()
	case phenotype.KindEmitter:
		raw := d.field(d.cfg.EmitterRateBits)
		rate := (float64(raw) + 1) / d.cfg.EmitterRateDivisor
		fn := d.readFunction()
		monitor, chem := d.readTarget()
		gene = phenotype.NewEmitter(d.ids.NewID(), d.organ, d.node, rate, fn, monitor, chem)
	default:
		fn := d.readFunction()
		target, chem := d.readTarget()
		gene = phenotype.NewReceptor(d.ids.NewID(), d.organ, d.node, fn, target, chem)
	}
	d.organ.AddGene(gene)
	d.logger.Debug("gene", slog.Int("segment", d.node), slog.String("kind", kind.String()))
}

// readFunction reads the selector and then as many fields as the selected
// constructor declares.
func (d *Decoder) readFunction() activation.Function {
	entry, _ := d.lib.Select(d.field(d.cfg.SelectorBits))
	raw := make([]uint64, len(entry.ParamBits))
	for i, w := range entry.ParamBits {
		raw[i] = d.field(w)
	}
	return entry.Construct(raw)
}

func (d *Decoder) readTarget() (phenotype.Parameter, phenotype.ChemicalID) {
	p := d.field(d.cfg.ParameterBits) % uint64(d.organ.ParameterCount())
	chem := d.field(d.cfg.ChemicalBits)
	return d.organ.ParameterAt(int(p)), phenotype.ChemicalID(chem)
}

func (d *Decoder) readReaction() *phenotype.Reaction {
	left := d.field(d.cfg.ReactionLeftBits)%uint64(d.cfg.LeftModulus) + 1
	right := d.field(d.cfg.ReactionRightBits) % uint64(d.cfg.RightModulus)
	terms := make([]phenotype.Term, 0, left+right)
	for i := uint64(0); i < left+right; i++ {
		q := d.field(d.cfg.QuantityBits)
		chem := d.field(d.cfg.ChemicalBits)
		terms = append(terms, phenotype.Term{Quantity: float64(q), Chemical: phenotype.ChemicalID(chem)})
	}
	return phenotype.NewReaction(d.ids.NewID(), d.organ, d.node, int(left), terms)
}
