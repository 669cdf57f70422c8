package genome

import (
	"errors"
	"fmt"
	"math"

	"github.com/appengine-ltd/organa/internal/activation"
	"github.com/appengine-ltd/organa/internal/bits"
	"github.com/appengine-ltd/organa/internal/phenotype"
)

var (
	ErrUnknownFunction = errors.New("unknown activation function")
	ErrFieldOverflow   = errors.New("value does not fit its field")
)

// Composer writes genomes field by field in the grammar of a Config, so
// organisms can be designed by hand. The first error sticks and is returned
// by Genome.
type Composer struct {
	cfg Config
	lib *activation.Library
	b   bits.Builder
	err error
}

func NewComposer(cfg Config, lib *activation.Library) (*Composer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if lib == nil {
		lib = activation.Default()
	}
	return &Composer{cfg: cfg, lib: lib}, nil
}

// Organ starts an organ with raw activation and reaction rate fields; the
// decoded rates are raw/RateScale.
func (c *Composer) Organ(activationRate, reactionRate uint64) *Composer {
	c.put("organ opcode", c.cfg.OrganCodes[0].Lo, c.cfg.OpcodeBits)
	c.put("activation rate", activationRate, c.cfg.OrganFieldBits)
	c.put("reaction rate", reactionRate, c.cfg.OrganFieldBits)
	return c
}

func (c *Composer) Receptor(function string, params []uint64, target phenotype.Parameter, chemical phenotype.ChemicalID) *Composer {
	c.geneHeader(phenotype.KindReceptor)
	c.function(function, params)
	c.target(target, chemical)
	return c
}

// Emitter takes the raw rate field; the decoded rate is (raw+1)/divisor.
func (c *Composer) Emitter(rate uint64, function string, params []uint64, monitor phenotype.Parameter, chemical phenotype.ChemicalID) *Composer {
	c.geneHeader(phenotype.KindEmitter)
	c.put("emitter rate", rate, c.cfg.EmitterRateBits)
	c.function(function, params)
	c.target(monitor, chemical)
	return c
}

// Reaction quantities must be whole numbers that fit the quantity field.
func (c *Composer) Reaction(reactants, products []phenotype.Term) *Composer {
	if c.err != nil {
		return c
	}
	if len(reactants) < 1 || len(reactants) > c.cfg.LeftModulus {
		c.err = fmt.Errorf("reaction needs 1 to %d reactants, got %d: %w", c.cfg.LeftModulus, len(reactants), ErrFieldOverflow)
		return c
	}
	if len(products) >= c.cfg.RightModulus {
		c.err = fmt.Errorf("reaction allows at most %d products, got %d: %w", c.cfg.RightModulus-1, len(products), ErrFieldOverflow)
		return c
	}
	c.geneHeader(phenotype.KindReaction)
	c.put("reaction left", uint64(len(reactants)-1), c.cfg.ReactionLeftBits)
	c.put("reaction right", uint64(len(products)), c.cfg.ReactionRightBits)
	for _, t := range append(append([]phenotype.Term(nil), reactants...), products...) {
		if t.Quantity < 0 || t.Quantity != math.Trunc(t.Quantity) {
			c.err = fmt.Errorf("reaction quantity %v is not a whole number: %w", t.Quantity, ErrFieldOverflow)
			return c
		}
		c.put("quantity", uint64(t.Quantity), c.cfg.QuantityBits)
		c.put("chemical", uint64(t.Chemical), c.cfg.ChemicalBits)
	}
	return c
}

// Noncoding appends bits verbatim. The caller keeps them free of opcodes.
func (c *Composer) Noncoding(s bits.Sequence) *Composer {
	if c.err == nil {
		c.b.AppendSequence(s)
	}
	return c
}

// Pad appends n zero bits, enough to push the last structure inside the
// decoder's safety margin. It fails when zero is itself an opcode.
func (c *Composer) Pad(n int) *Composer {
	if c.err != nil {
		return c
	}
	if c.cfg.isOrganCode(0) || c.cfg.isGeneCode(0) {
		c.err = errors.New("cannot pad with zeros: zero is an opcode")
		return c
	}
	for i := 0; i < n; i++ {
		c.b.AppendUint(0, 1)
	}
	return c
}

func (c *Composer) Genome() (bits.Sequence, error) {
	if c.err != nil {
		return bits.Sequence{}, c.err
	}
	return c.b.Sequence(), nil
}

func (c *Composer) geneHeader(kind phenotype.GeneKind) {
	c.put("gene opcode", c.cfg.GeneCodes[0].Lo, c.cfg.OpcodeBits)
	c.put("gene type", uint64(kind), c.cfg.GeneTypeBits)
}

func (c *Composer) function(name string, params []uint64) {
	if c.err != nil {
		return
	}
	entry, idx, ok := c.lib.Lookup(name)
	if !ok {
		c.err = fmt.Errorf("%q: %w", name, ErrUnknownFunction)
		return
	}
	if len(params) != len(entry.ParamBits) {
		c.err = fmt.Errorf("%s takes %d parameters, got %d", entry.Name, len(entry.ParamBits), len(params))
		return
	}
	c.put("function selector", uint64(idx), c.cfg.SelectorBits)
	for i, w := range entry.ParamBits {
		c.put(entry.Name+" parameter", params[i], w)
	}
}

func (c *Composer) target(p phenotype.Parameter, chemical phenotype.ChemicalID) {
	c.put("parameter", uint64(p), c.cfg.ParameterBits)
	if chemical < 0 {
		c.err = fmt.Errorf("chemical %d is negative: %w", chemical, ErrFieldOverflow)
		return
	}
	c.put("chemical", uint64(chemical), c.cfg.ChemicalBits)
}

func (c *Composer) put(field string, v uint64, width int) {
	if c.err != nil {
		return
	}
	if width < 64 && v >= 1<<uint(width) {
		c.err = fmt.Errorf("%s %d in %d bits: %w", field, v, width, ErrFieldOverflow)
		return
	}
	c.b.AppendUint(v, width)
}
