package genome

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CodeRange is an inclusive range of opcode values. A single code has
// Lo == Hi.
type CodeRange struct {
	Lo uint64 `yaml:"lo"`
	Hi uint64 `yaml:"hi"`
}

func Code(v uint64) CodeRange {
	return CodeRange{Lo: v, Hi: v}
}

func (r CodeRange) Contains(v uint64) bool {
	return v >= r.Lo && v <= r.Hi
}

// Config fixes the genome grammar: opcode width and values, the width of
// every field, and the scales that turn raw fields into rates.
type Config struct {
	OpcodeBits   int         `yaml:"opcode_bits"`
	OrganCodes   []CodeRange `yaml:"organ_codes"`
	GeneCodes    []CodeRange `yaml:"gene_codes"`
	SafetyMargin int         `yaml:"safety_margin"`

	OrganFieldBits int     `yaml:"organ_field_bits"`
	RateScale      float64 `yaml:"rate_scale"`

	GeneTypeBits       int     `yaml:"gene_type_bits"`
	EmitterRateBits    int     `yaml:"emitter_rate_bits"`
	EmitterRateDivisor float64 `yaml:"emitter_rate_divisor"`
	SelectorBits       int     `yaml:"selector_bits"`
	ParameterBits      int     `yaml:"parameter_bits"`
	ChemicalBits       int     `yaml:"chemical_bits"`

	ReactionLeftBits  int `yaml:"reaction_left_bits"`
	ReactionRightBits int `yaml:"reaction_right_bits"`
	LeftModulus       int `yaml:"left_modulus"`
	RightModulus      int `yaml:"right_modulus"`
	QuantityBits      int `yaml:"quantity_bits"`
}

// DefaultConfig is the byte-framed grammar: 8-bit opcodes with organ codes
// 200-204 and gene codes 100-120, read inside a 40 bit safety margin.
func DefaultConfig() Config {
	return Config{
		OpcodeBits:   8,
		OrganCodes:   []CodeRange{{Lo: 200, Hi: 204}},
		GeneCodes:    []CodeRange{{Lo: 100, Hi: 120}},
		SafetyMargin: 40,

		OrganFieldBits: 5,
		RateScale:      32,

		GeneTypeBits:       4,
		EmitterRateBits:    5,
		EmitterRateDivisor: 5,
		SelectorBits:       3,
		ParameterBits:      4,
		ChemicalBits:       4,

		ReactionLeftBits:  4,
		ReactionRightBits: 4,
		LeftModulus:       2,
		RightModulus:      3,
		QuantityBits:      6,
	}
}

// CompactConfig is the 5-bit grammar: organ start 11111, gene start 11010,
// a single gene type bit and a 5 bit margin. With one type bit reactions
// cannot be expressed.
func CompactConfig() Config {
	cfg := DefaultConfig()
	cfg.OpcodeBits = 5
	cfg.OrganCodes = []CodeRange{Code(0b11111)}
	cfg.GeneCodes = []CodeRange{Code(0b11010)}
	cfg.SafetyMargin = 5
	cfg.GeneTypeBits = 1
	cfg.ReactionLeftBits = 1
	return cfg
}

func (c Config) Validate() error {
	if c.OpcodeBits < 1 || c.OpcodeBits > 64 {
		return fmt.Errorf("opcode bits must be between 1 and 64, got %d", c.OpcodeBits)
	}
	if len(c.OrganCodes) == 0 {
		return errors.New("at least one organ code is required")
	}
	if len(c.GeneCodes) == 0 {
		return errors.New("at least one gene code is required")
	}
	for _, group := range []struct {
		name  string
		codes []CodeRange
	}{{"organ", c.OrganCodes}, {"gene", c.GeneCodes}} {
		for _, r := range group.codes {
			if r.Lo > r.Hi {
				return fmt.Errorf("%s code range %d-%d is inverted", group.name, r.Lo, r.Hi)
			}
			if c.OpcodeBits < 64 && r.Hi >= 1<<uint(c.OpcodeBits) {
				return fmt.Errorf("%s code %d does not fit in %d bits", group.name, r.Hi, c.OpcodeBits)
			}
		}
	}
	// The main loop reads one opcode inside the margin; a smaller margin
	// could read past the end and stall the cursor.
	if c.SafetyMargin < c.OpcodeBits {
		return fmt.Errorf("safety margin %d is smaller than the opcode width %d", c.SafetyMargin, c.OpcodeBits)
	}
	widths := []struct {
		name string
		bits int
	}{
		{"organ field", c.OrganFieldBits},
		{"gene type", c.GeneTypeBits},
		{"emitter rate", c.EmitterRateBits},
		{"selector", c.SelectorBits},
		{"parameter", c.ParameterBits},
		{"chemical", c.ChemicalBits},
		{"reaction left", c.ReactionLeftBits},
		{"reaction right", c.ReactionRightBits},
		{"quantity", c.QuantityBits},
	}
	for _, w := range widths {
		if w.bits < 1 || w.bits > 64 {
			return fmt.Errorf("%s bits must be between 1 and 64, got %d", w.name, w.bits)
		}
	}
	if c.RateScale <= 0 {
		return fmt.Errorf("rate scale must be positive, got %v", c.RateScale)
	}
	if c.EmitterRateDivisor <= 0 {
		return fmt.Errorf("emitter rate divisor must be positive, got %v", c.EmitterRateDivisor)
	}
	if c.LeftModulus < 1 || c.RightModulus < 1 {
		return fmt.Errorf("reaction moduli must be at least 1, got %d and %d", c.LeftModulus, c.RightModulus)
	}
	return nil
}

func (c Config) isOrganCode(v uint64) bool {
	return matchAny(c.OrganCodes, v)
}

func (c Config) isGeneCode(v uint64) bool {
	return matchAny(c.GeneCodes, v)
}

func matchAny(codes []CodeRange, v uint64) bool {
	for _, r := range codes {
		if r.Contains(v) {
			return true
		}
	}
	return false
}

// LoadConfig reads a YAML grammar from path over DefaultConfig, so a file
// only needs the fields it changes.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse genome config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("genome config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path through a temp file and rename.
func SaveConfig(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "genome-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	cleanup = false
	return nil
}
