package activation

import "github.com/appengine-ltd/organa/internal/names"

// Entry describes one constructor in the library: how many raw fields it
// needs, their widths in bits, and how raw values map onto parameters.
type Entry struct {
	Kind      Kind
	Name      string
	ParamBits []int
	Build     func(raw []uint64) Function
}

// Construct builds the function from raw bit fields. Missing fields read as 0.
func (e Entry) Construct(raw []uint64) Function {
	if e.Build == nil {
		return Function{Kind: e.Kind}
	}
	padded := make([]uint64, len(e.ParamBits))
	copy(padded, raw)
	return e.Build(padded)
}

var kindAliases = map[Kind][]string{
	InverseSigmoid: {"reverse sigmoid"},
	DecayingPower:  {"negative square root", "reverse square"},
}

// Library is the ordered constructor table indexed by the genome's function
// selector field.
type Library struct {
	entries []Entry
	names   *names.Registry
}

// Default returns the standard table. Raw mappings:
//
//	exponential, inverse exponential  exponent = raw (4 bits, 0..15)
//	radical, inverse radical          radicand = raw+1 (4 bits, 1..16)
//	sigmoid, inverse sigmoid          coefficient = raw, mean = 1/(1+raw) (7 bits each)
//	decaying power                    base = 1+raw/16, coefficient = raw+1 (6 bits each)
func Default() *Library {
	return NewLibrary([]Entry{
		{Kind: Linear, Build: func([]uint64) Function { return Function{Kind: Linear} }},
		{Kind: InverseLinear, Build: func([]uint64) Function { return Function{Kind: InverseLinear} }},
		{Kind: Exponential, ParamBits: []int{4}, Build: exponent(Exponential)},
		{Kind: InverseExponential, ParamBits: []int{4}, Build: exponent(InverseExponential)},
		{Kind: Radical, ParamBits: []int{4}, Build: radicand(Radical)},
		{Kind: InverseRadical, ParamBits: []int{4}, Build: radicand(InverseRadical)},
		{Kind: Sigmoid, ParamBits: []int{7, 7}, Build: sigmoid(Sigmoid)},
		{Kind: InverseSigmoid, ParamBits: []int{7, 7}, Build: sigmoid(InverseSigmoid)},
		{Kind: DecayingPower, ParamBits: []int{6, 6}, Build: func(raw []uint64) Function {
			return Function{
				Kind:        DecayingPower,
				Base:        1 + float64(raw[0])/16,
				Coefficient: float64(raw[1]) + 1,
			}
		}},
	})
}

func exponent(k Kind) func([]uint64) Function {
	return func(raw []uint64) Function {
		return Function{Kind: k, Exponent: float64(raw[0])}
	}
}

func radicand(k Kind) func([]uint64) Function {
	return func(raw []uint64) Function {
		return Function{Kind: k, Radicand: float64(raw[0]) + 1}
	}
}

func sigmoid(k Kind) func([]uint64) Function {
	return func(raw []uint64) Function {
		return Function{
			Kind:        k,
			Coefficient: float64(raw[0]),
			Mean:        1 / (1 + float64(raw[1])),
		}
	}
}

func NewLibrary(entries []Entry) *Library {
	lib := &Library{
		entries: make([]Entry, len(entries)),
		names:   names.NewRegistry(),
	}
	copy(lib.entries, entries)
	for i := range lib.entries {
		if lib.entries[i].Name == "" {
			lib.entries[i].Name = lib.entries[i].Kind.String()
		}
		lib.names.Register(lib.entries[i].Name, kindAliases[lib.entries[i].Kind]...)
	}
	return lib
}

func (l *Library) Len() int {
	return len(l.entries)
}

func (l *Library) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Select reduces selector modulo the table size so every bit pattern names
// a constructor.
func (l *Library) Select(selector uint64) (Entry, int) {
	if len(l.entries) == 0 {
		return Entry{}, 0
	}
	idx := int(selector % uint64(len(l.entries)))
	return l.entries[idx], idx
}

// Lookup finds an entry by name, tolerating separators, case and small typos.
// It also returns the entry's selector index.
func (l *Library) Lookup(name string) (Entry, int, bool) {
	m, ok := l.names.Resolve(name)
	if !ok {
		return Entry{}, 0, false
	}
	for i, e := range l.entries {
		if names.Normalise(e.Name) == m.Canonical {
			return e, i, true
		}
	}
	return Entry{}, 0, false
}
