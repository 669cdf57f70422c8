package phenotype

import "sort"

type ChemicalID int

// DefaultChemicalCount covers every id a 4-bit chemical field can name.
const DefaultChemicalCount = 16

// Store is an organism's chemical bookkeeping: raw quantities and the
// concentrations derived from them by Normalize.
type Store struct {
	quantities     map[ChemicalID]float64
	concentrations map[ChemicalID]float64
}

func NewStore(ids ...ChemicalID) *Store {
	s := &Store{
		quantities:     make(map[ChemicalID]float64, len(ids)),
		concentrations: make(map[ChemicalID]float64, len(ids)),
	}
	for _, id := range ids {
		s.Track(id)
	}
	return s
}

func defaultChemicals() []ChemicalID {
	ids := make([]ChemicalID, DefaultChemicalCount)
	for i := range ids {
		ids[i] = ChemicalID(i)
	}
	return ids
}

func (s *Store) Track(id ChemicalID) {
	if _, ok := s.quantities[id]; !ok {
		s.quantities[id] = 0
		s.concentrations[id] = 0
	}
}

// Quantity of an untracked chemical is 0.
func (s *Store) Quantity(id ChemicalID) float64 {
	return s.quantities[id]
}

func (s *Store) Concentration(id ChemicalID) float64 {
	return s.concentrations[id]
}

func (s *Store) Add(id ChemicalID, amount float64) {
	if amount < 0 {
		s.Remove(id, -amount)
		return
	}
	s.Track(id)
	s.quantities[id] += amount
}

// Remove never leaves a quantity below zero.
func (s *Store) Remove(id ChemicalID, amount float64) {
	s.Track(id)
	s.quantities[id] -= amount
	if s.quantities[id] < 0 {
		s.quantities[id] = 0
	}
}

func (s *Store) Total() float64 {
	total := 0.0
	for _, q := range s.quantities {
		total += q
	}
	return total
}

// Normalize recomputes concentrations. They sum to 1 when anything is present
// and are all 0 otherwise.
func (s *Store) Normalize() {
	total := s.Total()
	for id, q := range s.quantities {
		if total <= 0 {
			s.concentrations[id] = 0
			continue
		}
		s.concentrations[id] = q / total
	}
}

func (s *Store) IDs() []ChemicalID {
	ids := make([]ChemicalID, 0, len(s.quantities))
	for id := range s.quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
