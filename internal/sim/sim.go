// Package sim drives an organism tick by tick under a fixed seed and
// records what happened.
package sim

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/appengine-ltd/organa/internal/phenotype"
	"github.com/appengine-ltd/organa/internal/rng"
)

type OrganState struct {
	ID             string
	Health         float64
	ActivationRate float64
	ReactionRate   float64
}

// Snapshot is the organism's state after a tick. Tick 0 is the state
// before the first tick.
type Snapshot struct {
	Tick       int
	Activated  int
	Quantities map[phenotype.ChemicalID]float64
	Organs     []OrganState
}

type Option func(*Simulation)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Simulation) {
		if tp != nil {
			s.tracer = tp.Tracer("sim")
		}
	}
}

// Simulation runs on the caller's goroutine. Organs activate in order and
// genes within an organ in order, so a seed fixes the whole run.
type Simulation struct {
	org    *phenotype.Organism
	cfg    Config
	rng    *rand.Rand
	tick   int
	logger *slog.Logger
	tracer trace.Tracer
}

func New(org *phenotype.Organism, cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		org:    org,
		cfg:    cfg,
		rng:    rng.NewSalted(cfg.Seed, "tick"),
		logger: slog.Default().With(slog.String("component", "sim")),
		tracer: otel.Tracer("sim"),
	}
	for _, opt := range opts {
		opt(s)
	}

	ids := make([]int, 0, len(cfg.Chemicals))
	for id := range cfg.Chemicals {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		org.AddChemical(phenotype.ChemicalID(id), cfg.Chemicals[id])
	}
	org.CalcConcentrations()
	return s, nil
}

func (s *Simulation) Organism() *phenotype.Organism {
	return s.org
}

// Tick is the number of ticks run so far.
func (s *Simulation) Tick() int {
	return s.tick
}

func (s *Simulation) Snapshot() Snapshot {
	return s.snapshot(0)
}

// Step runs one tick. It never fails; ctx only carries the trace.
func (s *Simulation) Step(ctx context.Context) Snapshot {
	_, span := s.tracer.Start(ctx, "sim.Step",
		trace.WithAttributes(attribute.Int("tick", s.tick+1)),
	)
	defer span.End()

	activated := s.org.Tick(s.rng)
	s.tick++
	span.SetAttributes(attribute.Int("organs_activated", activated))
	return s.snapshot(activated)
}

// Run performs the configured number of ticks, checking ctx between ticks.
// On cancellation it returns the snapshots taken so far with ctx's error.
func (s *Simulation) Run(ctx context.Context) ([]Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "sim.Run",
		trace.WithAttributes(
			attribute.String("organism", s.org.ID()),
			attribute.Int64("seed", s.cfg.Seed),
			attribute.Int("ticks", s.cfg.Ticks),
		),
	)
	defer span.End()

	out := make([]Snapshot, 0, s.cfg.Ticks)
	for i := 0; i < s.cfg.Ticks; i++ {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "run cancelled")
			s.logger.Warn("run cancelled",
				slog.String("organism", s.org.ID()),
				slog.Int("tick", s.tick),
				slog.String("error", err.Error()),
			)
			return out, err
		}
		out = append(out, s.Step(ctx))
	}

	s.logger.Debug("run finished",
		slog.String("organism", s.org.ID()),
		slog.Int("ticks", s.tick),
		slog.Int("organs", len(s.org.Organs())),
	)
	return out, nil
}

func (s *Simulation) snapshot(activated int) Snapshot {
	snap := Snapshot{
		Tick:       s.tick,
		Activated:  activated,
		Quantities: make(map[phenotype.ChemicalID]float64),
	}
	store := s.org.Chemicals()
	for _, id := range store.IDs() {
		if q := store.Quantity(id); q > 0 {
			snap.Quantities[id] = q
		}
	}
	for _, organ := range s.org.Organs() {
		snap.Organs = append(snap.Organs, OrganState{
			ID:             organ.ID(),
			Health:         organ.Health(),
			ActivationRate: organ.ActivationRate(),
			ReactionRate:   organ.ReactionRate(),
		})
	}
	return snap
}
