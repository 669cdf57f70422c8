package phenotype

import (
	"math"
	"testing"

	"github.com/appengine-ltd/organa/internal/activation"
)

func newTestOrgan(activationRate, reactionRate float64) (*Organism, *Organ) {
	org := NewOrganism("body", nil)
	organ := NewOrgan("organ-1", org, 1)
	organ.Set(ActivationRate, activationRate)
	organ.Set(ReactionRate, reactionRate)
	org.AddOrgan(organ)
	return org, organ
}

func TestEmitterReleasesScaledByRateAndHealth(t *testing.T) {
	org, organ := newTestOrgan(1.0/32, 5.0/32)
	emitter := NewEmitter("e", organ, 2, 6, activation.Function{Kind: activation.Exponential, Exponent: 2}, ActivationRate, 5)
	organ.AddGene(emitter)

	if got := emitter.ReadParam(); math.Abs(got-1.0/32) > 1e-12 {
		t.Fatalf("ReadParam()=%v want=1/32", got)
	}
	want := math.Pow(1.0/32, 2) * 6
	if got := emitter.OutputAmount(); math.Abs(got-want) > 1e-12 {
		t.Fatalf("OutputAmount()=%v want=%v", got, want)
	}
	emitter.Release()
	if got := org.Quantity(5); math.Abs(got-0.00586) > 0.00001 {
		t.Fatalf("quantity(5)=%v want≈0.00586", got)
	}

	org2, organ2 := newTestOrgan(1.0/32, 5.0/32)
	organ2.Set(Health, 0.4)
	e2 := NewEmitter("e2", organ2, 2, 6, activation.Function{Kind: activation.Exponential, Exponent: 2}, ActivationRate, 5)
	e2.Release()
	if got := org2.Quantity(5); math.Abs(got-want*0.4) > 0.001 {
		t.Fatalf("quantity(5) at health 0.4=%v want≈%v", got, want*0.4)
	}
}

func TestReceptorQueuesUntilSettle(t *testing.T) {
	org, organ := newTestOrgan(1.0/32, 5.0/32)
	receptor := NewReceptor("r", organ, 3, activation.Function{Kind: activation.Exponential, Exponent: 2}, ReactionRate, 3)
	organ.AddGene(receptor)

	org.AddChemical(3, 1)
	org.AddChemical(6, 1)
	org.CalcConcentrations()

	if got := receptor.ReadInput(); got != 0.5 {
		t.Fatalf("ReadInput()=%v want=0.5", got)
	}
	receptor.AdjustParameter()
	if got := organ.ReactionRate(); got != 5.0/32 {
		t.Fatalf("receptor must not apply before settle, reaction rate=%v", got)
	}
	if p := organ.Pending(ReactionRate); len(p) != 1 || p[0] != 0.25 {
		t.Fatalf("pending reaction rate=%v want=[0.25]", p)
	}
	organ.Settle()
	if got := organ.ReactionRate(); got != 0.25 {
		t.Fatalf("reaction rate after settle=%v want=0.25", got)
	}
	if got := organ.ActivationRate(); got != 1.0/32 {
		t.Fatalf("activation rate without signals must stay, got %v", got)
	}
	if len(organ.Pending(ReactionRate)) != 0 {
		t.Fatalf("settle must clear pending signals")
	}
}

func TestInverseSigmoidReceptorFixture(t *testing.T) {
	org, organ := newTestOrgan(1.0/32, 5.0/32)
	lib := activation.Default()
	entry, _ := lib.Select(7)
	receptor := NewReceptor("r", organ, 3, entry.Construct([]uint64{1, 0}), ReactionRate, 3)

	org.AddChemical(3, 1)
	org.AddChemical(6, 1)
	org.CalcConcentrations()

	out := receptor.Output()
	if want := 1 - 1/(1+math.Exp(0.5)); math.Abs(out-want) > 1e-12 {
		t.Fatalf("Output()=%v want=%v", out, want)
	}
	receptor.AdjustParameter()
	organ.Settle()
	if rr := organ.ReactionRate(); rr <= 0.6 || rr >= 0.7 {
		t.Fatalf("reaction rate=%v want in (0.6, 0.7)", rr)
	}
}

func TestNegativeReceptorClampsAtZero(t *testing.T) {
	org, organ := newTestOrgan(0.5, 0.5)
	receptor := NewReceptor("r", organ, 3, activation.Function{Kind: activation.Linear}, ActivationRate, 1)
	receptor.SetNegative(true)
	org.AddChemical(1, 1)
	org.CalcConcentrations()
	if got := receptor.Output(); got != -1 {
		t.Fatalf("negative receptor output=%v want=-1", got)
	}
	receptor.AdjustParameter()
	organ.Settle()
	if got := organ.ActivationRate(); got != 0 {
		t.Fatalf("activation rate must clamp at 0, got %v", got)
	}
	receptor.SetNegative(false)
	if receptor.Sign() != 1 {
		t.Fatalf("SetNegative(false) must restore the positive sign")
	}
}

func TestReactionIsAllOrNothing(t *testing.T) {
	org, organ := newTestOrgan(1, 1)
	reaction := NewReaction("x", organ, 4, 2, []Term{
		{Quantity: 16, Chemical: 6},
		{Quantity: 8, Chemical: 4},
		{Quantity: 32, Chemical: 2},
	})

	org.AddChemical(6, 20)
	org.AddChemical(4, 7)
	if reaction.Ready() {
		t.Fatalf("reaction must not be ready with chemical 4 short")
	}
	if reaction.React() {
		t.Fatalf("React() must report a skipped reaction")
	}
	if org.Quantity(6) != 20 || org.Quantity(4) != 7 || org.Quantity(2) != 0 {
		t.Fatalf("insufficient reactants must leave quantities unchanged")
	}

	org.AddChemical(4, 1)
	if !reaction.React() {
		t.Fatalf("React() must run with sufficient reactants")
	}
	if org.Quantity(6) != 4 || org.Quantity(4) != 0 || org.Quantity(2) != 32 {
		t.Fatalf("after reaction got 6=%v 4=%v 2=%v", org.Quantity(6), org.Quantity(4), org.Quantity(2))
	}
	if len(reaction.Reactants()) != 2 || len(reaction.Products()) != 1 {
		t.Fatalf("reactants/products split wrong")
	}
}

func TestReactionSumsRepeatedReactants(t *testing.T) {
	org, organ := newTestOrgan(1, 1)
	reaction := NewReaction("x", organ, 4, 2, []Term{
		{Quantity: 5, Chemical: 3},
		{Quantity: 5, Chemical: 3},
		{Quantity: 7, Chemical: 4},
	})

	org.AddChemical(3, 6)
	if reaction.React() {
		t.Fatalf("React() must skip when a repeated reactant is short of its total")
	}
	if org.Quantity(3) != 6 || org.Quantity(4) != 0 {
		t.Fatalf("skipped reaction changed quantities: 3=%v 4=%v", org.Quantity(3), org.Quantity(4))
	}

	org.AddChemical(3, 4)
	if !reaction.React() {
		t.Fatalf("React() must run once the total is present")
	}
	if org.Quantity(3) != 0 || org.Quantity(4) != 7 {
		t.Fatalf("after reaction got 3=%v 4=%v", org.Quantity(3), org.Quantity(4))
	}
}

func TestReactionLeftCountIsBounded(t *testing.T) {
	_, organ := newTestOrgan(1, 1)
	r := NewReaction("x", organ, 4, 5, []Term{{Quantity: 1, Chemical: 1}})
	if len(r.Reactants()) != 1 || len(r.Products()) != 0 {
		t.Fatalf("left count must clamp to the number of terms")
	}
}

func TestGeneKinds(t *testing.T) {
	_, organ := newTestOrgan(1, 1)
	genes := []Gene{
		NewReceptor("a", organ, 1, activation.Function{}, Health, 0),
		NewEmitter("b", organ, 2, 1, activation.Function{}, Health, 0),
		NewReaction("c", organ, 3, 0, nil),
	}
	for i, g := range genes {
		if g.Kind() != GeneKind(i) {
			t.Fatalf("gene %d kind=%v", i, g.Kind())
		}
		if g.Organ() != organ || g.Segment() != i+1 {
			t.Fatalf("gene %d lost its owner or segment", i)
		}
	}
	if GeneKind(7).String() != "gene kind(7)" {
		t.Fatalf("unexpected unknown kind name")
	}
}
