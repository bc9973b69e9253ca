package people

import (
	"math/rand"
	"testing"
)

func TestGeneratePopulationSizeAndRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	population := GeneratePopulation(200, rng)
	if len(population) != 200 {
		t.Fatalf("got %d people, want 200", len(population))
	}
	seenName := make(map[string]bool)
	for _, p := range population {
		if p.Age < 1 || p.Age > 98 {
			t.Fatalf("person %+v has out-of-range age", p)
		}
		seenName[p.Name] = true
	}
	for _, n := range names {
		if !seenName[n] {
			t.Fatalf("name %q never appeared in a 200-person population", n)
		}
	}
}

func TestParentFinderRespectsAgeWindow(t *testing.T) {
	population := []Person{
		{Name: "Lisa", Age: 10},
		{Name: "Ming", Age: 35},  // 25 years older: in window
		{Name: "Ivan", Age: 50},  // 40 years older: out of window
		{Name: "Sriram", Age: 29}, // 19 years older: out of window
	}
	pf := NewParentFinder(population)
	candidates := pf.CandidatesForAge(10)
	if len(candidates) != 1 || candidates[0].Name != "Ming" {
		t.Fatalf("candidates for age 10 = %+v, want only Ming", candidates)
	}
}

func TestParentFinderCachesAcrossCalls(t *testing.T) {
	population := []Person{{Name: "Lisa", Age: 30}, {Name: "Ming", Age: 55}}
	pf := NewParentFinder(population)

	first := pf.CandidatesForAge(30)
	// Mutate the backing population slice; a cached answer should not see it.
	population[1].Age = 999
	second := pf.CandidatesForAge(30)

	if len(first) != len(second) || len(second) != 1 {
		t.Fatalf("expected cached candidate slice to be stable, got %+v then %+v", first, second)
	}
}

func TestGenerateTriplesProducesNameAndAgeFacts(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	population := GeneratePopulation(50, rng)
	pf := NewParentFinder(population)
	triples := GenerateTriples(population, pf, rng)

	nameCount, ageCount := 0, 0
	for _, tr := range triples {
		switch tr.Desc {
		case ":name":
			nameCount++
		case ":age":
			ageCount++
		}
	}
	if nameCount != len(population) || ageCount != len(population) {
		t.Fatalf(":name=%d :age=%d, want %d each", nameCount, ageCount, len(population))
	}
}

// TestQueryFindsSeededSharedName builds a tiny, hand-constructed fact set (no
// randomness) where alice's parent carol shares her name, and confirms Query
// reports exactly that match.
func TestQueryFindsSeededSharedName(t *testing.T) {
	alice := Person{Name: "Lisa", Age: 10}
	carol := Person{Name: "Lisa", Age: 40} // shares alice's name
	dave := Person{Name: "Ivan", Age: 45}  // does not share it

	triples := []Triple{
		{Tail: PersonValue(alice), Desc: ":name", Head: StringValue(alice.Name)},
		{Tail: PersonValue(carol), Desc: ":name", Head: StringValue(carol.Name)},
		{Tail: PersonValue(dave), Desc: ":name", Head: StringValue(dave.Name)},
		{Tail: PersonValue(alice), Desc: ":parent", Head: PersonValue(carol)},
		{Tail: PersonValue(alice), Desc: ":parent", Head: PersonValue(dave)},
	}

	matches := Query(triples)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %+v", len(matches), matches)
	}
	child, ok := matches[0].Child.Person()
	if !ok || child.Name != "Lisa" || child.Age != 10 {
		t.Fatalf("match child = %+v, want alice", matches[0].Child)
	}
	parent, ok := matches[0].Parent.Person()
	if !ok || parent.Name != "Lisa" || parent.Age != 40 {
		t.Fatalf("match parent = %+v, want carol", matches[0].Parent)
	}
}

// TestQueryOnGeneratedPopulationDoesNotPanic exercises the full pipeline --
// generation, triple explosion, and the join-chain query -- at a size large
// enough to hit every compaction and galloping-filter path at least once.
func TestQueryOnGeneratedPopulationDoesNotPanic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	population := GeneratePopulation(500, rng)
	pf := NewParentFinder(population)
	triples := GenerateTriples(population, pf, rng)

	matches := Query(triples)
	for _, m := range matches {
		child, ok := m.Child.Person()
		if !ok {
			t.Fatalf("match child is not a Person: %+v", m)
		}
		parent, ok := m.Parent.Person()
		if !ok {
			t.Fatalf("match parent is not a Person: %+v", m)
		}
		name, ok := m.Name.String()
		if !ok || name != child.Name || name != parent.Name {
			t.Fatalf("match %+v has inconsistent shared name", m)
		}
	}
}

func TestSortTriplesIsOrderedAndPreservesDuplicates(t *testing.T) {
	p := Person{Name: "Lisa", Age: 20}
	q := Person{Name: "Ming", Age: 45}
	triples := []Triple{
		{Tail: PersonValue(p), Desc: ":parent", Head: PersonValue(q)},
		{Tail: PersonValue(p), Desc: ":age", Head: IntValue(20)},
		{Tail: PersonValue(p), Desc: ":parent", Head: PersonValue(q)},
	}
	sorted := SortTriples(triples)
	if len(sorted) != len(triples) {
		t.Fatalf("SortTriples changed length: got %d, want %d", len(sorted), len(triples))
	}
	for i := 1; i < len(sorted); i++ {
		if compareTriple(sorted[i-1], sorted[i]) > 0 {
			t.Fatalf("SortTriples did not produce a sorted slice: %+v", sorted)
		}
	}
}
