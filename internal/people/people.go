// Package people generates a synthetic population of people and their
// :name/:age/:parent triples, and answers the "a and its parent share a
// name" query against them using the fixpoint engine. It is the Go
// restatement of datafrog's examples/people.rs, kept as a standalone
// consumer of the engine rather than part of its public surface, per the
// engine's purpose statement that the example driver is an external
// collaborator, not a core component.
package people

import (
	"bytes"
	"math/rand"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/google/uuid"
	"github.com/kevinawalsh/fixpoint"
)

// names mirrors the four-name pool from datafrog's people.rs example.
var names = []string{"Lisa", "Ming", "Sriram", "Ivan"}

// Person is a generated member of the synthetic population.
type Person struct {
	ID   uuid.UUID
	Name string
	Age  int
}

// valueKind tags which field of a Value is live.
type valueKind int

const (
	kindPerson valueKind = iota
	kindString
	kindInt
)

// Value is the Go counterpart of people.rs's Value<'a> enum: a triple's
// tail or head is either a Person, a bare string, or an integer.
type Value struct {
	kind   valueKind
	person Person
	str    string
	num    int
}

// PersonValue wraps a Person as a Value.
func PersonValue(p Person) Value { return Value{kind: kindPerson, person: p} }

// StringValue wraps a string as a Value.
func StringValue(s string) Value { return Value{kind: kindString, str: s} }

// IntValue wraps an int as a Value.
func IntValue(n int) Value { return Value{kind: kindInt, num: n} }

// Person returns the wrapped Person and whether the Value holds one.
func (v Value) Person() (Person, bool) { return v.person, v.kind == kindPerson }

// String returns the wrapped string and whether the Value holds one.
func (v Value) String() (string, bool) { return v.str, v.kind == kindString }

// compareValue totally orders Values by kind first, then by payload. It is
// the CompareFunc the fixpoint engine uses for every Value-keyed Variable
// and Relation in this package.
func compareValue(a, b Value) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	switch a.kind {
	case kindPerson:
		return comparePerson(a.person, b.person)
	case kindString:
		return compareString(a.str, b.str)
	default:
		return compareInt(a.num, b.num)
	}
}

func comparePerson(a, b Person) int {
	if c := compareString(a.Name, b.Name); c != 0 {
		return c
	}
	if c := compareInt(a.Age, b.Age); c != 0 {
		return c
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Triple is a single (tail, descriptor, head) fact, e.g. (alice, ":name",
// "Lisa") or (alice, ":parent", bob).
type Triple struct {
	Tail Value
	Desc string
	Head Value
}

func compareTriple(a, b Triple) int {
	if c := compareValue(a.Tail, b.Tail); c != 0 {
		return c
	}
	if c := compareString(a.Desc, b.Desc); c != 0 {
		return c
	}
	return compareValue(a.Head, b.Head)
}

// SortTriples orders triples by (tail, descriptor, head), giving callers
// (demo output, tests) a deterministic view over an otherwise
// randomly-generated fact set. Unlike a fixpoint.Relation, duplicate
// :parent triples (a person can share a parent-candidate draw) are kept.
func SortTriples(triples []Triple) []Triple {
	sorted := append([]Triple(nil), triples...)
	slices.SortFunc(sorted, compareTriple)
	return sorted
}

// ParentFinder memoizes, per age, the slice of candidate parents for a
// child of that age (people 20 to 35 years older). A single ParentFinder
// is meant to be reused across repeated triple-generation passes over the
// same population, so the candidate-parent scan only runs once per age
// bucket instead of once per lookup.
type ParentFinder struct {
	population []Person
	cache      *lru.Cache[int, []Person]
}

// NewParentFinder returns a ParentFinder over population, caching up to 128
// distinct ages worth of candidate-parent slices.
func NewParentFinder(population []Person) *ParentFinder {
	cache, _ := lru.New[int, []Person](128)
	return &ParentFinder{population: population, cache: cache}
}

// CandidatesForAge returns the people old enough to plausibly parent
// someone of the given age, computing and caching the answer on first use.
func (pf *ParentFinder) CandidatesForAge(age int) []Person {
	if cached, ok := pf.cache.Get(age); ok {
		return cached
	}
	var candidates []Person
	for _, p := range pf.population {
		if p.Age >= age+20 && p.Age <= age+35 {
			candidates = append(candidates, p)
		}
	}
	pf.cache.Add(age, candidates)
	return candidates
}

// GeneratePopulation returns n people with ages 1..98 and names drawn from
// the fixed name pool, using rng for both.
func GeneratePopulation(n int, rng *rand.Rand) []Person {
	population := make([]Person, n)
	for i := range population {
		population[i] = Person{
			ID:   uuid.New(),
			Name: names[rng.Intn(len(names))],
			Age:  1 + rng.Intn(98),
		}
	}
	return population
}

// GenerateTriples explodes population into :name, :age, and :parent
// triples. Each person gets two candidate parents chosen at random from
// pf.CandidatesForAge(person.Age) when at least two candidates exist,
// exactly as datafrog's people.rs example does (including its asymmetric
// candidate range, which never selects the last candidate in population
// order: the upper bound passed to the random index excludes the final
// element).
func GenerateTriples(population []Person, pf *ParentFinder, rng *rand.Rand) []Triple {
	var triples []Triple
	for _, person := range population {
		pv := PersonValue(person)
		triples = append(triples,
			Triple{Tail: pv, Desc: ":name", Head: StringValue(person.Name)},
			Triple{Tail: pv, Desc: ":age", Head: IntValue(person.Age)},
		)

		candidates := pf.CandidatesForAge(person.Age)
		if len(candidates) > 1 {
			parent1 := candidates[rng.Intn(len(candidates)-1)]
			parent2 := candidates[rng.Intn(len(candidates)-1)]
			triples = append(triples,
				Triple{Tail: pv, Desc: ":parent", Head: PersonValue(parent1)},
				Triple{Tail: pv, Desc: ":parent", Head: PersonValue(parent2)},
			)
		}
	}
	return triples
}

// Match is one row of the "child, parent, shared name" query result.
type Match struct {
	Child  Value
	Parent Value
	Name   Value
}

// hasNameTuple is (person, name); hasParentTuple is (person, parent). Both
// are keyed by their first field for the joins below.
type hasNameTuple struct{ person, name Value }
type hasParentTuple struct{ person, parent Value }

// query1Tuple is keyed by parent: (parent, child, childName).
type query1Tuple struct{ parent, child, childName Value }

// query2Tuple is keyed by child: (child, parent, childName, parentName).
type query2Tuple struct{ child, parent, childName, parentName Value }

func compareHasName(a, b hasNameTuple) int {
	if c := compareValue(a.person, b.person); c != 0 {
		return c
	}
	return compareValue(a.name, b.name)
}

func compareHasParent(a, b hasParentTuple) int {
	if c := compareValue(a.person, b.person); c != 0 {
		return c
	}
	return compareValue(a.parent, b.parent)
}

func compareQuery1(a, b query1Tuple) int {
	if c := compareValue(a.parent, b.parent); c != 0 {
		return c
	}
	if c := compareValue(a.child, b.child); c != 0 {
		return c
	}
	return compareValue(a.childName, b.childName)
}

func compareQuery2(a, b query2Tuple) int {
	for _, pair := range [][2]Value{
		{a.child, b.child}, {a.parent, b.parent}, {a.childName, b.childName}, {a.parentName, b.parentName},
	} {
		if c := compareValue(pair[0], pair[1]); c != 0 {
			return c
		}
	}
	return 0
}

func compareMatch(a, b Match) int {
	if c := compareValue(a.Child, b.Child); c != 0 {
		return c
	}
	if c := compareValue(a.Parent, b.Parent); c != 0 {
		return c
	}
	return compareValue(a.Name, b.Name)
}

// Query computes every (child, parent, name) such that child has name
// `name`, child has parent `parent`, and parent also has name `name`. It is
// a direct Go restatement of the join chain in people.rs's do_match: two
// joins through the engine's operator API, then a final filter-and-insert
// step that reads query2's recent directly (matching the original, which
// extends its result variable from a filter_map over recent rather than
// going through a named operator, since the engine's operator set --
// join/antijoin/map -- has no dedicated filter primitive).
func Query(triples []Triple) []Match {
	it := fixpoint.NewIteration()

	hasName := fixpoint.NewVariable[hasNameTuple](it, "has_name", compareHasName)
	hasParent := fixpoint.NewVariable[hasParentTuple](it, "has_parent", compareHasParent)
	query1 := fixpoint.NewVariable[query1Tuple](it, "query_1", compareQuery1)
	query2 := fixpoint.NewVariable[query2Tuple](it, "query_2", compareQuery2)
	query3 := fixpoint.NewVariable[Match](it, "query_3", compareMatch)

	var nameTuples []hasNameTuple
	var parentTuples []hasParentTuple
	for _, t := range triples {
		switch t.Desc {
		case ":name":
			nameTuples = append(nameTuples, hasNameTuple{person: t.Tail, name: t.Head})
		case ":parent":
			parentTuples = append(parentTuples, hasParentTuple{person: t.Tail, parent: t.Head})
		}
	}
	hasName.Insert(fixpoint.NewRelation(nameTuples, compareHasName))
	hasParent.Insert(fixpoint.NewRelation(parentTuples, compareHasParent))

	for it.Step() {
		// query_1(p, [a, a_name]) <- has_name(a, a_name), has_parent(a, p)
		fixpoint.Join(hasName, hasParent, query1, compareValue,
			func(n hasNameTuple) Value { return n.person },
			func(p hasParentTuple) Value { return p.person },
			func(_ Value, n hasNameTuple, p hasParentTuple) query1Tuple {
				return query1Tuple{parent: p.parent, child: n.person, childName: n.name}
			},
		)

		// query_2(a, [p, a_name, p_name]) <- query_1(p, [a, a_name]), has_name(p, p_name)
		fixpoint.Join(query1, hasName, query2, compareValue,
			func(q query1Tuple) Value { return q.parent },
			func(n hasNameTuple) Value { return n.person },
			func(k Value, q query1Tuple, n hasNameTuple) query2Tuple {
				return query2Tuple{child: q.child, parent: k, childName: q.childName, parentName: n.name}
			},
		)

		// query_3(a, p, name) <- query_2(a, [p, name, name])
		var matches []Match
		for _, q := range query2.Recent() {
			if compareValue(q.childName, q.parentName) == 0 {
				matches = append(matches, Match{Child: q.child, Parent: q.parent, Name: q.childName})
			}
		}
		query3.Insert(fixpoint.NewRelation(matches, compareMatch))
	}

	result := query3.Complete()
	hasName.Complete()
	hasParent.Complete()
	query1.Complete()
	query2.Complete()
	return result.Elements()
}
