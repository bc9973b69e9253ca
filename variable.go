// Copyright (c) 2014, Kevin Walsh.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fixpoint

import "sync/atomic"

// variableState is the shared, interior-mutable state behind every handle to
// a given Variable. Cloning a Variable (simply copying the Go struct, which
// holds only a pointer here) produces another handle to the same state; an
// Iteration holds one such handle, and the host's rule sites hold others.
type variableState[T any] struct {
	name     string
	distinct bool
	cmp      CompareFunc[T]

	stable  []Relation[T]
	recent  Relation[T]
	pending []Relation[T]

	busy atomic.Bool
}

// Variable is a monotonically growing set of tuples, stratified into
// stable batches, recent, and pending, per the three-stratum invariant:
// every tuple the variable has ever accepted lives in exactly one of those
// three places. Variable is a cheap-to-copy handle; copying it never copies
// tuple data, only the pointer to the shared state.
type Variable[T any] struct {
	state *variableState[T]
}

// newVariable constructs a Variable with the given name, distinctness, and
// ordering. distinct controls whether the variable enforces global
// deduplication against stable before promoting tuples to recent (see
// step); most variables want this, hence NewVariable turns it on and only
// NewIndistinctVariable turns it off.
func newVariable[T any](name string, distinct bool, cmp CompareFunc[T]) *Variable[T] {
	return &Variable[T]{
		state: &variableState[T]{
			name:     name,
			distinct: distinct,
			cmp:      cmp,
			recent:   relationFromSorted[T](nil, cmp),
		},
	}
}

// Name returns the variable's diagnostic label.
func (v *Variable[T]) Name() string {
	return v.state.name
}

// Insert queues relation for introduction on the next Step. This is the
// usual way to load a variable's initial facts.
func (v *Variable[T]) Insert(relation Relation[T]) {
	v.insertPending(relation)
}

// insertPending is what operators call to append a freshly computed
// Relation of results to this variable's pending list.
func (v *Variable[T]) insertPending(relation Relation[T]) {
	v.checkNotBusy()
	if relation.IsEmpty() {
		return
	}
	v.state.pending = append(v.state.pending, relation)
}

// Recent returns the tuples discovered on the previous round: the slice
// operators read from when computing this round's deltas.
func (v *Variable[T]) Recent() []T {
	return v.state.recent.Elements()
}

// Stable returns the geometrically sized batches of tuples discovered two
// or more rounds ago.
func (v *Variable[T]) Stable() []Relation[T] {
	return v.state.stable
}

// checkNotBusy enforces the contract from spec §5: no operator may be
// active on a variable while that variable's Step is running. The busy flag
// is set only inside step, so in the engine's single-threaded cooperative
// model this only fires if code that runs during a Step (a CompareFunc)
// calls an operator or Insert on the variable, or if another goroutine does
// so concurrently; operator callbacks run between Steps and never trip it.
func (v *Variable[T]) checkNotBusy() {
	if v.state.busy.Load() {
		contractViolation("operator invoked on variable \"" + v.state.name + "\" while its step is in progress")
	}
}

// step advances the variable's strata by one round, per spec §4.4:
//
//  1. Fold recent into stable, popping and re-merging top batches while
//     they are no more than twice the size of the growing fold, to keep
//     stable's batches geometrically sized from bottom (oldest, largest)
//     to top (newest, smallest).
//  2. Consolidate pending into a single relation A.
//  3. If distinct, filter A against every stable batch so that A' contains
//     only tuples absent from all of them.
//  4. Store A' as the new recent.
//
// step returns true iff the new recent is non-empty, and leaves pending
// empty.
func (v *Variable[T]) step() bool {
	s := v.state
	s.busy.Store(true)
	defer s.busy.Store(false)

	recent := s.recent
	s.recent = relationFromSorted[T](nil, s.cmp)
	for len(s.stable) > 0 && s.stable[len(s.stable)-1].Len() <= 2*recent.Len() {
		top := s.stable[len(s.stable)-1]
		s.stable = s.stable[:len(s.stable)-1]
		recent = recent.Merge(top)
	}
	if !recent.IsEmpty() {
		s.stable = append(s.stable, recent)
	}

	if len(s.pending) == 0 {
		return false
	}

	toAdd := s.pending[0]
	for _, more := range s.pending[1:] {
		toAdd = toAdd.Merge(more)
	}
	s.pending = nil

	if s.distinct {
		toAdd = filterAgainstStable(toAdd, s.stable)
	}

	s.recent = toAdd
	return !s.recent.IsEmpty()
}

// filterAgainstStable returns the subset of candidate's elements that do
// not appear in any batch of stable, using a galloping cursor per batch so
// the filter costs O(|candidate| * log(|batch|/|candidate|) + |batch|)
// amortized rather than a linear scan per element.
func filterAgainstStable[T any](candidate Relation[T], stable []Relation[T]) Relation[T] {
	cmp := candidate.cmp
	remaining := candidate.Elements()
	for _, batch := range stable {
		cursor := batch.Elements()
		kept := remaining[:0:0]
		for _, x := range remaining {
			cursor = gallop(cursor, func(y T) bool { return cmp(y, x) < 0 })
			if len(cursor) == 0 || cmp(cursor[0], x) != 0 {
				kept = append(kept, x)
			}
		}
		remaining = kept
	}
	return relationFromSorted(remaining, cmp)
}

// Complete asserts that recent and pending are both empty -- i.e. that the
// host only calls this after driving the owning Iteration to a fixpoint --
// then flattens every stable batch into a single Relation. Complete
// consumes the variable: the returned Relation no longer shares storage
// that future Inserts could disturb, since there is no sensible "future"
// once a variable is complete.
func (v *Variable[T]) Complete() Relation[T] {
	s := v.state
	if !s.recent.IsEmpty() {
		contractViolation("Complete called on variable \"" + s.name + "\" with non-empty recent")
	}
	if len(s.pending) != 0 {
		contractViolation("Complete called on variable \"" + s.name + "\" with non-empty pending")
	}

	result := relationFromSorted[T](nil, s.cmp)
	for i := len(s.stable) - 1; i >= 0; i-- {
		result = result.Merge(s.stable[i])
	}
	s.stable = nil
	return result
}
