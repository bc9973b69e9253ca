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

// JoinInput is the capability operators need from either side of a join: a
// view of the tuples added on the previous round (recent) and a view of all
// earlier tuples, as a sequence of sorted batches (stable). A Variable
// exposes its real recent/stable strata; a Relation reports an empty recent
// and itself as the sole stable batch. This lets Join drive
// variable-variable and variable-relation joins with the same code; Antijoin
// and Map take their Variable and Relation arguments directly.
type JoinInput[T any] interface {
	Recent() []T
	Stable() []Relation[T]
}

// Recent implements JoinInput: a static Relation has no tuples "added last
// round" because it never changes.
func (r Relation[T]) Recent() []T {
	return nil
}

// Stable implements JoinInput: a static Relation is its own single batch.
func (r Relation[T]) Stable() []Relation[T] {
	return []Relation[T]{r}
}

// joinKernel emits, via emit, the cross-product of every pair (v1, v2) from
// slice1 and slice2 whose extracted keys are equal, in order: slice1's
// element order, then slice2's within each equal-key block. Unequal heads
// gallop the smaller side forward past keys that can't possibly match.
func joinKernel[K, V1, V2 any](
	slice1 []V1,
	slice2 []V2,
	keyCmp CompareFunc[K],
	key1 func(V1) K,
	key2 func(V2) K,
	emit func(k K, v1 V1, v2 V2),
) {
	for len(slice1) > 0 && len(slice2) > 0 {
		k1 := key1(slice1[0])
		k2 := key2(slice2[0])

		switch {
		case keyCmp(k1, k2) < 0:
			slice1 = gallop(slice1, func(v V1) bool { return keyCmp(key1(v), k2) < 0 })
		case keyCmp(k1, k2) > 0:
			slice2 = gallop(slice2, func(v V2) bool { return keyCmp(key2(v), k1) < 0 })
		default:
			count1 := 0
			for count1 < len(slice1) && keyCmp(key1(slice1[count1]), k1) == 0 {
				count1++
			}
			count2 := 0
			for count2 < len(slice2) && keyCmp(key2(slice2[count2]), k2) == 0 {
				count2++
			}

			for _, v1 := range slice1[:count1] {
				for _, v2 := range slice2[:count2] {
					emit(k1, v1, v2)
				}
			}

			slice1 = slice1[count1:]
			slice2 = slice2[count2:]
		}
	}
}

// Join computes the delta of input1 ⋈ input2 for the current round and
// appends it to output's pending list. input1 must be a Variable so it has
// a meaningful recent; input2 may be a Variable or a Relation (via
// JoinInput). The semi-naive expansion covers exactly three disjoint
// regions so that no pair is re-derived across rounds:
//
//	recent1 × stable(input2)
//	stable(input1) × recent2
//	recent1 × recent2
func Join[K, V1, V2, R any](
	input1 *Variable[V1],
	input2 JoinInput[V2],
	output *Variable[R],
	keyCmp CompareFunc[K],
	key1 func(V1) K,
	key2 func(V2) K,
	logic func(k K, v1 V1, v2 V2) R,
) {
	input1.checkNotBusy()
	if v, ok := input2.(*Variable[V2]); ok {
		v.checkNotBusy()
	}

	var results []R
	emit := func(k K, v1 V1, v2 V2) {
		results = append(results, logic(k, v1, v2))
	}

	recent1 := input1.Recent()
	recent2 := input2.Recent()

	for _, batch2 := range input2.Stable() {
		joinKernel(recent1, batch2.Elements(), keyCmp, key1, key2, emit)
	}
	for _, batch1 := range input1.Stable() {
		joinKernel(batch1.Elements(), recent2, keyCmp, key1, key2, emit)
	}
	joinKernel(recent1, recent2, keyCmp, key1, key2, emit)

	output.insertPending(NewRelation(results, output.state.cmp))
}

// Antijoin appends to output's pending list the result of applying logic to
// every tuple in input1's recent whose key (per keyOf) is absent from
// input2. input2's stable batches are never consulted here: input1's stable
// tuples were already classified against the (static) input2 on earlier
// rounds, and the relation cannot itself change.
func Antijoin[K, V, R any](
	input1 *Variable[V],
	input2 Relation[K],
	output *Variable[R],
	keyCmp CompareFunc[K],
	keyOf func(V) K,
	logic func(k K, v V) R,
) {
	input1.checkNotBusy()

	remaining := input2.Elements()
	var results []R
	for _, v := range input1.Recent() {
		k := keyOf(v)
		remaining = gallop(remaining, func(k2 K) bool { return keyCmp(k2, k) < 0 })
		if len(remaining) > 0 && keyCmp(remaining[0], k) == 0 {
			continue
		}
		results = append(results, logic(k, v))
	}

	output.insertPending(NewRelation(results, output.state.cmp))
}

// Map applies logic to every tuple in input's recent and appends the result
// to output's pending list. Stable tuples are never re-mapped: they were
// already mapped on the round they first appeared in recent.
func Map[T, R any](input *Variable[T], output *Variable[R], logic func(T) R) {
	input.checkNotBusy()

	recent := input.Recent()
	results := make([]R, len(recent))
	for i, v := range recent {
		results[i] = logic(v)
	}

	output.insertPending(NewRelation(results, output.state.cmp))
}
