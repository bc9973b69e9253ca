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

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain confirms that driving an Iteration to a fixpoint never leaves
// goroutines behind, a cheap regression check on the single-threaded,
// cooperative scheduling model from spec §5: the engine has no internal
// parallelism, so nothing here should spawn anything for goleak to catch.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestIterationStepAdvancesAllVariablesInLockstep(t *testing.T) {
	it := NewIteration()
	a := NewVariable[int](it, "a", intCmp)
	b := NewVariable[int](it, "b", intCmp)

	a.Insert(NewRelation([]int{1, 2, 3}, intCmp))
	// b only ever receives tuples mapped from a, one round behind.
	rounds := 0
	for it.Step() {
		rounds++
		Map(a, b, func(x int) int { return x * 10 })
	}

	ra := a.Complete()
	rb := b.Complete()
	if ra.Len() != 3 {
		t.Fatalf("a has %d tuples, want 3", ra.Len())
	}
	if rb.Len() != 3 {
		t.Fatalf("b has %d tuples, want 3", rb.Len())
	}
	for _, x := range rb.Elements() {
		if x%10 != 0 {
			t.Fatalf("b contains non-mapped tuple %d", x)
		}
	}
}

func TestMultipleRulesTargetingSameVariable(t *testing.T) {
	it := NewIteration()
	source := NewVariable[int](it, "source", intCmp)
	doubled := NewVariable[int](it, "doubled", intCmp)

	source.Insert(NewRelation([]int{1, 2, 3}, intCmp))

	for it.Step() {
		// Two "rules" append to the same output variable in the same
		// round; they should be consolidated at the next Step (spec §4.9).
		Map(source, doubled, func(x int) int { return x * 2 })
		Map(source, doubled, func(x int) int { return x*2 + 100 })
	}

	result := doubled.Complete()
	if result.Len() != 6 {
		t.Fatalf("doubled has %d tuples, want 6", result.Len())
	}
}
