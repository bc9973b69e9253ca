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

// stepper is implemented by every registered variable, regardless of its
// tuple type, so an Iteration can hold a homogeneous slice of heterogeneous
// Variable[T]s.
type stepper interface {
	step() bool
}

// Iteration drives every Variable registered against it through rounds of
// semi-naive evaluation. The host's pattern is:
//
//	it := fixpoint.NewIteration()
//	v := fixpoint.NewVariable[int](it, "v", cmp)
//	v.Insert(fixpoint.NewRelation(initial, cmp))
//	for it.Step() {
//	    fixpoint.Map(v, v, rule)
//	}
//	result := v.Complete()
//
// Rules (operator calls) run between Step calls, never during one; Step
// itself advances every registered variable's strata in lockstep.
type Iteration struct {
	variables []stepper
}

// NewIteration returns an empty iteration context. Variables are registered
// with it by constructing them via NewVariable or NewIndistinctVariable.
func NewIteration() *Iteration {
	return &Iteration{}
}

// NewVariable creates a new, distinctly-maintained variable and registers
// it with it.
func NewVariable[T any](it *Iteration, name string, cmp CompareFunc[T]) *Variable[T] {
	v := newVariable(name, true, cmp)
	it.variables = append(it.variables, v)
	return v
}

// NewIndistinctVariable creates a new variable that does not deduplicate its
// recent tuples against stable before advertising them. Operators still
// terminate as long as the host's rule set is monotonic, but callers must
// not assume recent tuples are free of duplicates across rounds.
func NewIndistinctVariable[T any](it *Iteration, name string, cmp CompareFunc[T]) *Variable[T] {
	v := newVariable(name, false, cmp)
	it.variables = append(it.variables, v)
	return v
}

// Step advances every registered variable's strata by one round and reports
// whether any of them changed. The host's fixpoint loop is `for it.Step()`:
// once every variable returns false, no further rounds can produce new
// tuples and the computation is done.
func (it *Iteration) Step() bool {
	changed := false
	for _, v := range it.variables {
		if v.step() {
			changed = true
		}
	}
	return changed
}
