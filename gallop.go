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

// gallop advances slice past the longest prefix for which pred holds,
// probing offsets 1, 2, 4, 8, ... until pred fails or the slice ends, then
// binary-retreating by halving the step. pred must be monotonic on slice:
// once it returns false, it must never return true for any later element.
// An empty slice, or a slice whose first element already fails pred, is
// returned unchanged.
func gallop[T any](slice []T, pred func(T) bool) []T {
	if len(slice) == 0 || !pred(slice[0]) {
		return slice
	}

	step := 1
	for step < len(slice) && pred(slice[step]) {
		slice = slice[step:]
		step <<= 1
	}

	step >>= 1
	for step > 0 {
		if step < len(slice) && pred(slice[step]) {
			slice = slice[step:]
		}
		step >>= 1
	}

	return slice[1:]
}
