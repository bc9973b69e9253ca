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

// ContractError reports a violation of one of the engine's usage contracts:
// calling Complete before a variable has reached a quiet state, reentering
// an operator on a variable whose Step is in progress, or similar programmer
// errors. These are not recoverable conditions; the engine panics with a
// ContractError rather than attempting to limp along with inconsistent
// strata.
type ContractError struct {
	msg string
}

func (e *ContractError) Error() string {
	return "fixpoint: " + e.msg
}

// contractViolation panics with a ContractError built from msg.
func contractViolation(msg string) {
	panic(&ContractError{msg: msg})
}
