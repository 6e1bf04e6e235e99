// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

// MergeMode selects how a newly parsed definition combines with an
// already-present one of the same name, for every section compiler.
type MergeMode uint8

const (
	// MergeDefault: behaves as Augment, both for included files and
	// for the top-level file's own repeated definitions; each section
	// compiler resolves it to Augment before calling ResolveCollision.
	MergeDefault MergeMode = iota
	MergeAugment
	MergeOverride
	MergeReplace
)

// ResolveCollision decides, given that both an old and a new
// definition exist for the same name, which one survives and whether
// the collision should be reported as a warning. REPLACE silently
// takes the new definition; OVERRIDE takes the new definition but
// reports; AUGMENT keeps the old definition; DEFAULT is never passed
// here — callers normalize DEFAULT to AUGMENT before calling.
func ResolveCollision(mode MergeMode) (takeNew bool, report bool) {
	switch mode {
	case MergeAugment:
		return false, false
	case MergeOverride:
		return true, true
	case MergeReplace:
		return true, false
	default:
		// MergeDefault reaching here is a caller bug; fall back to
		// the safest choice (old wins, no report) rather than panic.
		return false, false
	}
}
