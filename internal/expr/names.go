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

// Package expr evaluates the small XKB expression language (boolean,
// integer, string, modifier-mask, modifier-index, keysym, and action
// values) against a keymap's declared names.
package expr

import (
	"github.com/samber/lo"
)

type namedMask struct {
	Name string
	Val  uint32
}

// modComponentMaskNames names the four modifier "component" keywords
// (base/latched/locked/effective) used in expressions like
// `modifiers= Shift+Lock` vs affect= fields.
var modComponentMaskNames = []namedMask{
	{"base", 1 << 0},
	{"latched", 1 << 1},
	{"locked", 1 << 2},
	{"effective", 1 << 3},
	{"compat", 1 << 4},
}

// groupComponentMaskNames mirrors modComponentMaskNames for groups.
var groupComponentMaskNames = []namedMask{
	{"base", 1 << 0},
	{"latched", 1 << 1},
	{"locked", 1 << 2},
	{"effective", 1 << 3},
}

// groupMaskNames names the eight possible layout groups (Group1..Group8)
// as a bitmask, used by which_groups-style fields.
var groupMaskNames = []namedMask{
	{"Group1", 1 << 0}, {"Group2", 1 << 1}, {"Group3", 1 << 2}, {"Group4", 1 << 3},
	{"Group5", 1 << 4}, {"Group6", 1 << 5}, {"Group7", 1 << 6}, {"Group8", 1 << 7},
}

// ctrlMaskNames names the boolean keyboard controls (RepeatKeys,
// SlowKeys, ...) used by the Controls virtual field.
var ctrlMaskNames = []namedMask{
	{"RepeatKeys", 1 << 0},
	{"SlowKeys", 1 << 1},
	{"BounceKeys", 1 << 2},
	{"StickyKeys", 1 << 3},
	{"MouseKeys", 1 << 4},
	{"MouseKeysAccel", 1 << 5},
	{"AccessXKeys", 1 << 6},
	{"AccessXTimeout", 1 << 7},
	{"AccessXFeedback", 1 << 8},
	{"AudibleBell", 1 << 9},
	{"Overlay1", 1 << 10},
	{"Overlay2", 1 << 11},
	{"IgnoreGroupLock", 1 << 12},
}

// useModMapValueNames names the allowExplicit-style boolean value
// spellings accepted for legacy debug-only compat fields.
var useModMapValueNames = []namedMask{
	{"true", 1}, {"yes", 1}, {"on", 1},
	{"false", 0}, {"no", 0}, {"off", 0},
}

func buildTable(ms []namedMask) map[string]uint32 {
	return lo.Associate(ms, func(m namedMask) (string, uint32) { return m.Name, m.Val })
}

var (
	modComponentMaskTable   = buildTable(modComponentMaskNames)
	groupComponentMaskTable = buildTable(groupComponentMaskNames)
	groupMaskTable          = buildTable(groupMaskNames)
	ctrlMaskTable           = buildTable(ctrlMaskNames)
	boolValueTable          = buildTable(useModMapValueNames)
)

// LookupCtrlMask resolves a control name to its bit, case-sensitively
// per the original's fixed spelling list.
func LookupCtrlMask(name string) (uint32, bool) {
	v, ok := ctrlMaskTable[name]
	return v, ok
}

// LookupGroupMask resolves a GroupN name to its bit.
func LookupGroupMask(name string) (uint32, bool) {
	v, ok := groupMaskTable[name]
	return v, ok
}

// LookupModComponent resolves base/latched/locked/effective/compat.
func LookupModComponent(name string) (uint32, bool) {
	v, ok := modComponentMaskTable[name]
	return v, ok
}

// LookupGroupComponent resolves base/latched/locked/effective.
func LookupGroupComponent(name string) (uint32, bool) {
	v, ok := groupComponentMaskTable[name]
	return v, ok
}

// LookupBoolValue resolves the legacy true/yes/on/false/no/off spellings.
func LookupBoolValue(name string) (uint32, bool) {
	v, ok := boolValueTable[name]
	return v, ok
}

