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

package compat

import "github.com/kbdgo/xkbgo/internal/model"

// CopyCompatToKeymap copies ci's accumulated interprets and indicator
// maps into km, in the fixed bucket order CopyInterps establishes and
// the slot layout already fixed by AddIndicatorMap.
func CopyCompatToKeymap(ci *Info, km *model.Keymap) {
	CopyInterps(ci, km)
	CopyIndicatorMapDefs(ci, km)
}

// CopyInterps copies every accumulated interpret into km.Interprets in
// the ten-bucket order: for hasSym=true then hasSym=false, predicates
// ordered Exactly, All, None, Any, AnyOrNone. This ordering is
// load-bearing: interpret application during assembly picks the first
// matching entry top-to-bottom.
func CopyInterps(ci *Info, km *model.Keymap) {
	order := []model.MatchOp{model.MatchExactly, model.MatchAll, model.MatchNone, model.MatchAny, model.MatchAnyOrNone}
	for _, hasSym := range []bool{true, false} {
		for _, op := range order {
			for _, si := range ci.interps {
				if si.defined.HasSym == hasSym && si.defined.Match == op {
					km.Interprets = append(km.Interprets, si.defined)
				}
			}
		}
	}
}

// CopyIndicatorMapDefs copies every non-empty LED slot straight across
// by slot index — slot assignment already happened in AddIndicatorMap.
func CopyIndicatorMapDefs(ci *Info, km *model.Keymap) {
	for i, li := range ci.leds {
		if li == nil {
			continue
		}
		km.Indicators[i] = li.defined
	}
}
