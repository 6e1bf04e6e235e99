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

import (
	"testing"

	"github.com/kbdgo/xkbgo/internal/klog"
	"github.com/kbdgo/xkbgo/internal/model"
)

func newTestInfo() *Info {
	return NewInfo(0, klog.New(nil, 0))
}

func TestAddInterpFirstDefinitionAlwaysWins(t *testing.T) {
	ci := newTestInfo()
	si := model.SymInterpret{HasSym: true, Sym: 1, Match: model.MatchAnyOrNone}
	if err := ci.AddInterp(si, map[string]bool{"action": true}, model.MergeAugment); err != nil {
		t.Fatalf("AddInterp: %v", err)
	}
	if len(ci.interps) != 1 {
		t.Fatalf("expected 1 interp, got %d", len(ci.interps))
	}
}

func TestAddInterpAugmentKeepsOld(t *testing.T) {
	ci := newTestInfo()
	old := model.SymInterpret{HasSym: true, Sym: 1, Match: model.MatchAnyOrNone, Action: model.Action{Kind: model.ActionModSet, Mods: model.ShiftMask}}
	new_ := model.SymInterpret{HasSym: true, Sym: 1, Match: model.MatchAnyOrNone, Action: model.Action{Kind: model.ActionModSet, Mods: model.ControlMask}}

	if err := ci.AddInterp(old, map[string]bool{"action": true}, model.MergeAugment); err != nil {
		t.Fatalf("AddInterp(old): %v", err)
	}
	if err := ci.AddInterp(new_, map[string]bool{"action": true}, model.MergeAugment); err != nil {
		t.Fatalf("AddInterp(new): %v", err)
	}
	if ci.interps[0].defined.Action.Mods != model.ShiftMask {
		t.Fatalf("AUGMENT should keep the old definition; got mods %#x", ci.interps[0].defined.Action.Mods)
	}
}

func TestAddInterpReplaceTakesNewSilently(t *testing.T) {
	ci := newTestInfo()
	old := model.SymInterpret{HasSym: true, Sym: 1, Match: model.MatchAnyOrNone, Action: model.Action{Kind: model.ActionModSet, Mods: model.ShiftMask}}
	new_ := model.SymInterpret{HasSym: true, Sym: 1, Match: model.MatchAnyOrNone, Action: model.Action{Kind: model.ActionModSet, Mods: model.ControlMask}}

	_ = ci.AddInterp(old, map[string]bool{"action": true}, model.MergeAugment)
	if err := ci.AddInterp(new_, map[string]bool{"action": true}, model.MergeReplace); err != nil {
		t.Fatalf("AddInterp(replace): %v", err)
	}
	if ci.interps[0].defined.Action.Mods != model.ControlMask {
		t.Fatalf("REPLACE should take the new definition; got mods %#x", ci.interps[0].defined.Action.Mods)
	}
}

func TestAddIndicatorMapSlotReuseByName(t *testing.T) {
	ci := newTestInfo()
	capsLock := uint32(7)
	first := model.IndicatorMap{Name: 7, Mods: model.LockMask}
	second := model.IndicatorMap{Name: 7, Mods: model.LockMask | model.ShiftMask}

	if err := ci.AddIndicatorMap(capsLock, first, map[string]bool{"modifiers": true}, model.MergeOverride); err != nil {
		t.Fatalf("first AddIndicatorMap: %v", err)
	}
	if err := ci.AddIndicatorMap(capsLock, second, map[string]bool{"modifiers": true}, model.MergeOverride); err != nil {
		t.Fatalf("second AddIndicatorMap: %v", err)
	}

	slots := 0
	for _, li := range ci.leds {
		if li != nil && uint32(li.defined.Name) == capsLock {
			slots++
		}
	}
	if slots != 1 {
		t.Fatalf("expected indicator slot to be reused by name, found %d slots", slots)
	}
}

func TestCopyInterpsBucketOrder(t *testing.T) {
	ci := newTestInfo()
	entries := []model.SymInterpret{
		{HasSym: false, Match: model.MatchAnyOrNone},
		{HasSym: true, Match: model.MatchAny},
		{HasSym: true, Match: model.MatchExactly},
		{HasSym: false, Match: model.MatchAll},
		{HasSym: true, Match: model.MatchAll},
	}
	for i, e := range entries {
		e.Sym = uint32(i + 1)
		if err := ci.AddInterp(e, map[string]bool{"action": true}, model.MergeAugment); err != nil {
			t.Fatalf("AddInterp: %v", err)
		}
	}

	km := model.NewKeymap()
	CopyInterps(ci, km)

	if len(km.Interprets) != len(entries) {
		t.Fatalf("expected %d copied interprets, got %d", len(entries), len(km.Interprets))
	}
	// hasSym entries must all precede the hasSym=false entries.
	sawWildcard := false
	for _, si := range km.Interprets {
		if !si.HasSym {
			sawWildcard = true
			continue
		}
		if sawWildcard {
			t.Fatalf("a hasSym interpret appeared after a wildcard one")
		}
	}
}
