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

// Package serialize implements the canonical TEXT_V1 keymap text
// serializer, grounded line-for-line on the original keymap-dump.c.
package serialize

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/kbdgo/xkbgo/internal/keysym"
	"github.com/kbdgo/xkbgo/internal/model"
)

// Format selects the output text format. Only TextV1 is implemented;
// the original supports no other canonical format either.
type Format int

const TextV1 Format = 1

var ErrUnsupportedFormat = errors.New("serialize: unsupported format")

// GetAsString renders km as canonical XKB text. Returns an error if
// format isn't TextV1, or if internal buffer growth is exhausted
// (OUT_OF_SPACE, only reachable via a test-injected limit).
func GetAsString(km *model.Keymap, format Format) (string, error) {
	if format != TextV1 {
		return "", ErrUnsupportedFormat
	}
	b := newBuf(0)
	writeKeycodes(b, km)
	writeTypes(b, km)
	writeCompat(b, km)
	writeSymbols(b, km)
	if !b.OK() {
		return "", fmt.Errorf("serialize: out of space")
	}
	return b.String(), nil
}

func pad(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + spaces(width-w)
}

func spaces(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

func writeKeycodes(b *buf, km *model.Keymap) {
	b.Writef("xkb_keycodes %q {\n", km.Atoms.Text(km.KeycodesName))
	for _, kc := range km.SortedKeyCodes() {
		k := km.Keys[kc]
		b.Writef("\t%s = %d;\n", pad("<"+km.Atoms.Text(k.Name)+">", 20), int(k.Code))
	}
	for _, newA := range km.SortedAliases() {
		b.Writef("\talias <%s> = <%s>;\n", km.Atoms.Text(newA), km.Atoms.Text(km.Aliases[newA]))
	}
	for i := range km.Indicators {
		if km.Indicators[i].Name == 0 {
			continue
		}
		b.Writef("\tindicator %d = %q;\n", i+1, km.Atoms.Text(km.Indicators[i].Name))
	}
	b.WriteString("};\n\n")
}

func writeVmods(b *buf, km *model.Keymap) {
	var names []string
	for i := model.NumRealMods; i < len(km.Mods.Mods); i++ {
		names = append(names, km.Atoms.Text(km.Mods.Mods[i].Name))
	}
	if len(names) == 0 {
		return
	}
	b.WriteString("\tvirtual_modifiers ")
	for i, n := range names {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(n)
	}
	b.WriteString(";\n")
}

func writeTypes(b *buf, km *model.Keymap) {
	b.Writef("xkb_types %q {\n\n", km.Atoms.Text(km.TypesName))
	writeVmods(b, km)
	for _, t := range km.Types {
		b.Writef("\ttype %q {\n", km.Atoms.Text(t.Name))
		b.Writef("\t\tmodifiers= %s;\n", formatModMask(km, t.Mods))
		for _, e := range t.Map {
			if e.Level == 0 && e.Preserve == 0 {
				continue
			}
			b.Writef("\t\tmap[%s]= Level%d;\n", formatModMask(km, e.Mods), e.Level+1)
			if e.Preserve != 0 {
				b.Writef("\t\tpreserve[%s]= %s;\n", formatModMask(km, e.Mods), formatModMask(km, e.Preserve))
			}
		}
		for i, name := range t.LevelNames {
			if name == 0 {
				continue
			}
			b.Writef("\t\tlevel_name[Level%d]= %q;\n", i+1, km.Atoms.Text(name))
		}
		b.WriteString("\t};\n")
	}
	b.WriteString("};\n\n")
}

func formatModMask(km *model.Keymap, mask model.ModMask) string {
	if mask == 0 {
		return "none"
	}
	if mask == model.AllRealMods {
		return "all"
	}
	var names []string
	for i, m := range km.Mods.Mods {
		if mask&(1<<uint(i)) != 0 {
			names = append(names, km.Atoms.Text(m.Name))
		}
	}
	out := ""
	for i, n := range names {
		if i > 0 {
			out += "+"
		}
		out += n
	}
	return out
}

func writeKeysyms(syms []uint32) string {
	switch len(syms) {
	case 0:
		return "NoSymbol"
	case 1:
		return keysym.Name(keysym.Sym(syms[0]))
	default:
		out := "{ "
		for i, s := range syms {
			if i > 0 {
				out += ", "
			}
			out += keysym.Name(keysym.Sym(s))
		}
		return out + " }"
	}
}

func writeAction(km *model.Keymap, a model.Action) string {
	if a.Kind == model.ActionNone {
		return "NoAction()"
	}
	switch a.Kind {
	case model.ActionModSet, model.ActionModLatch, model.ActionModLock:
		name := map[model.ActionKind]string{
			model.ActionModSet: "SetMods", model.ActionModLatch: "LatchMods", model.ActionModLock: "LockMods",
		}[a.Kind]
		mods := formatModMask(km, a.Mods)
		if a.ModsIsRel {
			mods = "+" + mods
		}
		extra := ""
		if a.Kind == model.ActionModLock && a.Affect != model.AffectBoth {
			extra = fmt.Sprintf(",affect=%s", affectName(a.Affect))
		}
		if a.Kind == model.ActionModLatch && a.ClearLocks {
			extra = ",clearLocks"
		}
		return fmt.Sprintf("%s(modifiers=%s%s)", name, mods, extra)
	case model.ActionGroupSet, model.ActionGroupLatch, model.ActionGroupLock:
		name := map[model.ActionKind]string{
			model.ActionGroupSet: "SetGroup", model.ActionGroupLatch: "LatchGroup", model.ActionGroupLock: "LockGroup",
		}[a.Kind]
		grp := fmt.Sprintf("%d", a.Group)
		if a.GroupIsRel {
			grp = "+" + grp
		}
		return fmt.Sprintf("%s(group=%s)", name, grp)
	case model.ActionPtrMove:
		return fmt.Sprintf("MovePtr(x=%d,y=%d)", a.DeltaX, a.DeltaY)
	case model.ActionPtrButton:
		return fmt.Sprintf("PtrBtn(button=%d,count=%d)", a.Button, a.Count)
	case model.ActionPtrLock:
		return fmt.Sprintf("LockPtrBtn(button=%d,affect=%s)", a.Button, affectName(a.Affect))
	case model.ActionPtrDefault:
		return fmt.Sprintf("SetPtrDflt(default=%d)", a.Value)
	case model.ActionSwitchVT:
		vt := fmt.Sprintf("%d", a.VT)
		if a.VTIsRel {
			vt = "+" + vt
		}
		same := ""
		if a.SameServer {
			same = ",sameServer"
		}
		return fmt.Sprintf("SwitchScreen(screen=%s%s)", vt, same)
	case model.ActionCtrlSet, model.ActionCtrlLock:
		name := "SetControls"
		if a.Kind == model.ActionCtrlLock {
			name = "LockControls"
		}
		return fmt.Sprintf("%s(controls=0x%x)", name, a.Ctrls)
	case model.ActionTerminate:
		return "Terminate()"
	case model.ActionPrivate:
		return fmt.Sprintf("Private(type=%d,data[]={ %s })", a.PrivType, hexDump(a.PrivData[:]))
	}
	return "NoAction()"
}

func affectName(a model.LockAffect) string {
	switch a {
	case model.AffectLock:
		return "lock"
	case model.AffectUnlock:
		return "unlock"
	case model.AffectNeither:
		return "neither"
	}
	return "both"
}

func hexDump(b []byte) string {
	out := ""
	for i, v := range b {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("0x%02x", v)
	}
	return out
}
