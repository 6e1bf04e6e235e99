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

package serialize

import (
	"fmt"

	"github.com/kbdgo/xkbgo/internal/model"
)

func writeSymbols(b *buf, km *model.Keymap) {
	b.Writef("xkb_symbols %q {\n\n", km.Atoms.Text(km.SymbolsName))

	for i, name := range km.GroupNames {
		if name == 0 {
			continue
		}
		b.Writef("\tname[Group%d]= %q;\n", i+1, km.Atoms.Text(name))
	}

	for _, kc := range km.SortedKeyCodes() {
		k := km.Keys[kc]
		if len(k.Groups) == 0 {
			continue
		}
		if simple, line := simpleKeyLine(km, k); simple {
			b.Writef("\tkey <%s> { %s };\n", km.Atoms.Text(k.Name), line)
			continue
		}
		b.Writef("\tkey <%s> {\n", km.Atoms.Text(k.Name))
		for gi, g := range k.Groups {
			syms := make([]uint32, 0, len(g.Levels))
			hasAction := false
			for _, lvl := range g.Levels {
				if len(lvl.Syms) > 0 {
					syms = append(syms, lvl.Syms[0])
				} else {
					syms = append(syms, 0)
				}
				hasAction = hasAction || lvl.HasAction
			}
			b.Writef("\t\tsymbols[Group%d] = [ %s ];\n", gi+1, joinSyms(syms))
			if hasAction {
				acts := make([]string, len(g.Levels))
				for li, lvl := range g.Levels {
					acts[li] = writeAction(km, lvl.Action)
				}
				b.Writef("\t\tactions[Group%d] = [ %s ];\n", gi+1, joinStrings(acts))
			}
		}
		if k.Repeats != model.Unset {
			b.Writef("\t\trepeat= %s;\n", boolStr(k.Repeats == model.True))
		}
		b.WriteString("\t};\n")
	}

	writeModMapLines(b, km)
	b.WriteString("};\n\n")
}

// simpleKeyLine renders the single-line `key <NAME> { [ q, Q ] };`
// form used when the key has exactly one group, no per-level
// actions, and no repeat override — matching the original's
// simple-vs-multiline decision in write_symbols.
func simpleKeyLine(km *model.Keymap, k *model.Key) (bool, string) {
	if len(k.Groups) != 1 || k.Repeats != model.Unset {
		return false, ""
	}
	g := k.Groups[0]
	for _, lvl := range g.Levels {
		if lvl.HasAction {
			return false, ""
		}
	}
	syms := make([]uint32, len(g.Levels))
	for i, lvl := range g.Levels {
		if len(lvl.Syms) > 0 {
			syms[i] = lvl.Syms[0]
		}
	}
	return true, fmt.Sprintf("[ %s ]", joinSyms(syms))
}

func joinSyms(syms []uint32) string {
	out := ""
	for i, s := range syms {
		if i > 0 {
			out += ", "
		}
		if s == 0 {
			out += "NoSymbol"
		} else {
			out += writeKeysyms([]uint32{s})
		}
	}
	return out
}

func joinStrings(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

func writeModMapLines(b *buf, km *model.Keymap) {
	for i, m := range km.Mods.Mods {
		var keys []string
		for _, kc := range km.SortedKeyCodes() {
			k := km.Keys[kc]
			if k.ModMap&(1<<uint(i)) != 0 {
				keys = append(keys, "<"+km.Atoms.Text(k.Name)+">")
			}
		}
		if len(keys) == 0 {
			continue
		}
		b.Writef("\tmodifier_map %s { %s };\n", km.Atoms.Text(m.Name), joinStrings(keys))
	}
}
