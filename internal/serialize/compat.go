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

	"github.com/kbdgo/xkbgo/internal/keysym"
	"github.com/kbdgo/xkbgo/internal/model"
)

func writeCompat(b *buf, km *model.Keymap) {
	b.Writef("xkb_compatibility %q {\n\n", km.Atoms.Text(km.CompatName))
	b.WriteString("\tinterpret.useModMapMods= AnyLevel;\n")
	b.WriteString("\tinterpret.repeat= False;\n")
	b.WriteString("\tinterpret.locking= False;\n\n")

	for _, si := range km.Interprets {
		symName := "Any"
		if si.HasSym {
			symName = keysym.Name(keysym.Sym(si.Sym))
		}
		pred := ""
		if si.Mods != 0 || si.Match != model.MatchAnyOrNone {
			pred = fmt.Sprintf("+%s(%s)", matchOpName(si.Match), formatModMask(km, si.Mods))
		}
		b.Writef("\tinterpret %s%s {\n", symName, pred)
		b.Writef("\t\taction= %s;\n", writeAction(km, si.Action))
		if si.HasVirtualMod {
			b.Writef("\t\tvirtualModifier= %s;\n", km.Atoms.Text(km.Mods.Mods[si.VirtualMod].Name))
		}
		if si.Repeat != model.Unset {
			b.Writef("\t\trepeat= %s;\n", boolStr(si.Repeat == model.True))
		}
		b.WriteString("\t};\n")
	}

	for i := range km.Indicators {
		im := km.Indicators[i]
		if im.Name == 0 && im.WhichGroups == 0 && im.Groups == 0 && im.WhichMods == 0 && im.Mods == 0 && im.Ctrls == 0 {
			continue
		}
		b.Writef("\tindicator %q {\n", km.Atoms.Text(im.Name))
		if im.Mods != 0 {
			b.Writef("\t\tmodifiers= %s;\n", formatModMask(km, im.Mods))
		}
		if im.Ctrls != 0 {
			b.Writef("\t\tcontrols= 0x%x;\n", im.Ctrls)
		}
		b.WriteString("\t};\n")
	}
	b.WriteString("};\n\n")
}

func matchOpName(op model.MatchOp) string {
	switch op {
	case model.MatchAny:
		return "AnyOf"
	case model.MatchAll:
		return "AllOf"
	case model.MatchNone:
		return "NoneOf"
	case model.MatchExactly:
		return "Exactly"
	}
	return "AnyOfOrNone"
}

func boolStr(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
