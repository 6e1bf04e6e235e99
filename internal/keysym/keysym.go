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

// Package keysym provides the keysym <-> name lookup table used by the
// parser and serializer. A keysym is the legacy X11 symbol identifier
// for a key's effect (e.g. the letter 'q', the Escape key, or a keypad
// digit) and is distinct from both the physical keycode and the
// Unicode codepoint it may produce.
package keysym

import "fmt"

// Sym is an X11 keysym value.
type Sym uint32

// NoSymbol marks an unbound level.
const NoSymbol Sym = 0

// unicodeOffset is added to a Unicode codepoint to form its keysym
// value, mirroring the "0x01000000 + rune" convention used for any
// codepoint without a legacy named keysym.
const unicodeOffset Sym = 0x01000000

var nameToSym = map[string]Sym{
	"NoSymbol":     NoSymbol,
	"space":        0x0020,
	"exclam":       0x0021,
	"0":            0x0030,
	"1":            0x0031,
	"2":            0x0032,
	"3":            0x0033,
	"4":            0x0034,
	"5":            0x0035,
	"6":            0x0036,
	"7":            0x0037,
	"8":            0x0038,
	"9":            0x0039,
	"A":            0x0041,
	"B":            0x0042,
	"C":            0x0043,
	"D":            0x0044,
	"E":            0x0045,
	"H":            0x0048,
	"L":            0x004c,
	"O":            0x004f,
	"Q":            0x0051,
	"a":            0x0061,
	"b":            0x0062,
	"c":            0x0063,
	"d":            0x0064,
	"e":            0x0065,
	"h":            0x0068,
	"l":            0x006c,
	"o":            0x006f,
	"q":            0x0071,
	"BackSpace":    0xff08,
	"Tab":          0xff09,
	"Return":       0xff0d,
	"Escape":       0xff1b,
	"Delete":       0xffff,
	"Home":         0xff50,
	"Left":         0xff51,
	"Up":           0xff52,
	"Right":        0xff53,
	"Down":         0xff54,
	"Page_Up":      0xff55,
	"Page_Down":    0xff56,
	"End":          0xff57,
	"KP_Enter":     0xff8d,
	"KP_0":         0xffb0,
	"KP_1":         0xffb1,
	"KP_2":         0xffb2,
	"KP_3":         0xffb3,
	"KP_4":         0xffb4,
	"KP_5":         0xffb5,
	"KP_6":         0xffb6,
	"KP_7":         0xffb7,
	"KP_8":         0xffb8,
	"KP_9":         0xffb9,
	"F1":           0xffbe,
	"F2":           0xffbf,
	"F3":           0xffc0,
	"F4":           0xffc1,
	"Shift_L":      0xffe1,
	"Shift_R":      0xffe2,
	"Control_L":    0xffe3,
	"Control_R":    0xffe4,
	"Caps_Lock":    0xffe5,
	"Shift_Lock":   0xffe6,
	"Meta_L":       0xffe7,
	"Meta_R":       0xffe8,
	"Alt_L":        0xffe9,
	"Alt_R":        0xffea,
	"Super_L":      0xffeb,
	"Super_R":      0xffec,
	"Hyper_L":      0xffed,
	"Hyper_R":      0xffee,
	"Num_Lock":     0xff7f,
	"Scroll_Lock":  0xff14,
	"Compose":      0xff20,
	"Mode_switch":  0xff7e,
	"ISO_Level3_Shift": 0xff7c,
}

var symToName map[Sym]string

func init() {
	symToName = make(map[Sym]string, len(nameToSym))
	for name, sym := range nameToSym {
		// Keep the first name seen for a given value; map iteration
		// order is unspecified, so for a value with several names
		// which one is kept is not defined.
		if _, ok := symToName[sym]; !ok {
			symToName[sym] = name
		}
	}
}

// LookupByName resolves a legacy X11 keysym name to its Sym value.
func LookupByName(name string) (Sym, bool) {
	s, ok := nameToSym[name]
	return s, ok
}

// FromRune builds the Unicode-derived keysym for r.
func FromRune(r rune) Sym {
	return unicodeOffset + Sym(r)
}

// Rune reports the Unicode codepoint a Unicode-derived keysym encodes,
// and whether sym was in fact Unicode-derived.
func Rune(sym Sym) (rune, bool) {
	if sym < unicodeOffset {
		return 0, false
	}
	return rune(sym - unicodeOffset), true
}

// Name returns the canonical textual form of sym: a legacy name if one
// is registered, "U<hex>" for a Unicode-derived keysym, or "0x<hex>"
// otherwise.
func Name(sym Sym) string {
	if sym == NoSymbol {
		return "NoSymbol"
	}
	if name, ok := symToName[sym]; ok {
		return name
	}
	if r, ok := Rune(sym); ok {
		return fmt.Sprintf("U%04X", r)
	}
	return fmt.Sprintf("0x%x", uint32(sym))
}
