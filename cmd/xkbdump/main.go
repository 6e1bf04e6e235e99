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

// Command xkbdump compiles a set of XKB component files and prints
// the result as canonical text.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kbdgo/xkbgo"
)

func main() {
	var keycodes, types, compat, symbols string
	flag.StringVar(&keycodes, "keycodes", "", "path to an xkb_keycodes component file")
	flag.StringVar(&types, "types", "", "path to an xkb_types component file")
	flag.StringVar(&compat, "compat", "", "path to an xkb_compatibility component file")
	flag.StringVar(&symbols, "symbols", "", "path to an xkb_symbols component file")
	flag.Parse()

	if keycodes == "" || types == "" || compat == "" || symbols == "" {
		fmt.Fprintln(os.Stderr, "xkbdump: -keycodes, -types, -compat, and -symbols are all required")
		os.Exit(2)
	}

	kcText, err := readFile(keycodes)
	die(err)
	tText, err := readFile(types)
	die(err)
	cText, err := readFile(compat)
	die(err)
	sText, err := readFile(symbols)
	die(err)

	ctx := xkbgo.NewContext()
	resolver := &xkbgo.StaticResolver{Keycodes: kcText, Types: tText, Compat: cText, Symbols: sText}
	km, err := ctx.NewKeymapFromNames(xkbgo.RMLVO{}, resolver)
	die(err)

	out, err := km.GetAsString(xkbgo.TextV1)
	die(err)
	fmt.Print(out)
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func die(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "xkbdump:", err)
		os.Exit(1)
	}
}
