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

package atom

import "testing"

func verifyF(t *testing.T, name string, got, want interface{}) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: got %v, want %v", name, got, want)
	}
}

func TestInternReturnsSameAtom(t *testing.T) {
	tbl := NewTable()
	a := tbl.Intern("Shift")
	b := tbl.Intern("Shift")
	verifyF(t, "Intern idempotent", a, b)
	verifyF(t, "Text roundtrip", tbl.Text(a), "Shift")
}

func TestInternDistinctStrings(t *testing.T) {
	tbl := NewTable()
	a := tbl.Intern("Shift")
	b := tbl.Intern("Lock")
	if a == b {
		t.Fatalf("distinct strings interned to the same atom")
	}
}

func TestInternEmptyIsNone(t *testing.T) {
	tbl := NewTable()
	verifyF(t, "empty string", tbl.Intern(""), None)
}

func TestLookupMissing(t *testing.T) {
	tbl := NewTable()
	_, ok := tbl.Lookup("nope")
	if ok {
		t.Fatalf("expected Lookup to fail for never-interned string")
	}
}

func TestTextOutOfRange(t *testing.T) {
	tbl := NewTable()
	verifyF(t, "out of range atom", tbl.Text(Atom(999)), "")
}
