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

// ActionKind tags which variant of Action is populated. Actions are
// represented as a single struct with a Kind discriminator rather than
// a Go interface, mirroring the original's tagged union dispatch in
// its serializer (one switch per write/compare site, not one type
// switch per call site).
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionModSet
	ActionModLatch
	ActionModLock
	ActionGroupSet
	ActionGroupLatch
	ActionGroupLock
	ActionPtrMove
	ActionPtrButton
	ActionPtrLock
	ActionPtrDefault
	ActionSwitchVT
	ActionCtrlSet
	ActionCtrlLock
	ActionTerminate
	ActionPrivate
)

// LockAffect selects which of a locking action's up/down halves apply,
// matching the original's affect=lock|unlock|neither|both syntax.
type LockAffect uint8

const (
	AffectBoth LockAffect = iota
	AffectLock
	AffectUnlock
	AffectNeither
)

// Action is a tagged union over every action variant a key level may
// carry. Only the fields relevant to Kind are meaningful.
type Action struct {
	Kind ActionKind

	// ModSet/ModLatch/ModLock
	Mods       ModMask
	ModsIsRel  bool // true if the mask was written as a unary expression (relative)
	ClearLocks bool
	LatchToLock bool
	Affect     LockAffect

	// GroupSet/GroupLatch/GroupLock
	Group      int32
	GroupIsRel bool

	// PtrMove
	DeltaX, DeltaY int32
	DeltaIsRel     bool

	// PtrButton/PtrLock
	Button int32
	Count  int32

	// PtrDefault
	Value int32

	// SwitchVT
	VT      int32
	VTIsRel bool
	SameServer bool

	// CtrlSet/CtrlLock
	Ctrls uint32

	// Private
	PrivType byte
	PrivData [7]byte
}
