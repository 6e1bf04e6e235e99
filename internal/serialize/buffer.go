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
	"bytes"
	"fmt"
)

// bufChunkSize mirrors the original's BUF_CHUNK_SIZE: the growable
// output buffer's growth floor.
const bufChunkSize = 4096

// buf wraps bytes.Buffer with an explicit growth-policy and a
// discard-on-failure contract, giving the "allocation failure resets
// to empty" behavior described for the serializer a concrete home
// even though bytes.Buffer already amortizes its own growth.
type buf struct {
	b     bytes.Buffer
	limit int // 0 means unlimited; used by tests to simulate OUT_OF_SPACE
	ok    bool
}

func newBuf(limit int) *buf {
	b := &buf{limit: limit, ok: true}
	b.b.Grow(bufChunkSize)
	return b
}

func (w *buf) WriteString(s string) {
	if !w.ok {
		return
	}
	if w.limit > 0 && w.b.Len()+len(s) > w.limit {
		w.ok = false
		w.b.Reset()
		return
	}
	w.b.WriteString(s)
}

func (w *buf) Writef(format string, args ...interface{}) {
	w.WriteString(fmt.Sprintf(format, args...))
}

func (w *buf) OK() bool { return w.ok }

func (w *buf) String() string { return w.b.String() }
