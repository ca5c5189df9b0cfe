/*
Copyright 2014-2024 the biocodec authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package rans

import (
	"bytes"
	"math/rand"
	"testing"
)

// The precomputed reciprocal must reproduce the exact quotient for every
// state the renormalized encoder can hold.
func TestReciprocalQuotient(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	freqs := []uint32{2, 3, 4, 5, 7, 8, 9, 127, 128, 129, 255, 256, 2047, 4095, 4096}

	for i := 0; i < 50; i++ {
		freqs = append(freqs, uint32(2+r.Intn(4095)))
	}

	for _, freq := range freqs {
		var sym encSymbol

		if err := sym.init(0, freq); err != nil {
			t.Fatalf("init failed for freq %d: %v", freq, err)
		}

		states := []uint32{1, freq - 1, freq, freq + 1, RANS_BYTE_L, RANS_BYTE_L - 1, 1<<31 - 1}

		for i := 0; i < 1000; i++ {
			states = append(states, uint32(r.Int63n(1<<31)))
		}

		for _, x := range states {
			q := uint32((uint64(x) * uint64(sym.rcpFreq)) >> sym.rcpShift)

			if q != x/freq {
				t.Fatalf("freq %d state %d: reciprocal quotient %d, exact %d", freq, x, q, x/freq)
			}
		}
	}
}

// The division-free put must agree with the exact transform on both the
// resulting state and the renormalization bytes, including the freq=1
// special case.
func TestFastEncodeMatchesExact(t *testing.T) {
	r := rand.New(rand.NewSource(17))

	for i := 0; i < 2000; i++ {
		freq := uint32(1 + r.Intn(TOTFREQ-1))
		start := uint32(r.Intn(int(TOTFREQ - freq + 1)))
		x := uint32(RANS_BYTE_L + r.Int63n(RANS_BYTE_L*255))

		var sym encSymbol

		if err := sym.init(start, freq); err != nil {
			t.Fatalf("init failed: %v", err)
		}

		fastBuf := make([]byte, 16)
		exactBuf := make([]byte, 16)
		fastW := newByteWriter(fastBuf)
		exactW := newByteWriter(exactBuf)

		fast := sym.put(x, fastW)
		exact := ransEncPut(x, exactW, start, freq, TF_SHIFT)

		if fast != exact {
			t.Fatalf("start %d freq %d state %d: fast state %d, exact %d", start, freq, x, fast, exact)
		}

		if !bytes.Equal(fastBuf[fastW.pos:], exactBuf[exactW.pos:]) {
			t.Fatalf("start %d freq %d state %d: renormalization bytes differ", start, freq, x)
		}
	}
}

func TestZeroFrequencySymbolRejected(t *testing.T) {
	var sym encSymbol

	if err := sym.init(0, 0); err != ErrInvalidModel {
		t.Fatalf("expected ErrInvalidModel, got %v", err)
	}
}

func TestFlushInitInverse(t *testing.T) {
	r := rand.New(rand.NewSource(23))

	for i := 0; i < 100; i++ {
		x := uint32(RANS_BYTE_L + r.Int63n(1<<32-RANS_BYTE_L))
		buf := make([]byte, 4)
		w := newByteWriter(buf)
		ransEncFlush(x, w)

		if w.pos != 0 {
			t.Fatalf("flush must emit exactly 4 bytes, cursor at %d", w.pos)
		}

		rd := &byteReader{buf: buf}
		got, err := ransDecInit(rd)

		if err != nil {
			t.Fatalf("decode init failed: %v", err)
		}

		if got != x {
			t.Fatalf("state %d flushed, %d restored", x, got)
		}
	}
}

func TestDecInitTruncated(t *testing.T) {
	rd := &byteReader{buf: []byte{1, 2, 3}}

	if _, err := ransDecInit(rd); err == nil {
		t.Fatal("expected an error for a truncated state")
	}
}

// A sequence encoded in reverse with the raw engine primitives must
// decode forward to the original, per-interval parameters only.
func TestEngineRoundTrip(t *testing.T) {
	// Toy partition of [0,4096): three symbols
	starts := []uint32{0, 1024, 3072}
	freqs := []uint32{1024, 2048, 1024}
	seq := []int{0, 1, 1, 2, 0, 1, 2, 2, 1, 0, 1, 1}

	buf := make([]byte, 64)
	w := newByteWriter(buf)
	x := ransEncInit()

	for i := len(seq) - 1; i >= 0; i-- {
		s := seq[i]
		x = ransEncPut(x, w, starts[s], freqs[s], TF_SHIFT)
	}

	ransEncFlush(x, w)

	rd := &byteReader{buf: buf[w.pos:]}
	x, err := ransDecInit(rd)

	if err != nil {
		t.Fatalf("decode init failed: %v", err)
	}

	for i, want := range seq {
		slot := ransDecGet(x, TF_SHIFT)
		s := 0

		for s < len(starts) && !(slot >= starts[s] && slot < starts[s]+freqs[s]) {
			s++
		}

		if s != want {
			t.Fatalf("position %d: decoded symbol %d, want %d", i, s, want)
		}

		x = ransDecAdvance(x, rd, starts[s], freqs[s], TF_SHIFT)
	}

	if x != RANS_BYTE_L {
		t.Fatalf("final state %d, want the initial lower bound", x)
	}
}
