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
	"encoding/binary"
)

// The rANS coder works like a stack: symbols are encoded in reverse order
// and the encoder emits bytes backward, so the output cursor starts at the
// end of the buffer and decrements. The decoder reads forward as usual.
//
// Several independent states can be interleaved into the same byte stream
// without extra signaling, as long as the decoder replays the identical
// lane assignment.

// byteWriter grows logically from the end of a fixed-capacity buffer.
// Finalize by slicing buf[pos:].
type byteWriter struct {
	buf []byte
	pos int
}

func newByteWriter(buf []byte) *byteWriter {
	return &byteWriter{buf: buf, pos: len(buf)}
}

func (this *byteWriter) prepend(c byte) {
	this.pos--
	this.buf[this.pos] = c
}

// byteReader is the forward cursor over a compressed payload. Reads past
// the end fail instead of panicking so that truncated input surfaces as
// an error, never a crash.
type byteReader struct {
	buf []byte
	pos int
}

func (this *byteReader) readByte() (int, error) {
	if this.pos >= len(this.buf) {
		return 0, ErrCorruptStream
	}

	c := this.buf[this.pos]
	this.pos++
	return int(c), nil
}

// peek returns the next byte without consuming it, or -1 at end of input.
func (this *byteReader) peek() int {
	if this.pos >= len(this.buf) {
		return -1
	}

	return int(this.buf[this.pos])
}

func ransEncInit() uint32 {
	return RANS_BYTE_L
}

// ransEncPut encodes one symbol with range start 'start' and frequency
// 'freq' (frequencies sum to 1<<scaleBits): renormalize downward, then
// apply C(s,x). The drivers use the division-free encSymbol.put instead;
// this exact form is kept as the engine's reference transform.
func ransEncPut(x uint32, w *byteWriter, start, freq uint32, scaleBits uint) uint32 {
	xMax := ((RANS_BYTE_L >> scaleBits) << 8) * freq

	for x >= xMax {
		w.prepend(byte(x))
		x >>= 8
	}

	return ((x / freq) << scaleBits) + (x % freq) + start
}

// ransEncFlush writes the final 4-byte state, completing the stream for
// one lane.
func ransEncFlush(x uint32, w *byteWriter) {
	w.pos -= 4
	binary.LittleEndian.PutUint32(w.buf[w.pos:], x)
}

func ransDecInit(r *byteReader) (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, ErrCorruptStream
	}

	x := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return x, nil
}

// ransDecGet returns the cumulative frequency slot owned by the next
// symbol. Map it to a symbol with the reverse lookup table.
func ransDecGet(x uint32, scaleBits uint) uint32 {
	return x & ((1 << scaleBits) - 1)
}

// ransDecAdvance pops one symbol: apply D(x), then renormalize upward by
// consuming forward bytes.
func ransDecAdvance(x uint32, r *byteReader, start, freq uint32, scaleBits uint) uint32 {
	mask := uint32(1<<scaleBits) - 1
	x = freq*(x>>scaleBits) + (x & mask) - start
	return r.renorm(x)
}

func (this *byteReader) renorm(x uint32) uint32 {
	for x < RANS_BYTE_L {
		if this.pos >= len(this.buf) {
			break
		}

		x = x<<8 | uint32(this.buf[this.pos])
		this.pos++
	}

	return x
}
