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

// Order-0 codec: one frequency table for the whole buffer, four coder
// states round-robined over the input. The lanes are independent, so the
// only requirement is that decode replays the identical lane assignment.

func compressOrder0(in []byte) ([]byte, error) {
	n := len(in)
	buf := make([]byte, compressBound(n))

	if n == 0 {
		// No symbols to model. Emit framing only; decode restores the
		// empty buffer without touching a table.
		writeHeader(buf, 0, 0, 0)
		return buf[:HEADER_SIZE], nil
	}

	freqs := make([]int, 256)
	histogramOrder0(in, freqs)

	if err := normalizeFreqs(freqs, n); err != nil {
		return nil, err
	}

	syms := make([]encSymbol, 256)
	tabEnd, err := encodeFreqs(buf, HEADER_SIZE, freqs, syms)

	if err != nil {
		return nil, err
	}

	w := newByteWriter(buf)
	r0 := ransEncInit()
	r1 := ransEncInit()
	r2 := ransEncInit()
	r3 := ransEncInit()

	// 0 to 3 trailing symbols before the 4-wide loop
	rem := n & 3

	switch rem {
	case 3:
		r2 = syms[in[n-(rem-2)]].put(r2, w)
		fallthrough
	case 2:
		r1 = syms[in[n-(rem-1)]].put(r1, w)
		fallthrough
	case 1:
		r0 = syms[in[n-rem]].put(r0, w)
	}

	for i := n &^ 3; i > 0; i -= 4 {
		s3 := &syms[in[i-1]]
		s2 := &syms[in[i-2]]
		s1 := &syms[in[i-3]]
		s0 := &syms[in[i-4]]

		r3 = s3.put(r3, w)
		r2 = s2.put(r2, w)
		r1 = s1.put(r1, w)
		r0 = s0.put(r0, w)
	}

	ransEncFlush(r3, w)
	ransEncFlush(r2, w)
	ransEncFlush(r1, w)
	ransEncFlush(r0, w)

	return finalize(buf, 0, tabEnd, w, n), nil
}

func uncompressOrder0(in []byte, outSz int) ([]byte, error) {
	r := &byteReader{buf: in, pos: HEADER_SIZE}
	syms := make([]decSymbol, 256)
	rev := make([]byte, TOTFREQ)

	if err := decodeFreqs(r, syms, rev, false); err != nil {
		return nil, err
	}

	var R [RANS_LANES]uint32
	var err error

	for k := range R {
		if R[k], err = ransDecInit(r); err != nil {
			return nil, err
		}
	}

	out := make([]byte, outSz)
	outEnd := outSz &^ 3
	mask := uint32(TOTFREQ - 1)

	for i := 0; i < outEnd; i += 4 {
		m := [4]uint32{R[0] & mask, R[1] & mask, R[2] & mask, R[3] & mask}
		c := [4]byte{rev[m[0]], rev[m[1]], rev[m[2]], rev[m[3]]}

		out[i] = c[0]
		out[i+1] = c[1]
		out[i+2] = c[2]
		out[i+3] = c[3]

		R[0] = syms[c[0]].freq * (R[0] >> TF_SHIFT)
		R[1] = syms[c[1]].freq * (R[1] >> TF_SHIFT)
		R[2] = syms[c[2]].freq * (R[2] >> TF_SHIFT)
		R[3] = syms[c[3]].freq * (R[3] >> TF_SHIFT)

		R[0] += m[0] - syms[c[0]].start
		R[1] += m[1] - syms[c[1]].start
		R[2] += m[2] - syms[c[2]].start
		R[3] += m[3] - syms[c[3]].start

		R[0] = r.renorm(R[0])
		R[1] = r.renorm(R[1])
		R[2] = r.renorm(R[2])
		R[3] = r.renorm(R[3])
	}

	for k := 0; outEnd+k < outSz; k++ {
		c := rev[ransDecGet(R[k], TF_SHIFT)]
		out[outEnd+k] = c
		R[k] = ransDecAdvance(R[k], r, syms[c].start, syms[c].freq, TF_SHIFT)
	}

	return out, nil
}
