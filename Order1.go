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

// Order-1 codec: one table per previous-symbol context. The input is
// split into four quarters walked in lock step, one lane per quarter;
// any trailing remainder is merged into the last lane. Encode and decode
// must compute the identical context for a given absolute position: the
// first symbol of each quarter uses context 0, every other symbol uses
// its predecessor.

func compressOrder1(in []byte) ([]byte, error) {
	n := len(in)
	buf := make([]byte, compressBound(n))
	freqs := make([]int, 256*256)
	totals := make([]int, 256)
	histogramOrder1(in, freqs, totals)

	syms := make([]encSymbol, 256*256)
	pos := HEADER_SIZE
	rleI := 0

	for i := 0; i < 256; i++ {
		if totals[i] == 0 {
			continue
		}

		f := freqs[i<<8 : (i+1)<<8]

		if err := normalizeFreqs(f, totals[i]); err != nil {
			return nil, err
		}

		// Context index, run-length compressed like the symbols within
		// a table
		if rleI > 0 {
			rleI--
		} else {
			buf[pos] = byte(i)
			pos++

			if i > 0 && totals[i-1] > 0 {
				for rleI = i + 1; rleI < 256 && totals[rleI] > 0; rleI++ {
				}

				rleI -= i + 1
				buf[pos] = byte(rleI)
				pos++
			}
		}

		var err error

		if pos, err = encodeFreqs(buf, pos, f, syms[i<<8:(i+1)<<8]); err != nil {
			return nil, err
		}
	}

	buf[pos] = 0
	pos++
	tabEnd := pos

	w := newByteWriter(buf)
	r0 := ransEncInit()
	r1 := ransEncInit()
	r2 := ransEncInit()
	r3 := ransEncInit()

	isz4 := n >> 2
	i0 := 1*isz4 - 2
	i1 := 2*isz4 - 2
	i2 := 3*isz4 - 2
	i3 := n - 2

	l0 := in[1*isz4-1]
	l1 := in[2*isz4-1]
	l2 := in[3*isz4-1]
	l3 := in[n-1]

	// Lane 3 alone consumes the remainder beyond 4*isz4
	for ; i3 > 4*isz4-2; i3-- {
		c3 := in[i3]
		r3 = syms[(int(c3)<<8)+int(l3)].put(r3, w)
		l3 = c3
	}

	for ; i0 >= 0; i0, i1, i2, i3 = i0-1, i1-1, i2-1, i3-1 {
		c0 := in[i0]
		c1 := in[i1]
		c2 := in[i2]
		c3 := in[i3]

		s3 := &syms[(int(c3)<<8)+int(l3)]
		s2 := &syms[(int(c2)<<8)+int(l2)]
		s1 := &syms[(int(c1)<<8)+int(l1)]
		s0 := &syms[(int(c0)<<8)+int(l0)]

		r3 = s3.put(r3, w)
		r2 = s2.put(r2, w)
		r1 = s1.put(r1, w)
		r0 = s0.put(r0, w)

		l0 = c0
		l1 = c1
		l2 = c2
		l3 = c3
	}

	// First symbol of each quarter, context 0
	r3 = syms[int(l3)].put(r3, w)
	r2 = syms[int(l2)].put(r2, w)
	r1 = syms[int(l1)].put(r1, w)
	r0 = syms[int(l0)].put(r0, w)

	ransEncFlush(r3, w)
	ransEncFlush(r2, w)
	ransEncFlush(r1, w)
	ransEncFlush(r0, w)

	return finalize(buf, 1, tabEnd, w, n), nil
}

func uncompressOrder1(in []byte, outSz int) ([]byte, error) {
	r := &byteReader{buf: in, pos: HEADER_SIZE}
	syms := make([]decSymbol, 256*256)
	var rev [256][]byte

	if err := decodeFreqTables(r, syms, &rev); err != nil {
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
	isz4 := outSz >> 2
	mask := uint32(TOTFREQ - 1)
	var l [RANS_LANES]int
	i4 := [RANS_LANES]int{0 * isz4, 1 * isz4, 2 * isz4, 3 * isz4}

	for ; i4[0] < isz4; i4[0], i4[1], i4[2], i4[3] = i4[0]+1, i4[1]+1, i4[2]+1, i4[3]+1 {
		for k := 0; k < RANS_LANES; k++ {
			rv := rev[l[k]]

			if rv == nil {
				// Context never declared in the table stream
				return nil, ErrCorruptStream
			}

			m := R[k] & mask
			c := rv[m]
			out[i4[k]] = c
			sym := &syms[(l[k]<<8)+int(c)]
			R[k] = sym.freq*(R[k]>>TF_SHIFT) + m - sym.start
			R[k] = r.renorm(R[k])
			l[k] = int(c)
		}
	}

	// Remainder handled by lane 3
	for ; i4[3] < outSz; i4[3]++ {
		rv := rev[l[3]]

		if rv == nil {
			return nil, ErrCorruptStream
		}

		c := rv[ransDecGet(R[3], TF_SHIFT)]
		out[i4[3]] = c
		sym := &syms[(l[3]<<8)+int(c)]
		R[3] = ransDecAdvance(R[3], r, sym.start, sym.freq, TF_SHIFT)
		l[3] = int(c)
	}

	return out, nil
}
