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

// encSymbol holds the precomputed encode parameters of one symbol.
// The selection was chosen to make put() as cheap as possible: the
// reciprocal pair replaces the division of the exact transform.
type encSymbol struct {
	xMax     uint32 // (Exclusive) upper bound of pre-normalization interval
	rcpFreq  uint32 // Fixed-point reciprocal frequency
	bias     uint32 // Bias
	cmplFreq uint32 // Complement of frequency: (1 << TF_SHIFT) - freq
	rcpShift uint32 // Reciprocal shift
}

// decSymbol is just the (start, freq) pair: decoding multiplies, it
// never divides.
type decSymbol struct {
	start uint32
	freq  uint32
}

// init prepares the symbol for range start 'start' and frequency 'freq'.
//
// The exact encoder computes x_new = (x/freq)*M + start + (x%freq) with
// M = 1<<TF_SHIFT. With q = (x*rcpFreq)>>rcpShift equal to x/freq, the
// same value is x + bias + q*cmplFreq, which is division free.
func (this *encSymbol) init(start, freq uint32) error {
	if freq == 0 {
		// A zero frequency symbol can never be encoded.
		return ErrInvalidModel
	}

	this.xMax = ((RANS_BYTE_L >> TF_SHIFT) << 8) * freq
	this.cmplFreq = (1 << TF_SHIFT) - freq

	if freq < 2 {
		// The reciprocal of 1 is 1, which the fixed-point form cannot
		// represent (it only multiplies by values below 1). Use
		// rcpFreq=^0, rcpShift=0 instead: q = x-1 for all x in the
		// valid interval, and bias = start + M - 1 restores
		// x_new = x*M + start.
		this.rcpFreq = ^uint32(0)
		this.rcpShift = 0
		this.bias = start + (1 << TF_SHIFT) - 1
	} else {
		// Alverson, "Integer Division using reciprocals"
		// shift = ceil(log2(freq))
		shift := uint32(0)

		for freq > 1<<shift {
			shift++
		}

		this.rcpFreq = uint32((uint64(1)<<(shift+31) + uint64(freq) - 1) / uint64(freq))
		this.rcpShift = shift - 1
		this.bias = start
	}

	// Bake the extra >>32 into the shift
	this.rcpShift += 32
	return nil
}

// put is the fast-path encode: renormalize against the precomputed
// threshold, then advance the state with two multiplies and an add.
func (this *encSymbol) put(x uint32, w *byteWriter) uint32 {
	for x >= this.xMax {
		w.prepend(byte(x))
		x >>= 8
	}

	q := uint32((uint64(x) * uint64(this.rcpFreq)) >> this.rcpShift)
	return x + this.bias + q*this.cmplFreq
}
