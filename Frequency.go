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

// histogramOrder0 tallies symbol occurrence counts into freqs (256
// entries).
func histogramOrder0(block []byte, freqs []int) {
	for _, cur := range block {
		freqs[cur]++
	}
}

// histogramOrder1 tallies counts conditioned on the previous symbol into
// freqs (256*256 entries, context major) and the per-context totals.
// The first symbol is counted under context 0.
//
// Three synthetic counts are injected at context 0 for the quartile
// boundary symbols: the decoder seeds its three non-initial lanes with
// context 0 at those positions, so their symbols must be reachable from
// the context 0 table even though the linear scan counted them under
// their true predecessors.
func histogramOrder1(block []byte, freqs []int, totals []int) {
	prv := 0

	for _, cur := range block {
		freqs[(prv<<8)+int(cur)]++
		totals[prv]++
		prv = int(cur)
	}

	q := len(block) >> 2
	freqs[int(block[1*q])]++
	freqs[int(block[2*q])]++
	freqs[int(block[3*q])]++
	totals[0] += 3
}

// normalizeFreqs scales the nonzero entries of freqs so that, together
// with the trailing table terminator, they account for exactly TOTFREQ
// slots. total is the sum of the raw counts and must be positive.
//
// The scale ratio keeps 31 extra fixed-point bits plus a half-unit
// rounding term; every present symbol is clamped to at least 1, and the
// modal symbol absorbs the remaining rounding error.
func normalizeFreqs(freqs []int, total int) error {
	tr := (uint64(TOTFREQ)<<31)/uint64(total) + (1<<30)/uint64(total)
	m, mode := 0, 0
	fsum := 0

	for j := 0; j < 256; j++ {
		if freqs[j] == 0 {
			continue
		}

		if m < freqs[j] {
			m = freqs[j]
			mode = j
		}

		if freqs[j] = int((uint64(freqs[j]) * tr) >> 31); freqs[j] == 0 {
			freqs[j] = 1
		}

		fsum += freqs[j]
	}

	// One slot is reserved for the table terminator
	fsum++

	if fsum < TOTFREQ {
		freqs[mode] += TOTFREQ - fsum
	} else {
		freqs[mode] -= fsum - TOTFREQ
	}

	if freqs[mode] <= 0 {
		return ErrModelOverflow
	}

	return nil
}
