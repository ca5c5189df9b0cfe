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

// Serialized table format, per table:
//
//	[symbol][run?][freq] ... [0]
//
// A present symbol is written as its byte value; when the preceding
// symbol value was also present, a single run-length byte follows,
// covering the immediately consecutive present symbols, whose bytes are
// then omitted. Frequencies below 128 take one byte; larger values set
// the top bit of the first byte and carry 15 bits over two bytes. A
// symbol byte of 0 read after the last entry terminates the table.
//
// Order-1 wraps one such table per context in an outer loop using the
// same run-length scheme at the context level, terminated by context 0.

// encodeFreqs writes one normalized table at buf[pos:] and initializes
// the encode symbols of the present alphabet. Returns the new write
// position.
func encodeFreqs(buf []byte, pos int, freqs []int, syms []encSymbol) (int, error) {
	x, rle := 0, 0

	for j := 0; j < 256; j++ {
		f := freqs[j]

		if f == 0 {
			continue
		}

		if rle > 0 {
			rle--
		} else {
			buf[pos] = byte(j)
			pos++

			if j > 0 && freqs[j-1] > 0 {
				for rle = j + 1; rle < 256 && freqs[rle] > 0; rle++ {
				}

				rle -= j + 1
				buf[pos] = byte(rle)
				pos++
			}
		}

		if f < 128 {
			buf[pos] = byte(f)
			pos++
		} else {
			buf[pos] = byte(128 | (f >> 8))
			buf[pos+1] = byte(f)
			pos += 2
		}

		if err := syms[j].init(uint32(x), uint32(f)); err != nil {
			return pos, err
		}

		x += f
	}

	buf[pos] = 0
	pos++
	return pos, nil
}

// decodeFreqs parses one serialized table, filling the decode symbols
// and the TOTFREQ slot reverse lookup. zeroMeansTotal enables the
// order-1 escape where a stored frequency of 0 denotes the full scale
// (a context with a single certain symbol).
func decodeFreqs(r *byteReader, syms []decSymbol, rev []byte, zeroMeansTotal bool) error {
	j, err := r.readByte()

	if err != nil {
		return err
	}

	x, rle := 0, 0

	for {
		if j > 255 {
			return ErrCorruptTable
		}

		f, err := r.readByte()

		if err != nil {
			return err
		}

		if f >= 128 {
			f2, err2 := r.readByte()

			if err2 != nil {
				return err2
			}

			f = ((f & 127) << 8) | f2
		}

		if f == 0 && zeroMeansTotal {
			f = TOTFREQ
		}

		if x+f > TOTFREQ {
			return ErrCorruptTable
		}

		syms[j] = decSymbol{start: uint32(x), freq: uint32(f)}

		for i := x; i < x+f; i++ {
			rev[i] = byte(j)
		}

		x += f

		if rle == 0 && r.peek() == j+1 {
			if j, err = r.readByte(); err != nil {
				return err
			}

			if rle, err = r.readByte(); err != nil {
				return err
			}
		} else if rle > 0 {
			rle--
			j++
		} else {
			if j, err = r.readByte(); err != nil {
				return err
			}
		}

		if j == 0 {
			break
		}
	}

	return nil
}

// decodeFreqTables parses the context-RLE-wrapped set of order-1 tables.
// syms holds 256*256 entries, context major. Reverse lookup tables are
// allocated lazily, only for contexts present in the stream.
func decodeFreqTables(r *byteReader, syms []decSymbol, rev *[256][]byte) error {
	i, err := r.readByte()

	if err != nil {
		return err
	}

	rle := 0

	for {
		if i > 255 {
			return ErrCorruptTable
		}

		if rev[i] == nil {
			rev[i] = make([]byte, TOTFREQ)
		}

		if err = decodeFreqs(r, syms[i<<8:(i+1)<<8], rev[i], true); err != nil {
			return err
		}

		if rle == 0 && r.peek() == i+1 {
			if i, err = r.readByte(); err != nil {
				return err
			}

			if rle, err = r.readByte(); err != nil {
				return err
			}
		} else if rle > 0 {
			rle--
			i++
		} else {
			if i, err = r.readByte(); err != nil {
				return err
			}
		}

		if i == 0 {
			break
		}
	}

	return nil
}
