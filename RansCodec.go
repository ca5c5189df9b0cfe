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
	"fmt"
)

// Stream layout:
//
//	[order:1][compressed size:4 LE][uncompressed size:4 LE][tables][payload]
//
// The compressed size field counts everything after the 9-byte header.

// Compress encodes input with the given frequency model order (0 or 1)
// and returns a self-describing stream. Order 1 falls back to order 0
// when the input is too short to seed the four interleaved lanes.
func Compress(input []byte, order uint) ([]byte, error) {
	if order != 0 && order != 1 {
		return nil, fmt.Errorf("rans: invalid order %d (must be 0 or 1)", order)
	}

	if order == 1 && len(input) >= RANS_LANES {
		return compressOrder1(input)
	}

	return compressOrder0(input)
}

// Decompress decodes a stream produced by Compress, inferring the model
// order from the leading byte.
func Decompress(input []byte) ([]byte, error) {
	if len(input) < HEADER_SIZE {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorruptStream, len(input))
	}

	compSz := int(binary.LittleEndian.Uint32(input[1:5]))
	outSz := int(binary.LittleEndian.Uint32(input[5:9]))

	if compSz != len(input)-HEADER_SIZE {
		return nil, fmt.Errorf("%w: declared payload size %d, have %d", ErrCorruptStream, compSz, len(input)-HEADER_SIZE)
	}

	if outSz == 0 {
		return []byte{}, nil
	}

	switch input[0] {
	case 0:
		return uncompressOrder0(input, outSz)
	case 1:
		return uncompressOrder1(input, outSz)
	}

	return nil, fmt.Errorf("%w: unknown order %d", ErrCorruptStream, input[0])
}

// compressBound is the worst case output size: 5% expansion plus the
// maximal table region and the header.
func compressBound(n int) int {
	return n + n/20 + 1 + 257*257*3 + HEADER_SIZE
}

func writeHeader(buf []byte, order byte, compSz, rawSz uint32) {
	buf[0] = order
	binary.LittleEndian.PutUint32(buf[1:], compSz)
	binary.LittleEndian.PutUint32(buf[5:], rawSz)
}

// finalize assembles [header][tables][payload]: the backward-written
// payload is moved up against the table region and the stream is sliced
// to its real length.
func finalize(buf []byte, order byte, tabEnd int, w *byteWriter, rawSz int) []byte {
	payload := len(buf) - w.pos
	total := tabEnd + payload
	writeHeader(buf, order, uint32(total-HEADER_SIZE), uint32(rawSz))
	copy(buf[tabEnd:total], buf[w.pos:])
	return buf[:total]
}
