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

// Package rans implements the byte-oriented rANS entropy codec used as the
// statistical compression stage of genomic alignment containers.
// See "Asymmetric Numeral System" by Jarek Duda at http://arxiv.org/abs/0902.0271
// Some code has been ported from https://github.com/rygorous/ryg_rans
//
// Two frequency models are available: order-0 (one histogram for the whole
// buffer) and order-1 (one histogram per previous byte). Four independent
// coder states are interleaved into a single byte stream, which lets a
// superscalar CPU pipeline the four lanes within one loop iteration.
package rans

import (
	"errors"
)

const (
	// RANS_BYTE_L is the lower bound of the normalization interval.
	// Between this and the byte-aligned emission, states use 31 (not 32!)
	// bits: exact reciprocals for 31-bit uints fit in 32-bit uints.
	RANS_BYTE_L = 1 << 23

	// TF_SHIFT is log2 of the fixed frequency scale. All tables are
	// normalized to this scale; the value is part of the wire format.
	TF_SHIFT = 12
	TOTFREQ  = 1 << TF_SHIFT

	// HEADER_SIZE covers the order byte plus the two little-endian
	// 32-bit size fields.
	HEADER_SIZE = 9

	// RANS_LANES is the number of interleaved coder states per stream.
	RANS_LANES = 4
)

var (
	// ErrInvalidModel reports an attempt to build an encoder symbol with
	// frequency zero. Unreachable with a correct model builder, checked
	// as a defensive boundary.
	ErrInvalidModel = errors.New("rans: zero frequency symbol in model")

	// ErrModelOverflow reports a frequency table whose rounding
	// correction cannot keep every present frequency positive.
	ErrModelOverflow = errors.New("rans: frequency table overflow")

	// ErrCorruptTable reports a serialized frequency table whose
	// cumulative frequencies exceed the scale.
	ErrCorruptTable = errors.New("rans: corrupt frequency table")

	// ErrCorruptStream reports a compressed stream with inconsistent
	// framing or a truncated payload.
	ErrCorruptStream = errors.New("rans: corrupt stream")
)
