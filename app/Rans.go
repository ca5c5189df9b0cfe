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

// Command line front end for the rans codec. Files are processed as a
// sequence of independently compressed blocks, each preceded by its
// 4-byte little-endian compressed length.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/biocodec/rans"
)

const BLK_SIZE = 1024 * 1024

func main() {
	order := flag.Int("o", 0, "frequency model order (0 or 1)")
	decode := flag.Bool("d", false, "decompress instead of compress")
	flag.Parse()

	if *order != 0 {
		*order = 1
	}

	infp := os.Stdin
	outfp := os.Stdout
	var err error

	if flag.NArg() > 0 {
		if infp, err = os.Open(flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		defer infp.Close()
	}

	if flag.NArg() > 1 {
		if outfp, err = os.Create(flag.Arg(1)); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		defer outfp.Close()
	}

	in := bufio.NewReader(infp)
	out := bufio.NewWriter(outfp)
	defer out.Flush()

	start := time.Now()
	var bytes int64

	if *decode {
		bytes, err = decompressStream(in, out)
	} else {
		bytes, err = compressStream(in, out, uint(*order))
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Fprintf(os.Stderr, "Took %d microseconds, %5.1f MB/s\n",
		elapsed.Microseconds(),
		float64(bytes)/float64(elapsed.Microseconds()+1))
}

func compressStream(in io.Reader, out *bufio.Writer, order uint) (int64, error) {
	block := make([]byte, BLK_SIZE)
	var lenBuf [4]byte
	var total int64

	for {
		n, err := io.ReadFull(in, block)

		if n == 0 {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return total, nil
			}

			return total, err
		}

		compressed, err2 := rans.Compress(block[:n], order)

		if err2 != nil {
			return total, err2
		}

		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(compressed)))

		if _, err2 = out.Write(lenBuf[:]); err2 != nil {
			return total, err2
		}

		if _, err2 = out.Write(compressed); err2 != nil {
			return total, err2
		}

		total += int64(n)

		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return total, nil
		}
	}
}

func decompressStream(in io.Reader, out *bufio.Writer) (int64, error) {
	var lenBuf [4]byte
	var total int64

	for {
		if _, err := io.ReadFull(in, lenBuf[:]); err != nil {
			if err == io.EOF {
				return total, nil
			}

			return total, err
		}

		compressed := make([]byte, binary.LittleEndian.Uint32(lenBuf[:]))

		if _, err := io.ReadFull(in, compressed); err != nil {
			return total, fmt.Errorf("truncated input: %w", err)
		}

		block, err := rans.Decompress(compressed)

		if err != nil {
			return total, err
		}

		if _, err = out.Write(block); err != nil {
			return total, err
		}

		total += int64(len(block))
	}
}
