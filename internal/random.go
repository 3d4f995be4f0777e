// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"github.com/bytemare/hash"
)

const (
	seededReaderDST       = "TBLS-seeded-reader"
	seededReaderBlockSize = 136
)

// SeededReader is a deterministic io.Reader expanding a seed with SHAKE256 in counter mode. It is meant for
// reproducible tests and vectors, and must never be used to generate production keys.
type SeededReader struct {
	seed    []byte
	buf     []byte
	counter uint64
}

// NewSeededReader returns a SeededReader expanding seed.
func NewSeededReader(seed []byte) *SeededReader {
	return &SeededReader{seed: Concatenate(seed)}
}

// Read fills p with the next bytes of the stream. It never fails.
func (r *SeededReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.buf) == 0 {
			r.buf = hash.SHAKE256.New().Hash(seededReaderBlockSize,
				[]byte(seededReaderDST), r.seed, UInt64BE(r.counter))
			r.counter++
		}

		c := copy(p[n:], r.buf)
		r.buf = r.buf[c:]
		n += c
	}

	return n, nil
}
