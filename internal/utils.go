// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package internal provides values, structures, and functions to operate threshold BLS that are not part of the
// public API.
package internal

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// Concatenate returns the concatenation of all bytes composing the input elements.
func Concatenate(input ...[]byte) []byte {
	if len(input) == 0 {
		return []byte{}
	}

	if len(input) == 1 {
		if len(input[0]) == 0 {
			return nil
		}

		// shallow clone
		return append(input[0][:0:0], input[0]...)
	}

	length := 0
	for _, in := range input {
		length += len(in)
	}

	buf := make([]byte, 0, length)

	for _, in := range input {
		buf = append(buf, in...)
	}

	return buf
}

// RandomBytes returns length random bytes read from rng, or from crypto/rand if rng is nil.
func RandomBytes(rng io.Reader, length int) []byte {
	r := make([]byte, length)
	if _, err := io.ReadFull(Reader(rng), r); err != nil {
		// A failing randomness source is fatal, there is no safe way to continue.
		panic(fmt.Errorf("unexpected error in generating random bytes : %w", err))
	}

	return r
}

// Reader returns rng, or crypto/rand's Reader if rng is nil.
func Reader(rng io.Reader) io.Reader {
	if rng == nil {
		return cryptorand.Reader
	}

	return rng
}

// UInt64BE returns the 8 byte big endian byte encoding of i.
func UInt64BE(i uint64) []byte {
	out := [8]byte{}
	binary.BigEndian.PutUint64(out[:], i)

	return out[:]
}
