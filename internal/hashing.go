// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// SignatureDST is the domain separation tag of the basic BLS signature scheme with signatures in G2.
const SignatureDST = "BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_"

// HashToG2 hashes msg to a point in G2.
func HashToG2(msg []byte) bls12381.G2Affine {
	h, err := bls12381.HashToG2(msg, []byte(SignatureDST))
	if err != nil {
		// Can't fail since the DST is a valid constant.
		panic(err)
	}

	return h
}

// RoundMessage returns msg || be64(round), the input hashed for round-tagged signatures.
func RoundMessage(msg []byte, round uint64) []byte {
	return Concatenate(msg, UInt64BE(round))
}
