// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package shamir

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/bytemare/tbls/internal"
)

// Share is the evaluation of a secret polynomial at the participant index ID.
type Share struct {
	ID     uint64
	Secret fr.Element
}

func identifiers(shares []Share) []uint64 {
	ids := make([]uint64, len(shares))
	for i := range shares {
		ids[i] = shares[i].ID
	}

	return ids
}

// Shard evaluates a random polynomial of the given degree with constant term secret at the indexes 1..max.
// The polynomial is returned and must be zeroized by the caller once it is no longer needed.
func Shard(secret *fr.Element, degree uint, max uint64, rng io.Reader) ([]Share, Polynomial) {
	if uint64(degree) >= max {
		panic(internal.ErrInvalidParameters)
	}

	p := RandomPolynomial(degree, rng, secret)

	shares := make([]Share, max)
	for i := range shares {
		id := uint64(i) + 1
		shares[i] = Share{ID: id, Secret: p.EvaluateAt(id)}
	}

	return shares, p
}

// Combine recovers the constant term of the polynomial defined by the shares. At least threshold+1 shares with
// distinct non-zero identifiers are required.
func Combine(shares []Share, threshold uint) (fr.Element, error) {
	ids := identifiers(shares)
	if err := internal.ValidateIndexes(ids, threshold); err != nil {
		return fr.Element{}, err
	}

	lambdas, err := internal.LagrangeCoefficients(ids)
	if err != nil {
		return fr.Element{}, err
	}

	var f0, delta fr.Element
	for i := range shares {
		delta.Mul(&shares[i].Secret, &lambdas[i])
		f0.Add(&f0, &delta)
	}

	delta.SetZero()

	return f0, nil
}
