// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package commitment implements Feldman commitments to univariate and symmetric bivariate polynomials in G1.
package commitment

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/bytemare/tbls/internal"
	"github.com/bytemare/tbls/internal/shamir"
)

// Commitment is the public image of a polynomial, holding g1 * coefficient for each coefficient, low degree first.
type Commitment []bls12381.G1Affine

// Commit returns the commitment to p.
func Commit(p shamir.Polynomial) Commitment {
	c := make(Commitment, len(p))
	for i := range p {
		c[i] = internal.BaseG1(&p[i])
	}

	return c
}

// Degree returns the degree of the committed polynomial, i.e. the number of elements minus one.
func (c Commitment) Degree() uint {
	if len(c) == 0 {
		return 0
	}

	return uint(len(c) - 1)
}

// Evaluate returns g1 * p(x) for the committed polynomial p, without knowledge of p.
func (c Commitment) Evaluate(x *fr.Element) bls12381.G1Affine {
	var result bls12381.G1Affine

	for i := len(c) - 1; i >= 0; i-- {
		result = internal.MulG1(&result, x)
		result = internal.AddG1(&result, &c[i])
	}

	return result
}

// EvaluateAt returns g1 * p(x) for the integer x.
func (c Commitment) EvaluateAt(x uint64) bls12381.G1Affine {
	s := internal.ScalarFromUint64(x)
	return c.Evaluate(&s)
}

// PublicKey returns the commitment to the constant term, i.e. the public key of the shared secret.
func (c Commitment) PublicKey() bls12381.G1Affine {
	if len(c) == 0 {
		return bls12381.G1Affine{}
	}

	return c[0]
}

// Add returns the pointwise sum of c and d, which commits to the sum of the two committed polynomials. The shorter
// operand is padded with the identity.
func (c Commitment) Add(d Commitment) Commitment {
	long, short := c, d
	if len(d) > len(c) {
		long, short = d, c
	}

	sum := long.Copy()
	for i := range short {
		sum[i] = internal.AddG1(&sum[i], &short[i])
	}

	return sum
}

// Equal returns whether c and d have the same length and are componentwise equal.
func (c Commitment) Equal(d Commitment) bool {
	if len(c) != len(d) {
		return false
	}

	for i := range c {
		if !c[i].Equal(&d[i]) {
			return false
		}
	}

	return true
}

// Copy returns a deep copy of c.
func (c Commitment) Copy() Commitment {
	return append(Commitment{}, c...)
}

// Encode returns the concatenation of the compressed encodings of the elements, low degree first.
func (c Commitment) Encode() []byte {
	out := make([]byte, 0, len(c)*internal.G1Length)
	for i := range c {
		out = append(out, internal.EncodeG1(&c[i])...)
	}

	return out
}

// Decode decodes the output of Encode.
func Decode(data []byte) (Commitment, error) {
	if len(data) == 0 || len(data)%internal.G1Length != 0 {
		return nil, fmt.Errorf("%w: commitment of %d bytes", internal.ErrInvalidLength, len(data))
	}

	c := make(Commitment, len(data)/internal.G1Length)
	for i := range c {
		e, err := internal.DecodeG1(data[i*internal.G1Length : (i+1)*internal.G1Length])
		if err != nil {
			return nil, fmt.Errorf("commitment element %d: %w", i, err)
		}

		c[i] = *e
	}

	return c, nil
}

// Verify returns whether row is the polynomial committed to by c.
func Verify(row shamir.Polynomial, c Commitment) bool {
	return Commit(row).Equal(c)
}

// VerifyShare returns whether share is the evaluation at id of the polynomial committed to by c.
func VerifyShare(id uint64, share *fr.Element, c Commitment) bool {
	if id == 0 || len(c) == 0 {
		return false
	}

	pk := internal.BaseG1(share)
	expected := c.EvaluateAt(id)

	return pk.Equal(&expected)
}
