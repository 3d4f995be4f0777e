// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package commitment

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/bytemare/tbls/internal"
	"github.com/bytemare/tbls/internal/shamir"
)

// Bivariate is the commitment to a symmetric bivariate polynomial, holding g1 * aᵢⱼ for each independent
// coefficient. Row commitments are derived on request.
type Bivariate struct {
	elements []bls12381.G1Affine
	degree   uint
}

// CommitBivariate returns the commitment to b.
func CommitBivariate(b *shamir.Bivariate) *Bivariate {
	d := b.Degree()
	c := &Bivariate{
		elements: make([]bls12381.G1Affine, shamir.TriangleSize(d)),
		degree:   d,
	}

	for j := range d + 1 {
		for i := range j + 1 {
			a := b.Coefficient(i, j)
			c.elements[shamir.TriangleIndex(i, j)] = internal.BaseG1(&a)
			a.SetZero()
		}
	}

	return c
}

// Degree returns the degree of the committed polynomial in each variable.
func (b *Bivariate) Degree() uint {
	return b.degree
}

// Row returns the commitment to the row polynomial B(x, Y), computed in the exponent. It equals Commit(p.Row(x))
// for the committed polynomial p.
func (b *Bivariate) Row(x uint64) Commitment {
	xs := internal.ScalarFromUint64(x)
	row := make(Commitment, b.degree+1)

	for j := range b.degree + 1 {
		// row[j] = ∑ᵢ xⁱ * g1*aᵢⱼ, by Horner in x
		var acc bls12381.G1Affine
		for i := int(b.degree); i >= 0; i-- {
			acc = internal.MulG1(&acc, &xs)
			acc = internal.AddG1(&acc, &b.elements[shamir.TriangleIndex(uint(i), j)])
		}

		row[j] = acc
	}

	return row
}

// Evaluate returns g1 * B(x, y).
func (b *Bivariate) Evaluate(x, y uint64) bls12381.G1Affine {
	return b.Row(x).EvaluateAt(y)
}

// Encode returns the concatenation of the compressed encodings of the committed coefficients, in storage order.
func (b *Bivariate) Encode() []byte {
	out := make([]byte, 0, len(b.elements)*internal.G1Length)
	for i := range b.elements {
		out = append(out, internal.EncodeG1(&b.elements[i])...)
	}

	return out
}

// DecodeBivariate decodes the output of Bivariate.Encode.
func DecodeBivariate(data []byte) (*Bivariate, error) {
	c, err := Decode(data)
	if err != nil {
		return nil, err
	}

	// find the degree d such that (d+1)(d+2)/2 == len(c)
	var d uint
	for shamir.TriangleSize(d) < len(c) {
		d++
	}

	if shamir.TriangleSize(d) != len(c) {
		return nil, fmt.Errorf("%w: %d elements do not form a symmetric bivariate commitment",
			internal.ErrInvalidLength, len(c))
	}

	return &Bivariate{elements: c, degree: d}, nil
}
