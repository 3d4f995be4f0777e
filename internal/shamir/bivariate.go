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

// Bivariate is a symmetric polynomial B(X, Y) = ∑ aᵢⱼXⁱYʲ of degree t in each variable, with aᵢⱼ = aⱼᵢ.
type Bivariate struct {
	// upper triangle of the coefficient matrix, see TriangleIndex
	coefficients []fr.Element
	degree       uint
}

// TriangleSize returns the number of independent coefficients of a symmetric bivariate polynomial of the given degree.
func TriangleSize(degree uint) int {
	d := int(degree) + 1
	return d * (d + 1) / 2
}

// TriangleIndex returns the position of the coefficient aᵢⱼ in the triangular storage.
func TriangleIndex(i, j uint) int {
	if i > j {
		i, j = j, i
	}

	return int(j*(j+1)/2 + i)
}

// RandomBivariate returns a symmetric bivariate polynomial of the given degree with coefficients sampled from rng.
// The rng must be cryptographically secure, a nil rng defaults to crypto/rand.
func RandomBivariate(degree uint, rng io.Reader) *Bivariate {
	b := &Bivariate{
		coefficients: make([]fr.Element, TriangleSize(degree)),
		degree:       degree,
	}

	for i := range b.coefficients {
		b.coefficients[i] = internal.RandomScalar(rng)
	}

	return b
}

// Degree returns the degree of the polynomial in each variable.
func (b *Bivariate) Degree() uint {
	return b.degree
}

// Coefficient returns a copy of aᵢⱼ.
func (b *Bivariate) Coefficient(i, j uint) fr.Element {
	return b.coefficients[TriangleIndex(i, j)]
}

// Evaluate returns B(x, y).
func (b *Bivariate) Evaluate(x, y uint64) fr.Element {
	row := b.Row(x)
	defer row.Zeroize()

	return row.EvaluateAt(y)
}

// Row returns the univariate polynomial B(x, Y). Its value at 0 is the raw share contribution of participant x.
func (b *Bivariate) Row(x uint64) Polynomial {
	xs := internal.ScalarFromUint64(x)
	row := NewPolynomial(b.degree)

	var powX, term fr.Element

	for j := range b.degree + 1 {
		// row[j] = ∑ᵢ aᵢⱼxⁱ
		powX.SetOne()

		for i := range b.degree + 1 {
			term.Mul(&b.coefficients[TriangleIndex(i, j)], &powX)
			row[j].Add(&row[j], &term)
			powX.Mul(&powX, &xs)
		}
	}

	term.SetZero()

	return row
}

// Zeroize overwrites all coefficients with zeroes.
func (b *Bivariate) Zeroize() {
	for i := range b.coefficients {
		b.coefficients[i].SetZero()
	}
}
