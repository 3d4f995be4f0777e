// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

// Package shamir implements polynomials over the BLS12-381 scalar field, their interpolation, and the symmetric
// bivariate polynomials used by dealers in the distributed key generation.
package shamir

import (
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/bytemare/tbls/internal"
)

// Polynomial over scalars, represented as a list of t+1 coefficients, where t is the degree.
// The constant term is in the first position and the highest degree coefficient is in the last position.
type Polynomial []fr.Element

// NewPolynomial returns a polynomial of the given degree with all coefficients set to zero.
func NewPolynomial(degree uint) Polynomial {
	return make(Polynomial, degree+1)
}

// Zero returns the zero polynomial, which has no coefficients.
func Zero() Polynomial {
	return Polynomial{}
}

// RandomPolynomial returns a polynomial of the given degree with coefficients sampled from rng. If secret is not nil,
// it is used as the constant term.
func RandomPolynomial(degree uint, rng io.Reader, secret *fr.Element) Polynomial {
	p := NewPolynomial(degree)
	for i := range p {
		p[i] = internal.RandomScalar(rng)
	}

	if secret != nil {
		p[0].Set(secret)
	}

	return p
}

// Degree returns the degree of the polynomial, ignoring trailing zero coefficients. The zero polynomial has degree 0.
func (p Polynomial) Degree() uint {
	for i := len(p) - 1; i > 0; i-- {
		if !p[i].IsZero() {
			return uint(i)
		}
	}

	return 0
}

// IsZero returns whether all coefficients are zero.
func (p Polynomial) IsZero() bool {
	for i := range p {
		if !p[i].IsZero() {
			return false
		}
	}

	return true
}

// Evaluate evaluates the polynomial p at point x using Horner's method.
func (p Polynomial) Evaluate(x *fr.Element) fr.Element {
	var value fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		value.Mul(&value, x)
		value.Add(&value, &p[i])
	}

	return value
}

// EvaluateAt evaluates the polynomial p at the integer x.
func (p Polynomial) EvaluateAt(x uint64) fr.Element {
	s := internal.ScalarFromUint64(x)
	return p.Evaluate(&s)
}

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	long, short := p, q
	if len(q) > len(p) {
		long, short = q, p
	}

	sum := long.Copy()
	for i := range short {
		sum[i].Add(&sum[i], &short[i])
	}

	return sum
}

// Copy returns a deep copy of p.
func (p Polynomial) Copy() Polynomial {
	return append(Polynomial{}, p...)
}

// Equal returns whether p and q have the same coefficients.
func (p Polynomial) Equal(q Polynomial) bool {
	if len(p) != len(q) {
		return false
	}

	for i := range p {
		if !p[i].Equal(&q[i]) {
			return false
		}
	}

	return true
}

// Zeroize overwrites all coefficients with zeroes.
func (p Polynomial) Zeroize() {
	for i := range p {
		p[i].SetZero()
	}
}

// Encode returns the concatenation of the fixed-width encodings of the coefficients, constant term first.
func (p Polynomial) Encode() []byte {
	out := make([]byte, 0, len(p)*internal.ScalarLength)
	for i := range p {
		out = append(out, internal.EncodeScalar(&p[i])...)
	}

	return out
}

// DecodePolynomial decodes the output of Encode.
func DecodePolynomial(data []byte) (Polynomial, error) {
	if len(data) == 0 || len(data)%internal.ScalarLength != 0 {
		return nil, internal.ErrInvalidLength
	}

	p := make(Polynomial, len(data)/internal.ScalarLength)
	if err := p.decode(data); err != nil {
		return nil, err
	}

	return p, nil
}

// decode fills p from data, which holds exactly len(p) coefficients. On error, p is zeroized.
func (p Polynomial) decode(data []byte) error {
	for i := range p {
		s, err := internal.DecodeScalar(data[i*internal.ScalarLength : (i+1)*internal.ScalarLength])
		if err != nil {
			p.Zeroize()
			return fmt.Errorf("coefficient %d: %w", i, err)
		}

		p[i].Set(s)
		s.SetZero()
	}

	return nil
}

// mulLinear returns p * (X - root).
func (p Polynomial) mulLinear(root *fr.Element) Polynomial {
	out := make(Polynomial, len(p)+1)

	var tmp fr.Element

	for i := range p {
		// X * aᵢXⁱ
		out[i+1].Add(&out[i+1], &p[i])
		// -root * aᵢXⁱ
		tmp.Mul(&p[i], root)
		out[i].Sub(&out[i], &tmp)
	}

	return out
}

// Interpolate returns the polynomial of minimal degree going through all the given points, using Lagrange
// interpolation. At least threshold+1 points with distinct non-zero identifiers are required, otherwise the result
// would silently be wrong and an error is returned instead.
func Interpolate(points []Share, threshold uint) (Polynomial, error) {
	ids := identifiers(points)
	if err := internal.ValidateIndexes(ids, threshold); err != nil {
		return nil, err
	}

	xs := make([]fr.Element, len(points))
	for i := range points {
		xs[i].SetUint64(points[i].ID)
	}

	result := NewPolynomial(uint(len(points) - 1))

	var denominator, diff, scale fr.Element

	for i := range points {
		basis := Polynomial{fr.One()}
		denominator.SetOne()

		for j := range points {
			if i == j {
				continue
			}

			basis = basis.mulLinear(&xs[j])
			diff.Sub(&xs[i], &xs[j])
			denominator.Mul(&denominator, &diff)
		}

		scale.Inverse(&denominator)
		scale.Mul(&scale, &points[i].Secret)

		for k := range basis {
			basis[k].Mul(&basis[k], &scale)
			result[k].Add(&result[k], &basis[k])
		}

		basis.Zeroize()
	}

	scale.SetZero()

	return result, nil
}
