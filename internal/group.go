// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package internal

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"slices"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

const (
	// ScalarLength is the byte size of an encoded scalar (SK_SIZE).
	ScalarLength = fr.Bytes

	// G1Length is the byte size of a compressed G1 element (PK_SIZE).
	G1Length = bls12381.SizeOfG1AffineCompressed

	// G2Length is the byte size of a compressed G2 element, i.e. a signature.
	G2Length = bls12381.SizeOfG2AffineCompressed

	// IndexLength is the maximum byte size of an encoded participant index.
	IndexLength = 8

	// 16 bytes above the scalar size keep the modular reduction bias negligible.
	scalarSampleLength = ScalarLength + 16
)

var _, _, g1Generator, g2Generator = bls12381.Generators()

// G1Generator returns a copy of the G1 generator.
func G1Generator() bls12381.G1Affine {
	return g1Generator
}

// ScalarFromUint64 returns i as a scalar.
func ScalarFromUint64(i uint64) fr.Element {
	var s fr.Element
	s.SetUint64(i)

	return s
}

// RandomScalar returns a uniformly distributed scalar sampled from rng.
func RandomScalar(rng io.Reader) fr.Element {
	buf := RandomBytes(rng, scalarSampleLength)

	var s fr.Element
	s.SetBytes(buf)
	clear(buf)

	return s
}

// EncodeScalar returns the fixed-width big-endian encoding of s.
func EncodeScalar(s *fr.Element) []byte {
	b := s.Bytes()
	return b[:]
}

// DecodeScalar decodes a fixed-width big-endian scalar, rejecting non-canonical values.
func DecodeScalar(data []byte) (*fr.Element, error) {
	if len(data) != ScalarLength {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidScalarEncoding, ScalarLength, len(data))
	}

	s := new(fr.Element)
	if err := s.SetBytesCanonical(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScalarEncoding, err)
	}

	return s, nil
}

func bigInt(s *fr.Element) *big.Int {
	return s.BigInt(new(big.Int))
}

// BaseG1 returns g1 * s.
func BaseG1(s *fr.Element) bls12381.G1Affine {
	return MulG1(&g1Generator, s)
}

// MulG1 returns p * s.
func MulG1(p *bls12381.G1Affine, s *fr.Element) bls12381.G1Affine {
	k := bigInt(s)
	defer k.SetUint64(0)

	var r bls12381.G1Affine
	r.ScalarMultiplication(p, k)

	return r
}

// AddG1 returns a + b.
func AddG1(a, b *bls12381.G1Affine) bls12381.G1Affine {
	var ja, jb bls12381.G1Jac
	ja.FromAffine(a)
	jb.FromAffine(b)
	ja.AddAssign(&jb)

	var r bls12381.G1Affine
	r.FromJacobian(&ja)

	return r
}

// BaseG2 returns g2 * s.
func BaseG2(s *fr.Element) bls12381.G2Affine {
	return MulG2(&g2Generator, s)
}

// MulG2 returns p * s.
func MulG2(p *bls12381.G2Affine, s *fr.Element) bls12381.G2Affine {
	k := bigInt(s)
	defer k.SetUint64(0)

	var r bls12381.G2Affine
	r.ScalarMultiplication(p, k)

	return r
}

// AddG2 returns a + b.
func AddG2(a, b *bls12381.G2Affine) bls12381.G2Affine {
	var ja, jb bls12381.G2Jac
	ja.FromAffine(a)
	jb.FromAffine(b)
	ja.AddAssign(&jb)

	var r bls12381.G2Affine
	r.FromJacobian(&ja)

	return r
}

// EncodeG1 returns the compressed encoding of p.
func EncodeG1(p *bls12381.G1Affine) []byte {
	b := p.Bytes()
	return b[:]
}

// DecodeG1 decodes a compressed G1 element, rejecting points off the curve or outside the prime order subgroup.
func DecodeG1(data []byte) (*bls12381.G1Affine, error) {
	if len(data) != G1Length {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPointEncoding, G1Length, len(data))
	}

	p := new(bls12381.G1Affine)
	if _, err := p.SetBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPointEncoding, err)
	}

	return p, nil
}

// EncodeG2 returns the compressed encoding of p.
func EncodeG2(p *bls12381.G2Affine) []byte {
	b := p.Bytes()
	return b[:]
}

// DecodeG2 decodes a compressed G2 element, rejecting points off the curve or outside the prime order subgroup.
func DecodeG2(data []byte) (*bls12381.G2Affine, error) {
	if len(data) != G2Length {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPointEncoding, G2Length, len(data))
	}

	p := new(bls12381.G2Affine)
	if _, err := p.SetBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPointEncoding, err)
	}

	return p, nil
}

// DecodeIndex reads a participant index from a buffer of at most 8 bytes. The buffer is zero-padded to 8 bytes and
// byte-reversed before being read as a big-endian integer.
func DecodeIndex(data []byte) (uint64, error) {
	if len(data) > IndexLength {
		return 0, fmt.Errorf("%w: got %d bytes", ErrIndexOverflow, len(data))
	}

	buf := make([]byte, IndexLength)
	copy(buf, data)
	slices.Reverse(buf)

	return binary.BigEndian.Uint64(buf), nil
}

// EncodeIndex is the inverse of DecodeIndex and returns the 8 byte encoding of i.
func EncodeIndex(i uint64) []byte {
	buf := UInt64BE(i)
	slices.Reverse(buf)

	return buf
}

// VerifyPairing returns whether e(pk, h) == e(g1, sig).
func VerifyPairing(pk *bls12381.G1Affine, h, sig *bls12381.G2Affine) bool {
	var negG1 bls12381.G1Affine
	negG1.Neg(&g1Generator)

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{*pk, negG1},
		[]bls12381.G2Affine{*h, *sig},
	)

	return err == nil && ok
}
