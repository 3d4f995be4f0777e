// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package tbls

import (
	"encoding/binary"
	"fmt"

	"github.com/bytemare/tbls/commitment"
	"github.com/bytemare/tbls/internal"
)

const (
	encConf byte = iota + 1
	encKeyShare
	encPubKeyShare
	encSigShare
)

func encodedLength(encID byte) int {
	switch encID {
	case encConf:
		return 1 + 8 + 8
	case encKeyShare:
		return 1 + 8 + internal.ScalarLength
	case encPubKeyShare:
		return 1 + 8 + internal.G1Length
	case encSigShare:
		return 1 + 8 + internal.G2Length
	default:
		panic("encoded id not recognized")
	}
}

func header(encID byte, id uint64) []byte {
	out := make([]byte, 9, encodedLength(encID))
	out[0] = encID
	binary.LittleEndian.PutUint64(out[1:9], id)

	return out
}

func decodeHeader(encID byte, data []byte) (uint64, error) {
	if len(data) != encodedLength(encID) {
		return 0, fmt.Errorf("%w: expected %d bytes, got %d", internal.ErrInvalidLength, encodedLength(encID), len(data))
	}

	if data[0] != encID {
		return 0, fmt.Errorf("%w: unexpected encoding prefix %d", internal.ErrMalformedEncoding, data[0])
	}

	return binary.LittleEndian.Uint64(data[1:9]), nil
}

// Encode serializes the Configuration into a compact byte slice.
func (c *Configuration) Encode() []byte {
	out := header(encConf, uint64(c.Threshold))
	return binary.LittleEndian.AppendUint64(out, c.MaxParticipants)
}

// Decode deserializes the output of Encode into c, and verifies the decoded configuration.
func (c *Configuration) Decode(data []byte) error {
	t, err := decodeHeader(encConf, data)
	if err != nil {
		return err
	}

	conf := Configuration{
		Threshold:       uint(t),
		MaxParticipants: binary.LittleEndian.Uint64(data[9:17]),
	}

	if err = conf.Verify(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	*c = conf

	return nil
}

// Encode returns the 32 byte big-endian encoding of the secret key.
func (s *SecretKey) Encode() []byte {
	return internal.EncodeScalar(&s.Secret)
}

// Decode deserializes a 32 byte big-endian secret key into s.
func (s *SecretKey) Decode(data []byte) error {
	secret, err := internal.DecodeScalar(data)
	if err != nil {
		return fmt.Errorf("failed to decode secret key: %w", err)
	}

	s.Secret.Set(secret)
	secret.SetZero()

	return nil
}

// Encode serializes k into a compact byte string.
func (k *KeyShare) Encode() []byte {
	return append(header(encKeyShare, k.ID), internal.EncodeScalar(&k.Secret)...)
}

// Decode deserializes the compact encoding obtained from Encode(), or returns an error.
func (k *KeyShare) Decode(data []byte) error {
	id, err := decodeHeader(encKeyShare, data)
	if err != nil {
		return err
	}

	if id == 0 {
		return internal.ErrZeroIndex
	}

	secret, err := internal.DecodeScalar(data[9:])
	if err != nil {
		return fmt.Errorf("failed to decode key share: %w", err)
	}

	k.ID = id
	k.Secret.Set(secret)
	secret.SetZero()

	return nil
}

// Encode serializes p into a compact byte string.
func (p *PublicKeyShare) Encode() []byte {
	return append(header(encPubKeyShare, p.ID), internal.EncodeG1(&p.PublicKey)...)
}

// Decode deserializes the compact encoding obtained from Encode(), or returns an error.
func (p *PublicKeyShare) Decode(data []byte) error {
	id, err := decodeHeader(encPubKeyShare, data)
	if err != nil {
		return err
	}

	if id == 0 {
		return internal.ErrZeroIndex
	}

	pk, err := internal.DecodeG1(data[9:])
	if err != nil {
		return fmt.Errorf("failed to decode public key share: %w", err)
	}

	p.ID = id
	p.PublicKey = *pk

	return nil
}

// Encode serializes s into a compact byte string.
func (s *SignatureShare) Encode() []byte {
	return append(header(encSigShare, s.SignerIndex), internal.EncodeG2(&s.Signature)...)
}

// Decode deserializes the compact encoding obtained from Encode(), or returns an error.
func (s *SignatureShare) Decode(data []byte) error {
	id, err := decodeHeader(encSigShare, data)
	if err != nil {
		return err
	}

	if id == 0 {
		return internal.ErrZeroIndex
	}

	sig, err := internal.DecodeG2(data[9:])
	if err != nil {
		return fmt.Errorf("failed to decode signature share: %w", err)
	}

	s.SignerIndex = id
	s.Signature = *sig

	return nil
}

// Encode returns the 96 byte compressed encoding of the signature.
func (s *Signature) Encode() []byte {
	return internal.EncodeG2(&s.Point)
}

// Decode deserializes a 96 byte compressed signature into s.
func (s *Signature) Decode(data []byte) error {
	sig, err := internal.DecodeG2(data)
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}

	s.Point = *sig

	return nil
}

// Encode returns the encoding of the underlying commitment.
func (p *PublicKeySet) Encode() []byte {
	return p.commitment.Encode()
}

// Decode deserializes the output of Encode into p.
func (p *PublicKeySet) Decode(data []byte) error {
	c, err := commitment.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode public key set: %w", err)
	}

	p.commitment = c

	return nil
}
