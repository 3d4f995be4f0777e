// SPDX-License-Identifier: MIT
//
// Copyright (C) 2024 Daniel Bourdrez. All Rights Reserved.
//
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree or at
// https://spdx.org/licenses/MIT.html

package tbls_test

import (
	"bytes"
	"testing"

	"github.com/bytemare/tbls"
)

func TestEncoding_KeyShare(t *testing.T) {
	_, keyShares, _ := makeKeys(t, 2, 5)
	k := keyShares[3]

	decoded := new(tbls.KeyShare)
	if err := decoded.Decode(k.Encode()); err != nil {
		t.Fatal(err)
	}

	if decoded.ID != k.ID || !decoded.Secret.Equal(&k.Secret) {
		t.Fatal("expected equality")
	}

	enc := k.Encode()
	expectError(t, tbls.ErrInvalidLength, decoded.Decode(enc[:len(enc)-1]))

	zero := k.Encode()
	copy(zero[1:9], make([]byte, 8))
	expectError(t, tbls.ErrZeroIndex, decoded.Decode(zero))

	bad := k.Encode()
	for i := 9; i < len(bad); i++ {
		bad[i] = 0xff
	}
	expectError(t, tbls.ErrInvalidScalarEncoding, decoded.Decode(bad))

	// a public key share encoding is not a key share encoding
	expectError(t, tbls.ErrInvalidLength, decoded.Decode(k.PublicKeyShare().Encode()))
}

func TestEncoding_PublicKeyShare(t *testing.T) {
	_, keyShares, _ := makeKeys(t, 2, 5)
	pk := keyShares[1].PublicKeyShare()

	decoded := new(tbls.PublicKeyShare)
	if err := decoded.Decode(pk.Encode()); err != nil {
		t.Fatal(err)
	}

	if decoded.ID != pk.ID || !decoded.PublicKey.Equal(&pk.PublicKey) {
		t.Fatal("expected equality")
	}

	bad := pk.Encode()
	copy(bad[9:], make([]byte, tbls.PublicKeyLength))
	bad[9] = 0x80
	bad[len(bad)-1] = 1
	expectError(t, tbls.ErrInvalidPointEncoding, decoded.Decode(bad))
}

func TestEncoding_Signatures(t *testing.T) {
	_, keyShares, _ := makeKeys(t, 2, 5)
	share := keyShares[2].Sign(testMessage)

	decoded := new(tbls.SignatureShare)
	if err := decoded.Decode(share.Encode()); err != nil {
		t.Fatal(err)
	}

	if decoded.SignerIndex != share.SignerIndex || !decoded.Signature.Equal(&share.Signature) {
		t.Fatal("expected equality")
	}

	sig := &tbls.Signature{Point: share.Signature}
	enc := sig.Encode()

	if len(enc) != tbls.SignatureLength {
		t.Fatalf("expected %d bytes, got %d", tbls.SignatureLength, len(enc))
	}

	decodedSig := new(tbls.Signature)
	if err := decodedSig.Decode(enc); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(decodedSig.Encode(), enc) {
		t.Fatal("expected equality")
	}

	expectError(t, tbls.ErrInvalidPointEncoding, decodedSig.Decode(enc[1:]))
}

func TestEncoding_SecretKey(t *testing.T) {
	conf, keyShares, _ := makeKeys(t, 1, 3)

	secret, err := conf.RecoverGroupSecret(keyShares)
	if err != nil {
		t.Fatal(err)
	}

	enc := secret.Encode()
	if len(enc) != tbls.SecretKeyLength {
		t.Fatalf("expected %d bytes, got %d", tbls.SecretKeyLength, len(enc))
	}

	decoded := new(tbls.SecretKey)
	if err = decoded.Decode(enc); err != nil {
		t.Fatal(err)
	}

	if !decoded.Secret.Equal(&secret.Secret) {
		t.Fatal("expected equality")
	}

	expectError(t, tbls.ErrInvalidScalarEncoding, decoded.Decode(enc[:31]))
}

func TestEncoding_PublicKeySet(t *testing.T) {
	_, _, pks := makeKeys(t, 3, 6)

	decoded := new(tbls.PublicKeySet)
	if err := decoded.Decode(pks.Encode()); err != nil {
		t.Fatal(err)
	}

	if decoded.Threshold() != 3 || !decoded.Commitment().Equal(pks.Commitment()) {
		t.Fatal("expected equality")
	}

	expectError(t, tbls.ErrInvalidLength, decoded.Decode(nil))
}
