// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tx

import (
	"crypto/ecdsa"

	"github.com/luxfi/crypto"
)

// Sign signs the transaction's SignedDigest with key, the step a
// validator's emitted vote (and every ordinary transfer) goes through
// before it is forwarded.
func (t *Transaction) Sign(key *ecdsa.PrivateKey) error {
	sig, err := crypto.Sign(t.SignedDigest(), key)
	if err != nil {
		return err
	}
	t.Signature = sig
	return nil
}

// SignedDigest returns the Keccak256 hash of the transaction's signed
// fields, the payload that Signature must verify against. Signature
// production and verification themselves are treated as a black box
// collaborator (github.com/luxfi/crypto) rather than reimplemented here.
func (t *Transaction) SignedDigest() []byte {
	d := t.Digest()
	return crypto.Keccak256(d[:])
}

// VerifySignature reports whether Signature is a valid signature over
// SignedDigest() by pubKey, the sender's raw public key bytes. The caller
// looks pubKey up for Sender (validate.Validate does so through its
// PubKeyResolver); this method does not check that pubKey belongs to
// Sender.
func (t *Transaction) VerifySignature(pubKey []byte) bool {
	if len(t.Signature) == 0 {
		return false
	}
	return crypto.VerifySignature(pubKey, t.SignedDigest(), t.Signature[:len(t.Signature)-1])
}
