package easybtc

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
)

// Signature represents a cryptographic signature (ECDSA).
// See https://en.wikipedia.org/wiki/Elliptic_Curve_Digital_Signature_Algorithm
type Signature struct {
	R *big.Int
	S *big.Int
}

// ParseSignature parses a DER-encoded signature.
func ParseSignature(der []byte) (*Signature, error) {
	sig, err := btcec.ParseDERSignature(der, btcec.S256())
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidFormat, "failed to parse signature, %v", err)
	}
	return &Signature{R: sig.R, S: sig.S}, nil
}

// Bytes returns the DER encoding of the signature, with S normalized to the
// lower half of the curve order.
func (sig *Signature) Bytes() []byte {
	return (&btcec.Signature{R: sig.R, S: sig.S}).Serialize()
}

// Verify verifies the signer using the public key and the hash of the data.
func (sig *Signature) Verify(key *PublicKey, hash []byte) bool {
	if key == nil || sig.R == nil || sig.S == nil {
		return false
	}
	return (&btcec.Signature{R: sig.R, S: sig.S}).Verify(hash, (*btcec.PublicKey)(key.publicKey))
}
