package easybtc

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
)

const (
	// PrivateKeyLength is the length of a serialized secp256k1 scalar.
	PrivateKeyLength = 32

	// compressedFlag marks a WIF payload whose public key is used compressed.
	compressedFlag byte = 0x01
)

// PrivateKey represents a secp256k1 private key.
type PrivateKey struct {
	privateKey *ecdsa.PrivateKey
}

// NewRandomPrivateKey creates a new random private key using crypto/rand.
func NewRandomPrivateKey() (*PrivateKey, error) {
	return GeneratePrivateKey(rand.Reader)
}

// GeneratePrivateKey creates a new private key from the bytes read from random.
// Candidates outside of [1, N-1] are discarded and a new one is read.
func GeneratePrivateKey(random io.Reader) (*PrivateKey, error) {
	var b [PrivateKeyLength]byte
	for {
		if _, err := io.ReadFull(random, b[:]); err != nil {
			return nil, fmt.Errorf("failed to generate private key, %v", err)
		}
		if isValidScalar(b[:]) {
			return newPrivateKey(b[:]), nil
		}
	}
}

// NewPrivateKey creates a private key from secret. The secret is not range
// checked, use NewPrivateKeyFromBytes for untrusted input.
func NewPrivateKey(secret *big.Int) *PrivateKey {
	return newPrivateKey(padWithZeros(secret.Bytes(), PrivateKeyLength))
}

// NewPrivateKeyFromBytes creates a private key from its 32 byte big-endian
// serialization. The scalar must be nonzero and less than the curve order.
func NewPrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeyLength {
		return nil, errors.Wrapf(ErrInvalidFormat, "private key must be %d bytes, got %d",
			PrivateKeyLength, len(b))
	}
	if !isValidScalar(b) {
		return nil, errors.Wrap(ErrInvalidFormat, "private key is out of range")
	}
	return newPrivateKey(b), nil
}

// NewPrivateKeyFromHex creates a private key from its hex serialization.
func NewPrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidFormat, "bad private key hex, %v", err)
	}
	return NewPrivateKeyFromBytes(b)
}

// DecodeWIF decodes a private key in Wallet Import Format. Both compressed
// and uncompressed mainnet WIF strings are accepted.
func DecodeWIF(wif string) (*PrivateKey, error) {
	version, payload, err := Base58CheckDecode(wif)
	if err != nil {
		return nil, err
	}
	if version != WIFVersion {
		return nil, errors.Wrapf(ErrInvalidFormat, "unexpected WIF version byte 0x%02x", version)
	}
	switch {
	case len(payload) == PrivateKeyLength:
	case len(payload) == PrivateKeyLength+1 && payload[PrivateKeyLength] == compressedFlag:
		payload = payload[:PrivateKeyLength]
	default:
		return nil, errors.Wrapf(ErrInvalidFormat, "unexpected WIF payload length %d", len(payload))
	}
	return NewPrivateKeyFromBytes(payload)
}

func newPrivateKey(b []byte) *PrivateKey {
	privateKey, _ := btcec.PrivKeyFromBytes(btcec.S256(), b)
	return &PrivateKey{privateKey: privateKey.ToECDSA()}
}

func isValidScalar(b []byte) bool {
	d := new(big.Int).SetBytes(b)
	return d.Sign() > 0 && d.Cmp(btcec.S256().N) < 0
}

// padWithZeros left-pads b with zeros up to length bytes.
func padWithZeros(b []byte, length int) []byte {
	if len(b) >= length {
		return b
	}
	padded := make([]byte, length)
	copy(padded[length-len(b):], b)
	return padded
}

// Secret returns the private key's secret.
func (pk *PrivateKey) Secret() *big.Int {
	return pk.privateKey.D
}

// Bytes returns the secret as 32 big-endian bytes.
func (pk *PrivateKey) Bytes() []byte {
	return padWithZeros(pk.privateKey.D.Bytes(), PrivateKeyLength)
}

// WIF returns the key in Wallet Import Format, i.e.
// Base58Check(0x80 || secret || 0x01). The trailing flag says the
// corresponding public key is used compressed, so mainnet keys start with K or L.
func (pk *PrivateKey) WIF() string {
	payload := make([]byte, 0, PrivateKeyLength+1)
	payload = append(payload, pk.Bytes()...)
	payload = append(payload, compressedFlag)
	return Base58CheckEncode(WIFVersion, payload)
}

// PublicKey returns the public key derived from this private key.
func (pk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{publicKey: &pk.privateKey.PublicKey}
}

// Sign signs (ECDSA) the hash using the private key and returns signature.
// The nonce is derived deterministically (RFC 6979), so signing the same hash
// twice gives the same signature.
// See https://en.wikipedia.org/wiki/Elliptic_Curve_Digital_Signature_Algorithm.
func (pk *PrivateKey) Sign(hash []byte) (*Signature, error) {
	sig, err := (*btcec.PrivateKey)(pk.privateKey).Sign(hash)
	if err != nil {
		return nil, err
	}
	return &Signature{R: sig.R, S: sig.S}, nil
}

// Equal returns true if this key is equal to the other key.
func (pk *PrivateKey) Equal(other *PrivateKey) bool {
	if other == nil {
		return false
	}
	return pk.privateKey.D.Cmp(other.privateKey.D) == 0
}

// ToECDSA returns this key as crypto/ecdsa private key.
func (pk *PrivateKey) ToECDSA() *ecdsa.PrivateKey {
	return pk.privateKey
}

// Encode returns all textual and binary representations of the key.
func (pk *PrivateKey) Encode() *EncodedPrivateKey {
	b := pk.Bytes()
	return &EncodedPrivateKey{
		Hex:    hex.EncodeToString(b),
		Base64: base64.StdEncoding.EncodeToString(b),
		Raw:    RawBytes(b),
		WIF:    pk.WIF(),
	}
}
