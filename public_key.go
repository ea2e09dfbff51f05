package easybtc

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/base64"
	"encoding/hex"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const (
	CompressedPublicKeyLength   = btcec.PubKeyBytesLenCompressed
	UncompressedPublicKeyLength = btcec.PubKeyBytesLenUncompressed
)

// PublicKey represents a secp256k1 public key.
type PublicKey struct {
	publicKey *ecdsa.PublicKey
}

// NewPublicKeyFromBytes parses a public key serialized either compressed
// (33 bytes) or uncompressed (65 bytes). The point must be on the curve.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	pub, err := btcec.ParsePubKey(b, btcec.S256())
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidFormat, "failed to parse public key, %v", err)
	}
	return &PublicKey{publicKey: pub.ToECDSA()}, nil
}

// NewPublicKeyFromHex parses a hex-encoded serialized public key.
func NewPublicKeyFromHex(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidFormat, "bad public key hex, %v", err)
	}
	return NewPublicKeyFromBytes(b)
}

// Bytes returns the key in SEC uncompressed format: 0x04 || x || y.
func (pbk *PublicKey) Bytes() []byte {
	return (*btcec.PublicKey)(pbk.publicKey).SerializeUncompressed()
}

// CompressedBytes returns the key in SEC compressed format. The result
// is 33 bytes long, the first byte is 0x02 for even y and 0x03 for odd y.
func (pbk *PublicKey) CompressedBytes() []byte {
	return (*btcec.PublicKey)(pbk.publicKey).SerializeCompressed()
}

// X returns X component of the public key.
func (pbk *PublicKey) X() *big.Int {
	return pbk.publicKey.X
}

// Y returns Y component of the public key.
func (pbk *PublicKey) Y() *big.Int {
	return pbk.publicKey.Y
}

// BitcoinAddress returns the P2PKH address for this public key, always
// computed over the compressed serialization.
func (pbk *PublicKey) BitcoinAddress() string {
	return Base58CheckEncode(P2PKHVersion, Hash160(pbk.CompressedBytes()))
}

// EthereumAddress returns an Ethereum address for this public key, EIP-55 checksummed.
func (pbk *PublicKey) EthereumAddress() string {
	return crypto.PubkeyToAddress(*pbk.publicKey).Hex()
}

// Equal returns true if this key is equal to the other key.
func (pbk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return pbk.publicKey.X.Cmp(other.publicKey.X) == 0 &&
		pbk.publicKey.Y.Cmp(other.publicKey.Y) == 0
}

// EqualSerializedCompressed returns true if this key is equal to the other,
// given as serialized compressed representation.
func (pbk *PublicKey) EqualSerializedCompressed(other []byte) bool {
	return bytes.Equal(pbk.CompressedBytes(), other)
}

// ToECDSA returns this key as crypto/ecdsa public key.
func (pbk *PublicKey) ToECDSA() *ecdsa.PublicKey {
	return pbk.publicKey
}

// Encode returns the hex, base64 and raw forms of both serializations,
// together with the P2PKH address.
func (pbk *PublicKey) Encode() *EncodedPublicKey {
	uncompressed := pbk.Bytes()
	compressed := pbk.CompressedBytes()
	return &EncodedPublicKey{
		UncompressedHex:    hex.EncodeToString(uncompressed),
		UncompressedBase64: base64.StdEncoding.EncodeToString(uncompressed),
		UncompressedRaw:    RawBytes(uncompressed),
		CompressedHex:      hex.EncodeToString(compressed),
		CompressedBase64:   base64.StdEncoding.EncodeToString(compressed),
		CompressedRaw:      RawBytes(compressed),
		P2PKH:              pbk.BitcoinAddress(),
	}
}

// AddressFromPublicKeyHex returns the P2PKH address of a hex-encoded public key
// given in either serialization.
func AddressFromPublicKeyHex(s string) (string, error) {
	pub, err := NewPublicKeyFromHex(s)
	if err != nil {
		return "", err
	}
	return pub.BitcoinAddress(), nil
}
