package easybtc

import (
	"bytes"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

// Base58Alphabet is the Bitcoin base58 alphabet: digits and letters
// without 0, O, I and l.
const Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const checksumLength = 4

// Version bytes used by mainnet Base58Check payloads.
const (
	P2PKHVersion byte = 0x00
	WIFVersion   byte = 0x80
)

// Base58CheckEncode returns base58(version || payload || checksum), where checksum
// is the first four bytes of Hash256(version || payload).
func Base58CheckEncode(version byte, payload []byte) string {
	s1 := bytes.Join([][]byte{{version}, payload}, nil)
	checkSum := Hash256(s1)[0:checksumLength]
	return base58.Encode(bytes.Join([][]byte{s1, checkSum}, nil))
}

// Base58CheckDecode reverses Base58CheckEncode, returning the version byte
// and the payload.
func Base58CheckDecode(s string) (byte, []byte, error) {
	if !IsBase58(s) {
		return 0, nil, errors.Wrapf(ErrInvalidFormat, "%q is not base58", s)
	}
	decoded := base58.Decode(s)
	if len(decoded) < 1+checksumLength {
		return 0, nil, errors.Wrapf(ErrInvalidFormat, "base58check string %q is too short", s)
	}
	body := decoded[:len(decoded)-checksumLength]
	if !bytes.Equal(Hash256(body)[0:checksumLength], decoded[len(decoded)-checksumLength:]) {
		return 0, nil, ErrInvalidChecksum
	}
	return body[0], body[1:], nil
}

// IsBase58 returns true if s is non-empty and every character of s belongs
// to the base58 alphabet.
func IsBase58(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune(Base58Alphabet, c) {
			return false
		}
	}
	return true
}
