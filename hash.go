package easybtc

import (
	"crypto/sha256"
	"hash"
	"io"

	"golang.org/x/crypto/ripemd160"
)

const (
	Hash256Size = sha256.Size
	Hash160Size = ripemd160.Size
)

// Hash256 does two rounds of SHA256 hashing.
func Hash256(data []byte) []byte {
	h := sha256.Sum256(data)
	h1 := sha256.Sum256(h[:])
	return h1[:]
}

// Calculate the hash of hasher over buf.
func calcHash(buf []byte, hasher hash.Hash) []byte {
	hasher.Write(buf)
	return hasher.Sum(nil)
}

// Hash160 calculates the hash ripemd160(sha256(b)).
func Hash160(buf []byte) []byte {
	return calcHash(calcHash(buf, sha256.New()), ripemd160.New())
}

// Hash256Reader computes Hash256 over everything read from r.
func Hash256Reader(r io.Reader) ([]byte, error) {
	hasher := sha256.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return nil, err
	}
	h := sha256.Sum256(hasher.Sum(nil))
	return h[:], nil
}

// Hash160Reader computes Hash160 over everything read from r.
func Hash160Reader(r io.Reader) ([]byte, error) {
	hasher := sha256.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return nil, err
	}
	return calcHash(hasher.Sum(nil), ripemd160.New()), nil
}
