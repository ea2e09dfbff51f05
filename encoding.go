package easybtc

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawBytes is a byte sequence presented as a list of unsigned 8-bit integers,
// e.g. [4, 246, 117]. It marshals to a JSON array of numbers rather than base64.
type RawBytes []byte

// String formats the bytes as a bracketed, comma separated list of integers.
func (r RawBytes) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, b := range r {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(int(b)))
	}
	sb.WriteByte(']')
	return sb.String()
}

// MarshalJSON implements json.Marshaler.
func (r RawBytes) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(r))
	for i, b := range r {
		ints[i] = int(b)
	}
	return json.Marshal(ints)
}

// EncodedPublicKey holds every representation of a public key.
type EncodedPublicKey struct {
	UncompressedHex    string   `json:"uncompressed_hex"`
	UncompressedBase64 string   `json:"uncompressed_base64"`
	UncompressedRaw    RawBytes `json:"uncompressed_raw"`
	CompressedHex      string   `json:"compressed_hex"`
	CompressedBase64   string   `json:"compressed_base64"`
	CompressedRaw      RawBytes `json:"compressed_raw"`
	P2PKH              string   `json:"p2pkh"`
}

// Fields returns label/value pairs in display order.
func (e *EncodedPublicKey) Fields() [][2]string {
	return [][2]string{
		{"uncompressed hex", e.UncompressedHex},
		{"uncompressed base64", e.UncompressedBase64},
		{"uncompressed raw", e.UncompressedRaw.String()},
		{"compressed hex", e.CompressedHex},
		{"compressed base64", e.CompressedBase64},
		{"compressed raw", e.CompressedRaw.String()},
		{"BTC p2pkh", e.P2PKH},
	}
}

// EncodedPrivateKey holds every representation of a private key.
type EncodedPrivateKey struct {
	Hex    string   `json:"hex"`
	Base64 string   `json:"base64"`
	Raw    RawBytes `json:"raw"`
	WIF    string   `json:"wif"`
}

// Fields returns label/value pairs in display order.
func (e *EncodedPrivateKey) Fields() [][2]string {
	return [][2]string{
		{"hex", e.Hex},
		{"base64", e.Base64},
		{"raw", e.Raw.String()},
		{"BTC wif", e.WIF},
	}
}
