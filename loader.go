package easybtc

import (
	"bytes"
	"encoding/asn1"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"os"
	"strings"

	"github.com/go-jose/go-jose/v3"
	"github.com/pkg/errors"
	"golang.org/x/crypto/cryptobyte"
	cryptobyte_asn1 "golang.org/x/crypto/cryptobyte/asn1"
	"golang.org/x/crypto/scrypt"
)

var (
	oidPublicKeyECDSA = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidSecp256k1      = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

const (
	ecPrivKeyVersion = 1

	// Key derivation parameters for passphrase protected JWK files.
	deriveKey_N      = 16384
	deriveKey_r      = 8
	deriveKey_p      = 1
	deriveKey_keyLen = 32

	saltField = "x-salt"
)

// LoadPrivateKey loads the private key stored in fileName. The file may hold
// a PEM encoded SEC1 ("EC PRIVATE KEY") or PKCS#8 ("PRIVATE KEY") key, or a
// JWK. A file that holds only a public key is rejected with ErrPublicKeyOnly.
func LoadPrivateKey(fileName string) (*PrivateKey, error) {
	return LoadPrivateKeyWithPassphrase(fileName, "")
}

// LoadPrivateKeyWithPassphrase is like LoadPrivateKey, but also accepts
// a JWE-encrypted JWK, decrypted with a key derived from passphrase.
func LoadPrivateKeyWithPassphrase(fileName string, passphrase string) (*PrivateKey, error) {
	data, err := readFile(fileName)
	if err != nil {
		return nil, err
	}
	privateKey, _, err := ParseKey(data, passphrase)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load private key from %s", fileName)
	}
	if privateKey == nil {
		return nil, errors.Wrapf(ErrPublicKeyOnly, "failed to load private key from %s", fileName)
	}
	return privateKey, nil
}

// LoadPublicKey loads a public key from fileName. If the file holds
// a private key, the corresponding public key is returned.
func LoadPublicKey(fileName string) (*PublicKey, error) {
	return LoadPublicKeyWithPassphrase(fileName, "")
}

// LoadPublicKeyWithPassphrase is like LoadPublicKey, but also accepts
// a JWE-encrypted JWK.
func LoadPublicKeyWithPassphrase(fileName string, passphrase string) (*PublicKey, error) {
	data, err := readFile(fileName)
	if err != nil {
		return nil, err
	}
	_, publicKey, err := ParseKey(data, passphrase)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load public key from %s", fileName)
	}
	return publicKey, nil
}

func readFile(fileName string) ([]byte, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "%v", err)
	}
	return data, nil
}

// ParseKey parses key material. The private key is nil if data holds
// a public key only; the public key is always set on success.
func ParseKey(data []byte, passphrase string) (*PrivateKey, *PublicKey, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return parseJSONKey(trimmed, passphrase)
	}

	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return nil, nil, errors.Wrap(ErrInvalidFormat, "no PEM encoded key found")
		}
		if _, ok := block.Headers["Proc-Type"]; ok {
			return nil, nil, errors.Wrap(ErrInvalidFormat, "encrypted PEM blocks are not supported")
		}
		switch block.Type {
		case "EC PARAMETERS":
			continue
		case "EC PRIVATE KEY":
			privateKey, err := parseECPrivateKey(block.Bytes)
			if err != nil {
				return nil, nil, err
			}
			return privateKey, privateKey.PublicKey(), nil
		case "PRIVATE KEY":
			privateKey, err := parsePKCS8PrivateKey(block.Bytes)
			if err != nil {
				return nil, nil, err
			}
			return privateKey, privateKey.PublicKey(), nil
		case "PUBLIC KEY":
			publicKey, err := parsePKIXPublicKey(block.Bytes)
			if err != nil {
				return nil, nil, err
			}
			return nil, publicKey, nil
		default:
			return nil, nil, errors.Wrapf(ErrUnsupportedKeyType, "PEM block %q", block.Type)
		}
	}
}

// parseECPrivateKey parses an ASN.1 Elliptic Curve Private Key Structure,
// see RFC 5915.
func parseECPrivateKey(der []byte) (*PrivateKey, error) {
	var (
		input   = cryptobyte.String(der)
		seq     cryptobyte.String
		version int
		secret  cryptobyte.String
	)
	if !input.ReadASN1(&seq, cryptobyte_asn1.SEQUENCE) || !input.Empty() ||
		!seq.ReadASN1Integer(&version) ||
		!seq.ReadASN1(&secret, cryptobyte_asn1.OCTET_STRING) {
		return nil, errors.Wrap(ErrInvalidFormat, "malformed EC private key")
	}
	if version != ecPrivKeyVersion {
		return nil, errors.Wrapf(ErrInvalidFormat, "unknown EC private key version %d", version)
	}

	var params cryptobyte.String
	var hasParams bool
	if !seq.ReadOptionalASN1(&params, &hasParams, cryptobyte_asn1.Tag(0).Constructed().ContextSpecific()) {
		return nil, errors.Wrap(ErrInvalidFormat, "malformed EC private key parameters")
	}
	if hasParams {
		var curve asn1.ObjectIdentifier
		if !params.ReadASN1ObjectIdentifier(&curve) {
			return nil, errors.Wrap(ErrInvalidFormat, "malformed EC private key parameters")
		}
		if !curve.Equal(oidSecp256k1) {
			return nil, errors.Wrapf(ErrUnsupportedCurve, "curve %s", curve)
		}
	}

	if len(secret) > PrivateKeyLength {
		return nil, errors.Wrapf(ErrInvalidFormat, "private key is %d bytes long", len(secret))
	}
	privateKey, err := NewPrivateKeyFromBytes(padWithZeros(secret, PrivateKeyLength))
	if err != nil {
		return nil, err
	}

	var embedded cryptobyte.String
	var hasPublicKey bool
	if !seq.ReadOptionalASN1(&embedded, &hasPublicKey, cryptobyte_asn1.Tag(1).Constructed().ContextSpecific()) {
		return nil, errors.Wrap(ErrInvalidFormat, "malformed EC private key public key field")
	}
	if hasPublicKey {
		var bits asn1.BitString
		if !embedded.ReadASN1BitString(&bits) || bits.BitLength%8 != 0 {
			return nil, errors.Wrap(ErrInvalidFormat, "malformed EC private key public key field")
		}
		publicKey, err := NewPublicKeyFromBytes(bits.Bytes)
		if err != nil {
			return nil, err
		}
		if !publicKey.Equal(privateKey.PublicKey()) {
			return nil, errors.Wrap(ErrInvalidFormat, "embedded public key does not match the private key")
		}
	}
	return privateKey, nil
}

// parsePKCS8PrivateKey parses an unencrypted PKCS #8 private key, see RFC 5208.
func parsePKCS8PrivateKey(der []byte) (*PrivateKey, error) {
	var (
		input   = cryptobyte.String(der)
		seq     cryptobyte.String
		version int
		algo    cryptobyte.String
		key     cryptobyte.String
	)
	if !input.ReadASN1(&seq, cryptobyte_asn1.SEQUENCE) || !input.Empty() ||
		!seq.ReadASN1Integer(&version) ||
		!seq.ReadASN1(&algo, cryptobyte_asn1.SEQUENCE) ||
		!seq.ReadASN1(&key, cryptobyte_asn1.OCTET_STRING) {
		return nil, errors.Wrap(ErrInvalidFormat, "malformed PKCS#8 private key")
	}
	if err := checkAlgorithm(algo); err != nil {
		return nil, err
	}
	return parseECPrivateKey(key)
}

// parsePKIXPublicKey parses a SubjectPublicKeyInfo structure, see RFC 5480.
func parsePKIXPublicKey(der []byte) (*PublicKey, error) {
	var (
		input = cryptobyte.String(der)
		seq   cryptobyte.String
		algo  cryptobyte.String
		bits  asn1.BitString
	)
	if !input.ReadASN1(&seq, cryptobyte_asn1.SEQUENCE) || !input.Empty() ||
		!seq.ReadASN1(&algo, cryptobyte_asn1.SEQUENCE) ||
		!seq.ReadASN1BitString(&bits) || bits.BitLength%8 != 0 {
		return nil, errors.Wrap(ErrInvalidFormat, "malformed public key")
	}
	if err := checkAlgorithm(algo); err != nil {
		return nil, err
	}
	return NewPublicKeyFromBytes(bits.Bytes)
}

// checkAlgorithm makes sure the AlgorithmIdentifier names an EC key on secp256k1.
func checkAlgorithm(algo cryptobyte.String) error {
	var algorithm, curve asn1.ObjectIdentifier
	if !algo.ReadASN1ObjectIdentifier(&algorithm) {
		return errors.Wrap(ErrInvalidFormat, "malformed algorithm identifier")
	}
	if !algorithm.Equal(oidPublicKeyECDSA) {
		return errors.Wrapf(ErrUnsupportedKeyType, "algorithm %s", algorithm)
	}
	if !algo.ReadASN1ObjectIdentifier(&curve) {
		return errors.Wrap(ErrInvalidFormat, "malformed EC parameters")
	}
	if !curve.Equal(oidSecp256k1) {
		return errors.Wrapf(ErrUnsupportedCurve, "curve %s", curve)
	}
	return nil
}

// keyJSON is a JWK EC key, see https://www.rfc-editor.org/rfc/rfc7517.
type keyJSON struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
	D   string `json:"d"`
}

func parseJSONKey(data []byte, passphrase string) (*PrivateKey, *PublicKey, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, nil, errors.Wrapf(ErrInvalidFormat, "bad JSON, %v", err)
	}
	if _, ok := fields[saltField]; ok {
		if passphrase == "" {
			return nil, nil, errors.Wrap(ErrInvalidFormat, "encrypted key requires a passphrase")
		}
		decrypted, err := decryptWithPassphraseJWE(passphrase, string(data))
		if err != nil {
			return nil, nil, err
		}
		data = decrypted
	}

	var key keyJSON
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, nil, errors.Wrapf(ErrInvalidFormat, "bad JWK, %v", err)
	}
	if key.Kty != "EC" {
		return nil, nil, errors.Wrapf(ErrUnsupportedKeyType, "JWK key type %q", key.Kty)
	}
	if !strings.EqualFold(key.Crv, "secp256k1") {
		return nil, nil, errors.Wrapf(ErrUnsupportedCurve, "JWK curve %q", key.Crv)
	}

	if key.D != "" {
		// JWK uses Base64url encoding, which is Base64 encoding without padding.
		d, err := base64.RawURLEncoding.DecodeString(key.D)
		if err != nil || len(d) > PrivateKeyLength {
			return nil, nil, errors.Wrap(ErrInvalidFormat, "bad JWK private key")
		}
		privateKey, err := NewPrivateKeyFromBytes(padWithZeros(d, PrivateKeyLength))
		if err != nil {
			return nil, nil, err
		}
		if key.X != "" || key.Y != "" {
			publicKey, err := jwkPublicKey(&key)
			if err != nil {
				return nil, nil, err
			}
			if !publicKey.Equal(privateKey.PublicKey()) {
				return nil, nil, errors.Wrap(ErrInvalidFormat, "JWK public key does not match the private key")
			}
		}
		return privateKey, privateKey.PublicKey(), nil
	}

	publicKey, err := jwkPublicKey(&key)
	if err != nil {
		return nil, nil, err
	}
	return nil, publicKey, nil
}

func jwkPublicKey(key *keyJSON) (*PublicKey, error) {
	x, errX := base64.RawURLEncoding.DecodeString(key.X)
	y, errY := base64.RawURLEncoding.DecodeString(key.Y)
	if errX != nil || errY != nil || len(x) > 32 || len(y) > 32 {
		return nil, errors.Wrap(ErrInvalidFormat, "bad JWK public key")
	}
	serialized := bytes.Join([][]byte{{0x04}, padWithZeros(x, 32), padWithZeros(y, 32)}, nil)
	return NewPublicKeyFromBytes(serialized)
}

// deriveKey creates symmetric encryption key from passphrase and salt.
// Key derivation algorithm is described in https://www.tarsnap.com/scrypt/scrypt.pdf.
func deriveKey(passphrase, salt []byte) ([]byte, error) {
	return scrypt.Key(passphrase, salt, deriveKey_N, deriveKey_r, deriveKey_p, deriveKey_keyLen)
}

func decryptWithPassphraseJWE(passphrase string, content string) ([]byte, error) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		return nil, errors.Wrapf(ErrInvalidFormat, "bad JWE, %v", err)
	}
	saltStr, ok := m[saltField].(string)
	if !ok {
		return nil, errors.Wrap(ErrInvalidFormat, "bad JWE salt")
	}
	salt, err := base64.RawURLEncoding.DecodeString(saltStr)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidFormat, "bad JWE salt")
	}
	key, err := deriveKey([]byte(passphrase), salt)
	if err != nil {
		return nil, err
	}
	object, err := jose.ParseEncrypted(content)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidFormat, "bad JWE, %v", err)
	}
	decrypted, err := object.Decrypt(key)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidFormat, "failed to decrypt key, %v", err)
	}
	return decrypted, nil
}
