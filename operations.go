package easybtc

import (
	"encoding/hex"
	"os"

	"github.com/pkg/errors"
)

// SignResult is the outcome of signing a file.
type SignResult struct {
	File      string `json:"file"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

// Fields returns label/value pairs in display order.
func (r *SignResult) Fields() [][2]string {
	return [][2]string{
		{"file", r.File},
		{"hash", r.Hash},
		{"signature", r.Signature},
	}
}

// Hash256File returns Hash256 of the contents of fileName.
func Hash256File(fileName string) ([]byte, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "%v", err)
	}
	defer f.Close()
	h, err := Hash256Reader(f)
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "failed to read %s, %v", fileName, err)
	}
	return h, nil
}

// Hash160File returns Hash160 of the contents of fileName.
func Hash160File(fileName string) ([]byte, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "%v", err)
	}
	defer f.Close()
	h, err := Hash160Reader(f)
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "failed to read %s, %v", fileName, err)
	}
	return h, nil
}

// EncodePublicKeyFile loads the private key in fileName and encodes its public key.
// A file holding only a public key is rejected.
func EncodePublicKeyFile(fileName string) (*EncodedPublicKey, error) {
	privateKey, err := LoadPrivateKey(fileName)
	if err != nil {
		return nil, err
	}
	return privateKey.PublicKey().Encode(), nil
}

// EncodePrivateKeyFile loads the private key in fileName and encodes it.
func EncodePrivateKeyFile(fileName string) (*EncodedPrivateKey, error) {
	privateKey, err := LoadPrivateKey(fileName)
	if err != nil {
		return nil, err
	}
	return privateKey.Encode(), nil
}

// SignFile signs Hash256 of the contents of messageFileName with the private
// key stored in keyFileName.
func SignFile(keyFileName, messageFileName string) (*SignResult, error) {
	privateKey, err := LoadPrivateKey(keyFileName)
	if err != nil {
		return nil, err
	}
	message, err := readFile(messageFileName)
	if err != nil {
		return nil, err
	}
	hash := Hash256(message)
	sig, err := privateKey.Sign(hash)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign")
	}
	return &SignResult{
		File:      messageFileName,
		Hash:      hex.EncodeToString(hash),
		Signature: hex.EncodeToString(sig.Bytes()),
	}, nil
}

// VerifyFile checks a signature made over the contents of keyFileName, which
// must also hold a key (public or private). The key found in the file must be
// the one given as publicKeyHex.
//
// A mismatching key, a malformed publicKeyHex or a bad signature yields false;
// only failure to load the key file is reported as an error.
func VerifyFile(keyFileName, publicKeyHex, signatureHex string) (bool, error) {
	return VerifyFileWithPassphrase(keyFileName, "", publicKeyHex, signatureHex)
}

// VerifyFileWithPassphrase is like VerifyFile, but also accepts a key file
// holding a JWE-encrypted JWK. The signed data is the encrypted file content.
func VerifyFileWithPassphrase(keyFileName, passphrase, publicKeyHex, signatureHex string) (bool, error) {
	data, err := readFile(keyFileName)
	if err != nil {
		return false, err
	}
	_, publicKey, err := ParseKey(data, passphrase)
	if err != nil {
		return false, errors.Wrapf(err, "failed to load key from %s", keyFileName)
	}
	expected, err := NewPublicKeyFromHex(publicKeyHex)
	if err != nil || !publicKey.Equal(expected) {
		return false, nil
	}
	return verifyHex(publicKey, Hash256(data), signatureHex), nil
}

// VerifyMessageFile checks a signature made over the contents of
// messageFileName against the public key given as publicKeyHex.
func VerifyMessageFile(messageFileName, publicKeyHex, signatureHex string) (bool, error) {
	message, err := readFile(messageFileName)
	if err != nil {
		return false, err
	}
	publicKey, err := NewPublicKeyFromHex(publicKeyHex)
	if err != nil {
		return false, nil
	}
	return verifyHex(publicKey, Hash256(message), signatureHex), nil
}

func verifyHex(publicKey *PublicKey, hash []byte, signatureHex string) bool {
	der, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false
	}
	sig, err := ParseSignature(der)
	if err != nil {
		return false
	}
	return sig.Verify(publicKey, hash)
}
