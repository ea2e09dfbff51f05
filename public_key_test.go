package easybtc

import (
	"fmt"
	"math/big"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompressedHex   = "02f6755afd57b6da43e8eec8144b5efe63f902ccc1980461fc66435671f54bea02"
	testUncompressedHex = "04f6755afd57b6da43e8eec8144b5efe63f902ccc1980461fc66435671f54bea02" +
		"147c8f924a1e7cbe66e6cdf06532136351d886468094a93f89e994fa8ebbd080"
	testAddress = "1GGZnReKybChriBrvxEDWsQqQJBLQHvRzW"
)

func Test_PublicKey_SerializeCompressed(t *testing.T) {
	assert := assert.New(t)

	privateKey := NewPrivateKey(big.NewInt(5001))
	serialized := privateKey.PublicKey().CompressedBytes()
	assert.EqualValues("0357a4f368868a8a6d572991e484e664810ff14c05c0fa023275251151fe0e53d1",
		fmt.Sprintf("%x", serialized))
}

func Test_PublicKey_FromSerializedCompressed(t *testing.T) {
	assert := assert.New(t)

	publicKey, err := NewPublicKeyFromHex("0357a4f368868a8a6d572991e484e664810ff14c05c0fa023275251151fe0e53d1")
	assert.NoError(err)
	assert.EqualValues("57a4f368868a8a6d572991e484e664810ff14c05c0fa023275251151fe0e53d1",
		fmt.Sprintf("%064x", publicKey.X()))
	assert.EqualValues("0d6cc87c5bc29b83368e17869e964f2f53d52ea3aa3e5a9efa1fa578123a0c6d",
		fmt.Sprintf("%064x", publicKey.Y()))
}

func Test_PublicKey_FromBytes(t *testing.T) {
	assert := assert.New(t)

	compressed, err := NewPublicKeyFromHex(testCompressedHex)
	assert.NoError(err)
	uncompressed, err := NewPublicKeyFromHex(testUncompressedHex)
	assert.NoError(err)
	assert.True(compressed.Equal(uncompressed))

	// Not on the curve.
	_, err = NewPublicKeyFromHex("04" + strings.Repeat("01", 64))
	assert.ErrorIs(err, ErrInvalidFormat)

	// Bad prefix byte.
	_, err = NewPublicKeyFromHex("05" + testCompressedHex[2:])
	assert.ErrorIs(err, ErrInvalidFormat)

	_, err = NewPublicKeyFromHex("zz")
	assert.ErrorIs(err, ErrInvalidFormat)

	_, err = NewPublicKeyFromBytes(nil)
	assert.ErrorIs(err, ErrInvalidFormat)
}

func Test_PublicKey_CompressedAndUncompressed(t *testing.T) {
	assert := assert.New(t)

	for i := 0; i < 50; i++ {
		privateKey, err := NewRandomPrivateKey()
		require.NoError(t, err)
		publicKey := privateKey.PublicKey()

		uncompressed := publicKey.Bytes()
		compressed := publicKey.CompressedBytes()
		assert.Len(uncompressed, UncompressedPublicKeyLength)
		assert.Len(compressed, CompressedPublicKeyLength)
		assert.Equal(byte(0x04), uncompressed[0])
		assert.Equal(uncompressed[1:33], compressed[1:])
		if publicKey.Y().Bit(0) == 0 {
			assert.Equal(byte(0x02), compressed[0])
		} else {
			assert.Equal(byte(0x03), compressed[0])
		}
	}
}

func Test_PublicKey_Address(t *testing.T) {
	assert := assert.New(t)

	secret, _ := new(big.Int).SetString("12345deadbeef", 16)
	privateKey := NewPrivateKey(secret)
	assert.Equal("1F1Pn2y6pDb68E5nYJJeba4TLg2U7B6KF1", privateKey.PublicKey().BitcoinAddress())

	privateKey, err := NewPrivateKeyFromHex(testSecretHex)
	require.NoError(t, err)
	assert.Equal(testAddress, privateKey.PublicKey().BitcoinAddress())

	// Cross-check with btcutil.
	for i := 0; i < 20; i++ {
		key, err := NewRandomPrivateKey()
		require.NoError(t, err)
		address := key.PublicKey().BitcoinAddress()
		assert.True(strings.HasPrefix(address, "1"))
		assert.Equal(address, key.PublicKey().BitcoinAddress())

		expected, err := btcutil.NewAddressPubKeyHash(
			btcutil.Hash160(key.PublicKey().CompressedBytes()), &chaincfg.MainNetParams)
		require.NoError(t, err)
		assert.Equal(expected.EncodeAddress(), address)
	}
}

func Test_PublicKey_AddressFromHex(t *testing.T) {
	assert := assert.New(t)

	address, err := AddressFromPublicKeyHex(testCompressedHex)
	assert.NoError(err)
	assert.Equal(testAddress, address)

	// The compressed form is used regardless of the input serialization.
	address, err = AddressFromPublicKeyHex(testUncompressedHex)
	assert.NoError(err)
	assert.Equal(testAddress, address)

	_, err = AddressFromPublicKeyHex("02")
	assert.ErrorIs(err, ErrInvalidFormat)
}

func Test_PublicKey_EthereumAddress(t *testing.T) {
	assert := assert.New(t)

	privateKey := NewPrivateKey(big.NewInt(1))
	assert.Equal("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", privateKey.PublicKey().EthereumAddress())
}

func Test_PublicKey_Encode(t *testing.T) {
	assert := assert.New(t)

	publicKey, err := NewPublicKeyFromHex(testCompressedHex)
	require.NoError(t, err)

	encoded := publicKey.Encode()
	assert.Equal(testUncompressedHex, encoded.UncompressedHex)
	assert.Equal("BPZ1Wv1XttpD6O7IFEte/mP5AszBmARh/GZDVnH1S+oCFHyPkkoefL5m5s3wZTITY1HYhkaAlKk/iemU+o670IA=",
		encoded.UncompressedBase64)
	assert.Equal("[4, 246, 117, 90, 253, 87, 182, 218, 67, 232, 238, 200, 20, 75, 94, 254, 99, 249, 2, 204, "+
		"193, 152, 4, 97, 252, 102, 67, 86, 113, 245, 75, 234, 2, 20, 124, 143, 146, 74, 30, 124, 190, 102, "+
		"230, 205, 240, 101, 50, 19, 99, 81, 216, 134, 70, 128, 148, 169, 63, 137, 233, 148, 250, 142, 187, "+
		"208, 128]", encoded.UncompressedRaw.String())
	assert.Equal(testCompressedHex, encoded.CompressedHex)
	assert.Equal("AvZ1Wv1XttpD6O7IFEte/mP5AszBmARh/GZDVnH1S+oC", encoded.CompressedBase64)
	assert.Equal("[2, 246, 117, 90, 253, 87, 182, 218, 67, 232, 238, 200, 20, 75, 94, 254, 99, 249, 2, 204, "+
		"193, 152, 4, 97, 252, 102, 67, 86, 113, 245, 75, 234, 2]", encoded.CompressedRaw.String())
	assert.Equal(testAddress, encoded.P2PKH)
}

func Test_PublicKey_Equal(t *testing.T) {
	assert := assert.New(t)

	privateKey1, err := NewRandomPrivateKey()
	assert.NoError(err)
	publicKey1 := privateKey1.PublicKey()
	publicKey2, err := NewPublicKeyFromBytes(publicKey1.CompressedBytes())
	assert.NoError(err)

	assert.True(publicKey1.Equal(publicKey2))
	assert.True(publicKey1.EqualSerializedCompressed(publicKey2.CompressedBytes()))

	privateKey3, err := NewRandomPrivateKey()
	assert.NoError(err)
	publicKey3 := privateKey3.PublicKey()

	assert.False(publicKey1.Equal(publicKey3))
	assert.False(publicKey1.EqualSerializedCompressed(publicKey3.CompressedBytes()))
	assert.False(publicKey1.Equal(nil))
}
