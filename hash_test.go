package easybtc

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Hash256(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456",
		hex.EncodeToString(Hash256(nil)))
	assert.Equal("9595c9df90075148eb06860365df33584b75bff782a510c6cd4883a419833d50",
		hex.EncodeToString(Hash256([]byte("hello"))))
	assert.Len(Hash256([]byte("hello")), Hash256Size)
}

func Test_Hash160(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("b472a266d0bd89c13706a4132ccfb16f7c3b9fcb",
		hex.EncodeToString(Hash160(nil)))
	assert.Equal("b6a9c8c230722b7c748331a8b450f05566dc7d0f",
		hex.EncodeToString(Hash160([]byte("hello"))))
	assert.Len(Hash160([]byte("hello")), Hash160Size)
}

func Test_HashReader(t *testing.T) {
	assert := assert.New(t)

	data := bytes.Repeat([]byte("some data to hash "), 10000)

	h256, err := Hash256Reader(bytes.NewReader(data))
	assert.NoError(err)
	assert.Equal(Hash256(data), h256)

	h160, err := Hash160Reader(bytes.NewReader(data))
	assert.NoError(err)
	assert.Equal(Hash160(data), h160)
}
