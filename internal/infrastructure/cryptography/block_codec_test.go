//go:build unit
// +build unit

package cryptography

import (
	"errors"
	"math/big"
	"testing"

	"github.com/arokys4/rsa-project/internal/domain/cryptoalg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(m *big.Int) (*big.Int, error) {
	return new(big.Int).Set(m), nil
}

func pow2(k uint) *big.Int {
	return new(big.Int).Lsh(bigOne, k)
}

func TestMaxBlockBytes(t *testing.T) {
	tests := []struct {
		name     string
		n        *big.Int
		expected int
	}{
		{"n=1", big.NewInt(1), 1},
		{"n=255", big.NewInt(255), 1},
		{"n=256", big.NewInt(256), 1},
		{"n=3233", big.NewInt(3233), 1},
		{"n=65535", big.NewInt(65535), 1},
		{"n=65536", big.NewInt(65536), 2},
		{"n=65537", big.NewInt(65537), 2},
		{"n=2^64-1", new(big.Int).Sub(pow2(64), bigOne), 7},
		{"n=2^64", pow2(64), 8},
		{"n=2^1023+1", new(big.Int).Add(pow2(1023), bigOne), 127},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maxBlockBytes(tt.n))
		})
	}
}

func TestEncodeBlocks_Chunking(t *testing.T) {
	n := big.NewInt(65537)

	blocks, err := encodeBlocks([]byte("abc"), n, identity)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, int64(0x6162), blocks[0].Int64())
	assert.Equal(t, int64(0x63), blocks[1].Int64())

	blocks, err = encodeBlocks([]byte{}, n, identity)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestEncodeBlocks_EveryBlockBelowModulus(t *testing.T) {
	message := make([]byte, 256)
	for i := range message {
		message[i] = byte(255 - i)
	}

	for _, n := range []*big.Int{big.NewInt(257), big.NewInt(3233), big.NewInt(65537), new(big.Int).Add(pow2(100), big.NewInt(3))} {
		blocks, err := encodeBlocks(message, n, identity)
		require.NoError(t, err)
		for _, b := range blocks {
			assert.GreaterOrEqual(t, b.Sign(), 0)
			assert.Negative(t, b.Cmp(n))
		}
	}
}

func TestEncodeBlocks_ByteDoesNotFit(t *testing.T) {
	n := big.NewInt(253)

	_, err := encodeBlocks([]byte{0x41, 0xff}, n, identity)
	assert.ErrorIs(t, err, cryptoalg.ErrBlockTooLarge)
	assert.ErrorIs(t, err, cryptoalg.ErrEncode)

	blocks, err := encodeBlocks([]byte{0x41, 0xfc}, n, identity)
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}

func TestEncodeBlocks_MissingModulus(t *testing.T) {
	_, err := encodeBlocks([]byte("x"), nil, identity)
	assert.ErrorIs(t, err, cryptoalg.ErrKeyNotSet)

	_, err = decodeBlocks([]*big.Int{big.NewInt(1)}, big.NewInt(0), identity)
	assert.ErrorIs(t, err, cryptoalg.ErrKeyNotSet)
}

func TestCodec_TransformErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	failing := func(*big.Int) (*big.Int, error) { return nil, boom }

	_, err := encodeBlocks([]byte("abc"), big.NewInt(65537), failing)
	assert.ErrorIs(t, err, boom)

	_, err = decodeBlocks([]*big.Int{big.NewInt(1)}, big.NewInt(65537), failing)
	assert.ErrorIs(t, err, boom)
}

func TestCodec_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		n       *big.Int
		message []byte
	}{
		{"empty", big.NewInt(65537), []byte{}},
		{"ascii", big.NewInt(65537), []byte("Hello RSA!")},
		{"single NUL", big.NewInt(65537), []byte{0}},
		{"leading NULs in earlier chunk", big.NewInt(65537), []byte("\x00\x00ab")},
		{"NUL at chunk end", big.NewInt(65537), []byte("a\x00bc")},
		{"internal NULs wide key", new(big.Int).Add(pow2(128), bigOne), []byte("\x00ab\x00\x00cd\x00ef\x00\x00\x00\x00\x00\x00gh")},
		{"every byte one-byte blocks", big.NewInt(3233), allBytes()},
		{"utf-8", new(big.Int).Add(pow2(64), big.NewInt(13)), []byte("Привет, мир")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := encodeBlocks(tt.message, tt.n, identity)
			require.NoError(t, err)

			decoded, err := decodeBlocks(blocks, tt.n, identity)
			require.NoError(t, err)
			assert.Equal(t, string(tt.message), string(decoded))
		})
	}
}

func TestDecodeBlocks_ZeroFinalBlock(t *testing.T) {
	decoded, err := decodeBlocks([]*big.Int{big.NewInt(0)}, big.NewInt(65537), identity)
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, decoded)
}

func TestDecodeBlocks_FinalChunkLeadingNULIsLost(t *testing.T) {
	// the final block has no fixed width, so "\x00c" decodes as "c"
	n := big.NewInt(65537)
	blocks, err := encodeBlocks([]byte("ab\x00c"), n, identity)
	require.NoError(t, err)

	decoded, err := decodeBlocks(blocks, n, identity)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(decoded))
}

func TestBlockBytes(t *testing.T) {
	assert.Equal(t, []byte{0}, blockBytes(big.NewInt(0)))
	assert.Equal(t, []byte{0x01}, blockBytes(big.NewInt(1)))
	assert.Equal(t, []byte{0x01, 0x00}, blockBytes(big.NewInt(256)))
	assert.Equal(t, []byte("Hi!"), blockBytes(new(big.Int).SetBytes([]byte("Hi!"))))
}

func allBytes() []byte {
	out := make([]byte, 256)
	for i := range out {
		out[i] = byte(i)
	}
	return out
}
