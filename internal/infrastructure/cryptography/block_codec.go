package cryptography

import (
	"fmt"
	"math/big"

	"github.com/arokys4/rsa-project/internal/domain/cryptoalg"
)

// blockFunc transforms one block, e.g. an RSA encryption with a fixed key.
type blockFunc func(*big.Int) (*big.Int, error)

var byteBase = big.NewInt(256)

// maxBlockBytes returns the largest k with 256^k <= n, but at least 1.
// Every k-byte chunk is therefore strictly below n whenever n > 255.
func maxBlockBytes(n *big.Int) int {
	k := 1
	limit := new(big.Int).Set(byteBase)
	for limit.Cmp(n) <= 0 {
		k++
		limit.Mul(limit, byteBase)
	}
	if k > 1 {
		k--
	}
	return k
}

// encodeBlocks walks message left to right, packing up to maxBlockBytes(n) bytes per
// big-endian block. A chunk that still overflows n is shrunk one byte at a time.
// Each accepted block is passed through transform immediately, in chunk order.
func encodeBlocks(message []byte, n *big.Int, transform blockFunc) ([]*big.Int, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus is zero", cryptoalg.ErrKeyNotSet)
	}

	width := maxBlockBytes(n)
	blocks := make([]*big.Int, 0, (len(message)+width-1)/width)

	for i := 0; i < len(message); {
		take := min(width, len(message)-i)

		m := new(big.Int).SetBytes(message[i : i+take])
		for m.Cmp(n) >= 0 {
			take--
			if take == 0 {
				return nil, fmt.Errorf("%w: byte 0x%02x at offset %d is not below n=%s",
					cryptoalg.ErrBlockTooLarge, message[i], i, n)
			}
			m.SetBytes(message[i : i+take])
		}

		c, err := transform(m)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", len(blocks), err)
		}
		blocks = append(blocks, c)
		i += take
	}

	return blocks, nil
}

// decodeBlocks passes each block through transform and re-expands it into bytes.
//
// Every block but the last is left-padded with NUL bytes to maxBlockBytes(n), which is
// exactly how wide encodeBlocks made it, so leading NUL bytes inside those chunks survive.
// The last block is expanded to its minimal big-endian width, and a last block equal to
// zero decodes to a single NUL byte.
func decodeBlocks(blocks []*big.Int, n *big.Int, transform blockFunc) ([]byte, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus is zero", cryptoalg.ErrKeyNotSet)
	}

	width := maxBlockBytes(n)
	out := make([]byte, 0, len(blocks)*width)

	for i, c := range blocks {
		m, err := transform(c)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}

		chunk := blockBytes(m)
		if i < len(blocks)-1 {
			for pad := len(chunk); pad < width; pad++ {
				out = append(out, 0)
			}
		}
		out = append(out, chunk...)
	}

	return out, nil
}

// blockBytes expands m into big-endian bytes by repeated mask-and-shift,
// collecting the least significant byte first. Zero expands to one NUL byte.
func blockBytes(m *big.Int) []byte {
	if m.Sign() == 0 {
		return []byte{0}
	}

	var reversed []byte
	tmp := new(big.Int).Set(m)
	mask := big.NewInt(0xff)
	b := new(big.Int)
	for tmp.Sign() > 0 {
		reversed = append(reversed, byte(b.And(tmp, mask).Uint64()))
		tmp.Rsh(tmp, 8)
	}

	out := make([]byte, len(reversed))
	for i, v := range reversed {
		out[len(reversed)-1-i] = v
	}
	return out
}
