package cryptography

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/arokys4/rsa-project/internal/domain/cryptoalg"
)

const wordBits = 64

// randomSource draws uniformly distributed integers from a word-at-a-time generator.
//
// Unseeded sources reseed from fresh entropy (wall clock XOR operating system randomness)
// on every call, so successive calls are not trivially correlated. This is NOT
// cryptographically hardened against an adversary predicting seeds; it is a
// textbook source for a textbook engine.
//
// Each source owns its generator behind a mutex. Engines running concurrently
// must each hold their own source.
type randomSource struct {
	mu     sync.Mutex
	rng    *rand.Rand
	reseed bool
	calls  uint64
}

// NewRandomSource returns a source that reseeds from fresh entropy on every call.
func NewRandomSource() cryptoalg.RandomSource {
	return &randomSource{reseed: true}
}

// NewSeededRandomSource returns a deterministic source for tests and reproducible runs.
func NewSeededRandomSource(seed uint64) cryptoalg.RandomSource {
	return &randomSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Bits returns an integer uniform over [0, 2^k - 1], built by concatenating 64-bit words.
func (s *randomSource) Bits(k int) *big.Int {
	r := new(big.Int)
	if k <= 0 {
		return r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()

	word := new(big.Int)
	for i := 0; i < k/wordBits; i++ {
		r.Lsh(r, wordBits)
		r.Or(r, word.SetUint64(s.rng.Uint64()))
	}

	if rem := uint(k % wordBits); rem != 0 {
		part := s.rng.Uint64() & (uint64(1)<<rem - 1)
		r.Lsh(r, rem)
		r.Or(r, word.SetUint64(part))
	}

	return r
}

// Between returns an integer uniform over [low, high] by rejection sampling on the
// minimal bit width covering the range. Expected iterations are below two.
func (s *randomSource) Between(low, high *big.Int) (*big.Int, error) {
	if low.Cmp(high) > 0 {
		return nil, fmt.Errorf("%w: low %s > high %s", cryptoalg.ErrInvalidSampleRange, low, high)
	}

	span := new(big.Int).Sub(high, low)
	span.Add(span, bigOne)

	// minimal b with 2^b >= span
	bits := new(big.Int).Sub(span, bigOne).BitLen()
	if bits == 0 {
		return new(big.Int).Set(low), nil
	}

	for {
		candidate := s.Bits(bits)
		if candidate.Cmp(span) < 0 {
			return candidate.Add(candidate, low), nil
		}
	}
}

// refresh reseeds unseeded sources. Callers hold s.mu.
func (s *randomSource) refresh() {
	if s.reseed || s.rng == nil {
		s.calls++
		s.rng = rand.New(rand.NewChaCha8(entropySeed(s.calls)))
	}
}

func entropySeed(counter uint64) [32]byte {
	var seed [32]byte
	// crypto/rand failing leaves zeros; the clock still varies the seed
	_, _ = crand.Read(seed[:])

	now := uint64(time.Now().UnixNano())
	mixed := binary.LittleEndian.Uint64(seed[:8]) ^ now
	binary.LittleEndian.PutUint64(seed[:8], mixed)
	binary.LittleEndian.PutUint64(seed[8:16], binary.LittleEndian.Uint64(seed[8:16])^counter)
	return seed
}
