package cryptography

import (
	"math/big"

	"github.com/arokys4/rsa-project/internal/domain/cryptoalg"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// GCD returns the non-negative greatest common divisor of a and b using the
// iterative Euclidean algorithm. GCD(0, 0) is 0.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	r := new(big.Int)

	for y.Sign() != 0 {
		r.Rem(x, y)
		x, y, r = y, r, x
	}
	return x
}

// ExtendedGCD returns (g, x, y) such that a*x + b*y = g.
// Quotients use truncated division, so g carries the sign the iteration leaves it with;
// for non-negative inputs g is the gcd.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	x0, x1 := big.NewInt(1), big.NewInt(0)
	y0, y1 := big.NewInt(0), big.NewInt(1)

	q := new(big.Int)
	rem := new(big.Int)
	tmp := new(big.Int)

	for r.Sign() != 0 {
		q.QuoRem(oldR, r, rem)

		oldR, r = r, new(big.Int).Set(rem)

		tmp.Mul(q, x1)
		x0, x1 = x1, new(big.Int).Sub(x0, tmp)

		tmp.Mul(q, y1)
		y0, y1 = y1, new(big.Int).Sub(y0, tmp)
	}

	return oldR, x0, y0
}

// ModInverse returns the unique x in [0, m) with a*x ≡ 1 (mod m).
// It fails with ErrNoInverse when gcd(a, m) != 1 and ErrInvalidModulus when m <= 0.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	if m.Sign() <= 0 {
		return nil, cryptoalg.ErrInvalidModulus
	}

	g, x, _ := ExtendedGCD(a, m)
	if g.CmpAbs(bigOne) != 0 {
		return nil, cryptoalg.ErrNoInverse
	}
	// a negative a can leave g == -1, which flips the sign of the coefficient
	if g.Sign() < 0 {
		x.Neg(x)
	}

	// Mod is Euclidean, so the result is already in [0, m)
	return x.Mod(x, m), nil
}

// ModExp computes base^exp mod mod by square-and-multiply.
// The result is always in [0, mod). mod == 1 yields 0, exp == 0 yields 1.
// Negative exponents fail with ErrNegativeExponent, non-positive moduli with ErrInvalidModulus.
func ModExp(base, exp, mod *big.Int) (*big.Int, error) {
	if mod.Sign() <= 0 {
		return nil, cryptoalg.ErrInvalidModulus
	}
	if exp.Sign() < 0 {
		return nil, cryptoalg.ErrNegativeExponent
	}
	if mod.Cmp(bigOne) == 0 {
		return new(big.Int), nil
	}

	result := big.NewInt(1)
	b := new(big.Int).Mod(base, mod)
	e := new(big.Int).Set(exp)

	for e.Sign() > 0 {
		if e.Bit(0) == 1 {
			result.Mul(result, b)
			result.Mod(result, mod)
		}
		b.Mul(b, b)
		b.Mod(b, mod)
		e.Rsh(e, 1)
	}

	return result, nil
}
