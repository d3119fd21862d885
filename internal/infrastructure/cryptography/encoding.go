package cryptography

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/arokys4/rsa-project/internal/domain/cryptoalg"
)

// Key text is two whitespace-separated decimal integers, exponent first:
// "e n" for public keys and "d n" for private keys.

// FormatPublicKey renders pub as "e n\n".
func FormatPublicKey(pub *cryptoalg.PublicKey) (string, error) {
	if err := pub.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s\n", pub.E.String(), pub.N.String()), nil
}

// FormatPrivateKey renders priv as "d n\n".
func FormatPrivateKey(priv *cryptoalg.PrivateKey) (string, error) {
	if err := priv.Validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s\n", priv.D.String(), priv.N.String()), nil
}

// ParsePublicKey reads "e n".
func ParsePublicKey(text string) (*cryptoalg.PublicKey, error) {
	e, n, err := parseKeyFields(text, "public", "e n")
	if err != nil {
		return nil, err
	}
	return &cryptoalg.PublicKey{N: n, E: e}, nil
}

// ParsePrivateKey reads "d n".
func ParsePrivateKey(text string) (*cryptoalg.PrivateKey, error) {
	d, n, err := parseKeyFields(text, "private", "d n")
	if err != nil {
		return nil, err
	}
	return &cryptoalg.PrivateKey{N: n, D: d}, nil
}

func parseKeyFields(text, kind, layout string) (exp, mod *big.Int, err error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return nil, nil, fmt.Errorf("%w: %s key expects 2 fields (%s), got %d",
			cryptoalg.ErrMalformedInput, kind, layout, len(fields))
	}

	exp, err = parseNonNegative(fields[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%s key exponent: %w", kind, err)
	}
	mod, err = parseNonNegative(fields[1])
	if err != nil {
		return nil, nil, fmt.Errorf("%s key modulus: %w", kind, err)
	}
	if exp.Sign() == 0 || mod.Sign() == 0 {
		return nil, nil, fmt.Errorf("%w: %s key fields must be positive", cryptoalg.ErrMalformedInput, kind)
	}

	return exp, mod, nil
}

// FormatCiphertext renders blocks as decimal integers, one per line.
func FormatCiphertext(blocks []*big.Int) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseCiphertext reads whitespace-separated non-negative decimal integers.
// Empty input yields an empty sequence.
func ParseCiphertext(text string) ([]*big.Int, error) {
	fields := strings.Fields(text)
	blocks := make([]*big.Int, 0, len(fields))
	for i, f := range fields {
		b, err := parseNonNegative(f)
		if err != nil {
			return nil, fmt.Errorf("ciphertext block %d: %w", i, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func parseNonNegative(token string) (*big.Int, error) {
	for _, r := range token {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: %q is not a non-negative decimal integer", cryptoalg.ErrMalformedInput, token)
		}
	}
	v, ok := new(big.Int).SetString(token, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a non-negative decimal integer", cryptoalg.ErrMalformedInput, token)
	}
	return v, nil
}
