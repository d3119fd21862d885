package cryptoalg

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the engine wraps exactly one of them,
// so callers can classify with errors.Is.
var (
	ErrConfig = errors.New("config error")
	ErrMath   = errors.New("math error")
	ErrRange  = errors.New("range error")
	ErrEncode = errors.New("encode error")
)

// ConfigError kind
var (
	ErrKeyTooSmall        = fmt.Errorf("%w: key size too small", ErrConfig)
	ErrInvalidRounds      = fmt.Errorf("%w: invalid Miller-Rabin round count", ErrConfig)
	ErrInvalidPrimeBits   = fmt.Errorf("%w: prime bit length must be >= 2", ErrConfig)
	ErrInvalidSampleRange = fmt.Errorf("%w: invalid sampling range", ErrConfig)
	ErrKeyNotSet          = fmt.Errorf("%w: key not set", ErrConfig)
)

// MathError kind
var (
	ErrNoInverse        = fmt.Errorf("%w: modular inverse does not exist", ErrMath)
	ErrNoValidExponent  = fmt.Errorf("%w: no valid public exponent", ErrMath)
	ErrNegativeExponent = fmt.Errorf("%w: negative exponent", ErrMath)
	ErrInvalidModulus   = fmt.Errorf("%w: modulus must be positive", ErrMath)
)

// RangeError kind
var (
	ErrBlockOutOfRange = fmt.Errorf("%w: block out of range", ErrRange)
)

// EncodeError kind
var (
	ErrBlockTooLarge  = fmt.Errorf("%w: block does not fit under modulus", ErrEncode)
	ErrMalformedInput = fmt.Errorf("%w: malformed input", ErrEncode)
)
