package validators

import (
	"github.com/go-playground/validator/v10"
)

// RSA engine bounds
const (
	MinRSAKeyBits = 32
	MaxRSAKeyBits = 16384
	MinMRRounds   = 1
	MaxMRRounds   = 256
)

// KeySizeValidation validates an RSA modulus size in bits.
func KeySizeValidation(fl validator.FieldLevel) bool {
	bits := fl.Field().Int()
	return bits >= MinRSAKeyBits && bits <= MaxRSAKeyBits
}

// RoundsValidation validates a Miller-Rabin round count.
func RoundsValidation(fl validator.FieldLevel) bool {
	rounds := fl.Field().Int()
	return rounds >= MinMRRounds && rounds <= MaxMRRounds
}
