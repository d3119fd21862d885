package config

import (
	"fmt"

	"github.com/arokys4/rsa-project/internal/pkg/validators"
)

// Engine defaults
const (
	DefaultKeyBits           = 1024
	DefaultMillerRabinRounds = 25
)

// EngineSettings configures key generation defaults for the RSA engine
type EngineSettings struct {
	KeyBits           int `mapstructure:"key_bits" validate:"rsakeysize"`
	MillerRabinRounds int `mapstructure:"miller_rabin_rounds" validate:"mrrounds"`
}

// Validate checks the key size and round count bounds
func (s *EngineSettings) Validate() error {
	if err := validators.Get().Struct(s); err != nil {
		return fmt.Errorf("validation failed for EngineSettings: %w", err)
	}
	return nil
}
