//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngineSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      *EngineSettings
		expectedError bool
	}{
		{"defaults", &EngineSettings{KeyBits: DefaultKeyBits, MillerRabinRounds: DefaultMillerRabinRounds}, false},
		{"smallest key", &EngineSettings{KeyBits: 32, MillerRabinRounds: 1}, false},
		{"key too small", &EngineSettings{KeyBits: 31, MillerRabinRounds: 25}, true},
		{"key too large", &EngineSettings{KeyBits: 16385, MillerRabinRounds: 25}, true},
		{"zero rounds", &EngineSettings{KeyBits: 1024, MillerRabinRounds: 0}, true},
		{"too many rounds", &EngineSettings{KeyBits: 1024, MillerRabinRounds: 257}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
