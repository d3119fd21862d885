// Package validators holds the shared struct validator and its custom tags.
package validators

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get returns the process-wide validator with the rsakeysize and mrrounds tags registered.
func Get() *validator.Validate {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New creates a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	// registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("rsakeysize", KeySizeValidation)
	_ = v.RegisterValidation("mrrounds", RoundsValidation)
	return v
}
