package keys

import (
	"errors"
	"fmt"
	"time"

	"github.com/arokys4/rsa-project/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// Key types stored in the keystore
const (
	KeyTypePublic  = "public"
	KeyTypePrivate = "private"
)

// ErrKeyNotFound is returned when no stored key matches a lookup.
var ErrKeyNotFound = errors.New("key not found")

// KeyMeta is one half of a stored RSA key pair. Material holds the key text,
// "e n" for public keys and "d n" for private keys.
type KeyMeta struct {
	ID              string    `validate:"required,uuid4"`
	KeyPairID       string    `validate:"required,uuid4"`
	Type            string    `validate:"required,oneof=public private"`
	KeySize         int       `validate:"rsakeysize"`
	Material        string    `validate:"omitempty,max=16384"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating KeyMeta struct
func (k *KeyMeta) Validate() error {
	return validateStruct(k)
}

// KeyQuery filters, sorts and pages keystore listings
type KeyQuery struct {
	Type      string `validate:"omitempty,oneof=public private"`
	Limit     int    `validate:"omitempty,min=1,max=1000"`
	Offset    int    `validate:"omitempty,min=0"`
	SortBy    string `validate:"omitempty,oneof=id key_pair_id type key_size date_time_created"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// NewKeyQuery returns a query listing newest keys first
func NewKeyQuery() *KeyQuery {
	return &KeyQuery{
		SortBy:    "date_time_created",
		SortOrder: "desc",
	}
}

// Validate for validating KeyQuery struct
func (q *KeyQuery) Validate() error {
	return validateStruct(q)
}

func validateStruct(s interface{}) error {
	err := validators.Get().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("validation failed: %v", messages)
	}
	return fmt.Errorf("validation error: %w", err)
}
