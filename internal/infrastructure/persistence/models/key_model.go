package models

import (
	"time"

	"github.com/arokys4/rsa-project/internal/domain/keys"
)

// KeyModel is the GORM database model for one half of an RSA key pair
type KeyModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	KeyPairID       string    `gorm:"not null;index;type:varchar(36)"`
	Type            string    `gorm:"not null;type:varchar(20)"`
	KeySize         int       `gorm:"type:integer"`
	Material        string    `gorm:"type:text"`
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (KeyModel) TableName() string {
	return "rsa_keys"
}

// ToDomain converts the GORM model to the domain entity
func (m *KeyModel) ToDomain() *keys.KeyMeta {
	return &keys.KeyMeta{
		ID:              m.ID,
		KeyPairID:       m.KeyPairID,
		Type:            m.Type,
		KeySize:         m.KeySize,
		Material:        m.Material,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain fills the model from the domain entity
func (m *KeyModel) FromDomain(k *keys.KeyMeta) {
	m.ID = k.ID
	m.KeyPairID = k.KeyPairID
	m.Type = k.Type
	m.KeySize = k.KeySize
	m.Material = k.Material
	m.DateTimeCreated = k.DateTimeCreated
}
