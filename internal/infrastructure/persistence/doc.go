// Package persistence provides the keystore repository implementation.
// It uses GORM on top of SQLite or PostgreSQL to store both halves of
// generated RSA key pairs, validating entities before they are written.
package persistence
