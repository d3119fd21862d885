// Package models contains GORM database models for the persistence layer.
// They are kept apart from the domain entities and converted at the repository boundary.
package models
