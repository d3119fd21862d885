// Package cryptoalg defines the core types and contracts of the textbook RSA engine:
// public/private keys and key pairs, the error taxonomy surfaced by every fallible
// arithmetic or encoding operation, and the interfaces for the engine and its randomness source.
package cryptoalg
