// Package hash one-way hashes secrets.
//
// Bcrypt is for passwords. HMACSHA256 is a keyed, deterministic digest for
// short-lived bearer values such as passcodes and link tokens, where the
// stored digest must be looked up by equality.
package hash
