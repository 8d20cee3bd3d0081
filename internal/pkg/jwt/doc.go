// Package jwt issues and validates signed session tokens.
//
// Tokens are HS512 signed with a single process-wide secret. They carry the
// subject (account id), issued-at, not-before and expiry, plus the account
// email and role. Verified claims travel through request contexts with
// SetAuth and GetAuth.
package jwt
