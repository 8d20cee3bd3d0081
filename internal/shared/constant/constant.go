// Package constant holds names shared across modules.
package constant

// Authorization objects.
const (
	ObjectDocument = "document"
	ObjectSigner   = "signer"
)

// Authorization actions.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionVerify = "verify"
)

// Role names used as authorization subjects and token claims.
const (
	RoleCompany = "company"
	RoleAdmin   = "admin"
	RoleSigner  = "signer"
)

// HeaderIdempotencyKey deduplicates document uploads.
const HeaderIdempotencyKey = "Idempotency-Key"
