package entity

import (
	"errors"
	"time"

	"github.com/shandysiswandi/esign/internal/shared/constant"
)

var ErrRoleUnknown = errors.New("identity: role is unknown")

// Role is the closed set of account kinds, persisted as a smallint.
type Role int16

const (
	RoleCompany Role = 0
	RoleAdmin   Role = 1
	RoleSigner  Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleCompany:
		return constant.RoleCompany
	case RoleAdmin:
		return constant.RoleAdmin
	case RoleSigner:
		return constant.RoleSigner
	default:
		return "unknown"
	}
}

func (r Role) Valid() bool {
	return r == RoleCompany || r == RoleAdmin || r == RoleSigner
}

// SelfRegistrable reports whether the role may be created without an
// administrator.
func (r Role) SelfRegistrable() bool {
	return r == RoleCompany || r == RoleSigner
}

// RequiredFields lists the profile fields the role needs at creation.
func (r Role) RequiredFields() []string {
	switch r {
	case RoleCompany:
		return []string{"legal_name", "tax_id"}
	case RoleSigner:
		return []string{"full_name", "phone_number", "national_id"}
	default:
		return nil
	}
}

type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

type CompanyProfile struct {
	ID           int64
	LegalName    string
	TaxID        string
	ContactEmail string
}

type SignerProfile struct {
	ID           int64
	FullName     string
	PhoneNumber  string
	NationalID   string
	ContactEmail string
}

// NewAccount is an account plus the one role row created with it. Exactly
// one of Company and Signer is set.
type NewAccount struct {
	Account Account
	Company *CompanyProfile
	Signer  *SignerProfile
}
