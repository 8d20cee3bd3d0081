package entity

import (
	"strings"
	"time"
)

type Signer struct {
	ID           int64
	FullName     string
	NationalID   string
	PhoneNumber  string
	ContactEmail string
	// PhotoIDKey is the object storage key of the reference photo.
	PhotoIDKey string
	UserID     *int64
	CreatedAt  time.Time
}

// SignerIdentity is what a registration says about its signer. It is only
// used when no live signer holds NationalID yet.
type SignerIdentity struct {
	FullName     string
	PhoneNumber  string
	ContactEmail string
	NationalID   string
	PhotoIDKey   string
}

// MissingFields lists the fields a new signer needs but did not get, in a
// stable order.
func (si SignerIdentity) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"full_name", si.FullName},
		{"phone_number", si.PhoneNumber},
		{"contact_email", si.ContactEmail},
		{"national_id", si.NationalID},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// SignerFieldsError is returned by the store when a new signer is missing
// required fields. Nothing has been written when it is returned.
type SignerFieldsError struct {
	Fields []string
}

func (e *SignerFieldsError) Error() string {
	return "document: signer is missing " + strings.Join(e.Fields, ", ")
}

// Registration is one document plus its signer, written atomically.
// DocumentID and SignerID are pre-generated; SignerID is used only when the
// signer is new.
type Registration struct {
	Document Document
	Signer   SignerIdentity
	SignerID int64
	At       time.Time
}

type RegistrationResult struct {
	Document      Document
	SignerID      int64
	SignerCreated bool
}
