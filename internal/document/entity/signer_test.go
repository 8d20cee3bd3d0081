package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignerIdentityMissingFields(t *testing.T) {
	assert.Empty(t, SignerIdentity{
		FullName:     "Sari Dewi",
		PhoneNumber:  "+62812",
		ContactEmail: "sari@example.com",
		NationalID:   "3201",
	}.MissingFields())

	assert.Equal(t,
		[]string{"phone_number", "contact_email"},
		SignerIdentity{FullName: "Sari", NationalID: "3201", PhoneNumber: "  "}.MissingFields(),
	)

	err := &SignerFieldsError{Fields: []string{"full_name", "national_id"}}
	assert.Equal(t, "document: signer is missing full_name, national_id", err.Error())
}
