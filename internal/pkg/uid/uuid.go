package uid

import "github.com/google/uuid"

// UUID generates RFC 9562 UUID strings.
type UUID struct {
	random bool
}

// NewUUID returns a generator of time-ordered v7 UUIDs, suited to ids and
// correlation values.
func NewUUID() *UUID {
	return &UUID{}
}

// NewRandomUUID returns a generator of v4 UUIDs, whose 122 random bits make
// them suitable as bearer secrets.
func NewRandomUUID() *UUID {
	return &UUID{random: true}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	if u.random {
		return uuid.NewString()
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
