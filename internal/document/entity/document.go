package entity

import "time"

// DefaultStatusID is the status of a freshly registered document and of
// its signer assignment.
const DefaultStatusID int32 = 1

type Document struct {
	ID         int64
	CompanyID  int64
	FileName   string
	FilePath   string
	HashSHA256 string
	StatusID   int32
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type DocumentFilter struct {
	CompanyID int64
	Limit     int32
	Offset    int32
}

// DocumentPatch changes only the fields that are set.
type DocumentPatch struct {
	ID        int64
	FileName  *string
	StatusID  *int32
	UpdatedAt time.Time
}
