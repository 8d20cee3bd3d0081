package event

const DocumentRegisteredDestination string = "document.registered"

type DocumentRegisteredMessage struct {
	DocumentID    int64  `json:"document_id,string"`
	CompanyID     int64  `json:"company_id,string"`
	SignerID      int64  `json:"signer_id,string"`
	SignerCreated bool   `json:"signer_created"`
	HashSHA256    string `json:"hash_sha256"`
	RegisteredBy  int64  `json:"registered_by,string"`
}
