package domain

import "errors"

// IndexColumn names the blind index a sealed record is looked up by.
type IndexColumn string

const (
	IndexAccountID IndexColumn = "idx_account_id"
	IndexName      IndexColumn = "idx_name"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// SealedRecord is a vault row as stored: two keyed hashes to find it by and
// an AES-GCM sealed JSON document. Plaintext never leaves the service.
type SealedRecord struct {
	AccountIndex []byte `json:"idx_account_id"`
	NameIndex    []byte `json:"idx_name"`
	Ciphertext   []byte `json:"ciphertext_blob"`
	Nonce        []byte `json:"nonce"`
	AuthTag      []byte `json:"auth_tag"`
}

// Index returns the blind index stored for column.
func (r *SealedRecord) Index(column IndexColumn) []byte {
	if column == IndexName {
		return r.NameIndex
	}
	return r.AccountIndex
}
