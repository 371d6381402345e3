package ports

// BlindIndexer derives the keyed hash a plaintext search value is stored under.
type BlindIndexer interface {
	Index(value string) []byte
}

// Sealer encrypts and decrypts record documents.
type Sealer interface {
	Seal(plaintext []byte) (ciphertext, nonce, tag []byte, err error)
	Open(ciphertext, nonce, tag []byte) ([]byte, error)
}
