package signer

// Signer interface for signing repository metadata
type Signer interface {
	// SignDetached creates an armored detached signature (index.xml.asc)
	SignDetached(data []byte) ([]byte, error)

	// GetPublicKey returns the public key
	GetPublicKey() ([]byte, error)
}
