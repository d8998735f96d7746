package sealedchat

import (
	"fmt"
	"time"

	"github.com/sealedchat/client-go/internal/crypto"
)

// IdentityExportVersion is the current identity export format version.
const IdentityExportVersion = 1

// ExportedIdentity contains everything needed to restore a local identity
// on the same device, for example across an application reinstall.
// WARNING: it contains private key material — handle the serialized form
// as carefully as the key store itself and never transmit it.
type ExportedIdentity struct {
	// Version is the export format version. MUST be 1.
	Version int `json:"version"`
	// UserID is the local user identity. Non-empty.
	UserID string `json:"userId"`
	// PublicKey is the published PEM key record.
	PublicKey string `json:"publicKey"`
	// PrivateKey is the base64 PKCS#8 private-key material.
	PrivateKey string `json:"privateKey"`
	// ExportedAt is the export timestamp. Informational only.
	ExportedAt time.Time `json:"exportedAt"`
}

// Validate checks that the exported data is structurally valid and
// internally consistent: the private key parses, and the public record —
// when present — matches the private key's public half.
func (e *ExportedIdentity) Validate() error {
	if e.Version != IdentityExportVersion {
		return fmt.Errorf("%w: unsupported version %d, expected %d", ErrInvalidImportData, e.Version, IdentityExportVersion)
	}

	if e.UserID == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidImportData)
	}

	if e.PrivateKey == "" {
		return fmt.Errorf("%w: privateKey is required", ErrInvalidImportData)
	}
	priv, err := crypto.ImportPrivateKey(e.PrivateKey)
	if err != nil {
		return fmt.Errorf("%w: privateKey does not parse", ErrInvalidImportData)
	}

	if e.PublicKey != "" {
		derived, err := crypto.ExportPublicKey(&priv.PublicKey)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidImportData, err)
		}
		if derived != e.PublicKey {
			return fmt.Errorf("%w: publicKey does not match privateKey", ErrInvalidImportData)
		}
	}

	return nil
}

// Export captures the session's identity for device-local backup.
func (s *Session) Export() (*ExportedIdentity, error) {
	material, err := crypto.ExportPrivateKey(s.keys.PrivateKey)
	if err != nil {
		return nil, err
	}
	return &ExportedIdentity{
		Version:    IdentityExportVersion,
		UserID:     s.userID,
		PublicKey:  s.publicRecord,
		PrivateKey: material,
		ExportedAt: time.Now().UTC(),
	}, nil
}

// ImportIdentity validates exported identity data, persists its private
// key in the local key store (replacing any prior record for the user),
// and returns a ready session.
func (c *Client) ImportIdentity(exported *ExportedIdentity) (*Session, error) {
	if exported == nil {
		return nil, fmt.Errorf("%w: nil identity", ErrInvalidImportData)
	}
	if err := exported.Validate(); err != nil {
		return nil, err
	}
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	// Key import and the store write run outside the client lock, as in
	// Provision; distinct users import in parallel.
	priv, err := crypto.ImportPrivateKey(exported.PrivateKey)
	if err != nil {
		return nil, err
	}

	session, err := newSession(exported.UserID, crypto.KeyPairFromPrivateKey(priv))
	if err != nil {
		return nil, err
	}

	if err := c.store.Store(exported.UserID, exported.PrivateKey); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClientClosed
	}
	c.sessions[exported.UserID] = session
	return session, nil
}
