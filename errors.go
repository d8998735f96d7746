package sealedchat

import (
	"errors"
	"fmt"

	"github.com/sealedchat/client-go/internal/crypto"
	"github.com/sealedchat/client-go/internal/keystore"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrMissingKeyStore is returned by New when no key store is configured.
	ErrMissingKeyStore = errors.New("a key store is required")

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrNotProvisioned is returned by Open when no private key has been
	// stored for the user on this device. It is the normal first-login
	// state, resolved by Provision or ImportIdentity.
	ErrNotProvisioned = errors.New("no encryption keys provisioned for this user")

	// ErrKeyGeneration is returned when the cryptographic provider fails to
	// produce a key pair. Fatal for the signup flow; not retried.
	ErrKeyGeneration = crypto.ErrKeyGeneration

	// ErrKeyFormat is returned when a public-key record or stored private
	// key material is malformed.
	ErrKeyFormat = crypto.ErrKeyFormat

	// ErrEncryption is returned when message encryption fails.
	ErrEncryption = crypto.ErrEncryptionFailed

	// ErrDecryption is returned when an envelope cannot be decrypted. It
	// covers tampering, truncation, and a private key that does not match
	// the key the message was wrapped for; the causes are deliberately not
	// distinguished, so no decryption oracle is exposed. Treat it as
	// "message not readable by this key".
	ErrDecryption = crypto.ErrDecryptionFailed

	// ErrStorageUnavailable is returned when the local key store cannot be
	// opened or written. Surfaced to the caller because it means this
	// device cannot decrypt future messages.
	ErrStorageUnavailable = keystore.ErrUnavailable

	// ErrCorruptKeyRecord is returned when a stored key record exists but
	// is structurally invalid. Not self-healing; the caller should offer
	// re-provisioning.
	ErrCorruptKeyRecord = keystore.ErrCorruptRecord

	// ErrInvalidImportData is returned when imported identity data fails
	// validation.
	ErrInvalidImportData = errors.New("invalid identity import data")

	// ErrRecipientKeyNotFound is returned when a key directory has no
	// published record for the requested user.
	ErrRecipientKeyNotFound = errors.New("recipient public key not found")
)

// SealedChatError is implemented by all typed errors returned by this
// package, so callers can distinguish library errors from their own.
type SealedChatError interface {
	error
	SealedChatError() // marker method
}

// DirectoryError reports a failure to resolve a recipient's published key
// record through a [KeyDirectory].
type DirectoryError struct {
	UserID string
	Err    error
}

// SealedChatError implements the SealedChatError interface.
func (e *DirectoryError) SealedChatError() {}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("key directory lookup for %q failed: %v", e.UserID, e.Err)
}

// Unwrap returns the underlying directory error.
func (e *DirectoryError) Unwrap() error {
	return e.Err
}
