package sealedchat

import (
	"context"

	"github.com/sealedchat/client-go/internal/crypto"
)

// Session binds one local user identity to its loaded key pair. It is
// created by [Client.Provision], [Client.Open], or [Client.ImportIdentity],
// and is the only object that can decrypt messages addressed to the user.
//
// All methods are stateless with respect to the session and safe for
// concurrent use; encrypt and decrypt calls for the same session may run
// fully in parallel.
type Session struct {
	userID       string
	keys         *crypto.KeyPair
	publicRecord string
}

func newSession(userID string, keys *crypto.KeyPair) (*Session, error) {
	record, err := crypto.ExportPublicKey(keys.PublicKey)
	if err != nil {
		return nil, err
	}
	return &Session{
		userID:       userID,
		keys:         keys,
		publicRecord: record,
	}, nil
}

// UserID returns the local user id this session belongs to.
func (s *Session) UserID() string {
	return s.userID
}

// PublicKeyRecord returns the user's published key record: PEM-framed
// base64 text, stored and served verbatim by the profile store.
func (s *Session) PublicKeyRecord() string {
	return s.publicRecord
}

// Encrypt encrypts plaintext for the holder of recipientRecord, a
// published public-key record as returned by a [KeyDirectory].
//
// Every call uses a fresh symmetric key and a fresh nonce. Returns
// [ErrKeyFormat] if the record is malformed and [ErrEncryption] if the
// provider rejects the operation.
func (s *Session) Encrypt(recipientRecord, plaintext string) (*Envelope, error) {
	pub, err := crypto.ImportPublicKey(recipientRecord)
	if err != nil {
		return nil, err
	}
	return crypto.Encrypt(plaintext, pub)
}

// EncryptTo resolves recipientID through the directory and encrypts
// plaintext for the returned record. Directory failures are reported as a
// [DirectoryError]; the context only bounds the directory lookup, since
// the cryptographic operations themselves do not block.
func (s *Session) EncryptTo(ctx context.Context, directory KeyDirectory, recipientID, plaintext string) (*Envelope, error) {
	record, err := directory.PublicKeyRecord(ctx, recipientID)
	if err != nil {
		return nil, &DirectoryError{UserID: recipientID, Err: err}
	}
	return s.Encrypt(record, plaintext)
}

// Decrypt recovers the plaintext of an envelope addressed to this user.
//
// Any failure — tampering, truncation, or an envelope wrapped for a
// different key — is reported as [ErrDecryption] with no further
// distinction. Decryption is idempotent and has no side effect on the
// envelope.
func (s *Session) Decrypt(envelope *Envelope) (string, error) {
	if envelope == nil {
		return "", ErrDecryption
	}
	return crypto.Decrypt(envelope, s.keys.PrivateKey)
}
