package crypto

import "errors"

var (
	// ErrKeyGeneration is returned when the underlying provider fails to
	// produce a key pair.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrKeyFormat is returned when serialized key material is malformed:
	// bad PEM framing, invalid base64, invalid DER structure, or a key of
	// the wrong algorithm.
	ErrKeyFormat = errors.New("invalid key format")

	// ErrEncryptionFailed is returned when message encryption fails.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed is returned when decryption fails for any reason:
	// malformed base64, a wrapped key that does not unwrap under the given
	// private key, or an authentication tag that does not verify. The causes
	// are deliberately not distinguished.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when an AES key has the wrong size.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when an AES-GCM nonce has the wrong size.
	ErrInvalidNonceSize = errors.New("invalid nonce size")
)
