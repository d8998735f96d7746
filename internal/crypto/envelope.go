package crypto

import (
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"io"
)

// Envelope is the bundled output of one hybrid-encryption operation.
// All three fields are independent standard-base64 strings; the message
// store and transport must preserve them byte-for-byte.
//
// An envelope is constructed at encryption time and immutable afterward.
// Decryption has no side effect on it and may be repeated safely.
type Envelope struct {
	// Ciphertext is the AES-256-GCM output: message bytes followed by the
	// 16-byte authentication tag.
	Ciphertext string `json:"ciphertext"`
	// IV is the 12-byte GCM nonce, fresh for every encryption.
	IV string `json:"iv"`
	// WrappedKey is the per-message AES key encrypted under the recipient's
	// RSA public key with OAEP-SHA-256. It decrypts only under the intended
	// recipient's private key.
	WrappedKey string `json:"wrappedKey"`
}

// Validate checks that the envelope is structurally sound: every field
// decodes as base64, the IV has the GCM nonce length, and the wrapped key
// has the RSA-4096 modulus length. It proves nothing about decryptability.
func (e *Envelope) Validate() error {
	if e.Ciphertext == "" || e.IV == "" || e.WrappedKey == "" {
		return fmt.Errorf("%w: missing envelope field", ErrDecryptionFailed)
	}

	ct, err := FromBase64(e.Ciphertext)
	if err != nil {
		return fmt.Errorf("%w: invalid ciphertext encoding", ErrDecryptionFailed)
	}
	if len(ct) < AESTagSize {
		return fmt.Errorf("%w: ciphertext shorter than tag", ErrDecryptionFailed)
	}

	iv, err := FromBase64(e.IV)
	if err != nil {
		return fmt.Errorf("%w: invalid iv encoding", ErrDecryptionFailed)
	}
	if len(iv) != AESNonceSize {
		return fmt.Errorf("%w: iv size %d, expected %d", ErrDecryptionFailed, len(iv), AESNonceSize)
	}

	wrapped, err := FromBase64(e.WrappedKey)
	if err != nil {
		return fmt.Errorf("%w: invalid wrappedKey encoding", ErrDecryptionFailed)
	}
	if len(wrapped) != WrappedKeySize {
		return fmt.Errorf("%w: wrappedKey size %d, expected %d", ErrDecryptionFailed, len(wrapped), WrappedKeySize)
	}

	return nil
}

// Encrypt performs one hybrid encryption of plaintext for the holder of
// recipient's private key.
//
// The process:
//  1. Generate a fresh random 256-bit AES key and a fresh random 12-byte
//     nonce. Neither is ever reused across calls.
//  2. Encrypt the UTF-8 bytes of plaintext with AES-256-GCM.
//  3. Wrap the raw AES key bytes under recipient with RSA-OAEP-SHA-256.
//
// The symmetric key never appears in the returned envelope in unwrapped
// form. Encrypt is stateless and safe for concurrent use.
func Encrypt(plaintext string, recipient *rsa.PublicKey) (*Envelope, error) {
	symmetricKey := make([]byte, AESKeySize)
	if _, err := io.ReadFull(randSource(), symmetricKey); err != nil {
		return nil, fmt.Errorf("%w: generate symmetric key: %v", ErrEncryptionFailed, err)
	}
	defer zeroBytes(symmetricKey)

	nonce := make([]byte, AESNonceSize)
	if _, err := io.ReadFull(randSource(), nonce); err != nil {
		return nil, fmt.Errorf("%w: generate nonce: %v", ErrEncryptionFailed, err)
	}

	ciphertext, err := encryptAESGCM(symmetricKey, nonce, []byte(plaintext))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	wrappedKey, err := rsa.EncryptOAEP(sha256.New(), randSource(), recipient, symmetricKey, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: wrap symmetric key: %v", ErrEncryptionFailed, err)
	}

	return &Envelope{
		Ciphertext: ToBase64(ciphertext),
		IV:         ToBase64(nonce),
		WrappedKey: ToBase64(wrappedKey),
	}, nil
}

// Decrypt reverses one hybrid encryption: unwrap the symmetric key under
// the private key, then decrypt and authenticate the ciphertext.
//
// Every failure is reported as [ErrDecryptionFailed], whether the envelope
// is malformed, the ciphertext was tampered with, or the private key does
// not correspond to the public key used for wrapping. Callers must treat
// the result as "message not readable by this key" and never attempt
// partial decoding.
func Decrypt(envelope *Envelope, priv *rsa.PrivateKey) (string, error) {
	wrappedKey, err := FromBase64(envelope.WrappedKey)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	symmetricKey, err := rsa.DecryptOAEP(sha256.New(), nil, priv, wrappedKey, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	defer zeroBytes(symmetricKey)

	if len(symmetricKey) != AESKeySize {
		return "", ErrDecryptionFailed
	}

	nonce, err := FromBase64(envelope.IV)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	ciphertext, err := FromBase64(envelope.Ciphertext)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	plaintext, err := decryptAESGCM(symmetricKey, nonce, ciphertext)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}

// zeroBytes overwrites b so raw key material does not linger in memory
// longer than needed.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
