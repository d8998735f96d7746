// Package crypto provides the cryptographic primitives for the SealedChat
// messaging protocol. It implements key-pair generation, key serialization,
// and hybrid message encryption using standardized algorithms.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - RSA-4096 with OAEP-SHA-256 (RFC 8017): Asymmetric encryption used
//     exclusively to wrap per-message symmetric keys under a recipient's
//     public key.
//
//   - AES-256-GCM: Authenticated encryption (AEAD) for encrypting message
//     content. Provides confidentiality and integrity.
//
// # Hybrid Encryption
//
// Every message is encrypted under a fresh random 256-bit AES key with a
// fresh random 96-bit nonce; only that symmetric key is protected by the
// slower asymmetric cipher. The output of one encryption is an [Envelope]
// of three independent base64 fields: the GCM ciphertext (with trailing
// authentication tag), the nonce, and the RSA-OAEP-wrapped AES key.
//
// # Security Model
//
// The scheme provides:
//
//   - Confidentiality: Only the holder of the recipient's private key can
//     recover the symmetric key and therefore the message.
//   - Integrity: Tampering with any envelope field causes decryption to fail.
//
// All decryption failures are reported as [ErrDecryptionFailed]. A wrong
// private key and a corrupted envelope are deliberately indistinguishable;
// exposing the distinction would hand an attacker a decryption oracle.
//
// AES-GCM nonces MUST be unique for each encryption with the same key.
// Nonce reuse completely breaks the security of AES-GCM. [Encrypt] upholds
// the invariant by never reusing a symmetric key across calls: each message
// gets a fresh key and a fresh nonce.
//
// # Key Management
//
// Use [GenerateKeyPair] to create a new RSA-4096 key pair. Public keys are
// serialized as PEM-framed SPKI ("-----BEGIN PUBLIC KEY-----") suitable for
// publication as plain text; private keys are serialized as base64-encoded
// PKCS#8 with no framing, intended only for local storage.
//
// Keep private keys secure. They must never be logged, transmitted, or
// stored in version control. Nothing in this package writes key material or
// plaintext anywhere but its return values.
package crypto
