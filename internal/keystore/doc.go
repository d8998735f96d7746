// Package keystore persists private-key material on the local device, one
// record per user identity.
//
// A record is the base64 PKCS#8 private-key export produced by the crypto
// package. Records are keyed uniquely by user id, overwritten (not merged)
// on re-store, and never leave the device: nothing in this package
// transmits, logs, or derives anything from the stored value.
//
// Three backends implement the [Keystore] interface:
//
//   - [FileStore]: a directory of per-user files, each sealed at rest with
//     argon2id + XChaCha20-Poly1305 under a caller-supplied passphrase.
//     Portable and dependency-free on the OS side.
//
//   - [KeyringStore]: the operating system credential store
//     (Keychain, libsecret, wincred, or an encrypted file fallback) via
//     github.com/99designs/keyring.
//
//   - [MemoryStore]: process-lifetime storage for tests and ephemeral
//     sessions.
//
// Retrieval of a never-stored id is not an error: it returns ok == false,
// the normal "not yet provisioned" state for a first login on a new device.
// Store and Retrieve are safe for concurrent use; calls for the same user
// id serialize to last-writer-wins with no torn record ever visible.
package keystore
