package sealedchat

import (
	"github.com/99designs/keyring"
)

// clientConfig holds configuration for the client. Exactly one key-store
// source must be set; New resolves them in the order custom store, file
// store, OS keyring, memory store.
type clientConfig struct {
	store KeyStore

	fileDir        string
	filePassphrase []byte

	keyringConfig *keyring.Config

	memory bool
}

// Option configures the client.
type Option func(*clientConfig)

// WithKeyStore uses a caller-supplied key store implementation.
func WithKeyStore(store KeyStore) Option {
	return func(c *clientConfig) {
		c.store = store
	}
}

// WithFileKeyStore stores private keys as per-user files under dir, sealed
// at rest with the given passphrase (argon2id + XChaCha20-Poly1305).
func WithFileKeyStore(dir string, passphrase []byte) Option {
	return func(c *clientConfig) {
		c.fileDir = dir
		c.filePassphrase = passphrase
	}
}

// WithKeyringKeyStore stores private keys in the operating system
// credential store (Keychain, libsecret, wincred, or keyring's encrypted
// file fallback) using the given keyring configuration.
func WithKeyringKeyStore(cfg keyring.Config) Option {
	return func(c *clientConfig) {
		c.keyringConfig = &cfg
	}
}

// WithMemoryKeyStore stores private keys in process memory only. Keys do
// not survive a restart; intended for tests and ephemeral sessions.
func WithMemoryKeyStore() Option {
	return func(c *clientConfig) {
		c.memory = true
	}
}
