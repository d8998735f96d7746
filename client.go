package sealedchat

import (
	"sync"

	"github.com/sealedchat/client-go/internal/crypto"
	"github.com/sealedchat/client-go/internal/keystore"
)

// Client manages local user identities: key generation, local persistence
// of the private half, and the sessions that encrypt and decrypt messages.
//
// A Client is safe for concurrent use. Sessions for distinct users are
// fully independent.
type Client struct {
	store KeyStore

	sessions map[string]*Session // keyed by user id
	mu       sync.RWMutex
	closed   bool
}

// New creates a client over the configured key store. Exactly one key-store
// option is required; New returns [ErrMissingKeyStore] without one and
// [ErrStorageUnavailable] if the configured store cannot be opened.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	store, err := resolveKeyStore(cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:    store,
		sessions: make(map[string]*Session),
	}, nil
}

func resolveKeyStore(cfg *clientConfig) (KeyStore, error) {
	switch {
	case cfg.store != nil:
		return cfg.store, nil
	case cfg.fileDir != "" || cfg.filePassphrase != nil:
		return keystore.NewFileStore(cfg.fileDir, cfg.filePassphrase)
	case cfg.keyringConfig != nil:
		return keystore.NewKeyringStore(*cfg.keyringConfig)
	case cfg.memory:
		return keystore.NewMemoryStore(), nil
	default:
		return nil, ErrMissingKeyStore
	}
}

func (c *Client) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Provision generates a fresh key pair for userID, persists the private
// half in the local key store, and returns a ready session. Any previously
// stored key for the same user is replaced.
//
// This is the signup path. Publish the session's PublicKeyRecord through
// the profile store so other users can encrypt to this identity.
//
// Key generation and the store write run outside the client lock; sessions
// for distinct users provision fully in parallel. The key store serializes
// same-id writes itself.
func (c *Client) Provision(userID string) (*Session, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	keys, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, err
	}

	material, err := crypto.ExportPrivateKey(keys.PrivateKey)
	if err != nil {
		return nil, err
	}

	session, err := newSession(userID, keys)
	if err != nil {
		return nil, err
	}

	if err := c.store.Store(userID, material); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClientClosed
	}
	c.sessions[userID] = session
	return session, nil
}

// Open loads userID's private key from the local store and returns a
// session for it. It is the one-time initialization step of a login: it
// must complete before any decrypt call for this user is issued.
//
// Returns [ErrNotProvisioned] if no key has been stored on this device —
// the normal first-login state, resolved by [Client.Provision] or
// [Client.ImportIdentity]. A second Open for the same user returns the
// already-loaded session.
func (c *Client) Open(userID string) (*Session, error) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return nil, ErrClientClosed
	}
	if session, ok := c.sessions[userID]; ok {
		c.mu.RUnlock()
		return session, nil
	}
	c.mu.RUnlock()

	// Retrieval and key import run outside the client lock so opens for
	// distinct users proceed in parallel.
	material, ok, err := c.store.Retrieve(userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotProvisioned
	}

	priv, err := crypto.ImportPrivateKey(material)
	if err != nil {
		return nil, err
	}

	session, err := newSession(userID, crypto.KeyPairFromPrivateKey(priv))
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClientClosed
	}
	// Two racing opens for the same user converge on whichever session
	// was cached first.
	if existing, ok := c.sessions[userID]; ok {
		return existing, nil
	}
	c.sessions[userID] = session
	return session, nil
}

// Close marks the client closed. Subsequent Provision, Open, and
// ImportIdentity calls fail with [ErrClientClosed]; sessions already
// handed out keep working, since they hold their own key material.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.sessions = make(map[string]*Session)
	return nil
}
