package keystore

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

// KeyringStore persists records in the operating system credential store
// (macOS Keychain, libsecret, wincred) or keyring's encrypted file backend,
// one item per user id.
type KeyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore opens the OS credential store described by cfg.
// Callers typically set only ServiceName; tests pin the file backend.
//
// Returns [ErrUnavailable] if no backend can be opened.
func NewKeyringStore(cfg keyring.Config) (*KeyringStore, error) {
	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: open keyring: %v", ErrUnavailable, err)
	}
	return &KeyringStore{ring: ring}, nil
}

// Store persists material under userID, replacing any prior item.
// The keyring serializes same-key writes internally.
func (k *KeyringStore) Store(userID, material string) error {
	err := k.ring.Set(keyring.Item{
		Key:   userID,
		Data:  []byte(material),
		Label: "SealedChat private key for " + userID,
	})
	if err != nil {
		return fmt.Errorf("%w: set item: %v", ErrUnavailable, err)
	}
	return nil
}

// Retrieve returns the item stored under userID, or ok == false if the
// user has never been provisioned on this device.
func (k *KeyringStore) Retrieve(userID string) (string, bool, error) {
	item, err := k.ring.Get(userID)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get item: %v", ErrUnavailable, err)
	}
	return string(item.Data), true, nil
}
