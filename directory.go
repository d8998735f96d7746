package sealedchat

import "context"

// KeyDirectory resolves a user's published public-key record. It is the
// boundary to the profile store, which holds each record verbatim as an
// opaque text field and returns it to any party that asks.
//
// Implementations typically wrap the application's user-profile backend.
type KeyDirectory interface {
	// PublicKeyRecord returns the PEM public-key record published for
	// userID, exactly as it was stored.
	PublicKeyRecord(ctx context.Context, userID string) (string, error)
}

// StaticDirectory is a KeyDirectory backed by a fixed map of user id to
// published record. Useful in tests and single-process setups.
type StaticDirectory map[string]string

// PublicKeyRecord implements [KeyDirectory].
func (d StaticDirectory) PublicKeyRecord(_ context.Context, userID string) (string, error) {
	record, ok := d[userID]
	if !ok {
		return "", ErrRecipientKeyNotFound
	}
	return record, nil
}
