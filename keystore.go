package sealedchat

// KeyStore persists one private-key record per local user identity,
// device-local and never transmitted.
//
// Implementations must make Store durable across process restarts, report
// a never-stored id as ok == false with a nil error, and guarantee that
// concurrent calls for the same id resolve to last-writer-wins with no
// torn record visible. The built-in backends (selected via
// [WithFileKeyStore], [WithKeyringKeyStore], and [WithMemoryKeyStore])
// satisfy all of this; supply a custom implementation with [WithKeyStore].
type KeyStore interface {
	// Store persists material under userID, replacing any prior record.
	Store(userID, material string) error

	// Retrieve returns the stored material, or ok == false if the user has
	// never been provisioned on this device.
	Retrieve(userID string) (material string, ok bool, err error)
}
