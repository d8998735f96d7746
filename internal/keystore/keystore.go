package keystore

import "errors"

var (
	// ErrUnavailable is returned when the backing store cannot be opened,
	// created, or written. The caller should surface it: it means the user
	// will be unable to decrypt future messages on this device.
	ErrUnavailable = errors.New("keystore unavailable")

	// ErrCorruptRecord is returned when a stored record exists but is
	// structurally invalid: bad envelope framing, failed authentication of
	// the sealed payload, or a record body that does not match the
	// requested user id.
	ErrCorruptRecord = errors.New("keystore record corrupt")
)

// Keystore stores and retrieves one private-key record per local user
// identity.
type Keystore interface {
	// Store persists material under userID, replacing any prior record.
	// The write is durable across process restarts.
	Store(userID, material string) error

	// Retrieve returns the stored material for userID. A missing record is
	// reported as ok == false with a nil error; it is a normal state, not
	// a failure.
	Retrieve(userID string) (material string, ok bool, err error)
}
