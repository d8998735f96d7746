package sealedchat

import (
	"github.com/sealedchat/client-go/internal/crypto"
)

// Envelope is the bundled output of one message encryption: the AES-GCM
// ciphertext, the nonce, and the RSA-OAEP-wrapped symmetric key, each an
// independent base64 text field.
//
// The message store and transport must treat the three fields as opaque and
// preserve them byte-for-byte; any re-encoding or trimming makes the
// message undecryptable. Sender and recipient identities are associated
// with an envelope out-of-band.
type Envelope = crypto.Envelope

// Ciphersuite identifies the algorithm suite envelopes are produced with.
const Ciphersuite = crypto.Ciphersuite
