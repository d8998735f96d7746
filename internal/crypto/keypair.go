package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"
)

// randReader is the random source used for key and nonce generation.
// It defaults to nil (which uses crypto/rand) but can be overridden for testing.
var randReader io.Reader

func randSource() io.Reader {
	if randReader != nil {
		return randReader
	}
	return rand.Reader
}

// KeyPair represents an RSA-4096 key pair for hybrid message encryption.
// Both halves always originate from a single [GenerateKeyPair] call or a
// single private-key import; they are never mixed across pairs.
type KeyPair struct {
	// PublicKey is the encryption half, safe to publish.
	PublicKey *rsa.PublicKey
	// PrivateKey is the decryption half. It must never leave the local
	// device except through deliberate export for local storage.
	PrivateKey *rsa.PrivateKey
}

// GenerateKeyPair creates a new RSA-4096 key pair.
//
// Each call yields a cryptographically independent pair. The returned keys
// are plain in-memory handles and can always be exported with
// [ExportPublicKey] and [ExportPrivateKey].
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := rsa.GenerateKey(randSource(), RSAKeyBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}

	return &KeyPair{
		PublicKey:  &priv.PublicKey,
		PrivateKey: priv,
	}, nil
}

// KeyPairFromPrivateKey reconstructs a key pair from an imported private key.
// The public half is embedded in the RSA private key.
func KeyPairFromPrivateKey(priv *rsa.PrivateKey) *KeyPair {
	return &KeyPair{
		PublicKey:  &priv.PublicKey,
		PrivateKey: priv,
	}
}
