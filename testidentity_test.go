package sealedchat

import (
	"sync"
	"testing"
	"time"

	"github.com/sealedchat/client-go/internal/crypto"
)

// RSA-4096 generation is expensive, so root-package tests share two
// pre-built identities and import them into fresh clients instead of
// provisioning new keys per test.
var (
	idOnce  sync.Once
	idAlice *ExportedIdentity
	idBob   *ExportedIdentity
	idErr   error
)

func buildIdentity(userID string) (*ExportedIdentity, error) {
	keys, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	material, err := crypto.ExportPrivateKey(keys.PrivateKey)
	if err != nil {
		return nil, err
	}
	record, err := crypto.ExportPublicKey(keys.PublicKey)
	if err != nil {
		return nil, err
	}
	return &ExportedIdentity{
		Version:    IdentityExportVersion,
		UserID:     userID,
		PublicKey:  record,
		PrivateKey: material,
		ExportedAt: time.Now().UTC(),
	}, nil
}

func testIdentities(t testing.TB) (*ExportedIdentity, *ExportedIdentity) {
	t.Helper()
	idOnce.Do(func() {
		idAlice, idErr = buildIdentity("alice")
		if idErr == nil {
			idBob, idErr = buildIdentity("bob")
		}
	})
	if idErr != nil {
		t.Fatalf("building test identities: %v", idErr)
	}
	return idAlice, idBob
}

// newTestClient returns a memory-backed client with alice and bob imported.
func newTestClient(t testing.TB) (*Client, *Session, *Session) {
	t.Helper()
	alice, bob := testIdentities(t)

	client, err := New(WithMemoryKeyStore())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	aliceSession, err := client.ImportIdentity(alice)
	if err != nil {
		t.Fatalf("ImportIdentity(alice) error = %v", err)
	}
	bobSession, err := client.ImportIdentity(bob)
	if err != nil {
		t.Fatalf("ImportIdentity(bob) error = %v", err)
	}
	return client, aliceSession, bobSession
}
